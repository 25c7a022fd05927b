package types

// Orientation is the coarse device orientation reported by the window system.
type Orientation int

const (
	OrientationPortrait Orientation = iota
	OrientationLandscape
)

// String returns a lowercase name for logs.
func (o Orientation) String() string {
	if o == OrientationLandscape {
		return "landscape"
	}
	return "portrait"
}

// OutputTarget tells a camera where to persist a capture.
type OutputTarget struct {
	Path           string
	TargetRotation Rotation
}

// SavedHandle identifies a capture durably written by a camera.
type SavedHandle struct {
	Path string
}
