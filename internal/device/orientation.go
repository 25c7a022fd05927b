package device

import "fotocamera/internal/domain"

// FixedOrientation reports a configured orientation and display rotation.
type FixedOrientation struct {
	Orient  domain.Orientation
	Display domain.Rotation
}

// Orientation implements domain.OrientationSource.
func (f FixedOrientation) Orientation() (domain.Orientation, domain.Rotation) {
	return f.Orient, f.Display
}

// RelativeRotation is the rotation a sensor mounted at sensor degrees must
// record so that a frame taken at target display rotation shows upright.
func RelativeRotation(sensor, target domain.Rotation) domain.Rotation {
	return domain.Rotation((int(sensor) - int(target) + 360) % 360)
}

var _ domain.OrientationSource = FixedOrientation{}
