package interfaces

import (
	"context"
	"image"

	domaintypes "fotocamera/internal/domain/types"
)

// Surface receives preview frames.
type Surface interface {
	Present(frame image.Image)
}

// Camera is the platform capture pipeline.
type Camera interface {
	// StartPreview pushes frames to surface until ctx is done.
	StartPreview(ctx context.Context, surface Surface) error
	// Capture persists one frame at target and returns once it is durably written.
	Capture(ctx context.Context, target domaintypes.OutputTarget) (domaintypes.SavedHandle, error)
}

// OrientationSource reports the current device orientation and display rotation.
type OrientationSource interface {
	Orientation() (domaintypes.Orientation, domaintypes.Rotation)
}
