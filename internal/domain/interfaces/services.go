package interfaces

import (
	"context"

	domaintypes "fotocamera/internal/domain/types"
)

// Compositor burns a DisplayNumber badge into a persisted image in place.
type Compositor interface {
	Apply(ctx context.Context, path string, number domaintypes.DisplayNumber) (domaintypes.OverlayGeometry, error)
}

// ScanListener is told when a published photo has its final bytes.
type ScanListener interface {
	Scanned(rec domaintypes.MediaRecord, path string)
}
