package interfaces

import (
	"context"

	domaintypes "fotocamera/internal/domain/types"
)

// PreferenceStore persists the DisplayNumber and launch flags.
//
// All operations are synchronous and last-write-wins.
type PreferenceStore interface {
	DisplayNumber() (domaintypes.DisplayNumber, error)
	SaveDisplayNumber(n domaintypes.DisplayNumber) error

	IsFirstLaunch() (bool, error)
	SetFirstLaunchCompleted() error

	IsDontAskAgainDefault() (bool, error)
	SetDontAskAgainDefault(v bool) error
}

// MediaIndex tracks photos published into shared media storage.
type MediaIndex interface {
	InsertPending(ctx context.Context, rec domaintypes.MediaRecord) (domaintypes.MediaRecord, error)
	Publish(ctx context.Context, id string, fingerprint string, size int64) (domaintypes.MediaRecord, error)
	Remove(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domaintypes.MediaRecord, error)
	List(ctx context.Context, includePending bool) ([]domaintypes.MediaRecord, error)
}
