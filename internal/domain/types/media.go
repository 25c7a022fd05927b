package types

import "time"

// Default media placement for captured photos.
const (
	DefaultRelativePath = "DCIM/Camera"
	MimeTypeJPEG        = "image/jpeg"
)

// MediaRecord is the media index entry for one captured photo.
//
// A record stays Pending until post-processing has finished, so gallery readers
// only ever observe the final bytes.
type MediaRecord struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"display_name"`
	RelativePath string    `json:"relative_path"`
	MimeType     string    `json:"mime_type"`
	Pending      bool      `json:"pending"`
	Fingerprint  string    `json:"fingerprint,omitempty"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
