package capture

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"fotocamera/internal/domain"
)

// TimestampLayout formats capture times as dd.MM-HH.mm.ss.
const TimestampLayout = "02.01-15.04.05"

// FileName returns "{number}-{dd.MM-HH.mm.ss}.jpg".
func FileName(number domain.DisplayNumber, at time.Time) string {
	return fmt.Sprintf("%s-%s.jpg", number, at.Format(TimestampLayout))
}

// uniquePath returns dir/name, or dir/{stem}-N.jpg for the first free N when
// a capture in the same second already took the name.
func uniquePath(dir, name string) (string, string, error) {
	ext := filepath.Ext(name)
	stem := name[:len(name)-len(ext)]
	candidate := name
	for n := 1; ; n++ {
		path := filepath.Join(dir, candidate)
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, path, nil
		}
		if err != nil {
			return "", "", err
		}
		candidate = fmt.Sprintf("%s-%d%s", stem, n, ext)
	}
}

// SelectTargetRotation picks the rotation hint passed to the camera.
// A known display rotation wins; otherwise landscape means a quarter turn.
func SelectTargetRotation(o domain.Orientation, display domain.Rotation) domain.Rotation {
	if display != domain.Rotate0 {
		return display
	}
	if o == domain.OrientationLandscape {
		return domain.Rotate90
	}
	return domain.Rotate0
}
