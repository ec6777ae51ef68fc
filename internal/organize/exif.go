package organize

import (
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// CaptureTimeFunc reads the capture timestamp of an exported file. It exists
// as a seam so tests can substitute EXIF parsing.
type CaptureTimeFunc func(path string) (time.Time, error)

// exifCaptureTime reads DateTimeOriginal (falling back to DateTime) from the
// file's EXIF block.
func exifCaptureTime(path string) (time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	meta, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, err
	}
	return meta.DateTime()
}

// captureDateLayouts covers the timestamp spellings observed in Lightroom
// catalogs.
var captureDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
}

// parseCaptureDate parses a catalog captureDate string. The second return is
// false when the value is empty or unrecognized.
func parseCaptureDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range captureDateLayouts {
		if tm, err := time.Parse(layout, value); err == nil {
			return tm, true
		}
	}
	return time.Time{}, false
}

// sameCaptureInstant compares wall-clock timestamps to the second, ignoring
// zones: EXIF times carry no zone while catalog times are often UTC, so only
// the local reading is comparable.
func sameCaptureInstant(a, b time.Time) bool {
	const layout = "2006-01-02 15:04:05"
	return a.Format(layout) == b.Format(layout)
}
