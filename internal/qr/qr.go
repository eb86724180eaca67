package qr

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

const (
	// FileName is the fixed download name for the courses QR image.
	FileName = "courses_qr.png"
	// ContentType is the MIME type of the encoded image.
	ContentType = "image/png"

	imageSize = 256
)

// ErrNoCourses signals that there is nothing to encode; callers render an
// informational notice instead of an image.
var ErrNoCourses = errors.New("no course links to encode")

// EncodeCourses joins the course URLs with newline separators and encodes the
// result as a QR PNG.
func EncodeCourses(urls []string) ([]byte, error) {
	if len(urls) == 0 {
		return nil, ErrNoCourses
	}

	merged := strings.Join(urls, "\n")
	code, err := qr.Encode(merged, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}

	scaled, err := barcode.Scale(code, imageSize, imageSize)
	if err != nil {
		return nil, fmt.Errorf("qr scale: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("qr png encode: %w", err)
	}
	return buf.Bytes(), nil
}
