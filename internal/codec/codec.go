// Package codec turns HEIC/HEIF image data into JPEG data. Decoding is
// delegated to libheif via goheif; encoding uses the standard library
// JPEG encoder.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/jdeng/goheif"
)

var (
	// ErrDecode marks input that could not be read as HEIC/HEIF.
	ErrDecode = errors.New("not a valid HEIC/HEIF image")
	// ErrEncode marks a rejected quality value or a JPEG encoder failure.
	ErrEncode = errors.New("JPEG encoding failed")
)

// DefaultQuality is the JPEG quality used when the caller does not
// specify one.
const DefaultQuality = 95

// Converter converts a single image held in memory. Implementations must
// be safe for concurrent use.
type Converter interface {
	// Convert decodes HEIC/HEIF data and re-encodes it as JPEG at the
	// given quality (1-100).
	Convert(data []byte, quality int) ([]byte, error)
}

// HEIF is the production Converter backed by goheif.
type HEIF struct{}

func NewHEIF() *HEIF {
	return &HEIF{}
}

func (h *HEIF) Convert(data []byte, quality int) ([]byte, error) {
	img, err := goheif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return encodeJPEG(img, quality)
}

// Dimensions reports the pixel size of a HEIC/HEIF image without
// decoding the full pixel buffer.
func (h *HEIF) Dimensions(data []byte) (width, height int, err error) {
	cfg, err := goheif.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return cfg.Width, cfg.Height, nil
}

// encodeJPEG rejects out-of-range quality values up front: the stdlib
// encoder would clamp them silently, and callers need the rejection to
// be observable.
func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("%w: quality %d out of range 1-100", ErrEncode, quality)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}
