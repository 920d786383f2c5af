package ocr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"strings"

	"github.com/billscan/backend/internal/domain"
	"github.com/gen2brain/heic"
)

// Decoder turns uploaded receipt bytes into an image.Image
type Decoder struct{}

// NewDecoder creates a new image decoder
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes JPEG, PNG, GIF and HEIC/HEIF uploads
func (d *Decoder) Decode(data []byte, contentType string) (image.Image, error) {
	if len(data) == 0 {
		return nil, domain.ErrNoImage
	}

	// iPhone photos arrive as HEIC, which the standard library cannot read
	if isHEICFormat(data) || isHEICMimeType(contentType) {
		img, err := heic.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: HEIC/HEIF: %v", domain.ErrImageDecode, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImageDecode, err)
	}
	return img, nil
}

// isHEICFormat checks for an ftyp box with a HEIC-family brand at offset 4
func isHEICFormat(data []byte) bool {
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heix", "heif", "mif1", "msf1":
		return true
	}
	return false
}

func isHEICMimeType(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	return strings.Contains(mimeType, "heic") || strings.Contains(mimeType, "heif")
}
