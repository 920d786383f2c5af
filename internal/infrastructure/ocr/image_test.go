package ocr

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/billscan/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestDecoder_Decode(t *testing.T) {
	src := testImage(12, 8)

	tests := []struct {
		name        string
		data        []byte
		contentType string
	}{
		{name: "png", data: encodePNG(t, src), contentType: "image/png"},
		{name: "jpeg", data: encodeJPEG(t, src), contentType: "image/jpeg"},
		{name: "png with wrong content type", data: encodePNG(t, src), contentType: "application/octet-stream"},
	}

	d := NewDecoder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := d.Decode(tt.data, tt.contentType)

			require.NoError(t, err)
			assert.Equal(t, 12, img.Bounds().Dx())
			assert.Equal(t, 8, img.Bounds().Dy())
		})
	}
}

func TestDecoder_Decode_Errors(t *testing.T) {
	d := NewDecoder()

	t.Run("empty data", func(t *testing.T) {
		_, err := d.Decode(nil, "image/png")
		assert.ErrorIs(t, err, domain.ErrNoImage)
	})

	t.Run("garbage bytes", func(t *testing.T) {
		_, err := d.Decode([]byte("definitely not an image"), "image/png")
		assert.ErrorIs(t, err, domain.ErrImageDecode)
	})

	t.Run("broken heic", func(t *testing.T) {
		data := []byte("\x00\x00\x00\x18ftypheic\x00\x00\x00\x00")
		_, err := d.Decode(data, "image/heic")
		assert.ErrorIs(t, err, domain.ErrImageDecode)
	})
}

func TestIsHEICFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"heic brand", []byte("\x00\x00\x00\x18ftypheic"), true},
		{"mif1 brand", []byte("\x00\x00\x00\x18ftypmif1"), true},
		{"mp4 brand", []byte("\x00\x00\x00\x18ftypisom"), false},
		{"too short", []byte("ftyp"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isHEICFormat(tt.data))
		})
	}
}

func TestIsHEICMimeType(t *testing.T) {
	assert.True(t, isHEICMimeType("image/heic"))
	assert.True(t, isHEICMimeType(" IMAGE/HEIF "))
	assert.False(t, isHEICMimeType("image/jpeg"))
}
