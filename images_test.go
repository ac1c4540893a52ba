package skateshare

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, G: 80, B: 120, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessImageKeepsSmallImage(t *testing.T) {
	data := encodePNG(t, 40, 30)

	img, err := ProcessImage(bytes.NewReader(data), 0)
	require.NoError(t, err)

	assert.Equal(t, "image/png", img.MimeType)
	assert.Equal(t, ImageDimensions{Width: 40, Height: 30}, img.Dimensions())
	assert.Equal(t, len(data), img.Size)
	assert.Equal(t, data, img.Data, "small images are stored byte-for-byte")
}

func TestProcessImageScalesWideImage(t *testing.T) {
	data := encodePNG(t, MaxImageWidth*2, 100)

	img, err := ProcessImage(bytes.NewReader(data), 0)
	require.NoError(t, err)

	assert.Equal(t, "image/jpeg", img.MimeType)
	assert.Equal(t, MaxImageWidth, img.Width)
	assert.Equal(t, 50, img.Height)
	assert.Equal(t, len(img.Data), img.Size)
}

func TestProcessImageRejectsNonImage(t *testing.T) {
	_, err := ProcessImage(strings.NewReader("just some text, not a picture"), 0)
	assert.True(t, errors.Is(err, ErrUnsupportedImage), "got %v", err)

	_, err = ProcessImage(strings.NewReader(""), 0)
	assert.True(t, errors.Is(err, ErrUnsupportedImage), "got %v", err)
}

func TestProcessImageRejectsOversized(t *testing.T) {
	data := encodePNG(t, 40, 30)
	_, err := ProcessImage(bytes.NewReader(data), int64(len(data)-1))
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestDataURL(t *testing.T) {
	img := PostImage{ImageMeta: ImageMeta{MimeType: "image/gif"}, Data: []byte("GIF89a")}
	assert.Equal(t, "data:image/gif;base64,R0lGODlh", DataURL(img))
}

// pngHeader returns a PNG holding only the signature and an IHDR chunk for a
// w x h grayscale image. It is enough for DecodeConfig and nothing else.
func pngHeader(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	chunk := make([]byte, 0, 17)
	chunk = append(chunk, "IHDR"...)
	chunk = binary.BigEndian.AppendUint32(chunk, w)
	chunk = binary.BigEndian.AppendUint32(chunk, h)
	chunk = append(chunk, 8, 0, 0, 0, 0)
	binary.Write(&buf, binary.BigEndian, uint32(len(chunk)-4))
	buf.Write(chunk)
	binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestProcessImageRejectsTooManyPixels(t *testing.T) {
	data := pngHeader(20000, 20000)
	require.Less(t, len(data), 100)

	_, err := ProcessImage(bytes.NewReader(data), DefaultMaxUploadBytes)
	assert.True(t, errors.Is(err, ErrImageTooLarge), "got %v", err)
}

func TestProcessImageRejectsTallImageOverPixelBudget(t *testing.T) {
	_, err := ProcessImage(bytes.NewReader(pngHeader(1000, 50000)), DefaultMaxUploadBytes)
	assert.True(t, errors.Is(err, ErrImageTooLarge), "got %v", err)
}
