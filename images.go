package skateshare

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// MaxImageWidth is the widest image stored as-is; wider uploads are scaled down.
	MaxImageWidth = 1600
	// MaxImagePixels bounds width*height so decoding stays within memory.
	MaxImagePixels = 40_000_000
	jpegQuality   = 80
	// DefaultMaxUploadBytes bounds a single image upload.
	DefaultMaxUploadBytes = 10 << 20 // 10MB
)

var (
	// ErrUnsupportedImage is returned for uploads that are not a supported image type.
	ErrUnsupportedImage = errors.New("skateshare: unsupported image type")
	// ErrImageTooLarge is returned for uploads over the configured size limit
	// or with more than MaxImagePixels pixels.
	ErrImageTooLarge = errors.New("skateshare: image too large")
)

var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/bmp",
}

// ProcessImage reads an uploaded image, checks its type by content, records
// its dimensions and scales it down to MaxImageWidth if needed.
func ProcessImage(src io.Reader, maxBytes int64) (PostImage, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	data, err := io.ReadAll(io.LimitReader(src, maxBytes+1))
	if err != nil {
		return PostImage{}, fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return PostImage{}, ErrImageTooLarge
	}
	if len(data) == 0 {
		return PostImage{}, ErrUnsupportedImage
	}

	mt := mimetype.Detect(data)
	if !isAllowedImage(mt) {
		return PostImage{}, fmt.Errorf("%w: %s", ErrUnsupportedImage, mt.String())
	}
	mime := baseMime(mt)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return PostImage{}, fmt.Errorf("%w: decode config: %v", ErrUnsupportedImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return PostImage{}, fmt.Errorf("%w: empty image", ErrUnsupportedImage)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return PostImage{}, fmt.Errorf("%w: %dx%d pixels", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	if cfg.Width > MaxImageWidth {
		return resizeImage(data)
	}

	return PostImage{
		ImageMeta: ImageMeta{
			MimeType: mime,
			Width:    cfg.Width,
			Height:   cfg.Height,
			Size:     len(data),
		},
		Data: data,
	}, nil
}

// resizeImage decodes data, scales it to MaxImageWidth and encodes it as JPEG.
func resizeImage(data []byte) (PostImage, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return PostImage{}, fmt.Errorf("%w: decode: %v", ErrUnsupportedImage, err)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	newH := max(h*MaxImageWidth/w, 1)
	dst := image.NewRGBA(image.Rect(0, 0, MaxImageWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return PostImage{}, fmt.Errorf("encode jpeg: %w", err)
	}
	return PostImage{
		ImageMeta: ImageMeta{
			MimeType: "image/jpeg",
			Width:    MaxImageWidth,
			Height:   newH,
			Size:     buf.Len(),
		},
		Data: buf.Bytes(),
	}, nil
}

func isAllowedImage(mt *mimetype.MIME) bool {
	for _, allowed := range allowedImageTypes {
		if mt.Is(allowed) {
			return true
		}
	}
	return false
}

// baseMime strips parameters and maps aliases to the canonical type.
func baseMime(mt *mimetype.MIME) string {
	for _, allowed := range allowedImageTypes {
		if mt.Is(allowed) {
			return allowed
		}
	}
	return mt.String()
}

// DataURL encodes an image as a data: URL for inline previews.
func DataURL(img PostImage) string {
	return "data:" + img.MimeType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}
