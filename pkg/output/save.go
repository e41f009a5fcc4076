package output

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// Save writes img to path, choosing the encoder from the file extension:
// .ppm is written as ASCII PPM, and .png, .jpg, .gif, .tif and .bmp go
// through imaging. The image is written to a temporary file in the same
// directory and renamed into place, so path is never left half written.
func Save(path string, img image.Image) error {
	encode, err := encoderFor(path)
	if err != nil {
		return err
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*"+filepath.Ext(base))
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if err := encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

type encodeFunc func(f *os.File, img image.Image) error

func encoderFor(path string) (encodeFunc, error) {
	if strings.EqualFold(filepath.Ext(path), ".ppm") {
		return func(f *os.File, img image.Image) error {
			return WritePPM(f, toRGBA(img))
		}, nil
	}

	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	return func(f *os.File, img image.Image) error {
		return imaging.Encode(f, img, format, imaging.JPEGQuality(95))
	}, nil
}

// Thumbnail scales img down to fit within maxWidth x maxHeight, keeping the
// aspect ratio. Images that already fit are returned unchanged.
func Thumbnail(img image.Image, maxWidth, maxHeight uint) image.Image {
	return resize.Thumbnail(maxWidth, maxHeight, img, resize.Lanczos3)
}

// ThumbnailPath returns the sibling path used for a render's thumbnail
func ThumbnailPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_thumb.png"
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}
