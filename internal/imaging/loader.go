package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ErrNotExist is returned by LoadBackground when the file is missing.
var ErrNotExist = errors.New("background image not found")

// LoadBackground opens an image and converts it to NRGBA, which keeps alpha.
//
// Parameters:
//   - path: Path to the background file. Supported formats are PNG, JPEG,
//     GIF, BMP and WebP. EXIF orientation is applied to JPEGs.
//
// Returns:
//   - *image.NRGBA: A fresh canvas the caller owns and may draw on.
//   - error: Wraps ErrNotExist if the file is missing, or describes the
//     open/decode failure.
//
// Every call decodes the file again. Canvases are never shared between
// renders.
func LoadBackground(path string) (*image.NRGBA, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, path)
		}
		return nil, fmt.Errorf("failed to stat image: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotExist, path)
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return imaging.Clone(img), nil
}

// ScaleToMinWidth upscales img uniformly so its width is at least minWidth.
// Images already wide enough are returned unchanged.
func ScaleToMinWidth(img *image.NRGBA, minWidth int) *image.NRGBA {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || w >= minWidth {
		return img
	}
	scale := float64(minWidth) / float64(w)
	newHeight := int(float64(h) * scale)
	return imaging.Resize(img, minWidth, newHeight, imaging.Lanczos)
}

// ResizeTo resizes img to exactly size using filter.
func ResizeTo(img image.Image, size image.Point, filter imaging.ResampleFilter) *image.NRGBA {
	return imaging.Resize(img, size.X, size.Y, filter)
}

// Supersample scales img up by an integer factor with Lanczos.
func Supersample(img image.Image, factor int) *image.NRGBA {
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*factor, b.Dy()*factor, imaging.Lanczos)
}

// Downsample scales img to size with Lanczos.
func Downsample(img image.Image, size image.Point) *image.NRGBA {
	return imaging.Resize(img, size.X, size.Y, imaging.Lanczos)
}

// BackgroundInfo describes a background file and how a render would size it.
type BackgroundInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the detected image format from the file extension.
	Format string `json:"format"`

	// HasAlpha indicates whether the decoded image carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`

	// CanvasWidth and CanvasHeight are the dimensions after scaling to the
	// minimum width.
	CanvasWidth  int `json:"canvas_width"`
	CanvasHeight int `json:"canvas_height"`
}

// InspectBackground reports the dimensions of a background and the canvas
// size a render with minWidth would start from.
func InspectBackground(path string, minWidth int) (*BackgroundInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, path)
		}
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	hasAlpha := false
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64, *image.Paletted:
		hasAlpha = true
	}

	b := img.Bounds()
	cw, ch := b.Dx(), b.Dy()
	if cw > 0 && cw < minWidth {
		ch = int(float64(ch) * float64(minWidth) / float64(cw))
		cw = minWidth
	}

	return &BackgroundInfo{
		Width:         b.Dx(),
		Height:        b.Dy(),
		Format:        formatFromExt(path),
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
		CanvasWidth:   cw,
		CanvasHeight:  ch,
	}, nil
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".webp":
		return "webp"
	}
	return "unknown"
}
