package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// PreviewResult is a small PNG rendition of a canvas, ready to embed in a
// tool response.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Preview crops img to region and shrinks the result to at most maxWidth
// pixels wide, keeping the aspect ratio. An empty region means the whole
// image; maxWidth <= 0 disables shrinking.
func Preview(img image.Image, region image.Rectangle, maxWidth int) (*PreviewResult, error) {
	bounds := img.Bounds()
	if region.Empty() {
		region = bounds
	}
	if !region.In(bounds) {
		return nil, fmt.Errorf("preview region %v outside image bounds %v", region, bounds)
	}

	out := imaging.Crop(img, region)
	if maxWidth > 0 && out.Bounds().Dx() > maxWidth {
		out = imaging.Resize(out, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
