package imaging

import (
	"image"
	"image/color"
	"image/draw"
)

// DrawGuides outlines each box on dst with a one pixel border. It is a
// debugging aid for checking where lines of text were placed.
func DrawGuides(dst draw.Image, boxes []image.Rectangle, c color.Color) {
	bounds := dst.Bounds()
	for _, box := range boxes {
		r := box.Intersect(bounds)
		if r.Empty() {
			continue
		}

		// Horizontal edges
		for x := r.Min.X; x < r.Max.X; x++ {
			if box.Min.Y >= bounds.Min.Y {
				dst.Set(x, box.Min.Y, c)
			}
			if box.Max.Y-1 < bounds.Max.Y {
				dst.Set(x, box.Max.Y-1, c)
			}
		}

		// Vertical edges
		for y := r.Min.Y; y < r.Max.Y; y++ {
			if box.Min.X >= bounds.Min.X {
				dst.Set(box.Min.X, y, c)
			}
			if box.Max.X-1 < bounds.Max.X {
				dst.Set(box.Max.X-1, y, c)
			}
		}
	}
}

// DrawMargin draws the left and top margin lines across the whole canvas.
func DrawMargin(dst draw.Image, margin int, c color.Color) {
	b := dst.Bounds()
	if margin < b.Min.X || margin >= b.Max.X || margin < b.Min.Y || margin >= b.Max.Y {
		return
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		dst.Set(margin, y, c)
	}
	for x := b.Min.X; x < b.Max.X; x++ {
		dst.Set(x, margin, c)
	}
}
