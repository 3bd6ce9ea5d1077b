package render

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/text-card-mcp/internal/fonts"
	"github.com/ironsheep/text-card-mcp/internal/imaging"
	"github.com/ironsheep/text-card-mcp/internal/layout"
)

const (
	// Margin is the left and top inset of the text block at base resolution.
	Margin = 60

	// SupersampleFactor is the canvas scale of the high quality path.
	SupersampleFactor = 2

	// HighQualityMaxRunes is the longest text still drawn supersampled.
	HighQualityMaxRunes = 50
)

// Quality selects between the supersampled and the direct drawing path.
type Quality int

const (
	Standard Quality = iota
	High
)

func (q Quality) String() string {
	if q == High {
		return "high"
	}
	return "standard"
}

// Scale is the factor the canvas is enlarged by while drawing.
func (q Quality) Scale() int {
	if q == High {
		return SupersampleFactor
	}
	return 1
}

// ChooseQuality returns High when highQuality is requested and text has at
// most HighQualityMaxRunes runes.
func ChooseQuality(text string, highQuality bool) Quality {
	if highQuality && utf8.RuneCountInString(text) <= HighQualityMaxRunes {
		return High
	}
	return Standard
}

// Style holds the colors used to draw text.
type Style struct {
	Foreground color.Color
	Outline    color.Color

	// Guides, when set, outlines every drawn line box in this color.
	Guides color.Color
}

// DefaultStyle is white text with a black outline.
var DefaultStyle = Style{Foreground: color.White, Outline: color.Black}

func (s Style) withDefaults() Style {
	if s.Foreground == nil {
		s.Foreground = DefaultStyle.Foreground
	}
	if s.Outline == nil {
		s.Outline = DefaultStyle.Outline
	}
	return s
}

// DrawOutlined draws text with its baseline origin at (x, y). The text is
// first stamped in the outline color at every offset within width pixels,
// then once in the foreground color at the origin. A width of 0 draws no
// outline.
func DrawOutlined(dst draw.Image, face font.Face, x, y int, text string, width int, style Style) {
	style = style.withDefaults()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(style.Outline),
		Face: face,
	}

	for dx := -width; dx <= width; dx++ {
		for dy := -width; dy <= width; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			d.Dot = fixed.P(x+dx, y+dy)
			d.DrawString(text)
		}
	}

	d.Src = image.NewUniform(style.Foreground)
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}

// Options describe one compositing pass at base resolution.
type Options struct {
	// FontName is the preferred custom font file name.
	FontName string

	// FontSize is the base size before length scaling.
	FontSize int

	// Spacing is added between consecutive lines.
	Spacing int

	Quality Quality
	Style   Style
}

// Layout reports what a compositing pass did.
type Layout struct {
	Quality Quality `json:"-"`

	// Font is the chosen font file name, or "builtin".
	Font     string `json:"font"`
	FontPath string `json:"font_path,omitempty"`

	// FontSize is the chosen size at the drawing scale.
	FontSize int `json:"font_size"`
	Scale    int `json:"scale"`

	// Degraded is fonts.ErrFitNotFound or fonts.ErrFontUnavailable when a
	// fallback was used.
	Degraded error `json:"-"`

	// Paragraph is measured at the drawing scale.
	Paragraph layout.Paragraph `json:"paragraph"`

	// Boxes are the drawn line boxes in output coordinates.
	Boxes []image.Rectangle `json:"-"`
}

// Compositor draws text onto canvases. It holds only read-only configuration
// and is safe for concurrent use.
type Compositor struct {
	resolver *fonts.Resolver
	selector *fonts.Selector
	margin   int

	// Verbose enables debug-level log lines.
	Verbose bool
}

// NewCompositor creates a compositor with the standard margin.
func NewCompositor(resolver *fonts.Resolver, selector *fonts.Selector) *Compositor {
	return &Compositor{
		resolver: resolver,
		selector: selector,
		margin:   Margin,
	}
}

// Render draws text onto dst with face, starting at the compositor margin.
// Each line's ink top is placed at the cursor, which then advances by the
// line height plus spacing. Blank lines advance the cursor without drawing.
// The returned boxes are the drawn line extents.
func (c *Compositor) Render(dst draw.Image, text string, face font.Face, spacing, outline int, style Style) (layout.Paragraph, []image.Rectangle) {
	return drawParagraph(dst, text, face, spacing, outline, c.margin, style)
}

// RenderWithOutlineAndScale selects a font for text and draws it on canvas.
//
// With opts.Quality High the canvas is enlarged by SupersampleFactor, the
// font size, spacing, margin and outline width are multiplied by the same
// factor, and the result is scaled back to the original size. The canvas
// passed in is drawn on directly on the standard path and left untouched on
// the high quality path; use the returned image in both cases.
func (c *Compositor) RenderWithOutlineAndScale(canvas *image.NRGBA, text string, opts Options) (*image.NRGBA, Layout) {
	scale := opts.Quality.Scale()
	size := canvas.Bounds().Size()

	work := canvas
	if scale > 1 {
		work = imaging.Supersample(canvas, scale)
	}

	candidates := c.resolver.Resolve(opts.FontName)
	resolved := c.selector.Select(text, work.Bounds().Dx(), candidates, opts.FontSize*scale)
	defer resolved.Close()

	outline := max(1, scale)

	if c.Verbose {
		log.Printf("Compositing %d runes at scale %d with %s size %d", utf8.RuneCountInString(text), scale, resolved.Name(), resolved.Size)
	}

	margin := c.margin * scale
	para, boxes := drawParagraph(work, text, resolved.Face, opts.Spacing*scale, outline, margin, opts.Style)

	if opts.Style.Guides != nil {
		imaging.DrawMargin(work, margin, opts.Style.Guides)
		imaging.DrawGuides(work, boxes, opts.Style.Guides)
	}

	if scale > 1 {
		work = imaging.Downsample(work, size)
		for i, b := range boxes {
			boxes[i] = image.Rect(b.Min.X/scale, b.Min.Y/scale, (b.Max.X+scale-1)/scale, (b.Max.Y+scale-1)/scale)
		}
	}

	return work, Layout{
		Quality:   opts.Quality,
		Font:      resolved.Name(),
		FontPath:  resolved.Path,
		FontSize:  resolved.Size,
		Scale:     scale,
		Degraded:  resolved.Degraded,
		Paragraph: para,
		Boxes:     boxes,
	}
}

// Measure selects a font for text against width and measures the paragraph
// without drawing. It is the planning half of RenderWithOutlineAndScale at
// base resolution.
func (c *Compositor) Measure(text string, width int, opts Options) Layout {
	resolved := c.selector.Select(text, width, c.resolver.Resolve(opts.FontName), opts.FontSize)
	defer resolved.Close()

	return Layout{
		Quality:   opts.Quality,
		Font:      resolved.Name(),
		FontPath:  resolved.Path,
		FontSize:  resolved.Size,
		Scale:     1,
		Degraded:  resolved.Degraded,
		Paragraph: layout.Measure(text, resolved.Face, opts.Spacing),
	}
}

// Candidates lists the existing font files for a preferred font, in the
// order they would be tried.
func (c *Compositor) Candidates(preferred string) []string {
	return c.resolver.Resolve(preferred)
}

// drawParagraph is the line loop shared by both quality paths.
func drawParagraph(dst draw.Image, text string, face font.Face, spacing, outline, margin int, style Style) (layout.Paragraph, []image.Rectangle) {
	para := layout.Measure(text, face, spacing)
	boxes := make([]image.Rectangle, 0, len(para.Lines))

	y := margin
	for _, line := range para.Lines {
		if !line.Blank {
			DrawOutlined(dst, face, margin, y+line.Ascent, line.Text, outline, style)
			boxes = append(boxes, image.Rect(margin, y, margin+line.Width, y+line.Height))
		}
		y += line.Height + spacing
	}
	return para, boxes
}
