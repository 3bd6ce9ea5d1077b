package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/ironsheep/text-card-mcp/internal/config"
	"github.com/ironsheep/text-card-mcp/internal/fonts"
	"github.com/ironsheep/text-card-mcp/internal/imaging"
	"github.com/ironsheep/text-card-mcp/internal/layout"
)

// Request is one render job. Build it with Service.NewRequest so unset fields
// carry the configured defaults.
type Request struct {
	// Text may contain real newlines or literal "\n" sequences.
	Text string

	// Background and Output default to the configured paths when empty.
	Background string
	Output     string

	// Font is the preferred custom font file name.
	Font string

	// FontSize is the base size; non-positive means the configured size.
	FontSize int

	// TargetSize, when non-zero, resizes the canvas to exactly this size
	// after the minimum width is applied.
	TargetSize image.Point

	// MinWidth is the width floor; zero disables upscaling.
	MinWidth int

	// HighQuality allows the supersampled path for short text.
	HighQuality bool

	// Resample names the algorithm used for TargetSize.
	Resample string

	Spacing int

	// Foreground, Outline and Guides are hex colors. Empty Guides disables
	// the guide overlay.
	Foreground string
	Outline    string
	Guides     string
}

// Result describes a successful render.
type Result struct {
	Path    string `json:"path"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Quality string `json:"quality"`
	Layout  Layout `json:"layout"`

	// Degraded names the font fallback taken, if any.
	Degraded string `json:"degraded,omitempty"`

	// Foreground and Outline are the resolved text colors.
	Foreground string `json:"foreground"`
	Outline    string `json:"outline"`

	// Canvas is the saved image.
	Canvas *image.NRGBA `json:"-"`
}

// Outcome carries the result of an asynchronous render.
type Outcome struct {
	Result *Result
	Err    error
}

// Service renders requests end to end. It is safe for concurrent use.
type Service struct {
	cfg        config.Config
	compositor *Compositor
}

// NewService builds a service whose fonts are resolved from cfg.AssetDir and
// the system font locations.
func NewService(cfg config.Config) *Service {
	resolver := fonts.NewResolver(cfg.AssetDir, cfg.BaseDir, cfg.FontName, fonts.SystemCandidates())
	resolver.Verbose = cfg.Debug

	compositor := NewCompositor(resolver, fonts.NewSelector())
	compositor.Verbose = cfg.Debug

	return NewServiceWithCompositor(cfg, compositor)
}

// NewServiceWithCompositor builds a service around an existing compositor.
func NewServiceWithCompositor(cfg config.Config, compositor *Compositor) *Service {
	return &Service{cfg: cfg, compositor: compositor}
}

// Config returns the service configuration.
func (s *Service) Config() config.Config {
	return s.cfg
}

// Compositor returns the compositor used for drawing.
func (s *Service) Compositor() *Compositor {
	return s.compositor
}

// NewRequest returns a request for text filled with the configured defaults
// and high quality enabled.
func (s *Service) NewRequest(text string) Request {
	return Request{
		Text:        text,
		Background:  s.cfg.Background,
		Output:      s.cfg.Output,
		Font:        s.cfg.FontName,
		FontSize:    s.cfg.FontSize,
		MinWidth:    s.cfg.MinWidth,
		HighQuality: true,
		Resample:    imaging.DefaultFilter,
		Spacing:     s.cfg.Spacing,
	}
}

// Render runs req and returns the output path.
func (s *Service) Render(req Request) (string, error) {
	res, err := s.RenderDetailed(req)
	if err != nil {
		return "", err
	}
	return res.Path, nil
}

// RenderDetailed runs req through validate, load, size, composite and save.
//
// Errors are *MissingBackgroundError, *RenderIOError or wrap
// ErrInvalidRequest. Nothing is written unless the render succeeds. Panics
// inside the pipeline are recovered and returned as *RenderIOError.
func (s *Service) RenderDetailed(req Request) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = &RenderIOError{Op: "draw", Err: fmt.Errorf("panic: %v", r)}
		}
		if err != nil {
			log.Printf("Render failed: %v", err)
		}
	}()

	text := layout.Normalize(req.Text)
	background := req.Background
	if background == "" {
		background = s.cfg.Background
	}
	output := req.Output
	if output == "" {
		output = s.cfg.Output
	}
	fontSize := req.FontSize
	if fontSize <= 0 {
		fontSize = s.cfg.FontSize
	}

	style, err := req.style()
	if err != nil {
		return nil, err
	}
	filter, err := imaging.ParseFilter(req.Resample)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	target := req.TargetSize
	if target != (image.Point{}) && (target.X <= 0 || target.Y <= 0) {
		return nil, fmt.Errorf("%w: target size %dx%d must be positive", ErrInvalidRequest, target.X, target.Y)
	}

	canvas, err := imaging.LoadBackground(background)
	if err != nil {
		if errors.Is(err, imaging.ErrNotExist) {
			return nil, &MissingBackgroundError{Path: background}
		}
		return nil, &RenderIOError{Op: "load", Err: err}
	}
	if s.cfg.Debug {
		log.Printf("Loaded background %s (%dx%d)", background, canvas.Bounds().Dx(), canvas.Bounds().Dy())
	}

	canvas = imaging.ScaleToMinWidth(canvas, req.MinWidth)
	if target != (image.Point{}) {
		canvas = imaging.ResizeTo(canvas, target, filter)
	}

	quality := ChooseQuality(text, req.HighQuality)
	out, lay := s.compositor.RenderWithOutlineAndScale(canvas, text, Options{
		FontName: req.Font,
		FontSize: fontSize,
		Spacing:  req.Spacing,
		Quality:  quality,
		Style:    style,
	})

	if err := imaging.Save(out, output, imaging.DefaultSaveOptions); err != nil {
		return nil, &RenderIOError{Op: "save", Err: err}
	}

	res = &Result{
		Path:    output,
		Width:   out.Bounds().Dx(),
		Height:  out.Bounds().Dy(),
		Quality: quality.String(),
		Layout:  lay,
		Canvas:  out,

		Foreground: imaging.HexString(style.Foreground),
		Outline:    imaging.HexString(style.Outline),
	}
	if lay.Degraded != nil {
		res.Degraded = lay.Degraded.Error()
	}

	log.Printf("Rendered %s (%dx%d, %s quality, %s size %d)", output, res.Width, res.Height, res.Quality, lay.Font, lay.FontSize)
	return res, nil
}

// RenderAsync runs req on its own goroutine. The channel receives exactly one
// Outcome.
func (s *Service) RenderAsync(req Request) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		res, err := s.RenderDetailed(req)
		ch <- Outcome{Result: res, Err: err}
	}()
	return ch
}

// Measure plans text for a canvas width at base resolution without loading a
// background or drawing.
func (s *Service) Measure(text, fontName string, fontSize, width, spacing int) Layout {
	if fontSize <= 0 {
		fontSize = s.cfg.FontSize
	}
	if fontName == "" {
		fontName = s.cfg.FontName
	}
	return s.compositor.Measure(layout.Normalize(text), width, Options{
		FontName: fontName,
		FontSize: fontSize,
		Spacing:  spacing,
	})
}

func (r Request) style() (Style, error) {
	fg, err := imaging.ColorOrDefault(r.Foreground, color.NRGBA{255, 255, 255, 255})
	if err != nil {
		return Style{}, fmt.Errorf("%w: foreground: %v", ErrInvalidRequest, err)
	}
	outline, err := imaging.ColorOrDefault(r.Outline, color.NRGBA{0, 0, 0, 255})
	if err != nil {
		return Style{}, fmt.Errorf("%w: outline: %v", ErrInvalidRequest, err)
	}

	style := Style{Foreground: fg, Outline: outline}
	if r.Guides != "" {
		guides, err := imaging.ParseColor(r.Guides)
		if err != nil {
			return Style{}, fmt.Errorf("%w: guides: %v", ErrInvalidRequest, err)
		}
		style.Guides = guides
	}
	return style, nil
}
