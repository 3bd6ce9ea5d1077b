package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log"

	"github.com/ironsheep/text-card-mcp/internal/config"
	"github.com/ironsheep/text-card-mcp/internal/layout"
	"github.com/ironsheep/text-card-mcp/internal/ocr"
	"github.com/ironsheep/text-card-mcp/internal/render"
)

// runRender implements the render subcommand. It prints the output path to w.
func runRender(args []string, cfg config.Config, w io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	text := fs.String("text", "", "text to render; literal \\n breaks lines")
	bg := fs.String("bg", cfg.Background, "background image path")
	out := fs.String("out", cfg.Output, "output image path (.png, .jpg, .bmp)")
	fontName := fs.String("font", cfg.FontName, "custom font file name inside the asset directory")
	size := fs.Int("size", cfg.FontSize, "base font size")
	width := fs.Int("width", 0, "exact output width (with -height)")
	height := fs.Int("height", 0, "exact output height (with -width)")
	minWidth := fs.Int("min-width", cfg.MinWidth, "minimum canvas width")
	quality := fs.Bool("quality", true, "supersample short text")
	resample := fs.String("resample", "lanczos", "resize algorithm for -width/-height")
	spacing := fs.Int("spacing", cfg.Spacing, "pixels between lines")
	fg := fs.String("fg", "", "text color (#RRGGBB)")
	outline := fs.String("outline", "", "outline color (#RRGGBB)")
	guides := fs.String("guides", "", "draw line boxes in this color")
	wrap := fs.Int("wrap", 0, "wrap text at this many characters before rendering")
	verify := fs.Bool("verify", false, "read the result back with OCR")
	lang := fs.String("lang", ocr.DefaultLanguage, "OCR language for -verify")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *text == "" && fs.NArg() > 0 {
		*text = fs.Arg(0)
	}
	if (*width == 0) != (*height == 0) {
		return errors.New("-width and -height must be given together")
	}
	if *wrap > 0 {
		*text = layout.Wrap(*text, *wrap, true)
	}

	svc := render.NewService(cfg)
	req := svc.NewRequest(*text)
	req.Background = *bg
	req.Output = *out
	req.Font = *fontName
	req.FontSize = *size
	req.MinWidth = *minWidth
	req.HighQuality = *quality
	req.Resample = *resample
	req.Spacing = *spacing
	req.Foreground = *fg
	req.Outline = *outline
	req.Guides = *guides
	if *width > 0 {
		req.TargetSize = image.Pt(*width, *height)
	}

	res, err := svc.RenderDetailed(req)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, res.Path)

	if res.Degraded != "" {
		log.Printf("warning: rendered with fallback font: %s", res.Degraded)
	}

	if *verify {
		v, err := ocr.Verify(res.Path, layout.Normalize(*text), *lang, image.Rectangle{})
		if err != nil {
			return fmt.Errorf("failed to verify: %w", err)
		}
		fmt.Fprintf(w, "verify: %d/%d words (score %.2f)\n", v.Matched, v.Total, v.Score)
		if !v.Passed {
			return fmt.Errorf("verification failed: recognized %q", v.Recognized)
		}
	}
	return nil
}
