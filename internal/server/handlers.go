package server

import (
	"encoding/json"
	"fmt"
	"image"
	"log"

	"github.com/ironsheep/text-card-mcp/internal/imaging"
	"github.com/ironsheep/text-card-mcp/internal/layout"
	"github.com/ironsheep/text-card-mcp/internal/ocr"
	"github.com/ironsheep/text-card-mcp/internal/render"
)

// defaultPreviewWidth bounds the width of previews returned by text_render.
const defaultPreviewWidth = 400

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "text_render", "text_measure").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Calls the render, layout, imaging or ocr package
//  4. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Rendering
	case "text_render":
		return s.handleTextRender(args)

	// Layout Planning
	case "text_measure":
		return s.handleTextMeasure(args)
	case "text_wrap":
		return s.handleTextWrap(args)
	case "font_candidates":
		return s.handleFontCandidates(args)

	// Backgrounds and Verification
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_verify_text":
		return s.handleImageVerifyText(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// unmarshalArgs decodes tool arguments, treating missing arguments as {}.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// === Rendering Handlers ===

type textRenderArgs struct {
	Text         string `json:"text"`
	Background   string `json:"background"`
	Output       string `json:"output"`
	Font         string `json:"font"`
	FontSize     int    `json:"font_size"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	MinWidth     *int   `json:"min_width"`
	HighQuality  *bool  `json:"high_quality"`
	Resample     string `json:"resample"`
	Spacing      *int   `json:"spacing"`
	Foreground   string `json:"foreground"`
	Outline      string `json:"outline"`
	Guides       string `json:"guides"`
	Preview      bool   `json:"preview"`
	PreviewWidth int    `json:"preview_width"`
	Verify       bool   `json:"verify"`
	Language     string `json:"language"`
}

// textRenderResult is the text_render tool response.
type textRenderResult struct {
	Path        string `json:"path"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Quality     string `json:"quality"`
	Font        string `json:"font"`
	FontSize    int    `json:"font_size"`
	Degraded    string `json:"degraded,omitempty"`
	Lines       int    `json:"lines"`
	TotalHeight int    `json:"total_height"`
	Foreground  string `json:"foreground"`
	Outline     string `json:"outline"`

	Preview *imaging.PreviewResult `json:"preview,omitempty"`
	Verify  *ocr.VerifyResult      `json:"verify,omitempty"`

	// VerifyError is set when OCR was requested but could not run. The
	// render itself still succeeded.
	VerifyError string `json:"verify_error,omitempty"`
}

func (s *Server) handleTextRender(args json.RawMessage) (interface{}, error) {
	var a textRenderArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	req := s.svc.NewRequest(a.Text)
	if a.Background != "" {
		req.Background = a.Background
	}
	if a.Output != "" {
		req.Output = a.Output
	}
	if a.Font != "" {
		req.Font = a.Font
	}
	if a.FontSize > 0 {
		req.FontSize = a.FontSize
	}
	if a.Width != 0 || a.Height != 0 {
		req.TargetSize = image.Pt(a.Width, a.Height)
	}
	if a.MinWidth != nil {
		req.MinWidth = *a.MinWidth
	}
	if a.HighQuality != nil {
		req.HighQuality = *a.HighQuality
	}
	if a.Resample != "" {
		req.Resample = a.Resample
	}
	if a.Spacing != nil {
		req.Spacing = *a.Spacing
	}
	req.Foreground = a.Foreground
	req.Outline = a.Outline
	req.Guides = a.Guides

	res, err := s.svc.RenderDetailed(req)
	if err != nil {
		return nil, err
	}

	out := &textRenderResult{
		Path:        res.Path,
		Width:       res.Width,
		Height:      res.Height,
		Quality:     res.Quality,
		Font:        res.Layout.Font,
		FontSize:    res.Layout.FontSize,
		Degraded:    res.Degraded,
		Lines:       len(res.Layout.Paragraph.Lines),
		TotalHeight: res.Layout.Paragraph.TotalHeight,
		Foreground:  res.Foreground,
		Outline:     res.Outline,
	}

	if a.Preview {
		width := a.PreviewWidth
		if width <= 0 {
			width = defaultPreviewWidth
		}
		preview, err := imaging.Preview(res.Canvas, image.Rectangle{}, width)
		if err != nil {
			return nil, err
		}
		out.Preview = preview
	}

	if a.Verify {
		v, err := ocr.Verify(res.Path, layout.Normalize(a.Text), a.Language, textBlock(res.Layout.Boxes))
		if err != nil {
			log.Printf("warning: verification skipped: %v", err)
			out.VerifyError = err.Error()
		} else {
			out.Verify = v
		}
	}

	return out, nil
}

// textBlock returns the union of the drawn line boxes padded by a few pixels,
// or an empty rectangle when nothing was drawn.
func textBlock(boxes []image.Rectangle) image.Rectangle {
	var block image.Rectangle
	for _, b := range boxes {
		block = block.Union(b)
	}
	if block.Empty() {
		return block
	}
	return block.Inset(-8)
}

// === Layout Planning Handlers ===

type textMeasureArgs struct {
	Text     string `json:"text"`
	Font     string `json:"font"`
	FontSize int    `json:"font_size"`
	Width    int    `json:"width"`
	Spacing  *int   `json:"spacing"`
}

// textMeasureResult is the text_measure tool response.
type textMeasureResult struct {
	Font        string               `json:"font"`
	FontSize    int                  `json:"font_size"`
	Degraded    string               `json:"degraded,omitempty"`
	MaxWidth    int                  `json:"max_width"`
	TotalHeight int                  `json:"total_height"`
	Lines       []layout.LineMetrics `json:"lines"`

	// FitsWidth reports whether the widest line fits between the margins.
	FitsWidth bool `json:"fits_width"`
}

func (s *Server) handleTextMeasure(args json.RawMessage) (interface{}, error) {
	var a textMeasureArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	cfg := s.svc.Config()
	if a.Width <= 0 {
		a.Width = cfg.MinWidth
	}
	spacing := cfg.Spacing
	if a.Spacing != nil {
		spacing = *a.Spacing
	}

	lay := s.svc.Measure(a.Text, a.Font, a.FontSize, a.Width, spacing)
	out := &textMeasureResult{
		Font:        lay.Font,
		FontSize:    lay.FontSize,
		MaxWidth:    lay.Paragraph.MaxWidth,
		TotalHeight: lay.Paragraph.TotalHeight,
		Lines:       lay.Paragraph.Lines,
		FitsWidth:   lay.Paragraph.MaxWidth <= a.Width-2*render.Margin,
	}
	if lay.Degraded != nil {
		out.Degraded = lay.Degraded.Error()
	}
	return out, nil
}

type textWrapArgs struct {
	Text         string `json:"text"`
	MaxChars     int    `json:"max_chars"`
	KeepNewlines *bool  `json:"keep_newlines"`
}

type textWrapResult struct {
	Text  string   `json:"text"`
	Lines []string `json:"lines"`
}

func (s *Server) handleTextWrap(args json.RawMessage) (interface{}, error) {
	var a textWrapArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.MaxChars <= 0 {
		return nil, fmt.Errorf("max_chars must be positive, got %d", a.MaxChars)
	}
	keep := true
	if a.KeepNewlines != nil {
		keep = *a.KeepNewlines
	}

	wrapped := layout.Wrap(a.Text, a.MaxChars, keep)
	return &textWrapResult{
		Text:  wrapped,
		Lines: layout.SplitLines(wrapped),
	}, nil
}

type fontCandidatesArgs struct {
	Font string `json:"font"`
}

type fontCandidatesResult struct {
	Candidates []string `json:"candidates"`
	Count      int      `json:"count"`
}

func (s *Server) handleFontCandidates(args json.RawMessage) (interface{}, error) {
	var a fontCandidatesArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Font == "" {
		a.Font = s.svc.Config().FontName
	}

	candidates := s.svc.Compositor().Candidates(a.Font)
	return &fontCandidatesResult{
		Candidates: candidates,
		Count:      len(candidates),
	}, nil
}

// === Background and Verification Handlers ===

type imageDimensionsArgs struct {
	Path     string `json:"path"`
	MinWidth *int   `json:"min_width"`
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageDimensionsArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	cfg := s.svc.Config()
	if a.Path == "" {
		a.Path = cfg.Background
	}
	minWidth := cfg.MinWidth
	if a.MinWidth != nil {
		minWidth = *a.MinWidth
	}
	return imaging.InspectBackground(a.Path, minWidth)
}

type imageVerifyTextArgs struct {
	Path     string `json:"path"`
	Expected string `json:"expected"`
	Language string `json:"language"`
	X1       int    `json:"x1"`
	Y1       int    `json:"y1"`
	X2       int    `json:"x2"`
	Y2       int    `json:"y2"`
}

func (s *Server) handleImageVerifyText(args json.RawMessage) (interface{}, error) {
	var a imageVerifyTextArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	region := image.Rect(a.X1, a.Y1, a.X2, a.Y2)
	return ocr.Verify(a.Path, layout.Normalize(a.Expected), a.Language, region)
}
