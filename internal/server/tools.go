package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Rendering
		{
			Name:        "text_render",
			Description: "Render text onto a background image with an automatically fitted font size and outline, and save the result. Literal \\n sequences and real newlines both break lines. Short text (50 characters or less) is supersampled for smoother edges.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Text to render",
					},
					"background": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the background image. Defaults to the configured background",
					},
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the output file (.png, .jpg or .bmp). Defaults to the configured output path",
					},
					"font": map[string]interface{}{
						"type":        "string",
						"description": "Custom font file name inside the asset directory. Falls back to system fonts",
					},
					"font_size": map[string]interface{}{
						"type":        "integer",
						"description": "Base font size in pixels before length scaling. Default 60",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Optional exact output width. Requires height",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Optional exact output height. Requires width",
					},
					"min_width": map[string]interface{}{
						"type":        "integer",
						"description": "Backgrounds narrower than this are upscaled first. Default 800",
					},
					"high_quality": map[string]interface{}{
						"type":        "boolean",
						"description": "Allow the supersampled path for short text. Default true",
						"default":     true,
					},
					"resample": map[string]interface{}{
						"type":        "string",
						"description": "Resize algorithm for width/height (lanczos, bicubic, bilinear, nearest, ...). Default lanczos",
					},
					"spacing": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels between lines. Default 4",
					},
					"foreground": map[string]interface{}{
						"type":        "string",
						"description": "Text color as hex (#RRGGBB). Default #FFFFFF",
					},
					"outline": map[string]interface{}{
						"type":        "string",
						"description": "Outline color as hex (#RRGGBB). Default #000000",
					},
					"guides": map[string]interface{}{
						"type":        "string",
						"description": "Optional hex color; outlines every drawn line box for layout debugging",
					},
					"preview": map[string]interface{}{
						"type":        "boolean",
						"description": "Include a base64 PNG preview of the result",
					},
					"preview_width": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum preview width in pixels. Default 400",
					},
					"verify": map[string]interface{}{
						"type":        "boolean",
						"description": "Read the rendered text back with OCR and report a legibility score",
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code for verify. Default eng",
					},
				},
				"required": []string{"text"},
			},
		},

		// Layout Planning
		{
			Name:        "text_measure",
			Description: "Choose a font and size for text the way text_render would and report per-line metrics, without drawing anything.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Text to measure",
					},
					"font": map[string]interface{}{
						"type":        "string",
						"description": "Custom font file name. Defaults to the configured font",
					},
					"font_size": map[string]interface{}{
						"type":        "integer",
						"description": "Base font size in pixels. Default 60",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Canvas width the text must fit. Default 800",
					},
					"spacing": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels between lines. Default 4",
					},
				},
				"required": []string{"text"},
			},
		},
		{
			Name:        "text_wrap",
			Description: "Break text into lines of at most max_chars characters. Breaks may fall inside words, which suits CJK text.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Text to wrap",
					},
					"max_chars": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum characters per line",
					},
					"keep_newlines": map[string]interface{}{
						"type":        "boolean",
						"description": "Keep existing line breaks (real or literal \\n). When false they become spaces. Default true",
						"default":     true,
					},
				},
				"required": []string{"text", "max_chars"},
			},
		},
		{
			Name:        "font_candidates",
			Description: "List the font files that exist on this system in the order text_render tries them. The custom font leads when present.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"font": map[string]interface{}{
						"type":        "string",
						"description": "Custom font file name. Defaults to the configured font",
					},
				},
			},
		},

		// Backgrounds and Verification
		{
			Name:        "image_dimensions",
			Description: "Get the width, height and format of a background image and the canvas size a render would start from.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file. Defaults to the configured background",
					},
					"min_width": map[string]interface{}{
						"type":        "integer",
						"description": "Minimum width used to compute the canvas size. Default 800",
					},
				},
			},
		},
		{
			Name:        "image_verify_text",
			Description: "Run OCR over an image and score how many words of the expected text were recognized.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"expected": map[string]interface{}{
						"type":        "string",
						"description": "Text that should appear in the image",
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code. Default eng",
					},
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Optional region left edge",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Optional region top edge",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Optional region right edge (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Optional region bottom edge (exclusive)",
					},
				},
				"required": []string{"path", "expected"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
