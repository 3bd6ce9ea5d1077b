// Package server implements the MCP (Model Context Protocol) server for text
// card rendering.
//
// This package provides a JSON-RPC 2.0 server that exposes the render engine
// through the MCP protocol, so an MCP client can turn text into an outlined,
// size-fitted image on a background of its choosing.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Rendering:
//   - text_render: Fit, outline and draw text onto a background and save it
//
// Layout Planning:
//   - text_measure: Pick a font and size and report line metrics
//   - text_wrap: Break text into fixed-width lines
//   - font_candidates: List usable fonts in priority order
//
// Backgrounds and Verification:
//   - image_dimensions: Inspect a background and its canvas size
//   - image_verify_text: OCR an image and score the expected text
//
// # Concurrency
//
// Each tools/call runs on its own goroutine. Responses are written whole
// under a mutex and may arrive out of order; clients match them by ID.
// Renders share no state beyond read-only configuration.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, e.g. "background image not found: /path"
//
// Font problems never fail a render; they are reported in the "degraded"
// field of the text_render result.
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
