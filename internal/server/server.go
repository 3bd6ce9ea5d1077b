package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/ironsheep/text-card-mcp/internal/config"
	"github.com/ironsheep/text-card-mcp/internal/render"
)

// Version is reported in the initialize handshake. cmd overrides it at
// startup from its ldflags value.
var Version = "0.1.0"

// Server handles MCP protocol communication
type Server struct {
	svc *render.Service
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server configured from the environment.
func New() *Server {
	return NewWithConfig(config.FromEnv())
}

// NewWithConfig creates a server around a render service built from cfg.
func NewWithConfig(cfg config.Config) *Server {
	return NewWithService(render.NewService(cfg))
}

// NewWithService creates a server around an existing render service.
func NewWithService(svc *render.Service) *Server {
	return &Server{svc: svc}
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from r and writes responses to w.
//
// tools/call requests run on their own goroutine so a slow render does not
// hold up other requests; responses may therefore arrive out of order and are
// matched by ID. Serve returns after r is exhausted and every in-flight call
// has answered.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		encoder = json.NewEncoder(w)
	)
	write := func(resp *MCPResponse) {
		if resp == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if err := encoder.Encode(resp); err != nil {
			log.Printf("Failed to encode response: %v", err)
		}
	}

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			write(s.errorResponse(nil, -32700, "Parse error", err.Error()))
			continue
		}

		if req.Method == "tools/call" {
			wg.Add(1)
			go func(req MCPRequest) {
				defer wg.Done()
				write(s.handleRequest(&req))
			}(req)
			continue
		}
		write(s.handleRequest(&req))
	}
	wg.Wait()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "text-card-mcp",
				"version": Version,
			},
		},
	}
}
