package simulate

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// JSON-RPC 2.0 error codes.
const (
	ErrCodeParseError     = -32700
	ErrCodeInvalidRequest = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternal       = -32603
	ErrCodeToolNotFound   = -32001
)

const protocolVersion = "2025-06-18"

// MCPRequest is an incoming JSON-RPC request.
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse is a JSON-RPC response.
type MCPResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *MCPError `json:"error,omitempty"`
}

// MCPError is a JSON-RPC error object.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ServerInfo identifies the server in the initialize handshake.
type ServerInfo struct {
	Name    string
	Version string
}

// Server exposes a Simulator's search and stats as JSON-RPC tools.
type Server struct {
	sim   *Simulator
	info  ServerInfo
	tools []mcp.Tool
}

// NewServer wraps sim for JSON-RPC serving.
func NewServer(sim *Simulator, info ServerInfo) *Server {
	if info.Name == "" {
		info.Name = "evalcorpus-simulator"
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	return &Server{sim: sim, info: info, tools: toolDefs()}
}

func toolDefs() []mcp.Tool {
	return []mcp.Tool{
		{
			Name:        "corpus_search",
			Description: "Replay one dataset query against its answer strings and report the best matching relevance tier",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"record": map[string]any{"type": "integer", "description": "Zero-based record index"},
				},
				"required": []string{"record"},
			},
		},
		{
			Name:        "corpus_stats",
			Description: "Replay every dataset query and tally the relevance tiers reached",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
	}
}

// HandleRequest processes one JSON-RPC request.
func (s *Server) HandleRequest(ctx context.Context, req MCPRequest) MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req.ID)
	case "tools/list":
		return s.handleToolsList(req.ID)
	case "tools/call":
		return s.handleToolsCall(req.ID, req.Params)
	default:
		return MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    ErrCodeMethodNotFound,
				Message: fmt.Sprintf("method %s not found", req.Method),
			},
		}
	}
}

func (s *Server) handleInitialize(id any) MCPResponse {
	return MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result: map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
			"serverInfo": map[string]any{
				"name":    s.info.Name,
				"version": s.info.Version,
			},
		},
	}
}

func (s *Server) handleToolsList(id any) MCPResponse {
	tools := make([]map[string]any, 0, len(s.tools))
	for _, tool := range s.tools {
		tools = append(tools, map[string]any{
			"name":        tool.Name,
			"description": tool.Description,
			"inputSchema": tool.InputSchema,
		})
	}
	return MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  map[string]any{"tools": tools},
	}
}

type toolsCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

func (s *Server) handleToolsCall(id any, params json.RawMessage) MCPResponse {
	var call toolsCallParams
	if err := json.Unmarshal(params, &call); err != nil {
		return MCPResponse{
			JSONRPC: "2.0",
			ID:      id,
			Error:   &MCPError{Code: ErrCodeInvalidParams, Message: err.Error()},
		}
	}

	var (
		result any
		err    error
	)
	switch call.Name {
	case "corpus_search":
		result, err = s.callSearch(call.Arguments)
	case "corpus_stats":
		result, err = s.sim.Sweep()
	default:
		return MCPResponse{
			JSONRPC: "2.0",
			ID:      id,
			Error: &MCPError{
				Code:    ErrCodeToolNotFound,
				Message: fmt.Sprintf("tool %s not found", call.Name),
			},
		}
	}
	if err != nil {
		return MCPResponse{
			JSONRPC: "2.0",
			ID:      id,
			Error:   &MCPError{Code: ErrCodeInternal, Message: err.Error()},
		}
	}

	return MCPResponse{JSONRPC: "2.0", ID: id, Result: result}
}

func (s *Server) callSearch(args map[string]any) (Result, error) {
	record, ok := args["record"].(float64)
	if !ok {
		return Result{}, fmt.Errorf("corpus_search: missing integer argument %q", "record")
	}
	return s.sim.Replay(int(record))
}

// ServeStdio answers newline-delimited JSON-RPC requests from r on w.
// Blocks until r is closed or the context is cancelled.
func (s *Server) ServeStdio(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var req MCPRequest
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			resp := MCPResponse{
				JSONRPC: "2.0",
				Error:   &MCPError{Code: ErrCodeParseError, Message: err.Error()},
			}
			if err := encoder.Encode(resp); err != nil {
				return fmt.Errorf("encode error response: %w", err)
			}
			continue
		}

		if err := encoder.Encode(s.HandleRequest(ctx, req)); err != nil {
			return fmt.Errorf("encode response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read requests: %w", err)
	}
	return nil
}

// Handler returns an http.Handler answering POSTed JSON-RPC bodies.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var mcpReq MCPRequest
		if err := json.NewDecoder(req.Body).Decode(&mcpReq); err != nil {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(MCPResponse{
				JSONRPC: "2.0",
				Error:   &MCPError{Code: ErrCodeParseError, Message: err.Error()},
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(s.HandleRequest(req.Context(), mcpReq))
	})
}
