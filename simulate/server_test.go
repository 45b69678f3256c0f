package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(newTestSimulator(t), ServerInfo{Name: "test-sim", Version: "0.0.1"})
}

func rawParams(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}
	return b
}

func TestHandleRequest_Initialize(t *testing.T) {
	srv := newTestServer(t)

	resp := srv.HandleRequest(context.Background(), MCPRequest{
		JSONRPC: "2.0", ID: 1, Method: "initialize",
	})

	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}
	result, ok := resp.Result.(map[string]any)
	if !ok {
		t.Fatalf("result type %T", resp.Result)
	}
	info, ok := result["serverInfo"].(map[string]any)
	if !ok || info["name"] != "test-sim" {
		t.Errorf("serverInfo = %v", result["serverInfo"])
	}
}

func TestHandleRequest_ToolsList(t *testing.T) {
	srv := newTestServer(t)

	resp := srv.HandleRequest(context.Background(), MCPRequest{
		JSONRPC: "2.0", ID: 2, Method: "tools/list",
	})

	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}
	result := resp.Result.(map[string]any)
	tools := result["tools"].([]map[string]any)
	if len(tools) != 2 {
		t.Fatalf("tools = %d, want 2", len(tools))
	}
	names := []string{tools[0]["name"].(string), tools[1]["name"].(string)}
	if names[0] != "corpus_search" || names[1] != "corpus_stats" {
		t.Errorf("tool names = %v", names)
	}
}

func TestHandleRequest_CallSearch(t *testing.T) {
	srv := newTestServer(t)

	resp := srv.HandleRequest(context.Background(), MCPRequest{
		JSONRPC: "2.0", ID: 3, Method: "tools/call",
		Params: rawParams(t, toolsCallParams{
			Name:      "corpus_search",
			Arguments: map[string]any{"record": float64(0)},
		}),
	})

	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}
	res, ok := resp.Result.(Result)
	if !ok {
		t.Fatalf("result type %T", resp.Result)
	}
	if res.Tier != TierPerfect {
		t.Errorf("tier = %s, want perfect", res.Tier)
	}
}

func TestHandleRequest_CallSearchMissingArg(t *testing.T) {
	srv := newTestServer(t)

	resp := srv.HandleRequest(context.Background(), MCPRequest{
		JSONRPC: "2.0", ID: 4, Method: "tools/call",
		Params: rawParams(t, toolsCallParams{Name: "corpus_search"}),
	})

	if resp.Error == nil || resp.Error.Code != ErrCodeInternal {
		t.Fatalf("error = %v, want internal error", resp.Error)
	}
}

func TestHandleRequest_CallStats(t *testing.T) {
	srv := newTestServer(t)

	resp := srv.HandleRequest(context.Background(), MCPRequest{
		JSONRPC: "2.0", ID: 5, Method: "tools/call",
		Params: rawParams(t, toolsCallParams{Name: "corpus_stats"}),
	})

	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}
	stats, ok := resp.Result.(Stats)
	if !ok {
		t.Fatalf("result type %T", resp.Result)
	}
	if stats.Records != 4 {
		t.Errorf("records = %d, want 4", stats.Records)
	}
}

func TestHandleRequest_UnknownMethod(t *testing.T) {
	srv := newTestServer(t)

	resp := srv.HandleRequest(context.Background(), MCPRequest{
		JSONRPC: "2.0", ID: 6, Method: "resources/list",
	})

	if resp.Error == nil || resp.Error.Code != ErrCodeMethodNotFound {
		t.Fatalf("error = %v, want method not found", resp.Error)
	}
}

func TestHandleRequest_UnknownTool(t *testing.T) {
	srv := newTestServer(t)

	resp := srv.HandleRequest(context.Background(), MCPRequest{
		JSONRPC: "2.0", ID: 7, Method: "tools/call",
		Params: rawParams(t, toolsCallParams{Name: "corpus_delete"}),
	})

	if resp.Error == nil || resp.Error.Code != ErrCodeToolNotFound {
		t.Fatalf("error = %v, want tool not found", resp.Error)
	}
}

func TestServeStdio_RoundTrip(t *testing.T) {
	srv := newTestServer(t)

	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`not json`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
	}, "\n")
	var out bytes.Buffer

	if err := srv.ServeStdio(context.Background(), strings.NewReader(in), &out); err != nil {
		t.Fatalf("ServeStdio() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("responses = %d, want 3", len(lines))
	}

	var second MCPResponse
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("unmarshal second response: %v", err)
	}
	if second.Error == nil || second.Error.Code != ErrCodeParseError {
		t.Errorf("second response error = %v, want parse error", second.Error)
	}
}

func TestHandler_HTTP(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	body := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"corpus_search","arguments":{"record":1}}}`
	resp, err := http.Post(ts.URL, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	var mcpResp MCPResponse
	if err := json.NewDecoder(resp.Body).Decode(&mcpResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if mcpResp.Error != nil {
		t.Fatalf("unexpected error: %v", mcpResp.Error)
	}

	result, ok := mcpResp.Result.(map[string]any)
	if !ok {
		t.Fatalf("result type %T", mcpResp.Result)
	}
	if result["tier"] != "high" {
		t.Errorf("tier = %v, want high", result["tier"])
	}

	get, err := http.Get(ts.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	get.Body.Close()
	if get.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", get.StatusCode)
	}
}
