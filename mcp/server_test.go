package mcp

import (
	"encoding/json"
	"strings"
	"testing"

	_ "github.com/oxhq/quasigen/lang/golang"
)

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

func newTestServer(t *testing.T) *StdioServer {
	t.Helper()
	server, err := NewStdioServer(Config{})
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return server
}

func TestHandleRenderTemplateProducesOutput(t *testing.T) {
	server := newTestServer(t)

	params := mustMarshal(map[string]any{
		"language":  "go",
		"source":    "func $name() {}",
		"variables": map[string]string{"name": "Greet"},
	})

	result, err := server.handleRenderTemplate(params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("expected a map result, got %T", result)
	}
	output, _ := out["output"].(string)
	if !strings.Contains(output, "func Greet()") {
		t.Fatalf("expected rendered output to contain func Greet(), got %q", output)
	}
}

func TestHandleRenderTemplateRejectsUnknownLanguage(t *testing.T) {
	server := newTestServer(t)

	params := mustMarshal(map[string]any{
		"language": "cobol",
		"source":   "anything",
	})

	_, err := server.handleRenderTemplate(params)
	if err == nil {
		t.Fatal("expected an error for an unregistered language adapter")
	}
	mcpErr, ok := err.(*MCPError)
	if !ok {
		t.Fatalf("expected an *MCPError, got %T", err)
	}
	if mcpErr.Code != LanguageNotFound {
		t.Fatalf("expected code %d, got %d", LanguageNotFound, mcpErr.Code)
	}
}

func TestHandleRenderTemplateRejectsParseError(t *testing.T) {
	server := newTestServer(t)

	params := mustMarshal(map[string]any{
		"language": "go",
		"source":   "func $(unterminated",
	})

	_, err := server.handleRenderTemplate(params)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	mcpErr, ok := err.(*MCPError)
	if !ok {
		t.Fatalf("expected an *MCPError, got %T", err)
	}
	if mcpErr.Code != TemplateParseErr {
		t.Fatalf("expected code %d, got %d", TemplateParseErr, mcpErr.Code)
	}
}

func TestHandleCallToolDispatchesRegisteredTool(t *testing.T) {
	server := newTestServer(t)

	req := Request{
		JSONRPC: JSONRPCVersion,
		ID:      1,
		Method:  "tools/call",
		Params: mustMarshal(map[string]any{
			"name": "render_template",
			"arguments": map[string]any{
				"language": "go",
				"source":   "package main",
			},
		}),
	}

	resp := server.handleCallTool(req)
	if resp.Error != nil {
		t.Fatalf("unexpected error response: %+v", resp.Error)
	}
	if resp.Result == nil {
		t.Fatal("expected a non-nil result")
	}
}

func TestHandleCallToolUnknownToolReturnsMethodNotFound(t *testing.T) {
	server := newTestServer(t)

	req := Request{
		JSONRPC: JSONRPCVersion,
		ID:      1,
		Method:  "tools/call",
		Params: mustMarshal(map[string]any{
			"name":      "not_a_real_tool",
			"arguments": map[string]any{},
		}),
	}

	resp := server.handleCallTool(req)
	if resp.Error == nil {
		t.Fatal("expected an error response for an unknown tool")
	}
	if resp.Error.Code != MethodNotFound {
		t.Fatalf("expected code %d, got %d", MethodNotFound, resp.Error.Code)
	}
}

func TestHandleRequestDispatchesKnownMethods(t *testing.T) {
	server := newTestServer(t)

	resp := server.handleRequest(Request{JSONRPC: JSONRPCVersion, ID: 1, Method: "tools/list"})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	payload, ok := resp.Result.(map[string]any)
	if !ok {
		t.Fatalf("expected a map result, got %T", resp.Result)
	}
	tools, ok := payload["tools"].([]ToolDefinition)
	if !ok || len(tools) == 0 {
		t.Fatalf("expected at least one tool definition, got %v", payload["tools"])
	}
}

func TestHandleRequestUnknownMethodReturnsError(t *testing.T) {
	server := newTestServer(t)

	resp := server.handleRequest(Request{JSONRPC: JSONRPCVersion, ID: 1, Method: "bogus/method"})
	if resp.Error == nil {
		t.Fatal("expected an error for an unknown method")
	}
	if resp.Error.Code != MethodNotFound {
		t.Fatalf("expected code %d, got %d", MethodNotFound, resp.Error.Code)
	}
}
