package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/oxhq/quasigen/internal/eval"
	"github.com/oxhq/quasigen/internal/format"
	"github.com/oxhq/quasigen/internal/history"
	"github.com/oxhq/quasigen/internal/parser"
	"github.com/oxhq/quasigen/lang"
)

// ToolHandler handles one tool's arguments and returns its result.
type ToolHandler func(params json.RawMessage) (any, error)

// Config configures the server's optional render-history recording.
type Config struct {
	// HistoryDSN is the sqlite DSN to record renders to. Empty disables
	// history recording entirely.
	HistoryDSN string
	Debug      bool
}

// StdioServer serves JSON-RPC requests over stdin/stdout.
type StdioServer struct {
	config Config

	reader *bufio.Reader
	writer *bufio.Writer

	tools map[string]ToolHandler
	mu    sync.RWMutex

	history *history.Store

	debugLog func(format string, args ...any)
}

// NewStdioServer builds a server communicating over stdin/stdout.
func NewStdioServer(config Config) (*StdioServer, error) {
	s := &StdioServer{
		config: config,
		reader: bufio.NewReader(os.Stdin),
		writer: bufio.NewWriter(os.Stdout),
		tools:  make(map[string]ToolHandler),
	}

	if config.Debug {
		s.debugLog = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
		}
	} else {
		s.debugLog = func(format string, args ...any) {}
	}

	if config.HistoryDSN != "" {
		store, err := history.Open(config.HistoryDSN, config.Debug)
		if err != nil {
			return nil, fmt.Errorf("mcp: open history store: %w", err)
		}
		s.history = store
	}

	s.RegisterTool("render_template", s.handleRenderTemplate)

	return s, nil
}

// Start reads JSON-RPC requests from stdin until EOF, dispatching each to
// its handler and writing a response unless the request was a
// notification (no ID).
func (s *StdioServer) Start() error {
	s.debugLog("MCP server started")

	decoder := json.NewDecoder(s.reader)
	for {
		var req Request
		err := decoder.Decode(&req)
		if err == io.EOF {
			s.debugLog("EOF received, shutting down")
			return nil
		}
		if err != nil {
			if err == io.ErrUnexpectedEOF {
				continue
			}
			s.sendResponse(ErrorResponse(nil, ParseError, fmt.Sprintf("parse error: %v", err)))
			decoder = json.NewDecoder(s.reader)
			continue
		}

		if err := ensureVersion(req.JSONRPC); err != nil {
			s.sendResponse(ErrorResponse(req.ID, InvalidRequest, err.Error()))
			continue
		}

		resp := s.handleRequest(req)
		if req.ID != nil {
			s.sendResponse(resp)
		}
	}
}

func (s *StdioServer) handleRequest(req Request) Response {
	s.debugLog("handling method: %s", req.Method)

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "initialized", "notifications/initialized":
		if req.ID == nil {
			return Response{}
		}
		return SuccessResponse(req.ID, map[string]any{})
	case "ping":
		return SuccessResponse(req.ID, map[string]any{})
	case "tools/list":
		return SuccessResponse(req.ID, map[string]any{"tools": GetToolDefinitions()})
	case "tools/call":
		return s.handleCallTool(req)
	default:
		return ErrorResponse(req.ID, MethodNotFound, fmt.Sprintf("method not found: %s", req.Method))
	}
}

func (s *StdioServer) handleInitialize(req Request) Response {
	return SuccessResponse(req.ID, map[string]any{
		"protocolVersion": "2024-11-05",
		"capabilities": map[string]any{
			"tools": map[string]any{"listChanged": false},
		},
		"serverInfo": map[string]any{
			"name":    "quasigen",
			"version": "0.1.0",
		},
	})
}

func (s *StdioServer) handleCallTool(req Request) Response {
	var params struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return ErrorResponse(req.ID, InvalidParams, "invalid params structure")
	}

	s.mu.RLock()
	handler, exists := s.tools[params.Name]
	s.mu.RUnlock()
	if !exists {
		return ErrorResponse(req.ID, MethodNotFound, fmt.Sprintf("tool not found: %s", params.Name))
	}

	result, err := handler(params.Arguments)
	if err != nil {
		if mcpErr, ok := err.(*MCPError); ok {
			return ErrorResponse(req.ID, mcpErr.Code, mcpErr.Message, mcpErr.Data)
		}
		return ErrorResponse(req.ID, InternalError, err.Error())
	}
	return SuccessResponse(req.ID, result)
}

func (s *StdioServer) sendResponse(resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.debugLog("failed to marshal response: %v", err)
		return
	}
	fmt.Fprintf(s.writer, "%s\n", data)
	s.writer.Flush()
}

// RegisterTool adds a custom tool handler, for embedders that want to
// expose more than render_template.
func (s *StdioServer) RegisterTool(name string, handler ToolHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tools[name] = handler
}

// Close releases the server's resources, including its history store.
func (s *StdioServer) Close() error {
	if s.history != nil {
		return s.history.Close()
	}
	return nil
}

func (s *StdioServer) handleRenderTemplate(raw json.RawMessage) (any, error) {
	var args struct {
		Language   string            `json:"language"`
		Source     string            `json:"source"`
		Variables  map[string]string `json:"variables"`
		Indent     string            `json:"indent"`
		LineEnding string            `json:"line_ending"`
	}
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, WrapError(InvalidParams, "invalid render_template arguments", err)
	}

	adapter, err := lang.Get(args.Language)
	if err != nil {
		return nil, WrapError(LanguageNotFound, fmt.Sprintf("no adapter registered for %q", args.Language), err)
	}

	tmpl, err := parser.Parse(args.Source)
	if err != nil {
		return nil, WrapError(TemplateParseErr, "template parse failed", err)
	}

	cfg := adapter.DefaultConfig()
	if args.Indent != "" {
		cfg.Indent = args.Indent
	}
	if args.LineEnding != "" {
		cfg.LineEnding = args.LineEnding
	}

	start := time.Now()
	stream, set, err := eval.Eval(tmpl, eval.MapEnv(args.Variables), adapter)
	if err != nil {
		return nil, WrapError(RenderFailed, "evaluation failed", err)
	}

	var buf strings.Builder
	if err := format.Render(stream, set, adapter, &cfg, &buf); err != nil {
		return nil, WrapError(RenderFailed, "format failed", err)
	}
	out := buf.String()
	duration := time.Since(start)

	if s.history != nil {
		recErr := s.history.Record(history.RecordInput{
			TemplatePath: "mcp:inline",
			Language:     args.Language,
			Output:       out,
			OutputDigest: history.Digest(out),
			ImportCount:  set.Len(),
			Duration:     duration,
			Config:       history.RenderConfig{Indent: cfg.Indent, LineEnding: cfg.LineEnding},
		})
		if recErr != nil {
			s.debugLog("failed to record render history: %v", recErr)
		}
	}

	return map[string]any{"output": out}, nil
}
