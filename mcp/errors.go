package mcp

import "fmt"

// Error codes. The JSON-RPC 2.0 standard codes come first; this domain's
// own codes live in the 10xxx range, mirroring the teacher's layout.
const (
	ParseError     = -32700
	InvalidRequest = -32600
	MethodNotFound = -32601
	InvalidParams  = -32602
	InternalError  = -32603

	LanguageNotFound = 10001 // no adapter registered for the requested language
	TemplateParseErr = 10002 // source failed to parse
	RenderFailed     = 10003 // evaluation or formatting failed
)

// MCPError is a structured error carrying a JSON-RPC error code.
type MCPError struct {
	Code    int
	Message string
	Data    any
}

func (e *MCPError) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("%s (%d): %v", e.Message, e.Code, e.Data)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Code)
}

// WrapError wraps err into an MCPError carrying code and message.
func WrapError(code int, message string, err error) *MCPError {
	if err == nil {
		return &MCPError{Code: code, Message: message}
	}
	return &MCPError{Code: code, Message: message, Data: err.Error()}
}
