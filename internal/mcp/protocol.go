// Package mcp implements the wire protocol between the tutor client and the
// worker process: JSON-RPC 2.0 messages framed one per line over the
// worker's stdin/stdout, following the MCP initialize/tools/resources
// conventions.
package mcp

import "encoding/json"

// JSONRPCVersion is the fixed jsonrpc field value on every message.
const JSONRPCVersion = "2.0"

// ProtocolVersion identifies the handshake revision spoken by both ends.
const ProtocolVersion = "2024-11-05"

// JSON-RPC error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Request is an outgoing call that expects a response.
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// Notification is a one-way message with no id and no response.
type Notification struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// Response answers a Request, carrying either a result or an error.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *int64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is the JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *Error) Error() string { return e.Message }

// Message is the decoded form of any inbound frame. A nil ID with a Method
// means notification; a non-nil ID with a Method means request; a non-nil
// ID without a Method means response.
type Message struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *int64          `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// IsNotification reports whether the message is a one-way notification.
func (m *Message) IsNotification() bool { return m.ID == nil && m.Method != "" }

// ToolDescriptor advertises one callable tool in tools/list.
type ToolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// TextContent is a single text block inside a tool result.
type TextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolResult is the result shape of tools/call: the tool's JSON payload is
// serialized into the first text content block.
type ToolResult struct {
	Content []TextContent `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// NewToolResult wraps a serialized payload in the standard content envelope.
func NewToolResult(payload string) ToolResult {
	return ToolResult{Content: []TextContent{{Type: "text", Text: payload}}}
}

// ResourceDescriptor advertises one readable resource in resources/list.
type ResourceDescriptor struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ResourceContents is one entry of a resources/read result.
type ResourceContents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text"`
}

// ReadResourceResult is the result shape of resources/read.
type ReadResourceResult struct {
	Contents []ResourceContents `json:"contents"`
}

// InitializeResult is the worker's answer to the initialize request.
type InitializeResult struct {
	ProtocolVersion string         `json:"protocolVersion"`
	ServerInfo      ServerInfo     `json:"serverInfo"`
	Capabilities    map[string]any `json:"capabilities"`
}

// ServerInfo names the worker implementation.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}
