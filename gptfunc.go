package gptfunc

import "context"

// RoleTool is the role tag of a tool-result message.
const RoleTool = "tool"

// FunctionCall is the wire shape of a single function/tool call as returned by
// a chat-completion API: a command name plus arguments that are either a raw
// JSON string or an already-decoded mapping.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments any    `json:"arguments"`
}

// ToolCall mirrors the tool-call object of the OpenAI-style tool convention.
// ID may be empty; transports that omit it still dispatch, the result envelope
// just carries no tool_call_id.
type ToolCall struct {
	ID       string           `json:"id,omitempty"`
	Type     string           `json:"type,omitempty"`
	Function ToolCallFunction `json:"function"`
}

// ToolCallFunction is the name/argument-string pair embedded in a ToolCall.
type ToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolMessage is the role-tagged envelope for a dispatched tool result, ready
// to be appended to a chat transcript.
type ToolMessage struct {
	Role       string `json:"role"`
	Name       string `json:"name"`
	Content    any    `json:"content"`
	ToolCallID string `json:"tool_call_id,omitempty"`
}

// Constraints carries per-parameter schema keywords (minimum, maxLength,
// pattern, enum, minItems, ...). Converters copy the keys they know verbatim
// into the generated fragment and ignore the rest.
type Constraints map[string]any

// ParameterSpec describes one handler parameter: its name, declared type name
// (resolved against the ConverterRegistry), description, whether the handler
// supplies a default for it, and any constraint metadata. Immutable once a
// command is built from it.
type ParameterSpec struct {
	Name        string
	Type        string
	Description string
	HasDefault  bool
	Constraints Constraints
}

// ExecKind tells the dispatcher how a command's handler is invoked.
type ExecKind int

const (
	// ExecSync marks a plain handler, invoked directly by Call.
	ExecSync ExecKind = iota
	// ExecAsync marks a context-aware handler, awaited by CallContext.
	ExecAsync
)

func (k ExecKind) String() string {
	switch k {
	case ExecSync:
		return "sync"
	case ExecAsync:
		return "async"
	}
	return "unknown"
}

// Handler is a synchronous command handler. Arguments arrive already validated
// and converted; a zero-parameter command receives a nil map.
type Handler func(args map[string]any) (any, error)

// ContextHandler is an asynchronous command handler, invoked only through the
// context-aware dispatch entrypoints. Cancellation simply unwinds through it;
// this package imposes no timeout of its own.
type ContextHandler func(ctx context.Context, args map[string]any) (any, error)

// FunctionSchema is the full schema document advertised for one command.
type FunctionSchema struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Parameters  *ParameterObject `json:"parameters"`
	Strict      bool             `json:"strict,omitempty"`
}

// ParameterObject is the parameters section of a FunctionSchema: always an
// object schema with per-parameter property fragments.
type ParameterObject struct {
	Type                 string                    `json:"type"`
	Properties           map[string]map[string]any `json:"properties"`
	Required             []string                  `json:"required"`
	AdditionalProperties *bool                     `json:"additionalProperties,omitempty"`
}

// ToolSchema wraps a FunctionSchema for transports that require the
// {type: "function", function: ...} envelope.
type ToolSchema struct {
	Type     string         `json:"type"`
	Function FunctionSchema `json:"function"`
}
