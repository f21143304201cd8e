package gptfunc

import (
	"fmt"
	"log/slog"
)

// LibraryOption configures a Library at construction.
type LibraryOption func(*Library)

// WithConverters replaces the library's converter registry. The registry must
// already be seeded (NewConverterRegistry does that).
func WithConverters(reg *ConverterRegistry) LibraryOption {
	return func(l *Library) {
		if reg != nil {
			l.converters = reg
		}
	}
}

// WithLogger sets the logger used for registration and conversion tracing.
func WithLogger(logger *slog.Logger) LibraryOption {
	return func(l *Library) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithExpressionEval enables rewriting of bare arithmetic argument values
// ("x": 2+2) into their evaluated result during parsing, using the default
// evaluator.
func WithExpressionEval() LibraryOption {
	return WithExpressionEvaluator(EvalExpression)
}

// WithExpressionEvaluator enables expression rewriting with a caller-supplied
// evaluator.
func WithExpressionEvaluator(fn ExpressionEvaluator) LibraryOption {
	return func(l *Library) {
		l.evaluator = fn
	}
}

// Library collects registered commands, exposes their aggregate schema, and
// routes incoming calls by name. Each Library owns its command mapping and its
// converter registry; instances never share state.
//
// Register all commands and converters before dispatching: the command mapping
// is treated as read-only by the dispatch paths and is not locked.
type Library struct {
	converters *ConverterRegistry
	logger     *slog.Logger
	commands   map[string]*Command
	order      []string
	evaluator  ExpressionEvaluator
}

// NewLibrary returns an empty Library with a default-seeded converter
// registry.
func NewLibrary(opts ...LibraryOption) *Library {
	l := &Library{
		converters: NewConverterRegistry(),
		logger:     slog.Default(),
		commands:   make(map[string]*Command),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Converters returns the library's converter registry, for custom type
// registration.
func (l *Library) Converters() *ConverterRegistry { return l.converters }

// Register builds a command descriptor around handler and adds it under name.
// handler is either a Handler (synchronous) or a ContextHandler
// (asynchronous). Re-registering a name replaces the earlier command in place,
// keeping its registration-order position.
func (l *Library) Register(name, description string, handler any, opts ...CommandOption) (*Command, error) {
	cmd, err := newCommand(l.converters, l.logger, name, description, handler, opts...)
	if err != nil {
		return nil, err
	}
	if _, exists := l.commands[name]; !exists {
		l.order = append(l.order, name)
	}
	l.commands[name] = cmd
	return cmd, nil
}

// MustRegister is Register that panics on error. Registration failures are
// programmer errors discoverable at startup.
func (l *Library) MustRegister(name, description string, handler any, opts ...CommandOption) *Command {
	cmd, err := l.Register(name, description, handler, opts...)
	if err != nil {
		panic(fmt.Sprintf("gptfunc: register %q: %v", name, err))
	}
	return cmd
}

// Get returns the command registered under name.
func (l *Library) Get(name string) (*Command, bool) {
	cmd, ok := l.commands[name]
	return cmd, ok
}

// SetEnabled flips a command's enabled flag, reporting whether the name was
// known.
func (l *Library) SetEnabled(name string, enabled bool) bool {
	cmd, ok := l.commands[name]
	if ok {
		cmd.SetEnabled(enabled)
	}
	return ok
}

// Schema returns the schema documents of all enabled commands with a
// parameters object, in registration order.
func (l *Library) Schema() []FunctionSchema {
	var docs []FunctionSchema
	for _, name := range l.order {
		cmd := l.commands[name]
		if cmd.enabled && cmd.schema.Parameters != nil {
			docs = append(docs, cmd.schema)
		}
	}
	return docs
}

// ToolSchema returns Schema's documents wrapped in the {type: "function"}
// tool envelope.
func (l *Library) ToolSchema() []ToolSchema {
	docs := l.Schema()
	tools := make([]ToolSchema, len(docs))
	for i, doc := range docs {
		tools[i] = ToolSchema{Type: "function", Function: doc}
	}
	return tools
}

// ForceWordCheck returns the tool-envelope schema of the first command whose
// force words match text, or nil. Commands are checked in registration order,
// so when phrases overlap the earliest-registered command wins; that tie-break
// is deliberate.
func (l *Library) ForceWordCheck(text string) []ToolSchema {
	for _, name := range l.order {
		cmd := l.commands[name]
		if cmd.CheckForce(text) {
			return []ToolSchema{{Type: "function", Function: cmd.schema}}
		}
	}
	return nil
}
