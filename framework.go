package gptfunc

import "context"

// FrameworkCommand is the collaborator surface for commands owned by an
// outer framework (a bot command tree, an RPC router). The library derives
// the schema from CommandParams and delegates invocation back through
// Invoke with converted arguments.
type FrameworkCommand interface {
	CommandName() string
	CommandDescription() string
	CommandParams() []ParameterSpec
	Invoke(ctx context.Context, args map[string]any) (any, error)
}

// RegisterFramework registers fc as a context-aware command. Arguments are
// converted through the command's converters before Invoke sees them;
// zero-argument calls pass a nil map.
func (l *Library) RegisterFramework(fc FrameworkCommand, opts ...CommandOption) (*Command, error) {
	var cmd *Command
	handler := ContextHandler(func(ctx context.Context, args map[string]any) (any, error) {
		if len(args) == 0 {
			return fc.Invoke(ctx, nil)
		}
		converted, err := cmd.ConvertArgs(args)
		if err != nil {
			return nil, err
		}
		return fc.Invoke(ctx, converted)
	})
	opts = append([]CommandOption{WithParams(fc.CommandParams()...)}, opts...)
	registered, err := l.Register(fc.CommandName(), fc.CommandDescription(), handler, opts...)
	if err != nil {
		return nil, err
	}
	cmd = registered
	return cmd, nil
}
