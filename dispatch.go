package gptfunc

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Call parses a function call and invokes its synchronous handler, returning
// the handler's result. Parser and conversion failures never escape as
// errors: they come back as plain result strings so the model-facing
// conversation can continue. A handler's own error is returned as-is.
//
// Asynchronous commands must go through CallContext; dispatching one here is a
// hard error.
func (l *Library) Call(call FunctionCall) (any, error) {
	name, args, err := l.ParseCall(call)
	if err != nil {
		return l.fallbackResult(err), nil
	}
	cmd, ok := l.commands[name]
	if !ok {
		// ParseCall succeeding means the name was known; the mapping is
		// read-only during dispatch, so this is a programming error.
		return nil, fmt.Errorf("command %q missing after successful parse", name)
	}
	if cmd.kind != ExecSync {
		return nil, &InvalidFuncArgError{
			Message: fmt.Sprintf("command %q is asynchronous, dispatch it with CallContext", name),
		}
	}
	return l.invokeSync(cmd, args)
}

// CallContext parses a function call and invokes its handler, awaiting
// asynchronous commands. The error policy matches Call.
func (l *Library) CallContext(ctx context.Context, call FunctionCall) (any, error) {
	name, args, err := l.ParseCall(call)
	if err != nil {
		return l.fallbackResult(err), nil
	}
	cmd, ok := l.commands[name]
	if !ok {
		return nil, fmt.Errorf("command %q missing after successful parse", name)
	}
	switch cmd.kind {
	case ExecAsync:
		if len(args) == 0 {
			args = nil
		}
		out, err := cmd.ctxHandler(ctx, args)
		if err != nil && errors.Is(err, ErrConversion) {
			return err.Error(), nil
		}
		return out, err
	case ExecSync:
		return l.invokeSync(cmd, args)
	}
	return nil, fmt.Errorf("command %q has unknown execution kind %v", name, cmd.kind)
}

func (l *Library) invokeSync(cmd *Command, args map[string]any) (any, error) {
	converted, err := cmd.ConvertArgs(args)
	if err != nil {
		return err.Error(), nil
	}
	if len(converted) == 0 {
		return cmd.handler(nil)
	}
	return cmd.handler(converted)
}

// CallByTool dispatches a transport tool-call object through Call and wraps
// the output in the role-tagged tool-result envelope. tool_call_id is set
// only when the source object carries an id.
func (l *Library) CallByTool(tc ToolCall) (ToolMessage, error) {
	out, err := l.Call(FunctionCall{Name: tc.Function.Name, Arguments: tc.Function.Arguments})
	if err != nil {
		return ToolMessage{}, err
	}
	return toolMessage(tc, out), nil
}

// CallByToolContext is CallByTool through the context-aware entrypoint.
func (l *Library) CallByToolContext(ctx context.Context, tc ToolCall) (ToolMessage, error) {
	out, err := l.CallContext(ctx, FunctionCall{Name: tc.Function.Name, Arguments: tc.Function.Arguments})
	if err != nil {
		return ToolMessage{}, err
	}
	return toolMessage(tc, out), nil
}

func toolMessage(tc ToolCall, content any) ToolMessage {
	msg := ToolMessage{Role: RoleTool, Name: tc.Function.Name, Content: content}
	if tc.ID != "" {
		msg.ToolCallID = tc.ID
	}
	return msg
}

// fallbackResult turns a parse failure into a model-visible result string.
func (l *Library) fallbackResult(err error) string {
	var notFound *FunctionNotFoundError
	if errors.As(err, &notFound) {
		return defaultCallback(notFound.Name, notFound.Arguments)
	}
	return err.Error()
}

// defaultCallback is the fallback produced for an unknown function name, so
// the conversation always gets something usable back.
func defaultCallback(name string, args any) string {
	argsStr := strings.ReplaceAll(fmt.Sprint(args), `\n`, "\n")
	return fmt.Sprintf("%s is not a valid function.\n```%s```", name, argsStr)
}
