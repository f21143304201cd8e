// Package testutil provides test helpers for gptfunc (e.g. MockCommand).
package testutil

import (
	"context"

	"github.com/crosswaveomega/gptfunc"
)

// MockCommand is a configurable FrameworkCommand implementation for tests.
type MockCommand struct {
	NameVal   string
	DescVal   string
	ParamsVal []gptfunc.ParameterSpec
	InvokeFn  func(ctx context.Context, args map[string]any) (any, error)
}

// CommandName returns the command name.
func (m *MockCommand) CommandName() string {
	if m.NameVal != "" {
		return m.NameVal
	}
	return "mock"
}

// CommandDescription returns the command description.
func (m *MockCommand) CommandDescription() string {
	return m.DescVal
}

// CommandParams returns the parameter specs (or none).
func (m *MockCommand) CommandParams() []gptfunc.ParameterSpec {
	return m.ParamsVal
}

// Invoke runs InvokeFn if set, otherwise returns nil.
func (m *MockCommand) Invoke(ctx context.Context, args map[string]any) (any, error) {
	if m.InvokeFn != nil {
		return m.InvokeFn(ctx, args)
	}
	return nil, nil
}

// Ensure MockCommand implements FrameworkCommand.
var _ gptfunc.FrameworkCommand = (*MockCommand)(nil)
