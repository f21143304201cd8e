package testutil

import (
	"io"
	"log/slog"

	"github.com/crosswaveomega/gptfunc"
)

// NewTestLibrary returns a Library with discarded logging and expression
// evaluation enabled, suitable for tests.
func NewTestLibrary(commands ...gptfunc.FrameworkCommand) *gptfunc.Library {
	lib := gptfunc.NewLibrary(
		gptfunc.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		gptfunc.WithExpressionEval(),
	)
	for _, c := range commands {
		if _, err := lib.RegisterFramework(c); err != nil {
			panic(err)
		}
	}
	return lib
}
