package gptfunc

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoHandler(args map[string]any) (any, error) {
	return args, nil
}

func TestCommandSchema(t *testing.T) {
	lib := testLibrary()
	cmd := lib.MustRegister("get_time", "Get the current time and day in UTC.",
		Handler(echoHandler),
		Param("comment", "string", "A comment about why the time is needed"),
	)

	schema := cmd.Schema()
	assert.Equal(t, "get_time", schema.Name)
	assert.Equal(t, "Get the current time and day in UTC.", schema.Description)
	require.NotNil(t, schema.Parameters)
	assert.Equal(t, "object", schema.Parameters.Type)

	prop, ok := schema.Parameters.Properties["comment"]
	require.True(t, ok)
	assert.Equal(t, "string", prop["type"])
	assert.Equal(t, "A comment about why the time is needed", prop["description"])
	assert.Equal(t, 0, prop["minLength"])
	assert.Equal(t, 255, prop["maxLength"])
	assert.Equal(t, []string{"comment"}, schema.Parameters.Required)
}

func TestCommandRequired(t *testing.T) {
	lib := testLibrary()
	cmd := lib.MustRegister("subject", "Test subject", Handler(echoHandler),
		WithParams(
			ParameterSpec{Name: "must", Type: "string"},
			ParameterSpec{Name: "may", Type: "string", HasDefault: true},
		),
	)
	assert.Equal(t, []string{"must"}, cmd.Schema().Parameters.Required)

	forced := lib.MustRegister("forced", "Test subject", Handler(echoHandler),
		WithParams(ParameterSpec{Name: "may", Type: "string", HasDefault: true}),
		WithRequired("may"),
	)
	assert.Equal(t, []string{"may"}, forced.Schema().Parameters.Required)
}

func TestCommandStrict(t *testing.T) {
	lib := testLibrary()
	cmd := lib.MustRegister("strict_cmd", "Strict schema", Handler(echoHandler),
		WithParams(
			ParameterSpec{Name: "a", Type: "string"},
			ParameterSpec{Name: "b", Type: "integer", HasDefault: true},
		),
		WithStrict(),
	)
	schema := cmd.Schema()
	assert.True(t, schema.Strict)
	require.NotNil(t, schema.Parameters.AdditionalProperties)
	assert.False(t, *schema.Parameters.AdditionalProperties)
	assert.ElementsMatch(t, []string{"a", "b"}, schema.Parameters.Required)
}

func TestCommandBadHandler(t *testing.T) {
	lib := testLibrary()
	_, err := lib.Register("broken", "not a handler", 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgs))
}

func TestCommandUnknownTypeSkipped(t *testing.T) {
	lib := testLibrary()
	cmd := lib.MustRegister("partial", "One parameter has no converter", Handler(echoHandler),
		Param("known", "string", "resolves"),
		Param("mystery", "wibble", "does not resolve"),
	)
	assert.Len(t, cmd.Params(), 1)
	assert.NotContains(t, cmd.Schema().Parameters.Properties, "mystery")
	assert.Equal(t, []string{"known"}, cmd.Schema().Parameters.Required)
}

func TestCommandEnumWithoutValues(t *testing.T) {
	lib := testLibrary()
	_, err := lib.Register("bad_enum", "enum with no values", Handler(echoHandler),
		Param("mode", "enum", "pick one"),
	)
	require.Error(t, err)
	var convErr *ConversionToError
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, "mode", convErr.Param)
	assert.True(t, errors.Is(err, ErrConversion))
}

func TestCheckForce(t *testing.T) {
	lib := testLibrary()
	cmd := lib.MustRegister("get_weather", "Weather lookup", Handler(echoHandler),
		WithForceWords("weather", "forecast"),
	)
	assert.True(t, cmd.CheckForce("what is the weather today"))
	assert.True(t, cmd.CheckForce("WEATHER please"))
	assert.True(t, cmd.CheckForce("give me a forecast"))
	assert.False(t, cmd.CheckForce("the weathering of rocks"))
	assert.False(t, cmd.CheckForce("nothing relevant"))

	plain := lib.MustRegister("plain", "no force words", Handler(echoHandler))
	assert.False(t, plain.CheckForce("weather"))
}

func TestConvertArgs(t *testing.T) {
	lib := testLibrary()
	cmd := lib.MustRegister("set_alarm", "Set an alarm", Handler(echoHandler),
		Param("when", "datetime", "When the alarm fires"),
		Param("label", "string", "Alarm label"),
	)

	args, err := cmd.ConvertArgs(map[string]any{
		"when":  "2018-11-13T20:20:39+00:00",
		"label": "wake up",
	})
	require.NoError(t, err)
	when, ok := args["when"].(time.Time)
	require.True(t, ok)
	assert.Equal(t, "2018-11-13", when.Format("2006-01-02"))
	assert.Equal(t, "wake up", args["label"])

	// Absent arguments stay absent, they are never defaulted in.
	args, err = cmd.ConvertArgs(map[string]any{"label": "only"})
	require.NoError(t, err)
	assert.NotContains(t, args, "when")
}

func TestConvertArgsFailure(t *testing.T) {
	lib := testLibrary()
	cmd := lib.MustRegister("set_alarm", "Set an alarm", Handler(echoHandler),
		Param("when", "datetime", "When the alarm fires"),
	)

	_, err := cmd.ConvertArgs(map[string]any{"when": "not a date"})
	require.Error(t, err)
	var convErr *ConversionFromError
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, "when", convErr.Param)
	assert.True(t, errors.Is(err, ErrConversion))
}

func TestOptionErrorSurfaces(t *testing.T) {
	lib := testLibrary()
	boom := errors.New("boom")
	_, err := lib.Register("cfg_err", "option failed", Handler(echoHandler),
		func(cfg *commandConfig) { cfg.err = boom },
	)
	require.ErrorIs(t, err, boom)
}
