package gptfunc

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type alarmParams struct {
	Comment string    `json:"comment" jsonschema:"description=Why the alarm is set"`
	When    time.Time `json:"when"`
	Count   int       `json:"count,omitempty" jsonschema:"minimum=1"`
	Tags    []string  `json:"tags,omitempty"`
	Mode    string    `json:"mode" jsonschema:"enum=fast,enum=slow"`
	Note    string    `json:"note,omitempty" description:"a plain note"`
}

func TestStructParams(t *testing.T) {
	specs, err := StructParams[alarmParams]()
	require.NoError(t, err)
	require.Len(t, specs, 6)

	assert.Equal(t, "comment", specs[0].Name)
	assert.Equal(t, "string", specs[0].Type)
	assert.Equal(t, "Why the alarm is set", specs[0].Description)
	assert.False(t, specs[0].HasDefault)

	assert.Equal(t, "when", specs[1].Name)
	assert.Equal(t, "datetime", specs[1].Type)
	assert.False(t, specs[1].HasDefault)

	assert.Equal(t, "count", specs[2].Name)
	assert.Equal(t, "integer", specs[2].Type)
	assert.True(t, specs[2].HasDefault)
	assert.Equal(t, float64(1), specs[2].Constraints["minimum"])

	assert.Equal(t, "tags", specs[3].Name)
	assert.Equal(t, "[]string", specs[3].Type)
	assert.True(t, specs[3].HasDefault)

	assert.Equal(t, "mode", specs[4].Name)
	assert.Equal(t, "enum", specs[4].Type)
	assert.Equal(t, []any{"fast", "slow"}, specs[4].Constraints["enum"])

	assert.Equal(t, "note", specs[5].Name)
	assert.Equal(t, "a plain note", specs[5].Description)
	assert.True(t, specs[5].HasDefault)
}

func TestStructParamsNonStruct(t *testing.T) {
	_, err := StructParams[string]()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConversion))
}

func TestFromStruct(t *testing.T) {
	lib := testLibrary()
	cmd := lib.MustRegister("set_alarm", "Set an alarm", Handler(func(args map[string]any) (any, error) {
		when := args["when"].(time.Time)
		return when.Format("2006-01-02") + " " + args["mode"].(string), nil
	}), FromStruct[alarmParams]())

	params := cmd.Schema().Parameters
	require.NotNil(t, params)
	assert.Contains(t, params.Properties, "comment")
	assert.Contains(t, params.Properties, "when")
	assert.Equal(t, "date-time", params.Properties["when"]["format"])
	assert.Contains(t, params.Required, "comment")
	assert.NotContains(t, params.Required, "count")

	out, err := lib.Call(FunctionCall{
		Name:      "set_alarm",
		Arguments: `{"comment": "wake up", "when": "2018-11-13T20:20:39+00:00", "mode": "fast"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, "2018-11-13 fast", out)

	// Enum values outside the declared set are rejected at conversion.
	out, err = lib.Call(FunctionCall{
		Name:      "set_alarm",
		Arguments: `{"comment": "wake up", "when": "2018-11-13T20:20:39+00:00", "mode": "medium"}`,
	})
	require.NoError(t, err)
	assert.Contains(t, out.(string), "could not convert")
}

func TestFromStructBadType(t *testing.T) {
	lib := testLibrary()
	_, err := lib.Register("bad", "non-struct parameters", Handler(echoHandler),
		FromStruct[int]())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConversion))
}
