package gptfunc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// CommandOption configures a command at registration time.
type CommandOption func(*commandConfig)

type commandConfig struct {
	params     []ParameterSpec
	required   []string
	forceWords []string
	disabled   bool
	strict     bool
	err        error // first option failure, surfaced by Register
}

// Param attaches a description to one handler parameter. A parameter with no
// Param/ParamSpec/WithParams entry is omitted from the schema and therefore
// never sent to the model.
func Param(name, typeName, description string) CommandOption {
	return ParamSpec(name, typeName, description, nil)
}

// ParamSpec is Param with additional schema keywords for the parameter's type,
// e.g. minLength/maxLength/pattern for strings, minimum/maximum/multipleOf for
// numbers, enum for enumerated literals.
func ParamSpec(name, typeName, description string, dec Constraints) CommandOption {
	return WithParams(ParameterSpec{
		Name:        name,
		Type:        typeName,
		Description: description,
		Constraints: dec,
	})
}

// WithParams appends fully-specified parameter specs, for callers that need
// control over default-presence (see ParameterSpec.HasDefault).
func WithParams(specs ...ParameterSpec) CommandOption {
	return func(cfg *commandConfig) {
		cfg.params = append(cfg.params, specs...)
	}
}

// WithRequired forces the named parameters into the required set regardless of
// whether they declare defaults.
func WithRequired(names ...string) CommandOption {
	return func(cfg *commandConfig) {
		cfg.required = append(cfg.required, names...)
	}
}

// WithForceWords sets the trigger phrases that ForceWordCheck matches against
// user text to force this command's selection.
func WithForceWords(words ...string) CommandOption {
	return func(cfg *commandConfig) {
		cfg.forceWords = append(cfg.forceWords, words...)
	}
}

// WithDisabled registers the command disabled: dispatchable by name but
// excluded from Schema and ToolSchema until SetEnabled(true).
func WithDisabled() CommandOption {
	return func(cfg *commandConfig) {
		cfg.disabled = true
	}
}

// WithStrict marks the schema document strict: additionalProperties false and
// every parameter required, for structured-output transports.
func WithStrict() CommandOption {
	return func(cfg *commandConfig) {
		cfg.strict = true
	}
}

// Command wraps one registered handler: its parameter specs, the generated
// schema document, and the converters that validate incoming arguments.
// Immutable after construction except the enabled flag; owned by the Library
// that registered it.
type Command struct {
	name        string
	description string
	kind        ExecKind
	handler     Handler
	ctxHandler  ContextHandler
	params      []ParameterSpec
	converters  map[string]Converter
	schema      FunctionSchema
	forceWords  []string
	forceRe     *regexp.Regexp
	enabled     bool
	strict      bool
	logger      *slog.Logger
}

func newCommand(reg *ConverterRegistry, logger *slog.Logger, name, description string, handler any, opts ...CommandOption) (*Command, error) {
	var cfg commandConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	cmd := &Command{
		name:        name,
		description: description,
		converters:  make(map[string]Converter),
		forceWords:  cfg.forceWords,
		enabled:     !cfg.disabled,
		strict:      cfg.strict,
		logger:      logger,
	}
	switch fn := handler.(type) {
	case Handler:
		cmd.kind, cmd.handler = ExecSync, fn
	case func(map[string]any) (any, error):
		cmd.kind, cmd.handler = ExecSync, fn
	case ContextHandler:
		cmd.kind, cmd.ctxHandler = ExecAsync, fn
	case func(ctx context.Context, args map[string]any) (any, error):
		cmd.kind, cmd.ctxHandler = ExecAsync, ContextHandler(fn)
	default:
		return nil, &InvalidFuncArgError{
			Message: fmt.Sprintf("handler for %q is %T, want Handler or ContextHandler", name, handler),
		}
	}
	cmd.logger.Debug("adding command", "name", name, "kind", cmd.kind)

	forced := make(map[string]bool, len(cfg.required))
	for _, n := range cfg.required {
		forced[n] = true
	}
	props := map[string]map[string]any{}
	required := []string{}
	for _, spec := range cfg.params {
		conv, ok := reg.Resolve(spec.Type)
		if !ok {
			cmd.logger.Debug("no converter for parameter, omitting from schema",
				"command", name, "param", spec.Name, "type", spec.Type)
			continue
		}
		fragment, err := conv.ToSchema(spec, spec.Constraints)
		if err != nil {
			return nil, &ConversionToError{Command: name, Param: spec.Name, Type: spec.Type, Reason: err.Error()}
		}
		if spec.Description != "" {
			fragment["description"] = spec.Description
		}
		props[spec.Name] = fragment
		cmd.converters[spec.Name] = conv
		cmd.params = append(cmd.params, spec)
		if !spec.HasDefault || forced[spec.Name] {
			required = append(required, spec.Name)
		}
	}

	paramsObj := &ParameterObject{Type: "object", Properties: props, Required: required}
	if cfg.strict {
		no := false
		paramsObj.AdditionalProperties = &no
		paramsObj.Required = paramsObj.Required[:0]
		for _, spec := range cmd.params {
			paramsObj.Required = append(paramsObj.Required, spec.Name)
		}
	}
	cmd.schema = FunctionSchema{
		Name:        name,
		Description: description,
		Parameters:  paramsObj,
		Strict:      cfg.strict,
	}
	if err := compileParameters(paramsObj); err != nil {
		return nil, &ConversionToError{Command: name, Type: "object", Reason: err.Error()}
	}

	if len(cfg.forceWords) > 0 {
		quoted := make([]string, len(cfg.forceWords))
		for i, w := range cfg.forceWords {
			quoted[i] = regexp.QuoteMeta(w)
		}
		re, err := regexp.Compile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
		if err != nil {
			return nil, &InvalidFuncArgError{Message: fmt.Sprintf("bad force words for %q: %v", name, err)}
		}
		cmd.forceRe = re
	}
	return cmd, nil
}

// Name returns the command's registered name.
func (c *Command) Name() string { return c.name }

// Description returns the command's description.
func (c *Command) Description() string { return c.description }

// Kind reports whether the command is synchronous or asynchronous.
func (c *Command) Kind() ExecKind { return c.kind }

// Params returns the command's ordered, converter-resolved parameter specs.
func (c *Command) Params() []ParameterSpec {
	return append([]ParameterSpec(nil), c.params...)
}

// Schema returns the generated schema document.
func (c *Command) Schema() FunctionSchema { return c.schema }

// Enabled reports whether the command is advertised by Schema/ToolSchema.
func (c *Command) Enabled() bool { return c.enabled }

// SetEnabled flips the enabled flag. Not safe concurrently with dispatch.
func (c *Command) SetEnabled(enabled bool) { c.enabled = enabled }

// ConvertArgs validates and converts every argument that has a schema
// property, in declaration order, replacing each raw value with its
// converter's result. Properties absent from raw are left untouched, never
// defaulted. The first failing field aborts with a ConversionFromError.
func (c *Command) ConvertArgs(raw map[string]any) (map[string]any, error) {
	for _, spec := range c.params {
		value, ok := raw[spec.Name]
		if !ok {
			continue
		}
		converted, err := c.converters[spec.Name].FromSchema(value, c.schema.Parameters.Properties[spec.Name])
		if err != nil {
			return nil, &ConversionFromError{Param: spec.Name, Value: value, Reason: err.Error(), Err: err}
		}
		c.logger.Debug("converted argument", "command", c.name, "param", spec.Name, "value", converted)
		raw[spec.Name] = converted
	}
	return raw, nil
}

// CheckForce reports whether text contains any of the command's force words as
// a whole word, case-insensitively.
func (c *Command) CheckForce(text string) bool {
	return c.forceRe != nil && c.forceRe.MatchString(text)
}

// compileParameters compiles the assembled parameters document as JSON Schema.
// A document that does not compile means a converter produced a malformed
// fragment, which is a registration-time bug, not a dispatch-time condition.
func compileParameters(doc *ParameterObject) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	raw, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("parameters.json", raw); err != nil {
		return err
	}
	_, err = compiler.Compile("parameters.json")
	return err
}
