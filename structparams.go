package gptfunc

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
)

// constraintKeys are the schema keywords carried over from a reflected
// property into a ParameterSpec's constraints.
var constraintKeys = []string{
	"minLength", "maxLength", "pattern",
	"minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf",
	"minItems", "maxItems", "uniqueItems",
}

// FromStruct derives parameter options from T's exported fields: json tags
// name the parameters, jsonschema/description tags describe and constrain
// them, ",omitempty" marks a parameter as having a default. The field order
// of the struct is the parameter order.
func FromStruct[T any]() CommandOption {
	specs, err := StructParams[T]()
	return func(cfg *commandConfig) {
		if err != nil {
			if cfg.err == nil {
				cfg.err = err
			}
			return
		}
		cfg.params = append(cfg.params, specs...)
	}
}

// StructParams reflects T into ordered ParameterSpecs. time.Time fields map
// to the datetime type, enum-tagged fields to the enumerated-literal type,
// slices to []T element types.
func StructParams[T any]() ([]ParameterSpec, error) {
	reflector := &jsonschema.Reflector{
		Anonymous:                 true,
		ExpandedStruct:            true,
		DoNotReference:            true,
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(T))
	obj := schemaObject(schema)
	if obj == nil || obj.Properties == nil {
		return nil, fmt.Errorf("%w: %T does not reflect to an object schema", ErrConversion, *new(T))
	}
	required := make(map[string]bool, len(obj.Required))
	for _, name := range obj.Required {
		required[name] = true
	}
	descriptions := descriptionTags(reflect.TypeOf(*new(T)))

	var specs []ParameterSpec
	for pair := obj.Properties.Oldest(); pair != nil; pair = pair.Next() {
		prop, err := propertyMap(pair.Value)
		if err != nil {
			return nil, err
		}
		spec := ParameterSpec{
			Name:        pair.Key,
			HasDefault:  !required[pair.Key],
			Constraints: Constraints{},
		}
		spec.Description, _ = prop["description"].(string)
		if spec.Description == "" {
			spec.Description = descriptions[pair.Key]
		}
		typeName, _ := prop["type"].(string)
		format, _ := prop["format"].(string)
		switch {
		case len(anySlice(prop["enum"])) > 0:
			spec.Type = "enum"
			spec.Constraints["enum"] = anySlice(prop["enum"])
		case typeName == "string" && format == "date-time":
			spec.Type = "datetime"
		case typeName == "array":
			spec.Type = "array"
			if items, ok := prop["items"].(map[string]any); ok {
				if elem, ok := items["type"].(string); ok && elem != "" {
					spec.Type = "[]" + elem
				}
			}
		default:
			spec.Type = typeName
		}
		for _, key := range constraintKeys {
			if v, ok := prop[key]; ok {
				spec.Constraints[key] = v
			}
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// schemaObject returns the object schema of a reflected type: the schema
// itself when inlined, otherwise the first definition carrying properties.
func schemaObject(schema *jsonschema.Schema) *jsonschema.Schema {
	if schema == nil {
		return nil
	}
	if schema.Properties != nil {
		return schema
	}
	for _, def := range schema.Definitions {
		if def != nil && def.Properties != nil {
			return def
		}
	}
	return nil
}

// propertyMap flattens one reflected property schema into a generic map, so
// constraint extraction does not depend on the reflector's field types.
func propertyMap(prop *jsonschema.Schema) (map[string]any, error) {
	data, err := json.Marshal(prop)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func anySlice(v any) []any {
	out, _ := v.([]any)
	return out
}

// descriptionTags collects plain `description` struct tags keyed by json
// field name, honored when the jsonschema tag carries no description.
func descriptionTags(typ reflect.Type) map[string]string {
	out := map[string]string{}
	if typ == nil {
		return out
	}
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return out
	}
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		name := strings.Split(field.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		if desc := field.Tag.Get("description"); desc != "" {
			out[name] = desc
		}
	}
	return out
}
