package gptfunc

import (
	"fmt"
	"strings"
	"sync"
)

// ConverterRegistry maps declared type names to converters. Every Library
// owns one, seeded with the built-ins; register custom converters before
// concurrent dispatch begins.
type ConverterRegistry struct {
	mu    sync.RWMutex
	types map[string]Converter
}

// NewConverterRegistry returns a registry seeded with the built-in converters.
func NewConverterRegistry() *ConverterRegistry {
	return &ConverterRegistry{types: map[string]Converter{
		"string":   StringConverter{},
		"integer":  NumericConverter{},
		"number":   NumericConverter{},
		"boolean":  BooleanConverter{},
		"datetime": DatetimeConverter{},
		"enum":     LiteralConverter{},
		"array":    ArrayConverter{},
	}}
}

// Register binds conv to typeName. Registering a name that is already present
// is a caller error, never a silent overwrite.
func (r *ConverterRegistry) Register(typeName string, conv Converter) error {
	if typeName == "" || conv == nil {
		return &InvalidFuncArgError{Message: "converter registration needs a type name and a converter"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.types[typeName]; ok {
		return fmt.Errorf("%q: %w", typeName, ErrConverterExists)
	}
	r.types[typeName] = conv
	return nil
}

// Resolve returns the converter bound to typeName. Slice-style names ([]T)
// fall back to the array converter; an unresolved name is not an error, the
// caller skips the parameter.
func (r *ConverterRegistry) Resolve(typeName string) (Converter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.types[typeName]; ok {
		return c, true
	}
	if strings.HasPrefix(typeName, "[]") {
		c, ok := r.types["array"]
		return c, ok
	}
	return nil, false
}
