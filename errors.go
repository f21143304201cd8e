package gptfunc

import (
	"errors"
	"fmt"
)

// ErrLib is the base error of the package; every error this library produces
// matches errors.Is(err, ErrLib).
var ErrLib = errors.New("gptfunc")

// Sentinel errors. Use errors.Is to check; the structured types below carry
// the details.
var (
	ErrFunctionNotFound = fmt.Errorf("%w: function not found", ErrLib)
	ErrArgDecode        = fmt.Errorf("%w: argument decode failed", ErrLib)
	ErrConversion       = fmt.Errorf("%w: conversion failed", ErrLib)
	ErrConverterExists  = fmt.Errorf("%w: converter already registered", ErrLib)
	ErrInvalidArgs      = fmt.Errorf("%w: invalid arguments", ErrLib)
)

// FunctionNotFoundError reports a call naming a command absent from the
// library. It is recoverable: the dispatcher converts it into a model-visible
// fallback string instead of propagating it.
type FunctionNotFoundError struct {
	Name      string
	Arguments any
}

func (e *FunctionNotFoundError) Error() string {
	return fmt.Sprintf("function %q not found.\nargs: %v", e.Name, e.Arguments)
}

func (e *FunctionNotFoundError) Unwrap() error { return ErrFunctionNotFound }

// ArgDecodeError reports an argument string that could not be parsed as JSON
// after repair attempts. Pos, Line and Col locate the failure inside
// Arguments (the repaired string that was actually parsed).
type ArgDecodeError struct {
	Name      string
	Arguments string
	Pos       int
	Line      int
	Col       int
	Err       error
}

func (e *ArgDecodeError) Error() string {
	at := ""
	if e.Pos >= 0 && e.Pos < len(e.Arguments) {
		at = string(e.Arguments[e.Pos])
	}
	return fmt.Sprintf("ArgDecodeError for %q: %v at line %d column %d: `%s`\n%s",
		e.Name, e.Err, e.Line, e.Col, at, e.Arguments)
}

func (e *ArgDecodeError) Unwrap() []error { return []error{ErrArgDecode, e.Err} }

// ConversionToError reports a parameter that could not be turned into a schema
// fragment at registration time. This is the library author's bug, so it is a
// hard registration failure, never caught at dispatch.
type ConversionToError struct {
	Command string
	Param   string
	Type    string
	Reason  string
}

func (e *ConversionToError) Error() string {
	return fmt.Sprintf("cannot build schema for parameter %q (type %q) of %q: %s",
		e.Param, e.Type, e.Command, e.Reason)
}

func (e *ConversionToError) Unwrap() error { return ErrConversion }

// ConversionFromError reports a supplied value that failed validation or
// coercion against its schema fragment at call time. The dispatcher surfaces
// it to the model as a result string.
type ConversionFromError struct {
	Param  string
	Value  any
	Reason string
	Err    error
}

func (e *ConversionFromError) Error() string {
	return fmt.Sprintf("could not convert %v for parameter %q: %s", e.Value, e.Param, e.Reason)
}

func (e *ConversionFromError) Unwrap() []error { return []error{ErrConversion, e.Err} }

// InvalidFuncArgError reports a structural mismatch between a call and the
// command it targets, e.g. dispatching an asynchronous command through the
// synchronous entrypoint.
type InvalidFuncArgError struct {
	Message string
}

func (e *InvalidFuncArgError) Error() string { return e.Message }

func (e *InvalidFuncArgError) Unwrap() error { return ErrInvalidArgs }

// InvalidArgTypeError reports call arguments that are neither a JSON string
// nor a decoded mapping.
type InvalidArgTypeError struct {
	Name      string
	Arguments any
}

func (e *InvalidArgTypeError) Error() string {
	return fmt.Sprintf("args %v for %q are %T, not a string or mapping", e.Arguments, e.Name, e.Arguments)
}

func (e *InvalidArgTypeError) Unwrap() error { return ErrInvalidArgs }
