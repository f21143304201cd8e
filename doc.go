// Package gptfunc maps declaratively-described Go handlers to JSON Schema
// function-call descriptors for chat-completion tool calling, and dispatches
// incoming tool/function-call payloads back to those handlers with argument
// validation and type coercion.
//
// # Overview
//
// A model produces tool calls as JSON. This package turns that JSON back into
// concrete handler invocations: it parses the payload (repairing common
// malformations), validates and coerces each argument against the same schema
// fragment that was advertised to the model, invokes the handler, and wraps
// the result for the conversation.
//
// Library.Register builds a schema document from a handler plus parameter
// metadata; Library.Schema and Library.ToolSchema expose the documents to
// send to the model; Library.Call and Library.CallByTool parse, convert,
// invoke and envelope.
//
// # Key concepts
//
//   - Converter symmetry: the converter that generates a parameter's schema
//     fragment is the converter that later validates its value, so what is
//     advertised is exactly what is accepted.
//   - Forgiving dispatch: unknown names and malformed argument strings never
//     crash a conversation; the dispatcher always produces a model-visible
//     result string.
//   - Explicit registries: converters live in a ConverterRegistry owned by the
//     Library, seeded with built-ins and extensible before dispatch begins.
//
// # Example
//
//	lib := gptfunc.NewLibrary()
//	lib.MustRegister("get_time", "Get the current time and day in UTC.",
//		gptfunc.Handler(func(args map[string]any) (any, error) {
//			return args["comment"], nil
//		}),
//		gptfunc.Param("comment", "string", "An interesting, amusing remark."),
//	)
//	tools := lib.ToolSchema() // pass to the chat-completion client
//	out, err := lib.Call(gptfunc.FunctionCall{
//		Name:      "get_time",
//		Arguments: `{"comment":"hi"}`,
//	})
package gptfunc
