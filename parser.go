package gptfunc

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"unicode/utf16"
)

// ParseCall resolves the command name of call and decodes its arguments into a
// mapping, repairing the malformations models commonly produce in argument
// strings. Unknown names yield a FunctionNotFoundError, which is recoverable,
// never a crash.
func (l *Library) ParseCall(call FunctionCall) (string, map[string]any, error) {
	if _, ok := l.commands[call.Name]; !ok {
		return "", nil, &FunctionNotFoundError{Name: call.Name, Arguments: call.Arguments}
	}
	switch args := call.Arguments.(type) {
	case nil:
		return call.Name, map[string]any{}, nil
	case map[string]any:
		return call.Name, args, nil
	case string:
		parsed, err := l.parseArgString(call.Name, args)
		if err != nil {
			return "", nil, err
		}
		return call.Name, parsed, nil
	default:
		return "", nil, &InvalidArgTypeError{Name: call.Name, Arguments: call.Arguments}
	}
}

func (l *Library) parseArgString(name, raw string) (map[string]any, error) {
	repaired := strings.ReplaceAll(raw, `\n`, "\n")
	repaired = repairQuoteEscapes(repaired)
	if l.evaluator != nil {
		repaired = l.rewriteExpressions(repaired)
	}
	repaired = escapeControlChars(repaired)
	l.logger.Debug("transformed arguments", "function", name, "args", repaired)

	var out map[string]any
	if err := json.Unmarshal([]byte(repaired), &out); err != nil {
		pos, line, col := errorPosition(repaired, err)
		return nil, &ArgDecodeError{Name: name, Arguments: repaired, Pos: pos, Line: line, Col: col, Err: err}
	}
	return out, nil
}

// quoteEscapeRe matches one string field value span: the ": "" opener, the
// value up to the closing quote that precedes a comma or brace, and that
// closer. Only the middle group is rewritten, keys and structural characters
// are untouched.
var quoteEscapeRe = regexp.MustCompile(`(:\s*")(.*?)("(?:\s*,|\s*\}))`)

// repairQuoteEscapes re-escapes stray double quotes inside string field
// values. Models occasionally emit {"say": "a "quoted" word"}, which no JSON
// parser accepts.
func repairQuoteEscapes(s string) string {
	return quoteEscapeRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := quoteEscapeRe.FindStringSubmatch(m)
		value := strings.ReplaceAll(sub[2], `\"`, `"`)
		value = strings.ReplaceAll(value, `"`, `\"`)
		return sub[1] + value + sub[3]
	})
}

// exprRe matches a bare arithmetic-looking value between a colon and the next
// comma or closing brace: no quotes, at least one of + - * /.
var exprRe = regexp.MustCompile(`(:\s*)([^",{}\[\]]*?[+\-*/][^",{}\[\]]*?)(\s*(?:,|\}))`)

// rewriteExpressions replaces bare arithmetic values with their evaluated
// numeric result, guarding against a model returning "x": 2+2 instead of 4.
// A value the evaluator rejects is left as-is; the JSON decode will then
// report it.
func (l *Library) rewriteExpressions(s string) string {
	return exprRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := exprRe.FindStringSubmatch(m)
		result, err := l.evaluator(strings.TrimSpace(sub[2]))
		if err != nil {
			l.logger.Debug("expression evaluation failed", "expression", sub[2], "error", err)
			return m
		}
		return sub[1] + result + sub[3]
	})
}

// escapeControlChars rewrites raw control characters inside string literals
// into \u escapes, tolerating them the way a lenient JSON parser would.
// Characters outside string literals are left for the decoder to reject.
func escapeControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString, escaped := false, false
	for _, r := range s {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && inString:
			escaped = true
		case r == '"':
			inString = !inString
		case inString && r < 0x20:
			for _, u := range utf16.Encode([]rune{r}) {
				b.WriteString(`\u`)
				const hex = "0123456789abcdef"
				b.WriteByte(hex[u>>12&0xf])
				b.WriteByte(hex[u>>8&0xf])
				b.WriteByte(hex[u>>4&0xf])
				b.WriteByte(hex[u&0xf])
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// errorPosition locates a JSON decode error inside s as a byte position plus
// 1-based line and column.
func errorPosition(s string, err error) (pos, line, col int) {
	var offset int64
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	}
	pos = int(offset)
	if pos > 0 {
		pos--
	}
	if pos > len(s) {
		pos = len(s)
	}
	line = 1 + strings.Count(s[:pos], "\n")
	col = pos - strings.LastIndex(s[:pos], "\n")
	return pos, line, col
}
