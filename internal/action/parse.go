package action

import (
	"strconv"
	"strings"
)

// Value is one literal argument: a number or a quoted string.
type Value struct {
	isStr bool
	num   float64
	str   string
}

// Text returns the argument as text. Numbers format with minimal digits.
func (v Value) Text() string {
	if v.isStr {
		return v.str
	}
	return strconv.FormatFloat(v.num, 'f', -1, 64)
}

// Args is the positional argument list of a parsed call.
type Args []Value

// Int returns the i-th argument truncated toward zero, or ok=false when the
// argument is missing or not numeric.
func (a Args) Int(i int) (int, bool) {
	if i >= len(a) || a[i].isStr {
		return 0, false
	}
	return int(a[i].num), true
}

// ParseCall splits one line into a call name and its literal arguments.
// The name is everything before the first '(' (trimmed); the arguments are
// the comma-separated literals between that '(' and the last ')' on the
// line. Any non-literal token rejects the whole line: the input originates
// from an untrusted model and nothing here may be evaluated.
func ParseCall(line string) (string, Args, bool) {
	open := strings.IndexByte(line, '(')
	if open < 0 {
		return "", nil, false
	}
	close := strings.LastIndexByte(line, ')')
	if close < open {
		return "", nil, false
	}
	name := strings.TrimSpace(line[:open])
	inner := line[open+1 : close]
	args, ok := parseLiteralList(inner)
	if !ok {
		return "", nil, false
	}
	return name, args, true
}

// parseLiteralList parses a comma-separated list of numeric and quoted
// string literals. An empty list is valid. A dangling trailing comma is
// tolerated.
func parseLiteralList(s string) (Args, bool) {
	tokens, ok := splitTopLevel(s)
	if !ok {
		return nil, false
	}
	args := make(Args, 0, len(tokens))
	for i, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			// Only a trailing comma may leave an empty slot.
			if i == len(tokens)-1 {
				continue
			}
			return nil, false
		}
		v, ok := parseLiteral(tok)
		if !ok {
			return nil, false
		}
		args = append(args, v)
	}
	return args, true
}

// splitTopLevel splits on commas outside of quoted strings. Unterminated
// quotes fail the split.
func splitTopLevel(s string) ([]string, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, true
	}
	var tokens []string
	var quote byte
	start := 0
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if escaped {
				escaped = false
				continue
			}
			switch c {
			case '\\':
				escaped = true
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case ',':
			tokens = append(tokens, s[start:i])
			start = i + 1
		}
	}
	if quote != 0 {
		return nil, false
	}
	tokens = append(tokens, s[start:])
	return tokens, true
}

func parseLiteral(tok string) (Value, bool) {
	if len(tok) >= 2 && (tok[0] == '\'' || tok[0] == '"') {
		if tok[len(tok)-1] != tok[0] {
			return Value{}, false
		}
		str, ok := unescape(tok[1 : len(tok)-1])
		if !ok {
			return Value{}, false
		}
		return Value{isStr: true, str: str}, true
	}
	if n, err := strconv.ParseFloat(tok, 64); err == nil {
		return Value{num: n}, true
	}
	return Value{}, false
}

func unescape(s string) (string, bool) {
	if !strings.ContainsRune(s, '\\') {
		return s, true
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", false
		}
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\', '\'', '"':
			b.WriteByte(s[i])
		default:
			// Unknown escapes pass through verbatim rather than rejecting;
			// the text reaches a keyboard, not an interpreter.
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String(), true
}
