package jsparse

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"gettext-extractor/internal/literal"
)

// callArguments classifies the actual arguments of a call expression into
// literal values, with string-literal concatenation already folded.
func callArguments(call *sitter.Node, content []byte) []*literal.Value {
	argList := call.ChildByFieldName("arguments")
	if argList == nil {
		return nil
	}

	var args []*literal.Value
	for i := 0; i < int(argList.NamedChildCount()); i++ {
		n := argList.NamedChild(i)
		if n.Type() == "comment" {
			continue
		}
		args = append(args, literalValue(n, content))
	}
	return args
}

// literalValue turns one expression node into a literal value. Anything the
// matcher cannot evaluate (variables, calls, arrays, spreads) becomes Other;
// the matcher treats that as "not a text value", never as partial content.
func literalValue(n *sitter.Node, content []byte) *literal.Value {
	switch n.Type() {
	case "string":
		return literal.String(unescapeString(trimQuotes(n.Content(content))))

	case "template_string":
		// Template literals fold to plain text only when they carry
		// no substitutions.
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if n.NamedChild(i).Type() == "template_substitution" {
				return literal.Other()
			}
		}
		return literal.String(unescapeString(trimQuotes(n.Content(content))))

	case "number":
		f, err := strconv.ParseFloat(strings.ReplaceAll(n.Content(content), "_", ""), 64)
		if err != nil {
			return literal.Other()
		}
		return literal.Number(f)

	case "null":
		return literal.Null()

	case "undefined":
		return literal.Undefined()

	case "identifier":
		if n.Content(content) == "undefined" {
			return literal.Undefined()
		}
		return literal.Other()

	case "object":
		return objectValue(n, content)

	case "binary_expression":
		return foldConcat(n, content)

	case "parenthesized_expression":
		if n.NamedChildCount() == 1 {
			return literalValue(n.NamedChild(0), content)
		}
		return literal.Other()
	}
	return literal.Other()
}

// foldConcat folds "a" + "b" additions into one string value. Any non-text
// operand poisons the whole fold.
func foldConcat(n *sitter.Node, content []byte) *literal.Value {
	op := n.ChildByFieldName("operator")
	if op == nil || op.Content(content) != "+" {
		return literal.Other()
	}
	left := literalValue(n.ChildByFieldName("left"), content)
	right := literalValue(n.ChildByFieldName("right"), content)
	if !left.IsText() || !right.IsText() {
		return literal.Other()
	}
	return literal.String(left.Str + right.Str)
}

// objectValue builds a structured value from an object literal, keeping the
// source declaration order of its properties.
func objectValue(n *sitter.Node, content []byte) *literal.Value {
	var fields []literal.Field
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "pair":
			key := propertyKey(child.ChildByFieldName("key"), content)
			value := child.ChildByFieldName("value")
			if key == "" || value == nil {
				continue
			}
			fields = append(fields, literal.Field{Key: key, Value: literalValue(value, content)})
		case "shorthand_property_identifier":
			// { foo } carries a variable, not a literal.
			fields = append(fields, literal.Field{Key: child.Content(content), Value: literal.Other()})
		case "method_definition":
			if name := child.ChildByFieldName("name"); name != nil {
				fields = append(fields, literal.Field{Key: name.Content(content), Value: literal.Other()})
			}
		}
	}
	return literal.Object(fields...)
}

func propertyKey(key *sitter.Node, content []byte) string {
	if key == nil {
		return ""
	}
	switch key.Type() {
	case "property_identifier", "number":
		return key.Content(content)
	case "string":
		return unescapeString(trimQuotes(key.Content(content)))
	}
	return ""
}

func trimQuotes(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}

// unescapeString resolves JavaScript escape sequences in a quoted literal's
// inner text.
func unescapeString(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case 'x':
			if i+2 < len(s) {
				if v, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
					b.WriteRune(rune(v))
					i += 2
					continue
				}
			}
			b.WriteByte('x')
		case 'u':
			if r, width, ok := unescapeUnicode(s[i:]); ok {
				b.WriteRune(r)
				i += width - 1
				continue
			}
			b.WriteByte('u')
		case '\n':
			// Line continuation: the backslash-newline pair vanishes.
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// unescapeUnicode parses "uXXXX" or "u{X...}" at the start of s, returning
// the rune and how many bytes of s it consumed.
func unescapeUnicode(s string) (rune, int, bool) {
	if len(s) >= 2 && s[1] == '{' {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return 0, 0, false
		}
		v, err := strconv.ParseUint(s[2:end], 16, 32)
		if err != nil {
			return 0, 0, false
		}
		return rune(v), end + 1, true
	}
	if len(s) >= 5 {
		v, err := strconv.ParseUint(s[1:5], 16, 32)
		if err != nil {
			return 0, 0, false
		}
		return rune(v), 5, true
	}
	return 0, 0, false
}
