// Package comments flattens structured comment literals into the ordered
// list of extracted-comment lines that ends up in the catalog.
package comments

import (
	"fmt"
	"strings"

	"gettext-extractor/internal/literal"
)

// DefaultCommentKey is the object property holding plain comment lines when
// no other key is configured.
const DefaultCommentKey = "comment"

// Options configures how a structured comment argument is recognized and
// flattened.
type Options struct {
	// CommentKey names the plain-comment property. Empty means
	// DefaultCommentKey.
	CommentKey string
	// PropGroups maps a top-level grouping property name to its bracket
	// pair: string children of that property are emitted as
	// "<open><key><close>: <line>".
	PropGroups map[string][]string
	// ThrowOnMalformed aborts the current extraction when a comment
	// property is neither a string nor a nested object. When false the
	// offending property is dropped and flattening continues.
	ThrowOnMalformed bool
	// Fallback enables the role-shifting fallback in the argument
	// matcher. It lives on the comment options because that is the
	// configuration surface the extractor exposes.
	Fallback bool
}

// Validate checks the prop-group bracket pairs. Called once at extractor
// construction.
func (o *Options) Validate() error {
	for name, pair := range o.PropGroups {
		if len(pair) != 2 {
			return fmt.Errorf("prop group %q: bracket pair must be exactly two strings, got %d", name, len(pair))
		}
	}
	return nil
}

func (o *Options) key() string {
	if o.CommentKey != "" {
		return o.CommentKey
	}
	return DefaultCommentKey
}

// MalformedCommentError reports a structured comment property whose value is
// neither a string nor a nested object. Raised only when ThrowOnMalformed is
// set.
type MalformedCommentError struct {
	// KeyPath is the dotted path of the offending property.
	KeyPath string
	// Text is the message text, when already resolved.
	Text string
	// Context is the message context, when already resolved.
	Context string
}

func (e *MalformedCommentError) Error() string {
	msg := fmt.Sprintf("comment property %q is neither a string nor an object", e.KeyPath)
	if e.Text != "" {
		msg += fmt.Sprintf(" (message %q", e.Text)
		if e.Context != "" {
			msg += fmt.Sprintf(", context %q", e.Context)
		}
		msg += ")"
	}
	return msg
}

// lists accumulates comment lines by category. The final comment order is
// plain, other, grouped, keyed, regardless of declaration order within the
// source object.
type lists struct {
	plain   []string
	other   []string
	grouped []string
	keyed   []string
}

func (l *lists) all() []string {
	out := make([]string, 0, len(l.plain)+len(l.other)+len(l.grouped)+len(l.keyed))
	out = append(out, l.plain...)
	out = append(out, l.other...)
	out = append(out, l.grouped...)
	out = append(out, l.keyed...)
	return out
}

// SplitPlain turns a plain (string) comment into comment lines with no
// further processing.
func SplitPlain(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

// Flatten turns a structured comment value into an ordered list of comment
// lines. text and context are the already-resolved message fields, used only
// for error reporting.
func Flatten(value *literal.Value, opts *Options, text, context string) ([]string, error) {
	if opts == nil {
		opts = &Options{}
	}
	acc := &lists{}
	if err := flattenFields(value.Fields, opts, acc, "", nil, text, context); err != nil {
		return nil, err
	}
	return acc.all(), nil
}

// flattenFields walks one nesting level. group names the enclosing prop
// group ("" outside a group); path is the dotted key path of the enclosing
// objects (nil at the top level).
func flattenFields(fields []literal.Field, opts *Options, acc *lists, group string, path []string, text, context string) error {
	topLevel := group == "" && len(path) == 0
	commentKey := opts.key()

	for _, f := range fields {
		dotted := strings.Join(append(append([]string(nil), path...), f.Key), ".")

		switch {
		case f.Value.IsText():
			for _, line := range SplitPlain(f.Value.Str) {
				switch {
				case topLevel && f.Key == commentKey:
					acc.plain = append(acc.plain, line)
				case group != "" && group != commentKey:
					pair := opts.PropGroups[group]
					acc.grouped = append(acc.grouped, fmt.Sprintf("%s%s%s: %s", pair[0], f.Key, pair[1], line))
				case len(path) > 0 && group == "":
					acc.keyed = append(acc.keyed, fmt.Sprintf("%s: %s", dotted, line))
				default:
					acc.other = append(acc.other, fmt.Sprintf("%s: %s", f.Key, line))
				}
			}

		case f.Value.IsStructured():
			if topLevel {
				if _, ok := opts.PropGroups[f.Key]; ok {
					// Group recursion: children format with the
					// group's brackets, the dotted path is not
					// extended.
					if err := flattenFields(f.Value.Fields, opts, acc, f.Key, path, text, context); err != nil {
						return err
					}
					continue
				}
			}
			// Ordinary nested object: group context does not carry
			// past one level, the key joins the dotted path.
			if err := flattenFields(f.Value.Fields, opts, acc, "", append(append([]string(nil), path...), f.Key), text, context); err != nil {
				return err
			}

		default:
			if opts.ThrowOnMalformed {
				return &MalformedCommentError{KeyPath: dotted, Text: text, Context: context}
			}
		}
	}
	return nil
}
