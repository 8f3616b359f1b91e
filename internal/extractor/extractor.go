// Package extractor resolves which call argument fills each message role
// and turns a matched call into an extracted gettext message.
package extractor

import (
	"gettext-extractor/internal/comments"
	"gettext-extractor/internal/literal"
)

// Message is one extracted translatable message. Text is always set; the
// other fields are empty when their role was not matched.
type Message struct {
	Text       string
	TextPlural string
	Context    string
	Comments   []string
}

// Extractor matches call arguments against one configured role mapping.
// Safe for concurrent use: all configuration is read-only after New.
type Extractor struct {
	slots   []slot
	content ContentOptions
	// comment is nil when the callee takes plain string comments; when
	// set, the comments argument must be an object literal and is
	// flattened with these options.
	comment *comments.Options
}

// New validates the mapping and comment options and builds an extractor.
// Configuration errors are fatal and reported here, never per call.
func New(mapping ArgumentMapping, content ContentOptions, comment *comments.Options) (*Extractor, error) {
	slots, err := mapping.slotSequence()
	if err != nil {
		return nil, err
	}
	if comment != nil {
		if err := comment.Validate(); err != nil {
			return nil, err
		}
	}
	return &Extractor{slots: slots, content: content, comment: comment}, nil
}

// MatchMessage maps the literal call arguments onto the configured roles.
// It returns nil (and no error) when the text role cannot be resolved; an
// error is only possible for a malformed structured comment under
// ThrowOnMalformed.
func (e *Extractor) MatchMessage(args []*literal.Value) (*Message, error) {
	a := e.matchArguments(args)
	if a.text == nil {
		return nil, nil
	}

	msg := &Message{Text: normalizeContent(a.text.Str, e.content)}
	if a.textPlural != nil {
		msg.TextPlural = normalizeContent(a.textPlural.Str, e.content)
	}
	if a.context != nil {
		msg.Context = normalizeContent(a.context.Str, e.content)
	}

	if a.comments != nil {
		if a.comments.IsStructured() {
			lines, err := comments.Flatten(a.comments, e.comment, msg.Text, msg.Context)
			if err != nil {
				return nil, err
			}
			msg.Comments = lines
		} else {
			msg.Comments = comments.SplitPlain(a.comments.Str)
		}
	}
	return msg, nil
}
