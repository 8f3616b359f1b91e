// Package catalog merges extracted messages and serializes them to POT.
package catalog

import (
	"gettext-extractor/internal/extractor"
	"gettext-extractor/internal/placeholder"
	"gettext-extractor/internal/textutil"
)

// Message is one merged catalog entry.
type Message struct {
	Text       string
	TextPlural string
	Context    string
	// Comments are the extracted comment lines, deduplicated, in order of
	// first appearance.
	Comments []string
	// References are "file:line" call sites, deduplicated, in order of
	// first appearance.
	References []string
	// Flags are gettext flags ("javascript-format", ...).
	Flags []string
}

// Catalog accumulates messages keyed by context and text. Not safe for
// concurrent use; the extraction pipeline merges results on one goroutine.
type Catalog struct {
	byKey map[string]*Message
	order []string
}

func New() *Catalog {
	return &Catalog{byKey: make(map[string]*Message)}
}

// Add merges one extracted message into the catalog. Messages with the same
// context and text merge: comments and references union, the first non-empty
// plural wins.
func (c *Catalog) Add(msg *extractor.Message, reference string) {
	key := textutil.MessageKey(msg.Context, msg.Text)

	entry, ok := c.byKey[key]
	if !ok {
		entry = &Message{Text: msg.Text, Context: msg.Context}
		c.byKey[key] = entry
		c.order = append(c.order, key)
	}

	if entry.TextPlural == "" {
		entry.TextPlural = msg.TextPlural
	}
	entry.Comments = appendUnique(entry.Comments, msg.Comments...)
	if reference != "" {
		entry.References = appendUnique(entry.References, reference)
	}
	entry.Flags = appendUnique(entry.Flags, placeholder.Flags(msg.Text, msg.TextPlural)...)
}

// Messages returns the catalog entries in order of first appearance.
func (c *Catalog) Messages() []*Message {
	out := make([]*Message, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.byKey[key])
	}
	return out
}

// Len returns the number of distinct messages.
func (c *Catalog) Len() int { return len(c.order) }

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		seen := false
		for _, have := range dst {
			if have == v {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, v)
		}
	}
	return dst
}
