package extractor

import (
	"fmt"
	"sort"
	"strings"
)

// ArgumentMapping assigns call-argument positions to message roles. Text is
// mandatory; the optional roles use a nil pointer when the callee does not
// take them. Positions need not be contiguous or ordered by role.
type ArgumentMapping struct {
	Text       int
	TextPlural *int
	Context    *int
	Comments   *int
}

// Position is a convenience for building optional mapping entries.
func Position(p int) *int { return &p }

type role int

const (
	roleText role = iota
	roleTextPlural
	roleContext
	roleComments
)

func (r role) String() string {
	switch r {
	case roleText:
		return "text"
	case roleTextPlural:
		return "textPlural"
	case roleContext:
		return "context"
	case roleComments:
		return "comments"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// optional reports whether r may be skipped by an omission marker or a
// fallback shift. Only the text role is mandatory.
func (r role) optional() bool { return r != roleText }

// slot pairs a role with its configured argument position.
type slot struct {
	role role
	pos  int
}

// slotSequence returns the mapping's roles sorted ascending by position, the
// order in which call arguments are consumed.
func (m ArgumentMapping) slotSequence() ([]slot, error) {
	slots := []slot{{roleText, m.Text}}
	if m.TextPlural != nil {
		slots = append(slots, slot{roleTextPlural, *m.TextPlural})
	}
	if m.Context != nil {
		slots = append(slots, slot{roleContext, *m.Context})
	}
	if m.Comments != nil {
		slots = append(slots, slot{roleComments, *m.Comments})
	}

	seen := make(map[int]role, len(slots))
	for _, s := range slots {
		if s.pos < 0 {
			return nil, fmt.Errorf("argument position for %s must not be negative, got %d", s.role, s.pos)
		}
		if prev, dup := seen[s.pos]; dup {
			return nil, fmt.Errorf("argument position %d assigned to both %s and %s", s.pos, prev, s.role)
		}
		seen[s.pos] = s.role
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].pos < slots[j].pos })
	return slots, nil
}

// ContentOptions controls the normalization applied to matched text values.
// The zero value strips indentation; use DefaultContentOptions for the
// documented defaults.
type ContentOptions struct {
	// TrimWhiteSpace trims leading and trailing whitespace from the whole
	// value.
	TrimWhiteSpace bool
	// PreserveIndentation keeps leading whitespace on each line. When
	// false, per-line indentation (as left by template literals) is
	// stripped.
	PreserveIndentation bool
	// ReplaceNewLines substitutes every newline with the given string.
	// Nil keeps newlines as-is.
	ReplaceNewLines *string
}

// DefaultContentOptions returns the documented defaults: no trimming,
// indentation preserved, newlines kept.
func DefaultContentOptions() ContentOptions {
	return ContentOptions{PreserveIndentation: true}
}

// normalizeContent applies the content options to one matched text value.
func normalizeContent(s string, opts ContentOptions) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if opts.TrimWhiteSpace {
		s = strings.TrimSpace(s)
	}
	if !opts.PreserveIndentation {
		lines := strings.Split(s, "\n")
		for i, line := range lines {
			lines[i] = strings.TrimLeft(line, " \t")
		}
		s = strings.Join(lines, "\n")
	}
	if opts.ReplaceNewLines != nil {
		s = strings.ReplaceAll(s, "\n", *opts.ReplaceNewLines)
	}
	return s
}
