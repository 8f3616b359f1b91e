package extractor

import "gettext-extractor/internal/literal"

// assignment is the role→argument result of matching one call. Unassigned
// roles stay nil.
type assignment struct {
	text       *literal.Value
	textPlural *literal.Value
	context    *literal.Value
	comments   *literal.Value
}

func (a *assignment) set(r role, v *literal.Value) {
	switch r {
	case roleText:
		a.text = v
	case roleTextPlural:
		a.textPlural = v
	case roleContext:
		a.context = v
	case roleComments:
		a.comments = v
	}
}

// matchArguments maps the call's arguments onto the slot sequence.
// Arguments are consumed left-to-right starting at the lowest configured
// position; once an argument fails to classify and no fallback shift
// applies, every remaining role stays unassigned.
func (e *Extractor) matchArguments(args []*literal.Value) assignment {
	var a assignment

	slots := e.slots
	if start := slots[0].pos; start < len(args) {
		args = args[start:]
	} else {
		args = nil
	}

	for len(slots) > 0 && len(args) > 0 {
		s, arg := slots[0], args[0]
		switch {
		case arg.IsOmissionMarker() && s.role.optional():
			// A deliberate placeholder: the role stays
			// unassigned, both sides advance.
			slots, args = slots[1:], args[1:]
		case e.accepts(s.role, arg):
			a.set(s.role, arg)
			slots, args = slots[1:], args[1:]
		case e.fallbackEnabled() && shiftLegal(slots):
			// Retry the same arguments against the roles shifted
			// one position earlier.
			slots = slots[1:]
		default:
			// Cutoff: nothing past this point is ever assigned.
			return a
		}
	}
	return a
}

// accepts reports whether the argument classifies correctly for the role.
// The comments role matches object literals when structured comments are
// configured, plain string literals otherwise.
func (e *Extractor) accepts(r role, v *literal.Value) bool {
	if r == roleComments {
		if e.comment != nil {
			return v.IsStructured()
		}
		return v.IsText()
	}
	return v.IsText()
}

func (e *Extractor) fallbackEnabled() bool {
	return e.comment != nil && e.comment.Fallback
}

// shiftLegal reports whether the leading role may be skipped so that the
// remaining arguments fill the later roles. Skipping the comments role is
// always legal; skipping another optional role is legal only when the role
// right after it is the comments role or another optional role.
func shiftLegal(slots []slot) bool {
	if slots[0].role == roleComments {
		return true
	}
	if !slots[0].role.optional() {
		return false
	}
	return len(slots) > 1 && slots[1].role.optional()
}
