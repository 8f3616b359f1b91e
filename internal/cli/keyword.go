package cli

import (
	"fmt"
	"strconv"
	"strings"

	"gettext-extractor/internal/extractor"
)

// Keyword binds a callee name to an argument mapping.
type Keyword struct {
	Name    string
	Mapping extractor.ArgumentMapping
}

// ParseKeyword parses an xgettext-style keyword spec:
//
//	name:TEXT[,PLURAL[,CONTEXT[,COMMENTS]]]
//
// Positions are argument indexes; an empty slot leaves that role out, so
// "t:0,,1" maps text to argument 0 and context to argument 1.
func ParseKeyword(spec string) (Keyword, error) {
	name, positions, ok := strings.Cut(spec, ":")
	if !ok || name == "" {
		return Keyword{}, fmt.Errorf("keyword %q: want name:positions", spec)
	}

	slots := strings.Split(positions, ",")
	if len(slots) > 4 {
		return Keyword{}, fmt.Errorf("keyword %q: at most four positions (text, plural, context, comments)", spec)
	}

	parsed := make([]*int, 4)
	for i, s := range slots {
		if s == "" {
			continue
		}
		pos, err := strconv.Atoi(s)
		if err != nil {
			return Keyword{}, fmt.Errorf("keyword %q: position %q is not a number", spec, s)
		}
		parsed[i] = extractor.Position(pos)
	}
	if parsed[0] == nil {
		return Keyword{}, fmt.Errorf("keyword %q: the text position is required", spec)
	}

	return Keyword{
		Name: name,
		Mapping: extractor.ArgumentMapping{
			Text:       *parsed[0],
			TextPlural: parsed[1],
			Context:    parsed[2],
			Comments:   parsed[3],
		},
	}, nil
}

// ParseKeywords parses all keyword specs, rejecting duplicate names.
func ParseKeywords(specs []string) ([]Keyword, error) {
	seen := make(map[string]bool, len(specs))
	keywords := make([]Keyword, 0, len(specs))
	for _, spec := range specs {
		kw, err := ParseKeyword(spec)
		if err != nil {
			return nil, err
		}
		if seen[kw.Name] {
			return nil, fmt.Errorf("keyword %q configured twice", kw.Name)
		}
		seen[kw.Name] = true
		keywords = append(keywords, kw)
	}
	return keywords, nil
}

// ParsePropGroup parses a --comment-prop value of the form name=open,close.
func ParsePropGroup(spec string) (string, []string, error) {
	name, brackets, ok := strings.Cut(spec, "=")
	if !ok || name == "" {
		return "", nil, fmt.Errorf("comment prop %q: want name=open,close", spec)
	}
	pair := strings.Split(brackets, ",")
	if len(pair) != 2 {
		return "", nil, fmt.Errorf("comment prop %q: want exactly two bracket strings", spec)
	}
	return name, pair, nil
}
