// Package jsparse locates call expressions in JavaScript sources with
// tree-sitter and feeds their literal arguments to the message extractor.
package jsparse

import (
	"context"
	"errors"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"gettext-extractor/internal/extractor"
)

// CallExtractor binds one or more callee names to a configured role mapping.
// Dotted names ("i18n.t") match member-expression calls.
type CallExtractor struct {
	names []string
	ex    *extractor.Extractor
}

// NewCallExtractor creates a call extractor for the given callee names.
func NewCallExtractor(ex *extractor.Extractor, names ...string) *CallExtractor {
	return &CallExtractor{names: names, ex: ex}
}

// Extracted ties a message to the call site it was extracted from.
type Extracted struct {
	Message *extractor.Message
	// File is the source path as given to the parser.
	File string
	// Line is the 1-based line of the call expression.
	Line int
}

// Reference returns the gettext source reference for the call site.
func (e Extracted) Reference() string {
	return fmt.Sprintf("%s:%d", e.File, e.Line)
}

// Parser parses JavaScript sources and runs the configured call extractors
// on every matching call expression. Safe for concurrent use: each Parse
// call creates its own tree-sitter parser instance.
type Parser struct {
	byName map[string]*CallExtractor
}

// NewParser creates a parser dispatching to the given call extractors.
func NewParser(extractors ...*CallExtractor) *Parser {
	byName := make(map[string]*CallExtractor)
	for _, ce := range extractors {
		for _, name := range ce.names {
			byName[name] = ce
		}
	}
	return &Parser{byName: byName}
}

// ParseFile extracts messages from a single source file.
func (p *Parser) ParseFile(ctx context.Context, path string) ([]Extracted, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source file: %w", err)
	}
	return p.ParseSource(ctx, content, path)
}

// ParseSource extracts messages from raw source content. A malformed
// structured comment aborts only its own call site; extraction continues
// with the remaining calls and the per-site errors are joined into the
// returned error.
func (p *Parser) ParseSource(ctx context.Context, content []byte, file string) ([]Extracted, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse %s: %w", file, err)
	}
	defer tree.Close()

	var (
		results []Extracted
		errs    []error
	)

	iter := sitter.NewIterator(tree.RootNode(), sitter.DFSMode)
	for {
		n, err := iter.Next()
		if err != nil || n == nil {
			break
		}
		if n.Type() != "call_expression" {
			continue
		}

		ce := p.byName[calleeName(n.ChildByFieldName("function"), content)]
		if ce == nil {
			continue
		}

		line := int(n.StartPoint().Row) + 1
		msg, err := ce.ex.MatchMessage(callArguments(n, content))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s:%d: %w", file, line, err))
			continue
		}
		if msg == nil {
			continue
		}
		results = append(results, Extracted{Message: msg, File: file, Line: line})
	}

	return results, errors.Join(errs...)
}

// calleeName resolves the callee to a plain or dotted name. Returns "" for
// callees that cannot be matched by name (call results, subscripts, ...).
func calleeName(callee *sitter.Node, content []byte) string {
	if callee == nil {
		return ""
	}
	switch callee.Type() {
	case "identifier":
		return callee.Content(content)
	case "member_expression":
		obj := calleeName(callee.ChildByFieldName("object"), content)
		prop := callee.ChildByFieldName("property")
		if obj == "" || prop == nil || prop.Type() != "property_identifier" {
			return ""
		}
		return obj + "." + prop.Content(content)
	case "this":
		return "this"
	case "parenthesized_expression":
		if callee.NamedChildCount() == 1 {
			return calleeName(callee.NamedChild(0), content)
		}
	}
	return ""
}
