// Package language parses GraphQL source with gqlparser and converts the
// result into the node model of package ast.
package language

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"

	gqlast "github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/samwightt/gqlcheck/pkg/ast"
)

// SyntaxError is a parse failure with the position gqlparser reported.
type SyntaxError struct {
	Message string
	Line    int
	Column  int
	Source  string
}

func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Source, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Line, e.Column, e.Message)
}

func syntaxError(name string, err error) error {
	var gqlErr *gqlerror.Error
	if !errors.As(err, &gqlErr) {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	out := &SyntaxError{Message: gqlErr.Message, Source: name}
	if len(gqlErr.Locations) > 0 {
		out.Line = gqlErr.Locations[0].Line
		out.Column = gqlErr.Locations[0].Column
	}
	return out
}

// ParseQuery parses an executable document: operations and fragments.
func ParseQuery(name, body string) (*ast.Document, error) {
	src := &ast.Source{Name: name, Body: body}
	doc, err := parser.ParseQuery(&gqlast.Source{Name: name, Input: body})
	if err != nil {
		return nil, syntaxError(name, err)
	}
	return FromQueryDocument(doc, src), nil
}

// ParseDirectiveDefinitions parses schema definition language and returns
// only its directive definitions, in source order. Other type system
// definitions are ignored.
func ParseDirectiveDefinitions(name, body string) ([]*ast.DirectiveDefinition, error) {
	src := &ast.Source{Name: name, Body: body}
	doc, err := parser.ParseSchema(&gqlast.Source{Name: name, Input: body})
	if err != nil {
		return nil, syntaxError(name, err)
	}
	return FromSchemaDocument(doc, src), nil
}

// FromQueryDocument converts a parsed query document. Definitions are
// ordered by their position in the source.
func FromQueryDocument(doc *gqlast.QueryDocument, src *ast.Source) *ast.Document {
	c := newConverter(src)
	type positioned struct {
		def   ast.Definition
		start int
	}
	var defs []positioned
	for _, op := range doc.Operations {
		defs = append(defs, positioned{c.operation(op), startOf(op.Position)})
	}
	for _, frag := range doc.Fragments {
		defs = append(defs, positioned{c.fragment(frag), startOf(frag.Position)})
	}
	sort.SliceStable(defs, func(i, j int) bool { return defs[i].start < defs[j].start })

	out := &ast.Document{}
	for _, d := range defs {
		out.Definitions = append(out.Definitions, d.def)
	}
	if len(defs) > 0 {
		out.Loc = &ast.Location{Start: 0, End: utf8.RuneCountInString(src.Body), Line: 1, Column: 1, Source: src}
	}
	return out
}

// FromSchemaDocument converts the directive definitions of a parsed schema
// document.
func FromSchemaDocument(doc *gqlast.SchemaDocument, src *ast.Source) []*ast.DirectiveDefinition {
	c := newConverter(src)
	out := make([]*ast.DirectiveDefinition, 0, len(doc.Directives))
	for _, d := range doc.Directives {
		out = append(out, c.directiveDefinition(d))
	}
	sort.SliceStable(out, func(i, j int) bool { return startOfLoc(out[i].Loc) < startOfLoc(out[j].Loc) })
	return out
}

func startOf(p *gqlast.Position) int {
	if p == nil {
		return 0
	}
	return p.Start
}

func startOfLoc(l *ast.Location) int {
	if l == nil {
		return 0
	}
	return l.Start
}
