package validator

import "github.com/samwightt/gqlcheck/pkg/ast"

// Location is a one-based line and column in the document source.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Error is a validation failure. It is plain data: rules append errors to
// the context and the walk carries on.
type Error struct {
	Message string
	Nodes   []ast.Node
	Rule    string
}

func (e *Error) Error() string { return e.Message }

// Locations returns the positions of the referenced nodes that carry one.
func (e *Error) Locations() []Location {
	var out []Location
	for _, n := range e.Nodes {
		if n == nil {
			continue
		}
		if loc := n.Location(); loc != nil {
			out = append(out, Location{Line: loc.Line, Column: loc.Column})
		}
	}
	return out
}

// Messages returns the messages of errs in order.
func Messages(errs []*Error) []string {
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Message
	}
	return out
}
