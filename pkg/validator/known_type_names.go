package validator

import (
	"fmt"

	"github.com/samwightt/gqlcheck/pkg/ast"
	"github.com/samwightt/gqlcheck/pkg/suggest"
	"github.com/samwightt/gqlcheck/pkg/visitor"
)

func init() { Register(KnownTypeNames{}) }

// KnownTypeNames checks that variable types and type conditions name types
// of the schema. Without a schema there is nothing to check against.
type KnownTypeNames struct{}

func (KnownTypeNames) Name() string { return "KnownTypeNames" }

func (KnownTypeNames) Description() string {
	return "Named types in variable definitions and type conditions must exist in the schema."
}

func (r KnownTypeNames) Visitor(ctx *Context) visitor.Visitor {
	s := ctx.Schema()
	if s == nil {
		return nil
	}
	var names []string
	return visitor.Visitor{
		ast.KindNamedType: {Enter: func(n ast.Node) visitor.Action {
			named := n.(*ast.NamedType)
			name := nameOf(named.Name)
			if s.Type(name) != nil {
				return visitor.Continue
			}
			if names == nil {
				names = s.TypeNames()
			}
			ctx.ReportError(&Error{
				Message: fmt.Sprintf("Unknown type %q.", name) + suggest.DidYouMean(suggest.List(name, names)),
				Nodes:   []ast.Node{named},
				Rule:    r.Name(),
			})
			return visitor.Continue
		}},
	}
}
