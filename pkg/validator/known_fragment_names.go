package validator

import (
	"fmt"

	"github.com/samwightt/gqlcheck/pkg/ast"
	"github.com/samwightt/gqlcheck/pkg/visitor"
)

func init() { Register(KnownFragmentNames{}) }

// KnownFragmentNames checks that every fragment spread names a fragment
// defined in the document.
type KnownFragmentNames struct{}

func (KnownFragmentNames) Name() string { return "KnownFragmentNames" }

func (KnownFragmentNames) Description() string {
	return "Fragment spreads must refer to fragments defined in the document."
}

func (r KnownFragmentNames) Visitor(ctx *Context) visitor.Visitor {
	return visitor.Visitor{
		ast.KindFragmentSpread: {Enter: func(n ast.Node) visitor.Action {
			spread := n.(*ast.FragmentSpread)
			name := nameOf(spread.Name)
			if ctx.Fragment(name) == nil {
				ctx.ReportError(&Error{
					Message: fmt.Sprintf("Unknown fragment %q.", name),
					Nodes:   []ast.Node{spread.Name},
					Rule:    r.Name(),
				})
			}
			return visitor.Continue
		}},
	}
}
