package validator

import (
	"fmt"

	"github.com/samwightt/gqlcheck/pkg/ast"
	"github.com/samwightt/gqlcheck/pkg/visitor"
)

func init() { Register(UniqueFragmentNames{}) }

// UniqueFragmentNames reports every fragment definition whose name was
// already used by an earlier one.
type UniqueFragmentNames struct{}

func (UniqueFragmentNames) Name() string { return "UniqueFragmentNames" }

func (UniqueFragmentNames) Description() string {
	return "Fragment names must be unique within a document."
}

func (r UniqueFragmentNames) Visitor(ctx *Context) visitor.Visitor {
	known := make(map[string]*ast.Name)
	return visitor.Visitor{
		ast.KindFragmentDefinition: {Enter: func(n ast.Node) visitor.Action {
			frag := n.(*ast.FragmentDefinition)
			name := nameOf(frag.Name)
			if first, ok := known[name]; ok {
				ctx.ReportError(&Error{
					Message: fmt.Sprintf("There can be only one fragment named %q.", name),
					Nodes:   []ast.Node{first, frag.Name},
					Rule:    r.Name(),
				})
			} else {
				known[name] = frag.Name
			}
			return visitor.Continue
		}},
	}
}
