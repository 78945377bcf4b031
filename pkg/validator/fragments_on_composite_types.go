package validator

import (
	"fmt"

	"github.com/samwightt/gqlcheck/pkg/ast"
	"github.com/samwightt/gqlcheck/pkg/printer"
	"github.com/samwightt/gqlcheck/pkg/typeinfo"
	"github.com/samwightt/gqlcheck/pkg/visitor"
)

func init() { Register(FragmentsOnCompositeTypes{}) }

// FragmentsOnCompositeTypes checks that fragments only condition on object,
// interface or union types. Unknown type conditions are left to
// KnownTypeNames.
type FragmentsOnCompositeTypes struct{}

func (FragmentsOnCompositeTypes) Name() string { return "FragmentsOnCompositeTypes" }

func (FragmentsOnCompositeTypes) Description() string {
	return "Fragments may only condition on object, interface or union types."
}

func (r FragmentsOnCompositeTypes) Visitor(ctx *Context) visitor.Visitor {
	return visitor.Visitor{
		ast.KindInlineFragment: {Enter: func(n ast.Node) visitor.Action {
			frag := n.(*ast.InlineFragment)
			if frag.TypeCondition != nil && !r.composite(ctx, frag.TypeCondition) {
				ctx.ReportError(&Error{
					Message: fmt.Sprintf("Fragment cannot condition on non composite type %q.", printer.Print(frag.TypeCondition)),
					Nodes:   []ast.Node{frag.TypeCondition},
					Rule:    r.Name(),
				})
			}
			return visitor.Continue
		}},
		ast.KindFragmentDefinition: {Enter: func(n ast.Node) visitor.Action {
			frag := n.(*ast.FragmentDefinition)
			if frag.TypeCondition != nil && !r.composite(ctx, frag.TypeCondition) {
				ctx.ReportError(&Error{
					Message: fmt.Sprintf("Fragment %q cannot condition on non composite type %q.", nameOf(frag.Name), printer.Print(frag.TypeCondition)),
					Nodes:   []ast.Node{frag.TypeCondition},
					Rule:    r.Name(),
				})
			}
			return visitor.Continue
		}},
	}
}

// composite reports false only for a type condition that resolves to a
// non-composite type.
func (FragmentsOnCompositeTypes) composite(ctx *Context, cond *ast.NamedType) bool {
	ref := typeinfo.TypeFromAST(ctx.Schema(), cond)
	if ref == nil {
		return true
	}
	return ctx.Schema().Type(ref.NamedType()).IsComposite()
}
