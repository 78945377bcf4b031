package validator

import (
	"fmt"

	"github.com/samwightt/gqlcheck/pkg/ast"
	"github.com/samwightt/gqlcheck/pkg/suggest"
	"github.com/samwightt/gqlcheck/pkg/visitor"
)

func init() {
	Register(KnownArgumentNames{})
	Register(KnownArgumentNamesOnDirectives{})
}

// KnownArgumentNames checks that field arguments are declared by the field.
// It also runs KnownArgumentNamesOnDirectives for directive arguments.
type KnownArgumentNames struct{}

func (KnownArgumentNames) Name() string { return "KnownArgumentNames" }

func (KnownArgumentNames) Description() string {
	return "Arguments of fields and directives must be defined by the field or directive."
}

func (r KnownArgumentNames) Visitor(ctx *Context) visitor.Visitor {
	return visitor.Merge(
		KnownArgumentNamesOnDirectives{}.Visitor(ctx),
		visitor.Visitor{
			ast.KindArgument: {Enter: func(n ast.Node) visitor.Action {
				if ctx.InDirective() || ctx.Argument() != nil {
					return visitor.Continue
				}
				field, parent := ctx.FieldDef(), ctx.ParentType()
				if field == nil || parent == nil {
					return visitor.Continue
				}
				arg := n.(*ast.Argument)
				name := nameOf(arg.Name)
				ctx.ReportError(&Error{
					Message: fmt.Sprintf("Unknown argument %q on field %q of type %q.", name, field.Name, parent.Name) +
						suggest.DidYouMean(suggest.List(name, field.ArgumentNames())),
					Nodes: []ast.Node{arg},
					Rule:  r.Name(),
				})
				return visitor.Continue
			}},
		},
	)
}

// KnownArgumentNamesOnDirectives checks that directive arguments are
// declared by the directive. Unknown directives are not checked.
type KnownArgumentNamesOnDirectives struct{}

func (KnownArgumentNamesOnDirectives) Name() string { return "KnownArgumentNamesOnDirectives" }

func (KnownArgumentNamesOnDirectives) Description() string {
	return "Arguments of directives must be defined by the directive."
}

func (r KnownArgumentNamesOnDirectives) Visitor(ctx *Context) visitor.Visitor {
	return visitor.Visitor{
		ast.KindDirective: {Enter: func(n ast.Node) visitor.Action {
			dir := n.(*ast.Directive)
			def := ctx.Directive(nameOf(dir.Name))
			if def == nil {
				return visitor.Continue
			}
			known := def.ArgumentNames()
			for _, arg := range dir.Arguments {
				name := nameOf(arg.Name)
				if def.Argument(name) != nil {
					continue
				}
				ctx.ReportError(&Error{
					Message: fmt.Sprintf("Unknown argument %q on directive \"@%s\".", name, def.Name) +
						suggest.DidYouMean(suggest.List(name, known)),
					Nodes: []ast.Node{arg},
					Rule:  r.Name(),
				})
			}
			return visitor.Continue
		}},
	}
}
