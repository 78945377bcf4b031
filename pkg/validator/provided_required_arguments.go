package validator

import (
	"fmt"

	"github.com/samwightt/gqlcheck/pkg/ast"
	"github.com/samwightt/gqlcheck/pkg/printer"
	"github.com/samwightt/gqlcheck/pkg/schema"
	"github.com/samwightt/gqlcheck/pkg/visitor"
)

func init() { Register(ProvidedRequiredArgumentsOnDirectives{}) }

// ProvidedRequiredArgumentsOnDirectives checks that every non-null argument
// without a default is given when a directive is used.
type ProvidedRequiredArgumentsOnDirectives struct{}

func (ProvidedRequiredArgumentsOnDirectives) Name() string {
	return "ProvidedRequiredArgumentsOnDirectives"
}

func (ProvidedRequiredArgumentsOnDirectives) Description() string {
	return "Required arguments of directives must be provided."
}

type requiredArgument struct {
	name string
	typ  string
}

func (r ProvidedRequiredArgumentsOnDirectives) Visitor(ctx *Context) visitor.Visitor {
	required := r.requiredArguments(ctx)
	return visitor.Visitor{
		ast.KindDirective: {Leave: func(n ast.Node) visitor.Action {
			dir := n.(*ast.Directive)
			name := nameOf(dir.Name)
			args := required[name]
			if len(args) == 0 {
				return visitor.Continue
			}
			provided := make(map[string]bool, len(dir.Arguments))
			for _, arg := range dir.Arguments {
				provided[nameOf(arg.Name)] = true
			}
			for _, arg := range args {
				if provided[arg.name] {
					continue
				}
				ctx.ReportError(&Error{
					Message: fmt.Sprintf("Directive \"@%s\" argument %q of type %q is required but not provided.", name, arg.name, arg.typ),
					Nodes:   []ast.Node{dir},
					Rule:    r.Name(),
				})
			}
			return visitor.Continue
		}},
	}
}

// requiredArguments collects the required arguments per directive name.
// Directive definitions in the document replace known directives of the
// same name.
func (ProvidedRequiredArgumentsOnDirectives) requiredArguments(ctx *Context) map[string][]requiredArgument {
	known := schema.BuiltinDirectives()
	if s := ctx.Schema(); s != nil {
		known = s.DirectiveList()
	}
	out := make(map[string][]requiredArgument)
	for _, d := range known {
		var args []requiredArgument
		for _, arg := range d.Arguments {
			if arg.IsRequired() {
				args = append(args, requiredArgument{name: arg.Name, typ: arg.Type.String()})
			}
		}
		out[d.Name] = args
	}
	for _, def := range ctx.Document().DirectiveDefinitions() {
		var args []requiredArgument
		for _, arg := range def.Arguments {
			if _, nonNull := arg.Type.(*ast.NonNullType); nonNull && arg.DefaultValue == nil {
				args = append(args, requiredArgument{name: nameOf(arg.Name), typ: printer.Print(arg.Type)})
			}
		}
		out[nameOf(def.Name)] = args
	}
	return out
}
