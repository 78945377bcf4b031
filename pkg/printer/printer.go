// Package printer renders ast nodes back to GraphQL source text. It covers
// the node kinds that appear in diagnostics: type references, values,
// arguments and directives. Selection sets print on one line.
package printer

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/samwightt/gqlcheck/pkg/ast"
)

// Print returns the GraphQL text for n.
func Print(n ast.Node) string {
	var b strings.Builder
	write(&b, n)
	return b.String()
}

func write(b *strings.Builder, n ast.Node) {
	if n == nil || reflect.ValueOf(n).IsNil() {
		return
	}
	switch n := n.(type) {
	case *ast.Name:
		b.WriteString(n.Value)
	case *ast.NamedType:
		write(b, n.Name)
	case *ast.ListType:
		b.WriteByte('[')
		write(b, n.Type)
		b.WriteByte(']')
	case *ast.NonNullType:
		write(b, n.Type)
		b.WriteByte('!')
	case *ast.Variable:
		b.WriteByte('$')
		write(b, n.Name)
	case *ast.IntValue:
		b.WriteString(n.Value)
	case *ast.FloatValue:
		b.WriteString(n.Value)
	case *ast.EnumValue:
		b.WriteString(n.Value)
	case *ast.StringValue:
		if n.Block {
			b.WriteString(`"""`)
			b.WriteString(strings.ReplaceAll(n.Value, `"""`, `\"""`))
			b.WriteString(`"""`)
		} else {
			b.WriteString(strconv.Quote(n.Value))
		}
	case *ast.BooleanValue:
		b.WriteString(strconv.FormatBool(n.Value))
	case *ast.NullValue:
		b.WriteString("null")
	case *ast.ListValue:
		b.WriteByte('[')
		for i, v := range n.Values {
			if i > 0 {
				b.WriteString(", ")
			}
			write(b, v)
		}
		b.WriteByte(']')
	case *ast.ObjectValue:
		b.WriteByte('{')
		for i, f := range n.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			write(b, f)
		}
		b.WriteByte('}')
	case *ast.ObjectField:
		write(b, n.Name)
		b.WriteString(": ")
		write(b, n.Value)
	case *ast.Argument:
		write(b, n.Name)
		b.WriteString(": ")
		write(b, n.Value)
	case *ast.Directive:
		b.WriteByte('@')
		write(b, n.Name)
		writeArguments(b, n.Arguments)
	case *ast.Field:
		if n.Alias != nil {
			write(b, n.Alias)
			b.WriteString(": ")
		}
		write(b, n.Name)
		writeArguments(b, n.Arguments)
		writeDirectives(b, n.Directives)
		writeSelectionSet(b, n.SelectionSet)
	case *ast.FragmentSpread:
		b.WriteString("...")
		write(b, n.Name)
		writeDirectives(b, n.Directives)
	case *ast.InlineFragment:
		b.WriteString("...")
		if n.TypeCondition != nil {
			b.WriteString(" on ")
			write(b, n.TypeCondition)
		}
		writeDirectives(b, n.Directives)
		writeSelectionSet(b, n.SelectionSet)
	case *ast.SelectionSet:
		b.WriteString("{ ")
		for i, s := range n.Selections {
			if i > 0 {
				b.WriteByte(' ')
			}
			write(b, s)
		}
		b.WriteString(" }")
	case *ast.VariableDefinition:
		write(b, n.Variable)
		b.WriteString(": ")
		write(b, n.Type)
		if n.DefaultValue != nil {
			b.WriteString(" = ")
			write(b, n.DefaultValue)
		}
		writeDirectives(b, n.Directives)
	case *ast.InputValueDefinition:
		write(b, n.Name)
		b.WriteString(": ")
		write(b, n.Type)
		if n.DefaultValue != nil {
			b.WriteString(" = ")
			write(b, n.DefaultValue)
		}
		writeDirectives(b, n.Directives)
	case *ast.DirectiveDefinition:
		b.WriteString("directive @")
		write(b, n.Name)
		if len(n.Arguments) > 0 {
			b.WriteByte('(')
			for i, a := range n.Arguments {
				if i > 0 {
					b.WriteString(", ")
				}
				write(b, a)
			}
			b.WriteByte(')')
		}
		if n.Repeatable {
			b.WriteString(" repeatable")
		}
		b.WriteString(" on ")
		for i, l := range n.Locations {
			if i > 0 {
				b.WriteString(" | ")
			}
			write(b, l)
		}
	case *ast.OperationDefinition:
		b.WriteString(string(n.Operation))
		if n.Name != nil {
			b.WriteByte(' ')
			write(b, n.Name)
		}
		if len(n.VariableDefinitions) > 0 {
			b.WriteByte('(')
			for i, v := range n.VariableDefinitions {
				if i > 0 {
					b.WriteString(", ")
				}
				write(b, v)
			}
			b.WriteByte(')')
		}
		writeDirectives(b, n.Directives)
		writeSelectionSet(b, n.SelectionSet)
	case *ast.FragmentDefinition:
		b.WriteString("fragment ")
		write(b, n.Name)
		b.WriteString(" on ")
		write(b, n.TypeCondition)
		writeDirectives(b, n.Directives)
		writeSelectionSet(b, n.SelectionSet)
	case *ast.Document:
		for i, d := range n.Definitions {
			if i > 0 {
				b.WriteString("\n\n")
			}
			write(b, d)
		}
	}
}

func writeArguments(b *strings.Builder, args ast.NodeList[*ast.Argument]) {
	if len(args) == 0 {
		return
	}
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		write(b, a)
	}
	b.WriteByte(')')
}

func writeDirectives(b *strings.Builder, dirs ast.NodeList[*ast.Directive]) {
	for _, d := range dirs {
		b.WriteByte(' ')
		write(b, d)
	}
}

func writeSelectionSet(b *strings.Builder, set *ast.SelectionSet) {
	if set == nil {
		return
	}
	b.WriteByte(' ')
	write(b, set)
}
