package language

import (
	"fmt"
	"sort"
	"unicode/utf8"

	gqlast "github.com/vektah/gqlparser/v2/ast"

	"github.com/samwightt/gqlcheck/pkg/ast"
)

// converter maps gqlparser nodes onto ast nodes. gqlparser positions count
// runes, so source offsets here do too.
type converter struct {
	src        *ast.Source
	runes      []rune
	lineStarts []int
}

func newConverter(src *ast.Source) *converter {
	c := &converter{src: src, runes: []rune(src.Body), lineStarts: []int{0}}
	for i, r := range c.runes {
		if r == '\n' {
			c.lineStarts = append(c.lineStarts, i+1)
		}
	}
	return c
}

func (c *converter) at(start, end int) *ast.Location {
	line := sort.Search(len(c.lineStarts), func(i int) bool { return c.lineStarts[i] > start })
	return &ast.Location{
		Start:  start,
		End:    end,
		Line:   line,
		Column: start - c.lineStarts[line-1] + 1,
		Source: c.src,
	}
}

func (c *converter) loc(p *gqlast.Position) *ast.Location {
	if p == nil {
		return nil
	}
	return c.at(p.Start, p.End)
}

// find returns the rune offset of the first occurrence of text at or after from.
func (c *converter) find(text string, from int) (int, bool) {
	needle := []rune(text)
	if len(needle) == 0 || from < 0 {
		return 0, false
	}
outer:
	for i := from; i+len(needle) <= len(c.runes); i++ {
		for j, r := range needle {
			if c.runes[i+j] != r {
				continue outer
			}
		}
		return i, true
	}
	return 0, false
}

// name builds a Name located at the first occurrence of value at or after from.
func (c *converter) name(value string, from int) *ast.Name {
	n := ast.NewName(value)
	if i, ok := c.find(value, from); ok {
		n.Loc = c.at(i, i+utf8.RuneCountInString(value))
	}
	return n
}

func (c *converter) nameAfter(value string, prev *ast.Name, fallback int) *ast.Name {
	if prev != nil && prev.Loc != nil {
		return c.name(value, prev.Loc.End)
	}
	return c.name(value, fallback)
}

func (c *converter) namedType(value string, from int) *ast.NamedType {
	name := c.name(value, from)
	t := &ast.NamedType{Name: name}
	t.Loc = name.Loc
	return t
}

func (c *converter) operation(op *gqlast.OperationDefinition) *ast.OperationDefinition {
	start := startOf(op.Position)
	out := &ast.OperationDefinition{
		Operation:    ast.Operation(op.Operation),
		Directives:   c.directives(op.Directives),
		SelectionSet: c.selectionSet(op.SelectionSet),
	}
	if out.Operation == "" {
		out.Operation = ast.OperationQuery
	}
	if op.Name != "" {
		out.Name = c.name(op.Name, start+len(out.Operation))
	}
	for _, v := range op.VariableDefinitions {
		out.VariableDefinitions = append(out.VariableDefinitions, c.variableDefinition(v))
	}
	out.Loc = c.loc(op.Position)
	return out
}

func (c *converter) fragment(frag *gqlast.FragmentDefinition) *ast.FragmentDefinition {
	start := startOf(frag.Position)
	out := &ast.FragmentDefinition{
		Name:         c.name(frag.Name, start+len("fragment")),
		Directives:   c.directives(frag.Directives),
		SelectionSet: c.selectionSet(frag.SelectionSet),
	}
	for _, v := range frag.VariableDefinition {
		out.VariableDefinitions = append(out.VariableDefinitions, c.variableDefinition(v))
	}
	from := start
	if out.Name.Loc != nil {
		from = out.Name.Loc.End
	}
	if on, ok := c.find("on", from); ok {
		from = on + len("on")
	}
	out.TypeCondition = c.namedType(frag.TypeCondition, from)
	out.Loc = c.loc(frag.Position)
	return out
}

func (c *converter) variableDefinition(v *gqlast.VariableDefinition) *ast.VariableDefinition {
	start := startOf(v.Position)
	variable := &ast.Variable{Name: c.name(v.Variable, start)}
	variable.Loc = c.loc(v.Position)
	out := &ast.VariableDefinition{
		Variable:     variable,
		Type:         c.typ(v.Type),
		DefaultValue: c.value(v.DefaultValue),
		Directives:   c.directives(v.Directives),
	}
	out.Loc = c.loc(v.Position)
	return out
}

func (c *converter) selectionSet(set gqlast.SelectionSet) *ast.SelectionSet {
	if set == nil {
		return nil
	}
	out := &ast.SelectionSet{}
	for _, sel := range set {
		out.Selections = append(out.Selections, c.selection(sel))
	}
	if len(out.Selections) > 0 {
		if first := out.Selections[0].Location(); first != nil {
			out.Loc = c.at(first.Start, first.End)
		}
	}
	return out
}

func (c *converter) selection(sel gqlast.Selection) ast.Selection {
	switch sel := sel.(type) {
	case *gqlast.Field:
		start := startOf(sel.Position)
		out := &ast.Field{}
		if sel.Alias != "" && sel.Alias != sel.Name {
			out.Alias = c.name(sel.Alias, start)
			out.Name = c.nameAfter(sel.Name, out.Alias, start)
		} else {
			out.Name = c.name(sel.Name, start)
		}
		out.Arguments = c.arguments(sel.Arguments)
		out.Directives = c.directives(sel.Directives)
		out.SelectionSet = c.selectionSet(sel.SelectionSet)
		out.Loc = c.loc(sel.Position)
		return out
	case *gqlast.FragmentSpread:
		out := &ast.FragmentSpread{
			Name:       c.name(sel.Name, startOf(sel.Position)),
			Directives: c.directives(sel.Directives),
		}
		out.Loc = c.loc(sel.Position)
		return out
	case *gqlast.InlineFragment:
		out := &ast.InlineFragment{
			Directives:   c.directives(sel.Directives),
			SelectionSet: c.selectionSet(sel.SelectionSet),
		}
		if sel.TypeCondition != "" {
			from := startOf(sel.Position)
			if on, ok := c.find("on", from); ok {
				from = on + len("on")
			}
			out.TypeCondition = c.namedType(sel.TypeCondition, from)
		}
		out.Loc = c.loc(sel.Position)
		return out
	}
	panic(fmt.Sprintf("language: unexpected selection %T", sel))
}

func (c *converter) arguments(args gqlast.ArgumentList) ast.NodeList[*ast.Argument] {
	var out ast.NodeList[*ast.Argument]
	for _, a := range args {
		arg := &ast.Argument{
			Name:  c.name(a.Name, startOf(a.Position)),
			Value: c.value(a.Value),
		}
		arg.Loc = c.loc(a.Position)
		out = append(out, arg)
	}
	return out
}

func (c *converter) directives(dirs gqlast.DirectiveList) ast.NodeList[*ast.Directive] {
	var out ast.NodeList[*ast.Directive]
	for _, d := range dirs {
		dir := &ast.Directive{
			Name:      c.name(d.Name, startOf(d.Position)),
			Arguments: c.arguments(d.Arguments),
		}
		dir.Loc = c.loc(d.Position)
		if dir.Loc != nil && dir.Name.Loc != nil && dir.Name.Loc.Start > 0 && c.runes[dir.Name.Loc.Start-1] == '@' {
			dir.Loc = c.at(dir.Name.Loc.Start-1, dir.Name.Loc.End)
		}
		out = append(out, dir)
	}
	return out
}

func (c *converter) typ(t *gqlast.Type) ast.Type {
	if t == nil {
		return nil
	}
	var inner ast.Type
	if t.Elem != nil {
		list := &ast.ListType{Type: c.typ(t.Elem)}
		list.Loc = c.loc(t.Position)
		inner = list
	} else {
		inner = c.namedType(t.NamedType, startOf(t.Position))
	}
	if !t.NonNull {
		return inner
	}
	nonNull := &ast.NonNullType{Type: inner}
	nonNull.Loc = c.loc(t.Position)
	return nonNull
}

func (c *converter) value(v *gqlast.Value) ast.Value {
	if v == nil {
		return nil
	}
	loc := c.loc(v.Position)
	switch v.Kind {
	case gqlast.Variable:
		out := &ast.Variable{Name: c.name(v.Raw, startOf(v.Position))}
		out.Loc = loc
		return out
	case gqlast.IntValue:
		out := &ast.IntValue{Value: v.Raw}
		out.Loc = loc
		return out
	case gqlast.FloatValue:
		out := &ast.FloatValue{Value: v.Raw}
		out.Loc = loc
		return out
	case gqlast.StringValue, gqlast.BlockValue:
		out := &ast.StringValue{Value: v.Raw, Block: v.Kind == gqlast.BlockValue}
		out.Loc = loc
		return out
	case gqlast.BooleanValue:
		out := &ast.BooleanValue{Value: v.Raw == "true"}
		out.Loc = loc
		return out
	case gqlast.NullValue:
		out := &ast.NullValue{}
		out.Loc = loc
		return out
	case gqlast.EnumValue:
		out := &ast.EnumValue{Value: v.Raw}
		out.Loc = loc
		return out
	case gqlast.ListValue:
		out := &ast.ListValue{}
		for _, child := range v.Children {
			out.Values = append(out.Values, c.value(child.Value))
		}
		out.Loc = loc
		return out
	case gqlast.ObjectValue:
		out := &ast.ObjectValue{}
		for _, child := range v.Children {
			from := startOf(v.Position)
			if child.Position != nil {
				from = child.Position.Start
			}
			field := &ast.ObjectField{Name: c.name(child.Name, from), Value: c.value(child.Value)}
			field.Loc = field.Name.Loc
			out.Fields = append(out.Fields, field)
		}
		out.Loc = loc
		return out
	}
	panic(fmt.Sprintf("language: unexpected value kind %d", v.Kind))
}

func (c *converter) directiveDefinition(d *gqlast.DirectiveDefinition) *ast.DirectiveDefinition {
	start := startOf(d.Position)
	out := &ast.DirectiveDefinition{
		Name:       c.name(d.Name, start),
		Repeatable: d.IsRepeatable,
	}
	if d.Description != "" {
		out.Description = &ast.StringValue{Value: d.Description}
	}
	for _, arg := range d.Arguments {
		out.Arguments = append(out.Arguments, c.inputValueDefinition(arg))
	}
	from := start
	if out.Name.Loc != nil {
		from = out.Name.Loc.End
	}
	for _, l := range d.Locations {
		name := c.name(string(l), from)
		if name.Loc != nil {
			from = name.Loc.End
		}
		out.Locations = append(out.Locations, name)
	}
	out.Loc = c.loc(d.Position)
	return out
}

func (c *converter) inputValueDefinition(a *gqlast.ArgumentDefinition) *ast.InputValueDefinition {
	out := &ast.InputValueDefinition{
		Name:         c.name(a.Name, startOf(a.Position)),
		Type:         c.typ(a.Type),
		DefaultValue: c.value(a.DefaultValue),
		Directives:   c.directives(a.Directives),
	}
	if a.Description != "" {
		out.Description = &ast.StringValue{Value: a.Description}
	}
	out.Loc = c.loc(a.Position)
	return out
}
