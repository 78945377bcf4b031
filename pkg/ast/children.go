package ast

import "fmt"

// Children returns the nodes owned by n in declared field order, skipping
// absent ones.
func Children(n Node) []Node {
	var c children
	switch n := n.(type) {
	case *Name, *IntValue, *FloatValue, *StringValue, *BooleanValue, *NullValue, *EnumValue:
		return nil
	case *Document:
		addList(&c, n.Definitions)
	case *OperationDefinition:
		c.add(n.Name)
		addList(&c, n.VariableDefinitions)
		addList(&c, n.Directives)
		c.add(n.SelectionSet)
	case *VariableDefinition:
		c.add(n.Variable)
		c.add(n.Type)
		c.add(n.DefaultValue)
		addList(&c, n.Directives)
	case *Variable:
		c.add(n.Name)
	case *SelectionSet:
		addList(&c, n.Selections)
	case *Field:
		c.add(n.Alias)
		c.add(n.Name)
		addList(&c, n.Arguments)
		addList(&c, n.Directives)
		c.add(n.SelectionSet)
	case *Argument:
		c.add(n.Name)
		c.add(n.Value)
	case *FragmentSpread:
		c.add(n.Name)
		addList(&c, n.Directives)
	case *InlineFragment:
		c.add(n.TypeCondition)
		addList(&c, n.Directives)
		c.add(n.SelectionSet)
	case *FragmentDefinition:
		c.add(n.Name)
		addList(&c, n.VariableDefinitions)
		c.add(n.TypeCondition)
		addList(&c, n.Directives)
		c.add(n.SelectionSet)
	case *ListValue:
		addList(&c, n.Values)
	case *ObjectValue:
		addList(&c, n.Fields)
	case *ObjectField:
		c.add(n.Name)
		c.add(n.Value)
	case *Directive:
		c.add(n.Name)
		addList(&c, n.Arguments)
	case *NamedType:
		c.add(n.Name)
	case *ListType:
		c.add(n.Type)
	case *NonNullType:
		c.add(n.Type)
	case *DirectiveDefinition:
		c.add(n.Description)
		c.add(n.Name)
		addList(&c, n.Arguments)
		addList(&c, n.Locations)
	case *InputValueDefinition:
		c.add(n.Description)
		c.add(n.Name)
		c.add(n.Type)
		c.add(n.DefaultValue)
		addList(&c, n.Directives)
	default:
		panic(fmt.Sprintf("ast: unexpected node %T", n))
	}
	return c
}

type children []Node

func (c *children) add(n Node) {
	if !isNil(n) {
		*c = append(*c, n)
	}
}

func addList[T Node](c *children, l NodeList[T]) {
	for _, n := range l {
		c.add(n)
	}
}
