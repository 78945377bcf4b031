package ast

import (
	"fmt"
	"reflect"
)

// CloneDeep returns an independent copy of n and everything it owns.
// Locations are not carried over.
func CloneDeep[T Node](n T) T {
	c := cloneNode(n)
	if c == nil {
		var zero T
		return zero
	}
	return c.(T)
}

func isNil(n Node) bool {
	return n == nil || reflect.ValueOf(n).IsNil()
}

func cloneNode(n Node) Node {
	if isNil(n) {
		return n
	}
	switch n := n.(type) {
	case *Name:
		return &Name{Value: n.Value}
	case *Document:
		return &Document{Definitions: n.Definitions.CloneDeep()}
	case *OperationDefinition:
		return &OperationDefinition{
			Operation:           n.Operation,
			Name:                CloneDeep(n.Name),
			VariableDefinitions: n.VariableDefinitions.CloneDeep(),
			Directives:          n.Directives.CloneDeep(),
			SelectionSet:        CloneDeep(n.SelectionSet),
		}
	case *VariableDefinition:
		return &VariableDefinition{
			Variable:     CloneDeep(n.Variable),
			Type:         CloneDeep(n.Type),
			DefaultValue: CloneDeep(n.DefaultValue),
			Directives:   n.Directives.CloneDeep(),
		}
	case *Variable:
		return &Variable{Name: CloneDeep(n.Name)}
	case *SelectionSet:
		return &SelectionSet{Selections: n.Selections.CloneDeep()}
	case *Field:
		return &Field{
			Alias:        CloneDeep(n.Alias),
			Name:         CloneDeep(n.Name),
			Arguments:    n.Arguments.CloneDeep(),
			Directives:   n.Directives.CloneDeep(),
			SelectionSet: CloneDeep(n.SelectionSet),
		}
	case *Argument:
		return &Argument{Name: CloneDeep(n.Name), Value: CloneDeep(n.Value)}
	case *FragmentSpread:
		return &FragmentSpread{Name: CloneDeep(n.Name), Directives: n.Directives.CloneDeep()}
	case *InlineFragment:
		return &InlineFragment{
			TypeCondition: CloneDeep(n.TypeCondition),
			Directives:    n.Directives.CloneDeep(),
			SelectionSet:  CloneDeep(n.SelectionSet),
		}
	case *FragmentDefinition:
		return &FragmentDefinition{
			Name:                CloneDeep(n.Name),
			VariableDefinitions: n.VariableDefinitions.CloneDeep(),
			TypeCondition:       CloneDeep(n.TypeCondition),
			Directives:          n.Directives.CloneDeep(),
			SelectionSet:        CloneDeep(n.SelectionSet),
		}
	case *IntValue:
		return &IntValue{Value: n.Value}
	case *FloatValue:
		return &FloatValue{Value: n.Value}
	case *StringValue:
		return &StringValue{Value: n.Value, Block: n.Block}
	case *BooleanValue:
		return &BooleanValue{Value: n.Value}
	case *NullValue:
		return &NullValue{}
	case *EnumValue:
		return &EnumValue{Value: n.Value}
	case *ListValue:
		return &ListValue{Values: n.Values.CloneDeep()}
	case *ObjectValue:
		return &ObjectValue{Fields: n.Fields.CloneDeep()}
	case *ObjectField:
		return &ObjectField{Name: CloneDeep(n.Name), Value: CloneDeep(n.Value)}
	case *Directive:
		return &Directive{Name: CloneDeep(n.Name), Arguments: n.Arguments.CloneDeep()}
	case *NamedType:
		return &NamedType{Name: CloneDeep(n.Name)}
	case *ListType:
		return &ListType{Type: CloneDeep(n.Type)}
	case *NonNullType:
		return &NonNullType{Type: CloneDeep(n.Type)}
	case *DirectiveDefinition:
		return &DirectiveDefinition{
			Description: CloneDeep(n.Description),
			Name:        CloneDeep(n.Name),
			Arguments:   n.Arguments.CloneDeep(),
			Repeatable:  n.Repeatable,
			Locations:   n.Locations.CloneDeep(),
		}
	case *InputValueDefinition:
		return &InputValueDefinition{
			Description:  CloneDeep(n.Description),
			Name:         CloneDeep(n.Name),
			Type:         CloneDeep(n.Type),
			DefaultValue: CloneDeep(n.DefaultValue),
			Directives:   n.Directives.CloneDeep(),
		}
	}
	panic(fmt.Sprintf("ast: cannot clone %T", n))
}
