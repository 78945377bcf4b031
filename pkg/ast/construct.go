package ast

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
)

// ErrInvalidArgument is matched by every *InvalidArgumentError.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError reports programmer misuse at a call boundary, such as
// building a node from a field it does not declare or a value of the wrong
// shape. It is never a validation result.
type InvalidArgumentError struct {
	Kind     Kind
	Field    string
	Expected string
	Got      string
}

func (e *InvalidArgumentError) Error() string {
	prefix := ""
	if e.Kind.Valid() {
		prefix = e.Kind.String()
		if e.Field != "" {
			prefix += "." + e.Field
		}
		prefix += ": "
	}
	return fmt.Sprintf(`%sExpected type "%s", got "%s"`, prefix, e.Expected, e.Got)
}

func (e *InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }

// NewInvalidArgument builds an *InvalidArgumentError describing the observed
// value.
func NewInvalidArgument(expected string, got any) *InvalidArgumentError {
	return &InvalidArgumentError{Expected: expected, Got: describe(got)}
}

func describe(v any) string {
	if n, ok := v.(Node); ok && !isNil(n) {
		return n.Kind().String()
	}
	if v == nil {
		return "null"
	}
	return reflect.TypeOf(v).String()
}

// New builds a node of the given kind from field values keyed by the names
// ToStructured uses ("name", "selectionSet", ...). "loc" sets the location.
// Fields missing from the map stay absent.
func New(kind Kind, fields map[string]any) (Node, error) {
	var (
		n   Node
		set func(field string, v any) error
	)
	switch kind {
	case KindName:
		x := &Name{}
		n, set = x, func(f string, v any) error {
			switch f {
			case "value":
				return assign(&x.Value, kind, f, v)
			}
			return unknownField(kind, f, v)
		}
	case KindDocument:
		x := &Document{}
		n, set = x, func(f string, v any) error {
			switch f {
			case "definitions":
				return assignList(&x.Definitions, kind, f, v)
			}
			return unknownField(kind, f, v)
		}
	case KindOperationDefinition:
		x := &OperationDefinition{}
		n, set = x, func(f string, v any) error {
			switch f {
			case "operation":
				if s, ok := v.(string); ok {
					v = Operation(s)
				}
				return assign(&x.Operation, kind, f, v)
			case "name":
				return assign(&x.Name, kind, f, v)
			case "variableDefinitions":
				return assignList(&x.VariableDefinitions, kind, f, v)
			case "directives":
				return assignList(&x.Directives, kind, f, v)
			case "selectionSet":
				return assign(&x.SelectionSet, kind, f, v)
			}
			return unknownField(kind, f, v)
		}
	case KindVariableDefinition:
		x := &VariableDefinition{}
		n, set = x, func(f string, v any) error {
			switch f {
			case "variable":
				return assign(&x.Variable, kind, f, v)
			case "type":
				return assign(&x.Type, kind, f, v)
			case "defaultValue":
				return assign(&x.DefaultValue, kind, f, v)
			case "directives":
				return assignList(&x.Directives, kind, f, v)
			}
			return unknownField(kind, f, v)
		}
	case KindVariable:
		x := &Variable{}
		n, set = x, func(f string, v any) error {
			switch f {
			case "name":
				return assign(&x.Name, kind, f, v)
			}
			return unknownField(kind, f, v)
		}
	case KindSelectionSet:
		x := &SelectionSet{}
		n, set = x, func(f string, v any) error {
			switch f {
			case "selections":
				return assignList(&x.Selections, kind, f, v)
			}
			return unknownField(kind, f, v)
		}
	case KindField:
		x := &Field{}
		n, set = x, func(f string, v any) error {
			switch f {
			case "alias":
				return assign(&x.Alias, kind, f, v)
			case "name":
				return assign(&x.Name, kind, f, v)
			case "arguments":
				return assignList(&x.Arguments, kind, f, v)
			case "directives":
				return assignList(&x.Directives, kind, f, v)
			case "selectionSet":
				return assign(&x.SelectionSet, kind, f, v)
			}
			return unknownField(kind, f, v)
		}
	case KindArgument:
		x := &Argument{}
		n, set = x, func(f string, v any) error {
			switch f {
			case "name":
				return assign(&x.Name, kind, f, v)
			case "value":
				return assign(&x.Value, kind, f, v)
			}
			return unknownField(kind, f, v)
		}
	case KindFragmentSpread:
		x := &FragmentSpread{}
		n, set = x, func(f string, v any) error {
			switch f {
			case "name":
				return assign(&x.Name, kind, f, v)
			case "directives":
				return assignList(&x.Directives, kind, f, v)
			}
			return unknownField(kind, f, v)
		}
	case KindInlineFragment:
		x := &InlineFragment{}
		n, set = x, func(f string, v any) error {
			switch f {
			case "typeCondition":
				return assign(&x.TypeCondition, kind, f, v)
			case "directives":
				return assignList(&x.Directives, kind, f, v)
			case "selectionSet":
				return assign(&x.SelectionSet, kind, f, v)
			}
			return unknownField(kind, f, v)
		}
	case KindFragmentDefinition:
		x := &FragmentDefinition{}
		n, set = x, func(f string, v any) error {
			switch f {
			case "name":
				return assign(&x.Name, kind, f, v)
			case "variableDefinitions":
				return assignList(&x.VariableDefinitions, kind, f, v)
			case "typeCondition":
				return assign(&x.TypeCondition, kind, f, v)
			case "directives":
				return assignList(&x.Directives, kind, f, v)
			case "selectionSet":
				return assign(&x.SelectionSet, kind, f, v)
			}
			return unknownField(kind, f, v)
		}
	case KindIntValue:
		x := &IntValue{}
		n, set = x, scalarSetter(kind, &x.Value)
	case KindFloatValue:
		x := &FloatValue{}
		n, set = x, scalarSetter(kind, &x.Value)
	case KindEnumValue:
		x := &EnumValue{}
		n, set = x, scalarSetter(kind, &x.Value)
	case KindStringValue:
		x := &StringValue{}
		n, set = x, func(f string, v any) error {
			switch f {
			case "value":
				return assign(&x.Value, kind, f, v)
			case "block":
				return assign(&x.Block, kind, f, v)
			}
			return unknownField(kind, f, v)
		}
	case KindBooleanValue:
		x := &BooleanValue{}
		n, set = x, func(f string, v any) error {
			switch f {
			case "value":
				return assign(&x.Value, kind, f, v)
			}
			return unknownField(kind, f, v)
		}
	case KindNullValue:
		n, set = &NullValue{}, func(f string, v any) error { return unknownField(kind, f, v) }
	case KindListValue:
		x := &ListValue{}
		n, set = x, func(f string, v any) error {
			switch f {
			case "values":
				return assignList(&x.Values, kind, f, v)
			}
			return unknownField(kind, f, v)
		}
	case KindObjectValue:
		x := &ObjectValue{}
		n, set = x, func(f string, v any) error {
			switch f {
			case "fields":
				return assignList(&x.Fields, kind, f, v)
			}
			return unknownField(kind, f, v)
		}
	case KindObjectField:
		x := &ObjectField{}
		n, set = x, func(f string, v any) error {
			switch f {
			case "name":
				return assign(&x.Name, kind, f, v)
			case "value":
				return assign(&x.Value, kind, f, v)
			}
			return unknownField(kind, f, v)
		}
	case KindDirective:
		x := &Directive{}
		n, set = x, func(f string, v any) error {
			switch f {
			case "name":
				return assign(&x.Name, kind, f, v)
			case "arguments":
				return assignList(&x.Arguments, kind, f, v)
			}
			return unknownField(kind, f, v)
		}
	case KindNamedType:
		x := &NamedType{}
		n, set = x, func(f string, v any) error {
			switch f {
			case "name":
				return assign(&x.Name, kind, f, v)
			}
			return unknownField(kind, f, v)
		}
	case KindListType:
		x := &ListType{}
		n, set = x, func(f string, v any) error {
			switch f {
			case "type":
				return assign(&x.Type, kind, f, v)
			}
			return unknownField(kind, f, v)
		}
	case KindNonNullType:
		x := &NonNullType{}
		n, set = x, func(f string, v any) error {
			switch f {
			case "type":
				if _, wrapped := v.(*NonNullType); wrapped {
					return &InvalidArgumentError{Kind: kind, Field: f, Expected: "NamedType or ListType", Got: describe(v)}
				}
				return assign(&x.Type, kind, f, v)
			}
			return unknownField(kind, f, v)
		}
	case KindDirectiveDefinition:
		x := &DirectiveDefinition{}
		n, set = x, func(f string, v any) error {
			switch f {
			case "description":
				return assign(&x.Description, kind, f, v)
			case "name":
				return assign(&x.Name, kind, f, v)
			case "arguments":
				return assignList(&x.Arguments, kind, f, v)
			case "repeatable":
				return assign(&x.Repeatable, kind, f, v)
			case "locations":
				return assignList(&x.Locations, kind, f, v)
			}
			return unknownField(kind, f, v)
		}
	case KindInputValueDefinition:
		x := &InputValueDefinition{}
		n, set = x, func(f string, v any) error {
			switch f {
			case "description":
				return assign(&x.Description, kind, f, v)
			case "name":
				return assign(&x.Name, kind, f, v)
			case "type":
				return assign(&x.Type, kind, f, v)
			case "defaultValue":
				return assign(&x.DefaultValue, kind, f, v)
			case "directives":
				return assignList(&x.Directives, kind, f, v)
			}
			return unknownField(kind, f, v)
		}
	default:
		return nil, &InvalidArgumentError{Expected: "node kind", Got: kind.String()}
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := fields[k]
		if k == "loc" {
			loc, ok := v.(*Location)
			if !ok && v != nil {
				return nil, &InvalidArgumentError{Kind: kind, Field: k, Expected: "*ast.Location", Got: describe(v)}
			}
			setLocation(n, loc)
			continue
		}
		if err := set(k, v); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func setLocation(n Node, loc *Location) {
	if b, ok := n.(interface{ setLoc(*Location) }); ok {
		b.setLoc(loc)
	}
}

func (b *base) setLoc(loc *Location) { b.Loc = loc }

func scalarSetter(kind Kind, dst *string) func(string, any) error {
	return func(f string, v any) error {
		if f == "value" {
			return assign(dst, kind, f, v)
		}
		return unknownField(kind, f, v)
	}
}

func unknownField(kind Kind, field string, v any) error {
	return &InvalidArgumentError{
		Kind:     kind,
		Field:    field,
		Expected: "a field declared by " + kind.String(),
		Got:      describe(v),
	}
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

// assign stores v in dst when v has type T. nil leaves dst untouched.
func assign[T any](dst *T, kind Kind, field string, v any) error {
	if v == nil {
		return nil
	}
	t, ok := v.(T)
	if !ok {
		return &InvalidArgumentError{Kind: kind, Field: field, Expected: typeName[T](), Got: describe(v)}
	}
	*dst = t
	return nil
}

// assignList accepts a NodeList[T], a []T or a []Node whose elements are all T.
func assignList[T Node](dst *NodeList[T], kind Kind, field string, v any) error {
	switch l := v.(type) {
	case nil:
		return nil
	case NodeList[T]:
		*dst = l
		return nil
	case []T:
		*dst = NodeList[T](l)
		return nil
	case []Node:
		out := make(NodeList[T], len(l))
		for i, item := range l {
			t, ok := item.(T)
			if !ok {
				return &InvalidArgumentError{
					Kind:     kind,
					Field:    fmt.Sprintf("%s[%d]", field, i),
					Expected: typeName[T](),
					Got:      describe(item),
				}
			}
			out[i] = t
		}
		*dst = out
		return nil
	}
	return &InvalidArgumentError{Kind: kind, Field: field, Expected: "list of " + typeName[T](), Got: describe(v)}
}
