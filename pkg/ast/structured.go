package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   string
	Value any
}

// Map is an insertion ordered map. Values are strings, bools, ints, Maps or
// []any holding Maps.
type Map []Entry

// Get returns the value stored under key.
func (m Map) Get(key string) (any, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in insertion order.
func (m Map) Keys() []string {
	keys := make([]string, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}
	return keys
}

// WithoutLocations returns a copy of m with every "loc" entry removed at any
// depth.
func (m Map) WithoutLocations() Map {
	out := make(Map, 0, len(m))
	for _, e := range m {
		if e.Key == "loc" {
			continue
		}
		out = append(out, Entry{Key: e.Key, Value: stripLocations(e.Value)})
	}
	return out
}

func stripLocations(v any) any {
	switch v := v.(type) {
	case Map:
		return v.WithoutLocations()
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = stripLocations(item)
		}
		return out
	default:
		return v
	}
}

// MarshalJSON writes the entries as a JSON object in insertion order.
func (m Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ToStructured converts n and everything it owns into a generic ordered map:
// "kind" first, then the declared fields, then "loc". Absent children and
// empty lists are left out, as is the source text behind a Location.
func ToStructured(n Node) Map {
	if isNil(n) {
		return nil
	}
	m := Map{{Key: "kind", Value: n.Kind().String()}}
	switch n := n.(type) {
	case *Name:
		m = m.with("value", n.Value)
	case *Document:
		m = withList(m, "definitions", n.Definitions)
	case *OperationDefinition:
		m = m.with("operation", string(n.Operation))
		m = m.withNode("name", n.Name)
		m = withList(m, "variableDefinitions", n.VariableDefinitions)
		m = withList(m, "directives", n.Directives)
		m = m.withNode("selectionSet", n.SelectionSet)
	case *VariableDefinition:
		m = m.withNode("variable", n.Variable)
		m = m.withNode("type", n.Type)
		m = m.withNode("defaultValue", n.DefaultValue)
		m = withList(m, "directives", n.Directives)
	case *Variable:
		m = m.withNode("name", n.Name)
	case *SelectionSet:
		m = withList(m, "selections", n.Selections)
	case *Field:
		m = m.withNode("alias", n.Alias)
		m = m.withNode("name", n.Name)
		m = withList(m, "arguments", n.Arguments)
		m = withList(m, "directives", n.Directives)
		m = m.withNode("selectionSet", n.SelectionSet)
	case *Argument:
		m = m.withNode("name", n.Name)
		m = m.withNode("value", n.Value)
	case *FragmentSpread:
		m = m.withNode("name", n.Name)
		m = withList(m, "directives", n.Directives)
	case *InlineFragment:
		m = m.withNode("typeCondition", n.TypeCondition)
		m = withList(m, "directives", n.Directives)
		m = m.withNode("selectionSet", n.SelectionSet)
	case *FragmentDefinition:
		m = m.withNode("name", n.Name)
		m = withList(m, "variableDefinitions", n.VariableDefinitions)
		m = m.withNode("typeCondition", n.TypeCondition)
		m = withList(m, "directives", n.Directives)
		m = m.withNode("selectionSet", n.SelectionSet)
	case *IntValue:
		m = m.with("value", n.Value)
	case *FloatValue:
		m = m.with("value", n.Value)
	case *StringValue:
		m = m.with("value", n.Value)
		if n.Block {
			m = m.with("block", true)
		}
	case *BooleanValue:
		m = m.with("value", n.Value)
	case *NullValue:
	case *EnumValue:
		m = m.with("value", n.Value)
	case *ListValue:
		m = withList(m, "values", n.Values)
	case *ObjectValue:
		m = withList(m, "fields", n.Fields)
	case *ObjectField:
		m = m.withNode("name", n.Name)
		m = m.withNode("value", n.Value)
	case *Directive:
		m = m.withNode("name", n.Name)
		m = withList(m, "arguments", n.Arguments)
	case *NamedType:
		m = m.withNode("name", n.Name)
	case *ListType:
		m = m.withNode("type", n.Type)
	case *NonNullType:
		m = m.withNode("type", n.Type)
	case *DirectiveDefinition:
		m = m.withNode("description", n.Description)
		m = m.withNode("name", n.Name)
		m = withList(m, "arguments", n.Arguments)
		m = m.with("repeatable", n.Repeatable)
		m = withList(m, "locations", n.Locations)
	case *InputValueDefinition:
		m = m.withNode("description", n.Description)
		m = m.withNode("name", n.Name)
		m = m.withNode("type", n.Type)
		m = m.withNode("defaultValue", n.DefaultValue)
		m = withList(m, "directives", n.Directives)
	default:
		panic(fmt.Sprintf("ast: cannot convert %T", n))
	}
	if loc := n.Location(); loc != nil {
		m = m.with("loc", loc.structured())
	}
	return m
}

// String renders n as compact JSON of its structured form.
func String(n Node) string {
	b, err := json.Marshal(ToStructured(n))
	if err != nil {
		return fmt.Sprintf("<%s>", n.Kind())
	}
	return string(b)
}

// Equal reports whether a and b are structurally equal, ignoring locations.
func Equal(a, b Node) bool {
	x, err := json.Marshal(ToStructured(a).WithoutLocations())
	if err != nil {
		return false
	}
	y, err := json.Marshal(ToStructured(b).WithoutLocations())
	if err != nil {
		return false
	}
	return bytes.Equal(x, y)
}

func (m Map) with(key string, v any) Map {
	return append(m, Entry{Key: key, Value: v})
}

func (m Map) withNode(key string, n Node) Map {
	if isNil(n) {
		return m
	}
	return m.with(key, ToStructured(n))
}

func withList[T Node](m Map, key string, l NodeList[T]) Map {
	if len(l) == 0 {
		return m
	}
	items := make([]any, len(l))
	for i, n := range l {
		items[i] = ToStructured(n)
	}
	return m.with(key, items)
}
