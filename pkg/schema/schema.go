// Package schema is the read-only schema model validation runs against.
// A Schema is built once and may be shared by any number of validation runs.
package schema

import (
	"sort"

	"github.com/samwightt/gqlcheck/pkg/ast"
)

// Schema represents the complete GraphQL schema
type Schema struct {
	QueryType        string
	MutationType     string
	SubscriptionType string
	Types            map[string]*Type // All named types keyed by name
	Directives       map[string]*Directive
}

// Type returns the named type, or nil.
func (s *Schema) Type(name string) *Type {
	if s == nil {
		return nil
	}
	return s.Types[name]
}

// Directive returns the directive definition, or nil.
func (s *Schema) Directive(name string) *Directive {
	if s == nil {
		return nil
	}
	return s.Directives[name]
}

// DirectiveList returns every directive sorted by name.
func (s *Schema) DirectiveList() []*Directive {
	out := make([]*Directive, 0, len(s.Directives))
	for _, d := range s.Directives {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// TypeNames returns the names of all types, sorted.
func (s *Schema) TypeNames() []string {
	names := make([]string, 0, len(s.Types))
	for name := range s.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RootType returns the root type for an operation (may be nil if absent)
func (s *Schema) RootType(op ast.Operation) *Type {
	switch op {
	case ast.OperationQuery:
		return s.Type(s.QueryType)
	case ast.OperationMutation:
		return s.Type(s.MutationType)
	case ast.OperationSubscription:
		return s.Type(s.SubscriptionType)
	}
	return nil
}

// Type is a named GraphQL type (object, interface, union, scalar, enum, input)
type Type struct {
	Name          string
	Kind          TypeKind
	Description   string
	Fields        []*Field      // For OBJECT and INTERFACE
	Interfaces    []string      // For OBJECT and INTERFACE
	PossibleTypes []string      // For INTERFACE and UNION
	EnumValues    []string      // For ENUM
	InputFields   []*InputValue // For INPUT_OBJECT
}

// Field returns the field with the given name, or nil.
func (t *Type) Field(name string) *Field {
	if t == nil {
		return nil
	}
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// InputField returns the input field with the given name, or nil.
func (t *Type) InputField(name string) *InputValue {
	if t == nil {
		return nil
	}
	for _, f := range t.InputFields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// IsComposite reports whether selections can be made on the type.
func (t *Type) IsComposite() bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case TypeKindObject, TypeKindInterface, TypeKindUnion:
		return true
	}
	return false
}

// IsInput reports whether the type can be used as an argument or variable.
func (t *Type) IsInput() bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case TypeKindScalar, TypeKindEnum, TypeKindInputObject:
		return true
	}
	return false
}

// TypeKind represents the kind of GraphQL type
type TypeKind string

const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindInterface   TypeKind = "INTERFACE"
	TypeKindUnion       TypeKind = "UNION"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
)

// Field represents a field on an object or interface
type Field struct {
	Name        string
	Description string
	Type        *TypeRef
	Arguments   []*InputValue
}

// Argument returns the argument definition with the given name, or nil.
func (f *Field) Argument(name string) *InputValue {
	if f == nil {
		return nil
	}
	return findInputValue(f.Arguments, name)
}

// ArgumentNames returns the declared argument names in order.
func (f *Field) ArgumentNames() []string { return inputValueNames(f.Arguments) }

// InputValue is an argument or input object field definition.
type InputValue struct {
	Name         string
	Description  string
	Type         *TypeRef
	DefaultValue string // GraphQL literal, set when HasDefault
	HasDefault   bool
}

// IsRequired reports whether a value must be provided: the type is non-null
// and there is no default.
func (v *InputValue) IsRequired() bool {
	return v != nil && v.Type.IsNonNull() && !v.HasDefault
}

type Directive struct {
	Name         string
	Description  string
	Locations    []string
	Arguments    []*InputValue
	IsRepeatable bool
}

// Argument returns the argument definition with the given name, or nil.
func (d *Directive) Argument(name string) *InputValue {
	if d == nil {
		return nil
	}
	return findInputValue(d.Arguments, name)
}

// ArgumentNames returns the declared argument names in order.
func (d *Directive) ArgumentNames() []string { return inputValueNames(d.Arguments) }

func findInputValue(values []*InputValue, name string) *InputValue {
	for _, v := range values {
		if v.Name == name {
			return v
		}
	}
	return nil
}

func inputValueNames(values []*InputValue) []string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = v.Name
	}
	return names
}

// TypeRef represents a reference to a type (can be wrapped)
type TypeRef struct {
	Kind   TypeRefKind
	OfType *TypeRef // For List and NonNull
	Named  string   // For named types
}

type TypeRefKind string

const (
	TypeRefKindNamed   TypeRefKind = "NAMED"
	TypeRefKindList    TypeRefKind = "LIST"
	TypeRefKindNonNull TypeRefKind = "NON_NULL"
)

func NonNullType(t *TypeRef) *TypeRef { return &TypeRef{Kind: TypeRefKindNonNull, OfType: t} }
func ListType(t *TypeRef) *TypeRef    { return &TypeRef{Kind: TypeRefKindList, OfType: t} }
func NamedType(name string) *TypeRef  { return &TypeRef{Kind: TypeRefKindNamed, Named: name} }

func (t *TypeRef) IsNonNull() bool {
	return t != nil && t.Kind == TypeRefKindNonNull
}

func (t *TypeRef) IsList() bool {
	if t == nil {
		return false
	}
	if t.Kind == TypeRefKindList {
		return true
	}
	return t.Kind == TypeRefKindNonNull && t.OfType != nil && t.OfType.Kind == TypeRefKindList
}

// Unwrap removes one layer of Non-Null or List wrapping.
func (t *TypeRef) Unwrap() *TypeRef {
	if t != nil && (t.Kind == TypeRefKindNonNull || t.Kind == TypeRefKindList) {
		return t.OfType
	}
	return t
}

// NamedType returns the innermost named type.
func (t *TypeRef) NamedType() string {
	for current := t; current != nil; current = current.OfType {
		if current.Kind == TypeRefKindNamed {
			return current.Named
		}
	}
	return ""
}

// String renders the reference in GraphQL notation, e.g. "[Int!]!".
func (t *TypeRef) String() string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case TypeRefKindNonNull:
		return t.OfType.String() + "!"
	case TypeRefKindList:
		return "[" + t.OfType.String() + "]"
	}
	return t.Named
}
