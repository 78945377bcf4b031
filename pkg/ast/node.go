// Package ast is the node model for GraphQL documents: a closed set of node
// variants, ordered node lists and source locations.
//
// Trees are built by the parser adapter in package language (or by hand in
// tests) and are only read during validation.
package ast

// Node is implemented by every variant in this package and nothing else.
type Node interface {
	Kind() Kind
	Location() *Location
	sealed()
}

// Definition is a top level entry of a Document.
type Definition interface {
	Node
	definitionNode()
}

// Selection is an entry of a SelectionSet.
type Selection interface {
	Node
	selectionNode()
}

// Value is an input value literal or a variable reference.
type Value interface {
	Node
	valueNode()
}

// Type is a type reference: named, list or non-null.
type Type interface {
	Node
	typeNode()
}

type base struct {
	Loc *Location
}

func (b *base) Location() *Location { return b.Loc }
func (*base) sealed()               {}

// Operation is the operation type keyword of an OperationDefinition.
type Operation string

const (
	OperationQuery        Operation = "query"
	OperationMutation     Operation = "mutation"
	OperationSubscription Operation = "subscription"
)

type Name struct {
	base
	Value string
}

type Document struct {
	base
	Definitions NodeList[Definition]
}

type OperationDefinition struct {
	base
	Operation           Operation
	Name                *Name
	VariableDefinitions NodeList[*VariableDefinition]
	Directives          NodeList[*Directive]
	SelectionSet        *SelectionSet
}

type VariableDefinition struct {
	base
	Variable     *Variable
	Type         Type
	DefaultValue Value
	Directives   NodeList[*Directive]
}

type Variable struct {
	base
	Name *Name
}

type SelectionSet struct {
	base
	Selections NodeList[Selection]
}

type Field struct {
	base
	Alias        *Name
	Name         *Name
	Arguments    NodeList[*Argument]
	Directives   NodeList[*Directive]
	SelectionSet *SelectionSet
}

type Argument struct {
	base
	Name  *Name
	Value Value
}

type FragmentSpread struct {
	base
	Name       *Name
	Directives NodeList[*Directive]
}

// InlineFragment has a nil TypeCondition when written as `... { }`.
type InlineFragment struct {
	base
	TypeCondition *NamedType
	Directives    NodeList[*Directive]
	SelectionSet  *SelectionSet
}

type FragmentDefinition struct {
	base
	Name                *Name
	VariableDefinitions NodeList[*VariableDefinition]
	TypeCondition       *NamedType
	Directives          NodeList[*Directive]
	SelectionSet        *SelectionSet
}

type IntValue struct {
	base
	Value string
}

type FloatValue struct {
	base
	Value string
}

type StringValue struct {
	base
	Value string
	Block bool
}

type BooleanValue struct {
	base
	Value bool
}

type NullValue struct {
	base
}

type EnumValue struct {
	base
	Value string
}

type ListValue struct {
	base
	Values NodeList[Value]
}

type ObjectValue struct {
	base
	Fields NodeList[*ObjectField]
}

type ObjectField struct {
	base
	Name  *Name
	Value Value
}

type Directive struct {
	base
	Name      *Name
	Arguments NodeList[*Argument]
}

type NamedType struct {
	base
	Name *Name
}

type ListType struct {
	base
	Type Type
}

type NonNullType struct {
	base
	Type Type
}

// DirectiveDefinition only appears in schema definition language documents.
type DirectiveDefinition struct {
	base
	Description *StringValue
	Name        *Name
	Arguments   NodeList[*InputValueDefinition]
	Repeatable  bool
	Locations   NodeList[*Name]
}

type InputValueDefinition struct {
	base
	Description  *StringValue
	Name         *Name
	Type         Type
	DefaultValue Value
	Directives   NodeList[*Directive]
}

func (*Name) Kind() Kind                 { return KindName }
func (*Document) Kind() Kind             { return KindDocument }
func (*OperationDefinition) Kind() Kind  { return KindOperationDefinition }
func (*VariableDefinition) Kind() Kind   { return KindVariableDefinition }
func (*Variable) Kind() Kind             { return KindVariable }
func (*SelectionSet) Kind() Kind         { return KindSelectionSet }
func (*Field) Kind() Kind                { return KindField }
func (*Argument) Kind() Kind             { return KindArgument }
func (*FragmentSpread) Kind() Kind       { return KindFragmentSpread }
func (*InlineFragment) Kind() Kind       { return KindInlineFragment }
func (*FragmentDefinition) Kind() Kind   { return KindFragmentDefinition }
func (*IntValue) Kind() Kind             { return KindIntValue }
func (*FloatValue) Kind() Kind           { return KindFloatValue }
func (*StringValue) Kind() Kind          { return KindStringValue }
func (*BooleanValue) Kind() Kind         { return KindBooleanValue }
func (*NullValue) Kind() Kind            { return KindNullValue }
func (*EnumValue) Kind() Kind            { return KindEnumValue }
func (*ListValue) Kind() Kind            { return KindListValue }
func (*ObjectValue) Kind() Kind          { return KindObjectValue }
func (*ObjectField) Kind() Kind          { return KindObjectField }
func (*Directive) Kind() Kind            { return KindDirective }
func (*NamedType) Kind() Kind            { return KindNamedType }
func (*ListType) Kind() Kind             { return KindListType }
func (*NonNullType) Kind() Kind          { return KindNonNullType }
func (*DirectiveDefinition) Kind() Kind  { return KindDirectiveDefinition }
func (*InputValueDefinition) Kind() Kind { return KindInputValueDefinition }

func (*OperationDefinition) definitionNode() {}
func (*FragmentDefinition) definitionNode()  {}
func (*DirectiveDefinition) definitionNode() {}

func (*Field) selectionNode()          {}
func (*FragmentSpread) selectionNode() {}
func (*InlineFragment) selectionNode() {}

func (*Variable) valueNode()     {}
func (*IntValue) valueNode()     {}
func (*FloatValue) valueNode()   {}
func (*StringValue) valueNode()  {}
func (*BooleanValue) valueNode() {}
func (*NullValue) valueNode()    {}
func (*EnumValue) valueNode()    {}
func (*ListValue) valueNode()    {}
func (*ObjectValue) valueNode()  {}

func (*NamedType) typeNode()   {}
func (*ListType) typeNode()    {}
func (*NonNullType) typeNode() {}

// NewName returns a Name node without location.
func NewName(value string) *Name { return &Name{Value: value} }

// NewNamedType returns a NamedType node referring to name.
func NewNamedType(name string) *NamedType { return &NamedType{Name: NewName(name)} }

// Operations returns the operation definitions of the document in order.
func (d *Document) Operations() []*OperationDefinition {
	var out []*OperationDefinition
	for _, def := range d.Definitions {
		if op, ok := def.(*OperationDefinition); ok {
			out = append(out, op)
		}
	}
	return out
}

// Fragments returns the fragment definitions of the document in order.
func (d *Document) Fragments() []*FragmentDefinition {
	var out []*FragmentDefinition
	for _, def := range d.Definitions {
		if frag, ok := def.(*FragmentDefinition); ok {
			out = append(out, frag)
		}
	}
	return out
}

// DirectiveDefinitions returns the directive definitions of the document in order.
func (d *Document) DirectiveDefinitions() []*DirectiveDefinition {
	var out []*DirectiveDefinition
	for _, def := range d.Definitions {
		if dir, ok := def.(*DirectiveDefinition); ok {
			out = append(out, dir)
		}
	}
	return out
}
