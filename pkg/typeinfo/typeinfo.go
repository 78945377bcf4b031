// Package typeinfo tracks which schema types apply at the current point of a
// document walk.
//
// The tracker keeps a stack of frames. Entering a type-bearing node pushes a
// frame that starts as a copy of the enclosing one; leaving the same node pops
// it. Nodes of other kinds leave the stack untouched.
package typeinfo

import (
	"github.com/samwightt/gqlcheck/pkg/ast"
	"github.com/samwightt/gqlcheck/pkg/schema"
)

// Frame is the type context at one nesting level.
type Frame struct {
	Type        *schema.TypeRef
	ParentType  *schema.Type
	FieldDef    *schema.Field
	Argument    *schema.InputValue
	Directive   *schema.Directive
	InputType   *schema.TypeRef
	InDirective bool
}

// DirectiveLookup resolves a directive definition by name.
type DirectiveLookup func(name string) *schema.Directive

// Tracker maintains the type context for a walk. It is not safe for
// concurrent use; use one tracker per walk.
type Tracker struct {
	schema     *schema.Schema
	directives DirectiveLookup
	frames     []Frame
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithDirectiveLookup replaces the schema's directive set, e.g. with the
// built-in directives plus the ones a document defines.
func WithDirectiveLookup(lookup DirectiveLookup) Option {
	return func(t *Tracker) { t.directives = lookup }
}

// New returns a tracker for s. s may be nil, in which case only directives
// resolve.
func New(s *schema.Schema, opts ...Option) *Tracker {
	t := &Tracker{schema: s, directives: s.Directive}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Depth is the number of frames currently pushed.
func (t *Tracker) Depth() int { return len(t.frames) }

func (t *Tracker) top() Frame {
	if len(t.frames) == 0 {
		return Frame{}
	}
	return t.frames[len(t.frames)-1]
}

func (t *Tracker) Type() *schema.TypeRef        { return t.top().Type }
func (t *Tracker) ParentType() *schema.Type     { return t.top().ParentType }
func (t *Tracker) FieldDef() *schema.Field      { return t.top().FieldDef }
func (t *Tracker) Argument() *schema.InputValue { return t.top().Argument }
func (t *Tracker) Directive() *schema.Directive { return t.top().Directive }
func (t *Tracker) InputType() *schema.TypeRef   { return t.top().InputType }
func (t *Tracker) InDirective() bool            { return t.top().InDirective }

// Enter pushes a frame when n is type-bearing.
func (t *Tracker) Enter(n ast.Node) {
	if !tracked(n) {
		return
	}
	f := t.top()
	switch n := n.(type) {
	case *ast.OperationDefinition:
		f.Type = nil
		if root := t.rootType(n.Operation); root != nil {
			f.Type = schema.NamedType(root.Name)
		}
	case *ast.SelectionSet:
		f.ParentType = nil
		if named := t.schema.Type(f.Type.NamedType()); named.IsComposite() {
			f.ParentType = named
		}
	case *ast.Field:
		f.FieldDef = t.fieldDef(f.ParentType, nameOf(n.Name))
		f.Type = nil
		if f.FieldDef != nil {
			f.Type = f.FieldDef.Type
		}
	case *ast.Directive:
		f.Directive = t.directives(nameOf(n.Name))
		f.InDirective = true
	case *ast.Argument:
		if f.InDirective {
			f.Argument = f.Directive.Argument(nameOf(n.Name))
		} else {
			f.Argument = f.FieldDef.Argument(nameOf(n.Name))
		}
		f.InputType = nil
		if f.Argument != nil {
			f.InputType = f.Argument.Type
		}
	case *ast.InlineFragment:
		if n.TypeCondition != nil {
			f.Type = TypeFromAST(t.schema, n.TypeCondition)
		} else if name := f.Type.NamedType(); name != "" {
			f.Type = schema.NamedType(name)
		}
	case *ast.FragmentDefinition:
		f.Type = TypeFromAST(t.schema, n.TypeCondition)
	case *ast.VariableDefinition:
		f.InputType = TypeFromAST(t.schema, n.Type)
	case *ast.ListValue:
		list := f.InputType
		if list.IsNonNull() {
			list = list.OfType
		}
		if list != nil && list.Kind == schema.TypeRefKindList {
			list = list.OfType
		}
		f.InputType = list
	case *ast.ObjectField:
		var field *schema.InputValue
		if obj := t.schema.Type(f.InputType.NamedType()); obj != nil && obj.Kind == schema.TypeKindInputObject {
			field = obj.InputField(nameOf(n.Name))
		}
		f.InputType = nil
		if field != nil {
			f.InputType = field.Type
		}
	}
	t.frames = append(t.frames, f)
}

// Leave pops the frame pushed when n was entered.
func (t *Tracker) Leave(n ast.Node) {
	if !tracked(n) || len(t.frames) == 0 {
		return
	}
	t.frames = t.frames[:len(t.frames)-1]
}

func tracked(n ast.Node) bool {
	switch n.(type) {
	case *ast.OperationDefinition, *ast.SelectionSet, *ast.Field, *ast.Directive,
		*ast.Argument, *ast.InlineFragment, *ast.FragmentDefinition,
		*ast.VariableDefinition, *ast.ListValue, *ast.ObjectField:
		return true
	}
	return false
}

func (t *Tracker) rootType(op ast.Operation) *schema.Type {
	if t.schema == nil {
		return nil
	}
	if op == "" {
		op = ast.OperationQuery
	}
	return t.schema.RootType(op)
}

func (t *Tracker) fieldDef(parent *schema.Type, name string) *schema.Field {
	if parent == nil {
		return nil
	}
	switch name {
	case typenameMetaField.Name:
		return typenameMetaField
	case schemaMetaField.Name, typeMetaField.Name:
		if t.schema != nil && parent.Name == t.schema.QueryType {
			if name == schemaMetaField.Name {
				return schemaMetaField
			}
			return typeMetaField
		}
	}
	return parent.Field(name)
}

func nameOf(n *ast.Name) string {
	if n == nil {
		return ""
	}
	return n.Value
}

// TypeFromAST resolves a type reference written in a document against s.
// It returns nil when the named type is not in the schema.
func TypeFromAST(s *schema.Schema, typ ast.Type) *schema.TypeRef {
	switch typ := typ.(type) {
	case *ast.NamedType:
		if typ == nil || s.Type(nameOf(typ.Name)) == nil {
			return nil
		}
		return schema.NamedType(typ.Name.Value)
	case *ast.ListType:
		if typ == nil {
			return nil
		}
		if inner := TypeFromAST(s, typ.Type); inner != nil {
			return schema.ListType(inner)
		}
	case *ast.NonNullType:
		if typ == nil {
			return nil
		}
		if inner := TypeFromAST(s, typ.Type); inner != nil {
			return schema.NonNullType(inner)
		}
	}
	return nil
}

var typenameMetaField = &schema.Field{
	Name:        "__typename",
	Description: "The name of the current Object type at runtime.",
	Type:        schema.NonNullType(schema.NamedType("String")),
}

var schemaMetaField = &schema.Field{
	Name:        "__schema",
	Description: "Access the current type schema of this server.",
	Type:        schema.NonNullType(schema.NamedType("__Schema")),
}

var typeMetaField = &schema.Field{
	Name:        "__type",
	Description: "Request the type information of a single type.",
	Type:        schema.NamedType("__Type"),
	Arguments: []*schema.InputValue{
		{Name: "name", Type: schema.NonNullType(schema.NamedType("String"))},
	},
}
