package schema

import (
	"fmt"

	"github.com/vektah/gqlparser/v2"
	gqlast "github.com/vektah/gqlparser/v2/ast"
)

// Load parses and validates SDL and returns the corresponding Schema. The
// gqlparser prelude supplies the built-in scalars and directives.
func Load(name, sdl string) (*Schema, error) {
	parsed, err := gqlparser.LoadSchema(&gqlast.Source{Name: name, Input: sdl})
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	return FromAST(parsed), nil
}

// FromAST converts a schema loaded by gqlparser.
func FromAST(s *gqlast.Schema) *Schema {
	out := &Schema{
		Types:      make(map[string]*Type, len(s.Types)),
		Directives: make(map[string]*Directive, len(s.Directives)),
	}
	if s.Query != nil {
		out.QueryType = s.Query.Name
	}
	if s.Mutation != nil {
		out.MutationType = s.Mutation.Name
	}
	if s.Subscription != nil {
		out.SubscriptionType = s.Subscription.Name
	}
	for name, def := range s.Types {
		out.Types[name] = buildType(def)
	}
	for name, dir := range s.Directives {
		out.Directives[name] = buildDirective(dir)
	}
	return out
}

func buildType(def *gqlast.Definition) *Type {
	t := &Type{
		Name:          def.Name,
		Kind:          TypeKind(def.Kind),
		Description:   def.Description,
		Interfaces:    append([]string(nil), def.Interfaces...),
		PossibleTypes: append([]string(nil), def.Types...),
	}
	for _, v := range def.EnumValues {
		t.EnumValues = append(t.EnumValues, v.Name)
	}
	switch t.Kind {
	case TypeKindInputObject:
		for _, f := range def.Fields {
			t.InputFields = append(t.InputFields, &InputValue{
				Name:         f.Name,
				Description:  f.Description,
				Type:         BuildTypeRef(f.Type),
				DefaultValue: literal(f.DefaultValue),
				HasDefault:   f.DefaultValue != nil,
			})
		}
	case TypeKindObject, TypeKindInterface:
		for _, f := range def.Fields {
			t.Fields = append(t.Fields, buildField(f))
		}
	}
	return t
}

func buildField(def *gqlast.FieldDefinition) *Field {
	f := &Field{
		Name:        def.Name,
		Description: def.Description,
		Type:        BuildTypeRef(def.Type),
	}
	for _, arg := range def.Arguments {
		f.Arguments = append(f.Arguments, buildArgument(arg))
	}
	return f
}

func buildArgument(def *gqlast.ArgumentDefinition) *InputValue {
	return &InputValue{
		Name:         def.Name,
		Description:  def.Description,
		Type:         BuildTypeRef(def.Type),
		DefaultValue: literal(def.DefaultValue),
		HasDefault:   def.DefaultValue != nil,
	}
}

func buildDirective(def *gqlast.DirectiveDefinition) *Directive {
	d := &Directive{
		Name:         def.Name,
		Description:  def.Description,
		IsRepeatable: def.IsRepeatable,
	}
	for _, loc := range def.Locations {
		d.Locations = append(d.Locations, string(loc))
	}
	for _, arg := range def.Arguments {
		d.Arguments = append(d.Arguments, buildArgument(arg))
	}
	return d
}

// BuildTypeRef converts a gqlparser type reference.
func BuildTypeRef(t *gqlast.Type) *TypeRef {
	if t == nil {
		return nil
	}
	var ref *TypeRef
	if t.Elem != nil {
		ref = ListType(BuildTypeRef(t.Elem))
	} else {
		ref = NamedType(t.NamedType)
	}
	if t.NonNull {
		ref = NonNullType(ref)
	}
	return ref
}

func literal(v *gqlast.Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}
