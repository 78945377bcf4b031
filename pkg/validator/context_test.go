package validator

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samwightt/gqlcheck/pkg/ast"
	"github.com/samwightt/gqlcheck/pkg/language"
	"github.com/samwightt/gqlcheck/pkg/schema"
	"github.com/samwightt/gqlcheck/pkg/visitor"
)

func mustParse(t *testing.T, src string) *ast.Document {
	t.Helper()
	doc, err := language.ParseQuery("query.graphql", src)
	require.NoError(t, err)
	return doc
}

func TestContext_FragmentFirstDefinitionWins(t *testing.T) {
	doc := mustParse(t, `
fragment F on User { id }
fragment G on User { id }
fragment F on Post { id }
`)
	ctx := NewContext(nil, doc)

	f := ctx.Fragment("F")
	require.NotNil(t, f)
	assert.Equal(t, "User", f.TypeCondition.Name.Value)
	assert.Same(t, doc.Fragments()[0], f)
	assert.Same(t, f, ctx.Fragment("F"))
	assert.NotNil(t, ctx.Fragment("G"))
	assert.Nil(t, ctx.Fragment("Missing"))
}

func TestContext_FragmentTableIsBuiltOnce(t *testing.T) {
	doc := mustParse(t, `fragment F on User { id }`)
	ctx := NewContext(nil, doc)
	require.NotNil(t, ctx.Fragment("F"))

	doc.Definitions = nil
	assert.NotNil(t, ctx.Fragment("F"))
}

func TestContext_DirectiveWithoutSchema(t *testing.T) {
	doc := mustParse(t, `{ a }`)
	defs, err := language.ParseDirectiveDefinitions("d.graphql", `
"Requires a role."
directive @auth(role: [String!]! = ["admin"], note: String) repeatable on FIELD | QUERY
directive @include(when: Boolean) on FIELD
`)
	require.NoError(t, err)
	for _, def := range defs {
		doc.Definitions = append(doc.Definitions, def)
	}
	ctx := NewContext(nil, doc)

	assert.NotNil(t, ctx.Directive("skip"))
	assert.NotNil(t, ctx.Directive("deprecated"))
	assert.Equal(t, []string{"when"}, ctx.Directive("include").ArgumentNames())

	auth := ctx.Directive("auth")
	require.NotNil(t, auth)
	assert.Equal(t, &schema.Directive{
		Name:        "auth",
		Description: "Requires a role.",
		Locations:   []string{"FIELD", "QUERY"},
		Arguments: []*schema.InputValue{
			{Name: "role", Type: schema.NonNullType(schema.ListType(schema.NonNullType(schema.NamedType("String")))), DefaultValue: `["admin"]`, HasDefault: true},
			{Name: "note", Type: schema.NamedType("String")},
		},
		IsRepeatable: true,
	}, auth)
	assert.False(t, auth.Arguments[0].IsRequired())
}

func TestContext_DirectiveFromSchema(t *testing.T) {
	s, err := schema.Load("schema.graphql", `
directive @cached(ttl: Int!) on FIELD
type Query { a: Int }
`)
	require.NoError(t, err)
	ctx := NewContext(s, mustParse(t, `{ a }`))

	assert.Equal(t, []string{"ttl"}, ctx.Directive("cached").ArgumentNames())
	assert.NotNil(t, ctx.Directive("skip"))
	assert.Nil(t, ctx.Directive("nope"))
}

// recordingRule records the tracker state seen through the context.
type recordingRule struct {
	seen []string
}

func (*recordingRule) Name() string        { return "Recording" }
func (*recordingRule) Description() string { return "Records what the context reports." }

func (r *recordingRule) Visitor(ctx *Context) visitor.Visitor {
	return visitor.Visitor{
		ast.KindArgument: {Enter: func(n ast.Node) visitor.Action {
			entry := nameOf(n.(*ast.Argument).Name) + ":" + ctx.InputType().String()
			if ctx.InDirective() {
				entry += "@" + ctx.DirectiveDef().Name
			} else {
				entry += " on " + ctx.ParentType().Name + "." + ctx.FieldDef().Name
			}
			r.seen = append(r.seen, entry)
			return visitor.Continue
		}},
		ast.KindDocument: {Leave: func(ast.Node) visitor.Action {
			r.seen = append(r.seen, "depth "+strconv.Itoa(ctx.Tracker().Depth()))
			return visitor.Continue
		}},
	}
}

func TestContext_RulesSeeTrackerState(t *testing.T) {
	s, err := schema.Load("schema.graphql", `
type User { name(upper: Boolean): String }
type Query { user(id: ID!): User }
`)
	require.NoError(t, err)
	rec := &recordingRule{}
	errs := Validate(s, mustParse(t, `{ user(id: 1) { name(upper: true) @skip(if: false) } }`), []Rule{rec})

	assert.Empty(t, errs)
	assert.Equal(t, []string{
		"id:ID! on Query.user",
		"upper:Boolean on User.name",
		"if:Boolean!@skip",
		"depth 0",
	}, rec.seen)
}

func TestError_Locations(t *testing.T) {
	located := ast.NewName("a")
	located.Loc = &ast.Location{Line: 2, Column: 5}
	err := &Error{Message: "boom", Nodes: []ast.Node{ast.NewName("b"), located, nil}}

	assert.Equal(t, []Location{{Line: 2, Column: 5}}, err.Locations())
	assert.Equal(t, "boom", err.Error())
	assert.Empty(t, (&Error{}).Locations())
}

func TestRegistry(t *testing.T) {
	var names []string
	for _, r := range All() {
		names = append(names, r.Name())
		assert.NotEmpty(t, r.Description())
	}
	assert.Equal(t, []string{
		"FragmentsOnCompositeTypes",
		"KnownArgumentNames",
		"KnownArgumentNamesOnDirectives",
		"KnownFragmentNames",
		"KnownTypeNames",
		"ProvidedRequiredArgumentsOnDirectives",
		"UniqueFragmentNames",
	}, names)

	r, ok := Lookup("KnownFragmentNames")
	require.True(t, ok)
	assert.Equal(t, KnownFragmentNames{}, r)

	for _, r := range SpecifiedRules() {
		_, ok := Lookup(r.Name())
		assert.True(t, ok, r.Name())
	}
}

func TestSelect(t *testing.T) {
	rules, err := Select(nil)
	require.NoError(t, err)
	assert.Equal(t, SpecifiedRules(), rules)

	rules, err = Select([]string{"UniqueFragmentNames", "KnownTypeNames"})
	require.NoError(t, err)
	assert.Equal(t, []Rule{UniqueFragmentNames{}, KnownTypeNames{}}, rules)

	_, err = Select([]string{"KnownFragmentName"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown rule "KnownFragmentName". Did you mean "KnownFragmentNames"`)
}
