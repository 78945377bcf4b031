package validator

import (
	"go.uber.org/zap"

	"github.com/samwightt/gqlcheck/pkg/ast"
	"github.com/samwightt/gqlcheck/pkg/printer"
	"github.com/samwightt/gqlcheck/pkg/schema"
	"github.com/samwightt/gqlcheck/pkg/typeinfo"
)

// Context is the state of one validation run. Rules read the schema, the
// document and the type tracker through it and append errors to it.
//
// A Context is used by a single walk; it is not safe for concurrent use.
type Context struct {
	schema   *schema.Schema
	document *ast.Document
	tracker  *typeinfo.Tracker
	logger   *zap.Logger

	fragments  map[string]*ast.FragmentDefinition
	directives map[string]*schema.Directive
	errors     []*Error
}

// NewContext returns a context for validating doc against s. s may be nil
// when validating schema definition language on its own.
func NewContext(s *schema.Schema, doc *ast.Document) *Context {
	c := &Context{schema: s, document: doc, logger: zap.NewNop()}
	c.tracker = typeinfo.New(s, typeinfo.WithDirectiveLookup(c.Directive))
	return c
}

func (c *Context) Schema() *schema.Schema     { return c.schema }
func (c *Context) Document() *ast.Document    { return c.document }
func (c *Context) Tracker() *typeinfo.Tracker { return c.tracker }

// ReportError appends err to the error list.
func (c *Context) ReportError(err *Error) {
	c.logger.Debug("validation error",
		zap.String("rule", err.Rule),
		zap.String("message", err.Message),
	)
	c.errors = append(c.errors, err)
}

// Errors returns the errors reported so far, in report order.
func (c *Context) Errors() []*Error { return c.errors }

// Fragment returns the fragment definition named name, or nil. The lookup
// table is built on first use. When a name is defined more than once the
// first definition wins; UniqueFragmentNames reports the others.
func (c *Context) Fragment(name string) *ast.FragmentDefinition {
	if c.fragments == nil {
		c.fragments = make(map[string]*ast.FragmentDefinition)
		for _, frag := range c.document.Fragments() {
			if frag.Name == nil {
				continue
			}
			if _, ok := c.fragments[frag.Name.Value]; !ok {
				c.fragments[frag.Name.Value] = frag
			}
		}
	}
	return c.fragments[name]
}

// Directive returns the known directive named name, or nil. Known
// directives are the schema's (the built-in set without a schema) with
// directive definitions in the document added or replacing them by name.
func (c *Context) Directive(name string) *schema.Directive {
	if c.directives == nil {
		base := schema.BuiltinDirectives()
		if c.schema != nil {
			base = c.schema.DirectiveList()
		}
		c.directives = make(map[string]*schema.Directive, len(base))
		for _, d := range base {
			c.directives[d.Name] = d
		}
		for _, def := range c.document.DirectiveDefinitions() {
			d := directiveFromAST(def)
			c.directives[d.Name] = d
		}
	}
	return c.directives[name]
}

func (c *Context) Type() *schema.TypeRef           { return c.tracker.Type() }
func (c *Context) ParentType() *schema.Type        { return c.tracker.ParentType() }
func (c *Context) FieldDef() *schema.Field         { return c.tracker.FieldDef() }
func (c *Context) Argument() *schema.InputValue    { return c.tracker.Argument() }
func (c *Context) DirectiveDef() *schema.Directive { return c.tracker.Directive() }
func (c *Context) InputType() *schema.TypeRef      { return c.tracker.InputType() }
func (c *Context) InDirective() bool               { return c.tracker.InDirective() }

func directiveFromAST(def *ast.DirectiveDefinition) *schema.Directive {
	d := &schema.Directive{Name: nameOf(def.Name), IsRepeatable: def.Repeatable}
	if def.Description != nil {
		d.Description = def.Description.Value
	}
	for _, loc := range def.Locations {
		d.Locations = append(d.Locations, nameOf(loc))
	}
	for _, arg := range def.Arguments {
		v := &schema.InputValue{Name: nameOf(arg.Name), Type: refFromAST(arg.Type)}
		if arg.Description != nil {
			v.Description = arg.Description.Value
		}
		if arg.DefaultValue != nil {
			v.DefaultValue = printer.Print(arg.DefaultValue)
			v.HasDefault = true
		}
		d.Arguments = append(d.Arguments, v)
	}
	return d
}

// refFromAST converts a type reference without resolving names, so it
// works when there is no schema.
func refFromAST(t ast.Type) *schema.TypeRef {
	switch t := t.(type) {
	case *ast.NamedType:
		if t == nil {
			return nil
		}
		return schema.NamedType(nameOf(t.Name))
	case *ast.ListType:
		if t == nil {
			return nil
		}
		return schema.ListType(refFromAST(t.Type))
	case *ast.NonNullType:
		if t == nil {
			return nil
		}
		return schema.NonNullType(refFromAST(t.Type))
	}
	return nil
}

func nameOf(n *ast.Name) string {
	if n == nil {
		return ""
	}
	return n.Value
}
