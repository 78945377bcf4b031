// Package validator checks GraphQL documents against a schema. All rules of a
// run share one walk of the document, kept in step with a type tracker, and
// report their findings as data.
package validator

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/samwightt/gqlcheck/pkg/ast"
	"github.com/samwightt/gqlcheck/pkg/schema"
	"github.com/samwightt/gqlcheck/pkg/visitor"
)

// MaxDepthRule is the rule name of the error reported when a document is
// nested deeper than the configured limit.
const MaxDepthRule = "MaxDepth"

type options struct {
	maxDepth int
	logger   *zap.Logger
}

// Option configures Validate.
type Option func(*options)

// WithMaxDepth limits node nesting. Zero or less disables the limit.
func WithMaxDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}

// WithLogger sets the logger used for debug output. It defaults to a no-op
// logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Validate runs rules over doc and returns the errors in the order they were
// found. A nil rules slice runs SpecifiedRules. s may be nil for schema
// definition language documents; directives are then checked against the
// built-in set and the document's own definitions.
//
// Validate panics with an *ast.InvalidArgumentError when doc is nil.
func Validate(s *schema.Schema, doc *ast.Document, rules []Rule, opts ...Option) []*Error {
	if doc == nil {
		panic(ast.NewInvalidArgument("Document", nil))
	}
	o := options{maxDepth: visitor.DefaultMaxDepth, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if rules == nil {
		rules = SpecifiedRules()
	}

	ctx := NewContext(s, doc)
	ctx.logger = o.logger
	table := visitor.NewTable()
	for _, r := range rules {
		table.Add(r.Visitor(ctx))
	}

	start := time.Now()
	err := visitor.Walk(doc, table, visitor.WithTracker(ctx.tracker), visitor.WithMaxDepth(o.maxDepth))
	var depthErr *visitor.DepthError
	switch {
	case errors.As(err, &depthErr):
		ctx.ReportError(&Error{
			Message: fmt.Sprintf("Document is too deeply nested (maximum depth %d).", depthErr.MaxDepth),
			Nodes:   []ast.Node{depthErr.Node},
			Rule:    MaxDepthRule,
		})
	case err != nil:
		panic(fmt.Sprintf("validator: walk failed: %v", err))
	}

	o.logger.Debug("validated document",
		zap.Int("rules", len(rules)),
		zap.Int("errors", len(ctx.errors)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return ctx.Errors()
}
