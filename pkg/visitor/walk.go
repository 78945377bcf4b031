package visitor

import (
	"fmt"

	"github.com/samwightt/gqlcheck/pkg/ast"
)

// DefaultMaxDepth bounds node nesting when no other limit is configured.
const DefaultMaxDepth = 512

// Tracker observes the walk in lock-step with the handlers. Enter runs
// before the enter handlers of a node and Leave after its leave handlers.
// Leave also runs for every entered node when a walk is stopped, so a
// tracker's state is balanced once Walk returns.
type Tracker interface {
	Enter(n ast.Node)
	Leave(n ast.Node)
}

// DepthError is returned by Walk when nodes are nested deeper than allowed.
type DepthError struct {
	MaxDepth int
	Node     ast.Node // first node past the limit
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("document is too deeply nested (maximum depth %d)", e.MaxDepth)
}

type options struct {
	tracker  Tracker
	maxDepth int
}

// Option configures a walk.
type Option func(*options)

// WithTracker registers a tracker for the walk.
func WithTracker(t Tracker) Option {
	return func(o *options) { o.tracker = t }
}

// WithMaxDepth limits node nesting. The root is at depth 1. A limit of zero
// or less disables the check.
func WithMaxDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}

type walker struct {
	table *Table
	options
	err error
}

// Walk visits root and everything below it using the handlers in t. It
// returns a *DepthError when the depth limit is exceeded; a Stop action ends
// the walk without error.
func Walk(root ast.Node, t *Table, opts ...Option) error {
	w := &walker{table: t, options: options{maxDepth: DefaultMaxDepth}}
	for _, opt := range opts {
		opt(&w.options)
	}
	w.walk(root, 1)
	return w.err
}

// walk reports whether the walk was stopped.
func (w *walker) walk(n ast.Node, depth int) bool {
	if w.maxDepth > 0 && depth > w.maxDepth {
		w.err = &DepthError{MaxDepth: w.maxDepth, Node: n}
		return true
	}
	if w.tracker != nil {
		w.tracker.Enter(n)
		defer w.tracker.Leave(n)
	}

	kind := n.Kind()
	switch run(w.table.enter[kind], n) {
	case Stop:
		return true
	case Skip:
	default:
		for _, child := range ast.Children(n) {
			if w.walk(child, depth+1) {
				return true
			}
		}
	}
	return run(w.table.leave[kind], n) == Stop
}
