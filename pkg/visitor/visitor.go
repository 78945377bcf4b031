// Package visitor walks an ast tree once while dispatching every node to the
// handlers registered for its kind.
//
// For each node the walker calls the enter handlers of its kind in the order
// they were registered, then walks the node's children in declared order,
// then calls the leave handlers. Handlers of many visitors share one walk.
package visitor

import (
	"fmt"

	"github.com/samwightt/gqlcheck/pkg/ast"
)

// Action tells the walker how to proceed after a handler returns.
type Action int

const (
	// Continue descends into the node's children as usual.
	Continue Action = iota
	// Skip does not descend into the children of the current node. Leave
	// handlers of the node still run.
	Skip
	// Stop aborts the whole walk.
	Stop
)

func (a Action) String() string {
	switch a {
	case Continue:
		return "continue"
	case Skip:
		return "skip"
	case Stop:
		return "stop"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Func handles one node.
type Func func(n ast.Node) Action

// Funcs is the pair of handlers for one node kind. Either may be nil.
type Funcs struct {
	Enter Func
	Leave Func
}

// Visitor maps node kinds to handlers.
type Visitor map[ast.Kind]Funcs

// Merge folds several visitors into one whose handlers call the handlers of
// vs in order. It lets a visitor be assembled from smaller ones.
func Merge(vs ...Visitor) Visitor {
	var enter, leave [ast.KindCount][]Func
	for _, v := range vs {
		for kind, funcs := range v {
			if !kind.Valid() {
				panic(fmt.Sprintf("visitor: invalid node kind %d", int(kind)))
			}
			if funcs.Enter != nil {
				enter[kind] = append(enter[kind], funcs.Enter)
			}
			if funcs.Leave != nil {
				leave[kind] = append(leave[kind], funcs.Leave)
			}
		}
	}
	merged := Visitor{}
	for kind := range enter {
		if len(enter[kind]) == 0 && len(leave[kind]) == 0 {
			continue
		}
		merged[ast.Kind(kind)] = Funcs{Enter: chain(enter[kind]), Leave: chain(leave[kind])}
	}
	return merged
}

func chain(fns []Func) Func {
	switch len(fns) {
	case 0:
		return nil
	case 1:
		return fns[0]
	}
	return func(n ast.Node) Action { return run(fns, n) }
}

// run calls fns in order. Stop wins immediately; Skip is reported once every
// handler has run.
func run(fns []Func, n ast.Node) Action {
	action := Continue
	for _, fn := range fns {
		switch fn(n) {
		case Stop:
			return Stop
		case Skip:
			action = Skip
		}
	}
	return action
}

// Table is the dispatch table of a walk: per kind, the concatenated enter and
// leave handlers of every visitor added to it.
type Table struct {
	enter [ast.KindCount][]Func
	leave [ast.KindCount][]Func
}

// NewTable returns a table holding the handlers of vs in order.
func NewTable(vs ...Visitor) *Table {
	t := &Table{}
	for _, v := range vs {
		t.Add(v)
	}
	return t
}

// Add appends the handlers of v after the ones already registered.
func (t *Table) Add(v Visitor) {
	// Map iteration order is random but handlers of one visitor never share a
	// kind, so per-kind order is still registration order.
	for kind, funcs := range v {
		if !kind.Valid() {
			panic(fmt.Sprintf("visitor: invalid node kind %d", int(kind)))
		}
		if funcs.Enter != nil {
			t.enter[kind] = append(t.enter[kind], funcs.Enter)
		}
		if funcs.Leave != nil {
			t.leave[kind] = append(t.leave[kind], funcs.Leave)
		}
	}
}

// Handlers returns the number of enter and leave handlers registered for kind.
func (t *Table) Handlers(kind ast.Kind) (enter, leave int) {
	return len(t.enter[kind]), len(t.leave[kind])
}
