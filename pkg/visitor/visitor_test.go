package visitor

import (
	"errors"
	"fmt"
	"testing"

	"github.com/samwightt/gqlcheck/pkg/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// { user(id: 1) { name } }
func testDocument() *ast.Document {
	return &ast.Document{Definitions: ast.NodeList[ast.Definition]{
		&ast.OperationDefinition{
			Operation: ast.OperationQuery,
			SelectionSet: &ast.SelectionSet{Selections: ast.NodeList[ast.Selection]{
				&ast.Field{
					Name: ast.NewName("user"),
					Arguments: ast.NodeList[*ast.Argument]{
						{Name: ast.NewName("id"), Value: &ast.IntValue{Value: "1"}},
					},
					SelectionSet: &ast.SelectionSet{Selections: ast.NodeList[ast.Selection]{
						&ast.Field{Name: ast.NewName("name")},
					}},
				},
			}},
		},
	}}
}

func label(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Name:
		return "Name:" + n.Value
	case *ast.Field:
		return "Field:" + n.Name.Value
	}
	return n.Kind().String()
}

type recorder struct {
	events []string
}

func (r *recorder) visitor(kinds ...ast.Kind) Visitor {
	v := Visitor{}
	for _, k := range kinds {
		v[k] = Funcs{
			Enter: func(n ast.Node) Action {
				r.events = append(r.events, "enter "+label(n))
				return Continue
			},
			Leave: func(n ast.Node) Action {
				r.events = append(r.events, "leave "+label(n))
				return Continue
			},
		}
	}
	return v
}

func allKinds() []ast.Kind {
	var kinds []ast.Kind
	for k := ast.KindName; int(k) < ast.KindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

type countingTracker struct {
	depth    int
	maxDepth int
	events   []string
}

func (c *countingTracker) Enter(n ast.Node) {
	c.depth++
	if c.depth > c.maxDepth {
		c.maxDepth = c.depth
	}
	c.events = append(c.events, "track-enter "+label(n))
}

func (c *countingTracker) Leave(n ast.Node) {
	c.depth--
	c.events = append(c.events, "track-leave "+label(n))
}

func TestWalk_EnterChildrenLeaveOrder(t *testing.T) {
	r := &recorder{}
	err := Walk(testDocument(), NewTable(r.visitor(allKinds()...)))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"enter Document",
		"enter OperationDefinition",
		"enter SelectionSet",
		"enter Field:user",
		"enter Name:user",
		"leave Name:user",
		"enter Argument",
		"enter Name:id",
		"leave Name:id",
		"enter IntValue",
		"leave IntValue",
		"leave Argument",
		"enter SelectionSet",
		"enter Field:name",
		"enter Name:name",
		"leave Name:name",
		"leave Field:name",
		"leave SelectionSet",
		"leave Field:user",
		"leave SelectionSet",
		"leave OperationDefinition",
		"leave Document",
	}, r.events)
}

func TestWalk_HandlersRunInRegistrationOrder(t *testing.T) {
	var events []string
	mk := func(name string) Visitor {
		return Visitor{ast.KindField: {
			Enter: func(n ast.Node) Action {
				events = append(events, name+" enter "+label(n))
				return Continue
			},
			Leave: func(n ast.Node) Action {
				events = append(events, name+" leave "+label(n))
				return Continue
			},
		}}
	}

	field := &ast.Field{Name: ast.NewName("id")}
	require.NoError(t, Walk(field, NewTable(mk("a"), mk("b"))))
	assert.Equal(t, []string{"a enter Field:id", "b enter Field:id", "a leave Field:id", "b leave Field:id"}, events)
}

func TestWalk_SkipStillCallsLeave(t *testing.T) {
	r := &recorder{}
	skip := Visitor{ast.KindField: {Enter: func(n ast.Node) Action {
		if n.(*ast.Field).Name.Value == "user" {
			return Skip
		}
		return Continue
	}}}
	tracker := &countingTracker{}

	err := Walk(testDocument(), NewTable(skip, r.visitor(ast.KindField, ast.KindName)), WithTracker(tracker))
	require.NoError(t, err)

	assert.Equal(t, []string{"enter Field:user", "leave Field:user"}, r.events)
	assert.Equal(t, 0, tracker.depth)
}

func TestWalk_StopAbortsAndBalancesTracker(t *testing.T) {
	r := &recorder{}
	stop := Visitor{ast.KindName: {Enter: func(n ast.Node) Action {
		if n.(*ast.Name).Value == "id" {
			return Stop
		}
		return Continue
	}}}
	tracker := &countingTracker{}

	err := Walk(testDocument(), NewTable(stop, r.visitor(ast.KindField)), WithTracker(tracker))
	require.NoError(t, err)

	// No leave handler runs once the walk is stopped.
	assert.Equal(t, []string{"enter Field:user"}, r.events)
	assert.Equal(t, 0, tracker.depth)
	assert.Equal(t, "track-leave Document", tracker.events[len(tracker.events)-1])
}

func TestWalk_TrackerWrapsHandlers(t *testing.T) {
	tracker := &countingTracker{}
	var seen []int
	v := Visitor{ast.KindField: {
		Enter: func(ast.Node) Action { seen = append(seen, tracker.depth); return Continue },
		Leave: func(ast.Node) Action { seen = append(seen, tracker.depth); return Continue },
	}}

	field := &ast.Field{Name: ast.NewName("id")}
	require.NoError(t, Walk(field, NewTable(v), WithTracker(tracker)))

	// The field's frame is pushed before enter and still present at leave.
	assert.Equal(t, []int{1, 1}, seen)
	assert.Equal(t, []string{
		"track-enter Field:id",
		"track-enter Name:id",
		"track-leave Name:id",
		"track-leave Field:id",
	}, tracker.events)
}

func TestMerge_ComposesInOrder(t *testing.T) {
	var events []string
	a := Visitor{ast.KindName: {Enter: func(ast.Node) Action { events = append(events, "a"); return Continue }}}
	b := Visitor{
		ast.KindName:  {Enter: func(ast.Node) Action { events = append(events, "b"); return Skip }},
		ast.KindField: {Leave: func(ast.Node) Action { events = append(events, "b-leave"); return Continue }},
	}
	c := Visitor{ast.KindName: {Enter: func(ast.Node) Action { events = append(events, "c"); return Continue }}}

	merged := Merge(a, b, c)
	require.Len(t, merged, 2)
	assert.Equal(t, Skip, merged[ast.KindName].Enter(ast.NewName("x")))
	assert.Equal(t, []string{"a", "b", "c"}, events)
	assert.Nil(t, merged[ast.KindField].Enter)

	table := NewTable(merged)
	enter, leave := table.Handlers(ast.KindName)
	assert.Equal(t, 1, enter)
	assert.Equal(t, 0, leave)
}

func TestMerge_StopShortCircuits(t *testing.T) {
	called := false
	merged := Merge(
		Visitor{ast.KindName: {Enter: func(ast.Node) Action { return Stop }}},
		Visitor{ast.KindName: {Enter: func(ast.Node) Action { called = true; return Continue }}},
	)
	assert.Equal(t, Stop, merged[ast.KindName].Enter(ast.NewName("x")))
	assert.False(t, called)
}

func TestMerge_InvalidKindPanics(t *testing.T) {
	assert.PanicsWithValue(t, "visitor: invalid node kind 0", func() {
		Merge(Visitor{ast.Kind(0): {Enter: func(ast.Node) Action { return Continue }}})
	})
	assert.PanicsWithValue(t, fmt.Sprintf("visitor: invalid node kind %d", ast.KindCount), func() {
		Merge(Visitor{ast.Kind(ast.KindCount): {Leave: func(ast.Node) Action { return Continue }}})
	})
}

func nestedLists(depth int) ast.Value {
	var v ast.Value = &ast.IntValue{Value: "1"}
	for i := 0; i < depth; i++ {
		v = &ast.ListValue{Values: ast.NodeList[ast.Value]{v}}
	}
	return v
}

func TestWalk_MaxDepth(t *testing.T) {
	tracker := &countingTracker{}
	err := Walk(nestedLists(20), NewTable(), WithMaxDepth(10), WithTracker(tracker))

	var depthErr *DepthError
	require.True(t, errors.As(err, &depthErr))
	assert.Equal(t, 10, depthErr.MaxDepth)
	assert.Equal(t, ast.KindListValue, depthErr.Node.Kind())
	assert.Equal(t, "document is too deeply nested (maximum depth 10)", err.Error())
	assert.Equal(t, 0, tracker.depth)
	assert.Equal(t, 10, tracker.maxDepth)
}

func TestWalk_WithinMaxDepth(t *testing.T) {
	// 20 lists plus the int literal.
	assert.NoError(t, Walk(nestedLists(20), NewTable(), WithMaxDepth(21)))
	assert.Error(t, Walk(nestedLists(20), NewTable(), WithMaxDepth(20)))
	assert.NoError(t, Walk(nestedLists(2000), NewTable(), WithMaxDepth(0)))
}

func TestWalk_DefaultMaxDepth(t *testing.T) {
	err := Walk(nestedLists(DefaultMaxDepth+5), NewTable())
	var depthErr *DepthError
	require.True(t, errors.As(err, &depthErr))
	assert.Equal(t, DefaultMaxDepth, depthErr.MaxDepth)
}

func TestAction_String(t *testing.T) {
	for _, tt := range []struct {
		action Action
		want   string
	}{{Continue, "continue"}, {Skip, "skip"}, {Stop, "stop"}, {Action(9), "Action(9)"}} {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, fmt.Sprint(tt.action))
		})
	}
}
