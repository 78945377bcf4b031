package ast

// NodeList is an ordered list of nodes owned by the enclosing node.
type NodeList[T Node] []T

// CloneDeep copies the list and every node in it, preserving order.
// A nil list stays nil.
func (l NodeList[T]) CloneDeep() NodeList[T] {
	if l == nil {
		return nil
	}
	out := make(NodeList[T], len(l))
	for i, n := range l {
		out[i] = CloneDeep(n)
	}
	return out
}

// Nodes returns the elements as plain Nodes.
func (l NodeList[T]) Nodes() []Node {
	out := make([]Node, len(l))
	for i, n := range l {
		out[i] = n
	}
	return out
}
