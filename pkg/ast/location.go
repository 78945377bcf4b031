package ast

// Source is the text a document was parsed from. Nodes refer to it through
// their Location but never own it.
type Source struct {
	Name string
	Body string
}

// Location is the source span of a node. It is positional, not semantic:
// CloneDeep drops it and structural comparisons ignore it.
//
// Start and End are rune offsets into Source.Body, not byte offsets, and
// Column counts runes from 1.
type Location struct {
	Start  int
	End    int
	Line   int
	Column int
	Source *Source
}

func (l *Location) structured() Map {
	return Map{
		{Key: "start", Value: l.Start},
		{Key: "end", Value: l.End},
		{Key: "line", Value: l.Line},
		{Key: "column", Value: l.Column},
	}
}
