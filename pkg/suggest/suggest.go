// Package suggest finds likely intended names for a misspelled one.
package suggest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

// MaxQuoted is the number of items QuotedOrList renders at most.
const MaxQuoted = 5

// Distance scores how far candidate is from query. Identical strings score 0
// and strings that differ only in case score 1; otherwise it is the
// Levenshtein distance of the case-folded strings.
func Distance(query, candidate string) int {
	if query == candidate {
		return 0
	}
	fold := cases.Fold()
	q, c := fold.String(query), fold.String(candidate)
	if q == c {
		return 1
	}
	return levenshtein.ComputeDistance(q, c)
}

// List returns the candidates close enough to query, nearest first. Equally
// near candidates keep their input order.
func List(query string, candidates []string) []string {
	threshold := len(query)*2/5 + 1

	type scored struct {
		name string
		dist int
	}
	var kept []scored
	for _, c := range candidates {
		if d := Distance(query, c); d <= threshold {
			kept = append(kept, scored{c, d})
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].dist < kept[j].dist })

	out := make([]string, len(kept))
	for i, s := range kept {
		out[i] = s.name
	}
	return out
}

// Closest returns the single nearest candidate within maxDistance, or "".
func Closest(query string, candidates []string, maxDistance int) string {
	best, closest := -1, ""
	for _, c := range candidates {
		d := Distance(query, c)
		if best == -1 || d < best {
			best, closest = d, c
		}
	}
	if best == -1 || best > maxDistance {
		return ""
	}
	return closest
}

// QuotedOrList renders items as `"A"`, `"A" or "B"` or `"A", "B", or "C"`,
// keeping only the first MaxQuoted.
func QuotedOrList(items []string) string {
	if len(items) > MaxQuoted {
		items = items[:MaxQuoted]
	}
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	switch len(quoted) {
	case 0:
		return ""
	case 1:
		return quoted[0]
	case 2:
		return quoted[0] + " or " + quoted[1]
	}
	last := len(quoted) - 1
	return strings.Join(quoted[:last], ", ") + ", or " + quoted[last]
}

// DidYouMean returns ` Did you mean <list>?` for a non-empty suggestion list
// and "" otherwise.
func DidYouMean(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	return " Did you mean " + QuotedOrList(suggestions) + "?"
}
