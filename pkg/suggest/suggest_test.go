package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	assert.Equal(t, 0, Distance("name", "name"))
	assert.Equal(t, 1, Distance("Name", "name"))
	assert.Equal(t, 1, Distance("nam", "name"))
	assert.Equal(t, 3, Distance("abc", "xyz"))
}

func TestList_SuggestsNearName(t *testing.T) {
	assert.Equal(t, []string{"name"}, List("nam", []string{"id", "name", "email"}))
}

func TestList_OrdersByDistanceThenInput(t *testing.T) {
	got := List("ifx", []string{"if", "ifxx", "iff", "unrelated"})
	assert.Equal(t, []string{"if", "ifxx", "iff"}, got)
}

func TestList_CaseOnlyDifferenceScoresOne(t *testing.T) {
	got := List("Reason", []string{"reasonss", "reason"})
	assert.Equal(t, []string{"reason", "reasonss"}, got)
}

func TestList_NoCandidates(t *testing.T) {
	assert.Empty(t, List("anything", nil))
	assert.Empty(t, List("zzzz", []string{"id", "name"}))
}

func TestClosest(t *testing.T) {
	assert.Equal(t, "KnownFragmentNames", Closest("KnownFragmentName", []string{"KnownTypeNames", "KnownFragmentNames"}, 5))
	assert.Equal(t, "", Closest("x", []string{"somethingelse"}, 2))
	assert.Equal(t, "", Closest("x", nil, 2))
}

func TestQuotedOrList(t *testing.T) {
	assert.Equal(t, "", QuotedOrList(nil))
	assert.Equal(t, `"a"`, QuotedOrList([]string{"a"}))
	assert.Equal(t, `"a" or "b"`, QuotedOrList([]string{"a", "b"}))
	assert.Equal(t, `"a", "b", or "c"`, QuotedOrList([]string{"a", "b", "c"}))
	assert.Equal(t, `"a", "b", "c", "d", or "e"`, QuotedOrList([]string{"a", "b", "c", "d", "e", "f", "g"}))
}

func TestDidYouMean(t *testing.T) {
	assert.Equal(t, "", DidYouMean(nil))
	assert.Equal(t, ` Did you mean "if"?`, DidYouMean([]string{"if"}))
}
