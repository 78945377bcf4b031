package validator

import (
	"fmt"
	"sort"
	"sync"

	"github.com/samwightt/gqlcheck/pkg/suggest"
	"github.com/samwightt/gqlcheck/pkg/visitor"
)

// Rule is one validation check. Visitor is called once per run and returns
// the handlers the rule contributes to the shared walk. Handlers only read
// the document and report errors through ctx.
type Rule interface {
	Name() string
	Description() string
	Visitor(ctx *Context) visitor.Visitor
}

var registry = struct {
	mu    sync.RWMutex
	rules map[string]Rule
}{rules: make(map[string]Rule)}

// Register makes a rule available by name. Rules in this package register
// themselves from init functions.
func Register(r Rule) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.rules[r.Name()] = r
}

// Lookup returns the registered rule with the given name.
func Lookup(name string) (Rule, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	r, ok := registry.rules[name]
	return r, ok
}

// All returns every registered rule sorted by name.
func All() []Rule {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	out := make([]Rule, 0, len(registry.rules))
	for _, r := range registry.rules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

func registeredNames() []string {
	var names []string
	for _, r := range All() {
		names = append(names, r.Name())
	}
	return names
}

// SpecifiedRules returns the default rule set in the order the rules run.
// KnownArgumentNamesOnDirectives is not listed because KnownArgumentNames
// includes it.
func SpecifiedRules() []Rule {
	return []Rule{
		KnownTypeNames{},
		FragmentsOnCompositeTypes{},
		UniqueFragmentNames{},
		KnownFragmentNames{},
		KnownArgumentNames{},
		ProvidedRequiredArgumentsOnDirectives{},
	}
}

// Select resolves rule names to registered rules, keeping the given order.
// An empty list selects SpecifiedRules.
func Select(names []string) ([]Rule, error) {
	if len(names) == 0 {
		return SpecifiedRules(), nil
	}
	out := make([]Rule, 0, len(names))
	for _, name := range names {
		r, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown rule %q.%s", name, suggest.DidYouMean(suggest.List(name, registeredNames())))
		}
		out = append(out, r)
	}
	return out, nil
}
