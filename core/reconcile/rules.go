package reconcile

import (
	"errors"
	"sort"
	"strings"
)

// ErrNoIdentifier is returned when no column in either schema matches any
// inference rule. The engine aborts rather than merging without a reliable
// join key.
var ErrNoIdentifier = errors.New("no identifier column found")

// Rule is one identifier-inference predicate. Rules are evaluated against
// lowercased column names, so predicates can assume lowercase input.
type Rule struct {
	// Name describes the rule in warnings and debug output.
	Name string

	// Match reports whether the (lowercased) column name satisfies the rule.
	Match func(column string) bool
}

// identifierRules is the ordered priority chain for identifier inference.
// The first rule with a matching column wins; order is the contract.
// Adding a tier means appending a rule, not touching the loop.
var identifierRules = []Rule{
	{Name: "exact id", Match: func(c string) bool { return c == "id" }},
	{Name: "exact uuid", Match: func(c string) bool { return c == "uuid" }},
	{Name: "suffix _id", Match: func(c string) bool { return strings.HasSuffix(c, "_id") }},
	{Name: "prefix id_", Match: func(c string) bool { return strings.HasPrefix(c, "id_") }},
	{Name: "contains uuid", Match: func(c string) bool { return strings.Contains(c, "uuid") }},
	{Name: "exact serial", Match: func(c string) bool { return c == "serial" }},
	{Name: "contains serial", Match: func(c string) bool { return strings.Contains(c, "serial") }},
}

// InferIdentifier selects the identifier column from a schema.
// Rules are tried in priority order; within one rule, candidate columns are
// evaluated in lexical order of their lowercased names so ties break the same
// way on every run regardless of source column order. The returned name is
// the original (non-lowercased) column name.
func InferIdentifier(columns []string) (string, error) {
	if len(columns) == 0 {
		return "", ErrNoIdentifier
	}

	// Sort a lowercased view once; keep the original spelling for the result.
	type candidate struct {
		lower    string
		original string
	}
	candidates := make([]candidate, 0, len(columns))
	for _, c := range columns {
		candidates = append(candidates, candidate{lower: strings.ToLower(c), original: c})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].lower < candidates[j].lower
	})

	for _, rule := range identifierRules {
		for _, c := range candidates {
			if rule.Match(c.lower) {
				return c.original, nil
			}
		}
	}

	return "", ErrNoIdentifier
}
