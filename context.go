package walk

// ignoreContext is the set of pattern sources applicable to one directory
// level. Contexts are never mutated: descending into a directory derives a
// child context from the parent's (copy-on-extend), so sibling subtrees stay
// isolated and any stack state remains valid for resuming.
type ignoreContext struct {
	overrides *overrideList // shared across the whole walk, may be nil
	lists     []*patternList
	maxIter   int // backtrack budget per decision
}

// extend derives a child context with additional pattern lists appended.
// Lists must be appended outermost directory first, so that within a tier a
// deeper list is consulted before a shallower one.
func (c *ignoreContext) extend(lists ...*patternList) *ignoreContext {
	if len(lists) == 0 {
		return c
	}

	merged := make([]*patternList, 0, len(c.lists)+len(lists))
	merged = append(merged, c.lists...)
	merged = append(merged, lists...)

	return &ignoreContext{
		overrides: c.overrides,
		lists:     merged,
		maxIter:   c.maxIter,
	}
}

// decide resolves the ignore status of a path (slash form, as produced by
// slashPath) against every applicable source:
//
//  1. Overrides are consulted first; a definite answer wins outright, and in
//     whitelist mode a non-matching file is excluded by default.
//  2. Tiers are then scanned from highest to lowest. Within a tier the most
//     deeply nested list is consulted first; the first list with a matching
//     pattern decides, using its own last-match-wins result.
//
// decisionNone means no source had an opinion; the walker then applies its
// non-pattern policies (hidden entries and friends).
func (c *ignoreContext) decide(path string, isDir bool) decision {
	ctx := newMatchContext(c.maxIter)

	if c.overrides != nil {
		if rel, ok := relativeTo(c.overrides.list.origin, path); ok {
			if d := c.overrides.match(rel, isDir, ctx); d != decisionNone {
				return d
			}
		}
	}

	for t := tierCustom; t >= tierExplicit; t-- {
		for i := len(c.lists) - 1; i >= 0; i-- {
			list := c.lists[i]
			if list.tier != t {
				continue
			}
			rel, ok := relativeTo(list.origin, path)
			if !ok {
				continue
			}
			if d := list.match(rel, isDir, ctx); d != decisionNone {
				return d
			}
		}
	}

	return decisionNone
}
