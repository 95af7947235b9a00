package walk

import (
	"strings"
)

// DefaultMaxBacktrackIterations is the default limit for pattern matching
// iterations. It prevents pathological patterns from causing excessive CPU
// usage. The budget is shared across all patterns consulted for a single
// decision and covers both segment-level ** matching and character-level glob
// matching.
const DefaultMaxBacktrackIterations = 10000

// matchContext tracks state during matching to prevent runaway backtracking.
type matchContext struct {
	iterations int
	maxIter    int
}

// newMatchContext creates a match context. A limit of 0 selects
// DefaultMaxBacktrackIterations; -1 disables the limit.
func newMatchContext(maxIter int) *matchContext {
	if maxIter == 0 {
		maxIter = DefaultMaxBacktrackIterations
	}
	return &matchContext{maxIter: maxIter}
}

// tick increments the iteration counter and returns false once the limit is
// exceeded.
func (ctx *matchContext) tick() bool {
	ctx.iterations++
	if ctx.maxIter < 0 {
		return true
	}
	return ctx.iterations <= ctx.maxIter
}

// matchPattern checks whether a pattern matches the candidate path, given as
// pre-split segments relative to the pattern file's directory. isDir reports
// whether the candidate is a directory.
func matchPattern(p *pattern, pathSegments []string, isDir bool, lower bool, ctx *matchContext) bool {
	if !ctx.tick() {
		return false
	}

	if len(pathSegments) == 0 {
		return len(p.segments) == 0
	}

	// Directory-only patterns match directories directly and, via prefix
	// matching, files that live inside a matching directory.
	prefixMatch := p.dirOnly && !isDir

	if p.anchored {
		if prefixMatch {
			return matchSegmentsPrefix(p.segments, pathSegments, lower, ctx)
		}
		return matchSegmentsExact(p.segments, pathSegments, lower, ctx)
	}

	// Floating patterns may start at any segment.
	maxStart := len(pathSegments) - len(p.segments)
	if prefixMatch {
		maxStart = len(pathSegments) - 1
	}
	for i := 0; i <= maxStart; i++ {
		if !ctx.tick() {
			return false
		}
		if prefixMatch {
			if matchSegmentsPrefix(p.segments, pathSegments[i:], lower, ctx) {
				return true
			}
		} else {
			if matchSegmentsExact(p.segments, pathSegments[i:], lower, ctx) {
				return true
			}
		}
	}

	// A leading ** can absorb zero segments, so the pattern may still match
	// even when it has more segments than the path.
	if len(p.segments) > 0 && p.segments[0].doubleStar {
		if prefixMatch {
			return matchSegmentsPrefix(p.segments, pathSegments, lower, ctx)
		}
		return matchSegmentsExact(p.segments, pathSegments, lower, ctx)
	}

	return false
}

// matchSegmentsExact matches pattern segments against path segments with **
// support. The pattern must consume the entire path.
func matchSegmentsExact(patternSegs []segment, path []string, lower bool, ctx *matchContext) bool {
	if !ctx.tick() {
		return false
	}

	if len(patternSegs) == 0 {
		return len(path) == 0
	}

	seg := patternSegs[0]

	if seg.doubleStar {
		// ** matches zero or more whole segments.
		for i := 0; i <= len(path); i++ {
			if matchSegmentsExact(patternSegs[1:], path[i:], lower, ctx) {
				return true
			}
			if !ctx.tick() {
				return false
			}
		}
		return false
	}

	if len(path) == 0 {
		return false
	}

	if !matchSingleSegment(seg, path[0], lower, ctx) {
		return false
	}

	return matchSegmentsExact(patternSegs[1:], path[1:], lower, ctx)
}

// matchSegmentsPrefix matches the pattern as a proper prefix of the path:
// after the pattern is exhausted at least one path segment must remain. Used
// for directory-only patterns matching files inside the directory.
func matchSegmentsPrefix(patternSegs []segment, path []string, lower bool, ctx *matchContext) bool {
	if !ctx.tick() {
		return false
	}

	if len(patternSegs) == 0 {
		return len(path) > 0
	}

	seg := patternSegs[0]

	if seg.doubleStar {
		for i := 0; i <= len(path); i++ {
			if matchSegmentsPrefix(patternSegs[1:], path[i:], lower, ctx) {
				return true
			}
			if !ctx.tick() {
				return false
			}
		}
		return false
	}

	if len(path) == 0 {
		return false
	}

	if !matchSingleSegment(seg, path[0], lower, ctx) {
		return false
	}

	return matchSegmentsPrefix(patternSegs[1:], path[1:], lower, ctx)
}

// matchSingleSegment matches one pattern segment against one path segment.
// Pattern text is pre-lowercased at compile time when case-insensitive
// matching is enabled, so only the candidate needs lowering here.
func matchSingleSegment(seg segment, pathSeg string, lower bool, ctx *matchContext) bool {
	if seg.doubleStar {
		return true
	}

	if lower {
		pathSeg = strings.ToLower(pathSeg)
	}

	if !seg.wildcard {
		return seg.value == pathSeg
	}

	return matchGlob(seg.value, pathSeg, ctx)
}

// matchGlob matches a single-segment glob (*, ?, [...], \ escapes) against a
// string. Backtracking is bounded by the shared matchContext.
func matchGlob(glob, s string, ctx *matchContext) bool {
	// Fast path: single * matches everything.
	if glob == "*" {
		return true
	}

	// Fast paths for a single * with no other metacharacters.
	if !strings.ContainsAny(glob, "?[\\") && strings.Count(glob, "*") == 1 {
		if strings.HasSuffix(glob, "*") {
			return strings.HasPrefix(s, glob[:len(glob)-1])
		}
		if strings.HasPrefix(glob, "*") {
			return strings.HasSuffix(s, glob[1:])
		}
	}

	return matchGlobRecursive(glob, s, ctx)
}

// matchGlobRecursive is the general glob matcher: * (zero or more chars),
// ? (exactly one char), [...] character classes, and \ escapes. Bounded by
// the shared matchContext so pathological patterns (e.g. *a*a*a*a*b) cannot
// spin.
func matchGlobRecursive(glob, s string, ctx *matchContext) bool {
	for len(glob) > 0 {
		if !ctx.tick() {
			return false
		}

		switch glob[0] {
		case '*':
			for len(glob) > 0 && glob[0] == '*' {
				glob = glob[1:]
			}
			if len(glob) == 0 {
				return true
			}
			for i := 0; i <= len(s); i++ {
				if matchGlobRecursive(glob, s[i:], ctx) {
					return true
				}
				if !ctx.tick() {
					return false
				}
			}
			return false

		case '?':
			if len(s) == 0 {
				return false
			}
			glob = glob[1:]
			s = s[1:]
			continue

		case '[':
			if len(s) == 0 {
				return false
			}
			matched, rest, ok := matchCharClass(glob, s[0])
			if !ok || !matched {
				return false
			}
			glob = rest
			s = s[1:]
			continue
		}

		if glob[0] == '\\' && len(glob) > 1 {
			glob = glob[1:] // escaped character matches literally
		}

		if len(s) == 0 {
			return false
		}
		if glob[0] != s[0] {
			return false
		}

		glob = glob[1:]
		s = s[1:]
	}

	return len(s) == 0
}

// matchCharClass matches a [...] class at the start of glob against c.
// Supports leading ! or ^ negation, ranges (a-z), escapes, and a literal ]
// in the first position. Returns the remainder of the glob after the class.
// ok is false when the class is unterminated; parsing rejects such patterns
// before matching ever runs.
func matchCharClass(glob string, c byte) (matched bool, rest string, ok bool) {
	i := 1 // skip the [
	negated := false
	if i < len(glob) && (glob[i] == '!' || glob[i] == '^') {
		negated = true
		i++
	}

	first := true
	for i < len(glob) {
		if glob[i] == ']' && !first {
			if negated {
				matched = !matched
			}
			return matched, glob[i+1:], true
		}
		first = false

		lo := glob[i]
		if lo == '\\' && i+1 < len(glob) {
			i++
			lo = glob[i]
		}

		// Range, e.g. a-z. A - before the closing ] is a literal.
		if i+2 < len(glob) && glob[i+1] == '-' && glob[i+2] != ']' {
			hi := glob[i+2]
			i += 2
			if hi == '\\' && i+1 < len(glob) {
				i++
				hi = glob[i]
			}
			if lo <= c && c <= hi {
				matched = true
			}
		} else if c == lo {
			matched = true
		}
		i++
	}

	return false, "", false
}
