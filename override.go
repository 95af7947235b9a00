package walk

import (
	"fmt"
	"strings"
)

// overrideList is the caller-supplied override tier. Polarity is inverted
// relative to ignore files: a plain glob whitelists matching paths and a
// !-negated glob ignores them. When at least one non-negated glob is present
// the walk is in whitelist mode: files matching nothing are excluded by
// default, while directories fall through so matching descendants can still
// be discovered.
type overrideList struct {
	list       *patternList
	whitelists int // number of non-negated globs
}

// compileOverrides builds the override tier from caller globs, rooted at the
// walk root. Malformed globs are dropped and reported like ignore-file lines.
func compileOverrides(root string, globs []string, lower bool, onWarning WarningHandler) *overrideList {
	if len(globs) == 0 {
		return nil
	}

	content := strings.Join(globs, "\n")
	list := parsePatternList(root, "<overrides>", tierCustom, []byte(content), lower, onWarning)

	o := &overrideList{list: list}
	for i := range list.patterns {
		if !list.patterns[i].negated {
			o.whitelists++
		}
	}
	return o
}

// whitelistMode reports whether non-matching files are excluded by default.
func (o *overrideList) whitelistMode() bool {
	return o != nil && o.whitelists > 0
}

// match evaluates the overrides for a path relative to the walk root.
// decisionNone means the lower tiers decide.
func (o *overrideList) match(rel string, isDir bool, ctx *matchContext) decision {
	if o == nil || len(o.list.patterns) == 0 {
		return decisionNone
	}

	switch o.list.match(rel, isDir, ctx) {
	case decisionIgnore:
		return decisionWhitelist
	case decisionWhitelist:
		return decisionIgnore
	}

	if o.whitelistMode() && !isDir {
		return decisionIgnore
	}
	return decisionNone
}

func (o *overrideList) String() string {
	if o == nil {
		return "<no overrides>"
	}
	return fmt.Sprintf("<%d overrides, %d whitelisting>", len(o.list.patterns), o.whitelists)
}
