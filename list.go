package walk

import (
	"os"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// tier is the precedence rank of a pattern source. Higher tiers beat lower
// ones; within a tier, a list from a deeper directory beats a shallower one;
// within a list, the last matching pattern wins. Caller overrides sit above
// all tiers and are handled separately (see override.go).
type tier int

const (
	tierExplicit   tier = iota // extra ignore files referenced by path
	tierGlobal                 // the user's global git ignore file
	tierGitExclude             // <worktree>/.git/info/exclude
	tierGitignore              // .gitignore in a walked directory
	tierIgnore                 // .ignore in a walked directory
	tierCustom                 // caller-named per-directory ignore files
)

// decision is the outcome of consulting one or more pattern sources.
type decision int

const (
	decisionNone      decision = iota // no pattern matched
	decisionIgnore                    // matched a plain pattern: exclude
	decisionWhitelist                 // matched a negated pattern: re-include
)

// patternList is an ordered set of patterns from a single source file,
// tagged with the directory they are relative to and a precedence tier.
// Immutable after creation.
type patternList struct {
	origin   string // slash form of the directory the patterns are relative to
	source   string // path of the file the patterns came from (diagnostics)
	tier     tier
	patterns []pattern
	lower    bool // case-insensitive matching; pattern text pre-lowercased
}

// parsePatternList compiles ignore-file content into a patternList.
// Malformed lines are dropped and reported to onWarning when set.
func parsePatternList(origin, source string, t tier, content []byte, lower bool, onWarning WarningHandler) *patternList {
	content = normalizeContent(content)

	list := &patternList{
		origin: slashPath(origin),
		source: source,
		tier:   t,
		lower:  lower,
	}

	for i, line := range strings.Split(string(content), "\n") {
		p, warning := parsePattern(line, i+1, lower)
		if warning != nil {
			warning.Source = source
			if onWarning != nil {
				onWarning(*warning)
			}
		}
		if p != nil {
			list.patterns = append(list.patterns, *p)
		}
	}

	return list
}

// loadPatternList reads an ignore file through the walk's filesystem and
// compiles it. A missing file yields (nil, nil); read errors are returned so
// the walker can report and skip them.
func loadPatternList(fs billy.Filesystem, path, origin string, t tier, lower bool, onWarning WarningHandler) (*patternList, error) {
	content, err := util.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	list := parsePatternList(origin, path, t, content, lower, onWarning)
	if len(list.patterns) == 0 {
		return nil, nil
	}
	return list, nil
}

// match evaluates the list against a path given relative to the list's
// origin (slash-separated; "" means the origin directory itself). The last
// matching pattern wins.
func (l *patternList) match(rel string, isDir bool, ctx *matchContext) decision {
	segments := splitPath(rel)

	d := decisionNone
	for i := range l.patterns {
		p := &l.patterns[i]
		if matchPattern(p, segments, isDir, l.lower, ctx) {
			if p.negated {
				d = decisionWhitelist
			} else {
				d = decisionIgnore
			}
		}
	}
	return d
}
