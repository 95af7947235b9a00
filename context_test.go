package walk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestContext(lists ...*patternList) *ignoreContext {
	return &ignoreContext{lists: lists}
}

func TestIgnoreContext_TierPrecedence(t *testing.T) {
	// .ignore outranks .gitignore in the same directory.
	gitignore := mustList(t, "/repo", tierGitignore, "!keep.log\n*.log\n")
	dotIgnore := mustList(t, "/repo", tierIgnore, "!debug.log\n")

	ctx := newTestContext(gitignore, dotIgnore)

	assert.Equal(t, decisionWhitelist, ctx.decide("/repo/debug.log", false),
		".ignore should outrank .gitignore")
	assert.Equal(t, decisionIgnore, ctx.decide("/repo/other.log", false),
		".gitignore decides when .ignore has no opinion")
	assert.Equal(t, decisionNone, ctx.decide("/repo/main.go", false))
}

func TestIgnoreContext_InnermostFirstWithinTier(t *testing.T) {
	outer := mustList(t, "/repo", tierGitignore, "*.log\n")
	inner := mustList(t, "/repo/sub", tierGitignore, "!special.log\n")

	// Lists are appended outermost first, as extend does during descent.
	ctx := newTestContext(outer, inner)

	assert.Equal(t, decisionWhitelist, ctx.decide("/repo/sub/special.log", false),
		"deeper list should be consulted first")
	assert.Equal(t, decisionIgnore, ctx.decide("/repo/sub/other.log", false))
	assert.Equal(t, decisionIgnore, ctx.decide("/repo/special.log", false),
		"inner list does not apply above its own directory")
}

func TestIgnoreContext_OriginScoping(t *testing.T) {
	sub := mustList(t, "/repo/sub", tierGitignore, "*.log\n")
	ctx := newTestContext(sub)

	assert.Equal(t, decisionIgnore, ctx.decide("/repo/sub/a.log", false))
	assert.Equal(t, decisionNone, ctx.decide("/repo/a.log", false),
		"patterns must not apply outside their origin directory")
	assert.Equal(t, decisionNone, ctx.decide("/repo/subdir/a.log", false),
		"origin prefix must match on a whole segment")
}

func TestIgnoreContext_OverridesWinOverTiers(t *testing.T) {
	gitignore := mustList(t, "/repo", tierGitignore, "*.log\n")
	ctx := &ignoreContext{
		overrides: compileOverrides("/repo", []string{"keep.log"}, false, nil),
		lists:     []*patternList{gitignore},
	}

	assert.Equal(t, decisionWhitelist, ctx.decide("/repo/keep.log", false),
		"a whitelisting override beats every ignore tier")
	assert.Equal(t, decisionIgnore, ctx.decide("/repo/other.txt", false),
		"whitelist mode excludes non-matching files before tiers are consulted")
	assert.Equal(t, decisionNone, ctx.decide("/repo/src", true),
		"non-matching directories fall through so descendants can match")
}

func TestIgnoreContext_Extend(t *testing.T) {
	base := newTestContext(mustList(t, "/repo", tierGitignore, "*.log\n"))

	same := base.extend()
	assert.Same(t, base, same, "extending with no lists should reuse the context")

	child := base.extend(mustList(t, "/repo/sub", tierGitignore, "!keep.log\n"))
	assert.NotSame(t, base, child)
	assert.Len(t, base.lists, 1, "extending must not mutate the parent")
	assert.Len(t, child.lists, 2)

	// The parent keeps deciding independently of the child.
	assert.Equal(t, decisionIgnore, base.decide("/repo/sub/keep.log", false))
	assert.Equal(t, decisionWhitelist, child.decide("/repo/sub/keep.log", false))
}

func TestIgnoreContext_ExplicitTierIsLowest(t *testing.T) {
	explicit := mustList(t, "/repo", tierExplicit, "!keep.log\n*.txt\n")
	gitignore := mustList(t, "/repo", tierGitignore, "*.log\n")

	ctx := newTestContext(explicit, gitignore)

	assert.Equal(t, decisionIgnore, ctx.decide("/repo/keep.log", false),
		".gitignore outranks an explicitly added ignore file")
	assert.Equal(t, decisionIgnore, ctx.decide("/repo/notes.txt", false),
		"the explicit tier still decides when nothing above it matches")
}
