package walk

import (
	"strings"
	"testing"
)

// mustPattern parses a pattern line or fails the test.
func mustPattern(t *testing.T, line string) *pattern {
	t.Helper()
	p, w := parsePattern(line, 1, false)
	if w != nil {
		t.Fatalf("parsePattern(%q) warning: %v", line, w)
	}
	if p == nil {
		t.Fatalf("parsePattern(%q) returned nil", line)
	}
	return p
}

// matches runs one pattern against one relative path.
func matches(t *testing.T, line, rel string, isDir bool) bool {
	t.Helper()
	p := mustPattern(t, line)
	ctx := newMatchContext(0)
	return matchPattern(p, splitPath(rel), isDir, false, ctx)
}

func TestMatchPattern_Literals(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		isDir   bool
		want    bool
	}{
		{"exact file", "foo.txt", "foo.txt", false, true},
		{"different file", "foo.txt", "bar.txt", false, false},
		{"floating matches nested", "foo.txt", "a/b/foo.txt", false, true},
		{"floating matches dir segment", "b", "a/b/c.txt", false, false}, // b alone is not the full path
		{"name is substring", "foo", "foobar", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matches(t, tt.pattern, tt.path, tt.isDir); got != tt.want {
				t.Errorf("match(%q, %q, dir=%v) = %v, want %v",
					tt.pattern, tt.path, tt.isDir, got, tt.want)
			}
		})
	}
}

func TestMatchPattern_Anchoring(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		{"anchored at origin", "/foo", "foo", true},
		{"anchored not nested", "/foo", "a/foo", false},
		{"internal slash anchors", "foo/bar", "foo/bar", true},
		{"internal slash not nested", "foo/bar", "x/foo/bar", false},
		{"doublestar prefix floats", "**/foo", "foo", true},
		{"doublestar prefix nested", "**/foo", "a/b/foo", true},
		{"floating wildcard anywhere", "*.log", "a/b/c.log", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matches(t, tt.pattern, tt.path, false); got != tt.want {
				t.Errorf("match(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
			}
		})
	}
}

func TestMatchPattern_DirOnly(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		isDir   bool
		want    bool
	}{
		{"matches directory", "build/", "build", true, true},
		{"rejects file of same name", "build/", "build", false, false},
		{"matches file inside", "build/", "build/main.o", false, true},
		{"matches nested file inside", "build/", "build/x/y.o", false, true},
		{"matches nested directory", "build/", "a/build", true, true},
		{"matches file inside nested", "build/", "a/build/main.o", false, true},
		{"anchored dir", "/build/", "build", true, true},
		{"anchored dir not nested", "/build/", "a/build", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matches(t, tt.pattern, tt.path, tt.isDir); got != tt.want {
				t.Errorf("match(%q, %q, dir=%v) = %v, want %v",
					tt.pattern, tt.path, tt.isDir, got, tt.want)
			}
		})
	}
}

func TestMatchPattern_DoubleStar(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		{"middle absorbs zero", "a/**/b", "a/b", true},
		{"middle absorbs one", "a/**/b", "a/x/b", true},
		{"middle absorbs many", "a/**/b", "a/x/y/z/b", true},
		{"middle wrong tail", "a/**/b", "a/x/c", false},
		{"suffix matches children", "foo/**", "foo/a", true},
		{"suffix matches deep", "foo/**", "foo/a/b/c", true},
		{"prefix with tail", "**/foo/bar", "x/foo/bar", true},
		{"bare doublestar", "**", "anything/at/all", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matches(t, tt.pattern, tt.path, false); got != tt.want {
				t.Errorf("match(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
			}
		})
	}
}

func TestMatchPattern_Globs(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		{"star suffix", "*.log", "debug.log", true},
		{"star suffix no match", "*.log", "debug.txt", false},
		{"star prefix", "debug.*", "debug.log", true},
		{"star middle", "de*og", "debug.log", true},
		{"star middle no match", "de*x", "debug.log", false},
		{"star does not cross slash", "a*b", "a/b", false},
		{"question mark", "fo?", "foo", true},
		{"question mark too long", "fo?", "fooo", false},
		{"question mark too short", "fo?", "fo", false},
		{"class range", "[a-c].txt", "b.txt", true},
		{"class range outside", "[a-c].txt", "d.txt", false},
		{"class negated", "[!a-c].txt", "d.txt", true},
		{"class negated inside", "[!a-c].txt", "b.txt", false},
		{"class caret negation", "[^a-c].txt", "d.txt", true},
		{"class literal bracket", "[]]", "]", true},
		{"class literal dash", "[a-]", "-", true},
		{"escaped star", "\\*.log", "*.log", true},
		{"escaped star literal only", "\\*.log", "a.log", false},
		{"multiple stars", "*a*b*", "xaxbx", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matches(t, tt.pattern, tt.path, false); got != tt.want {
				t.Errorf("match(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
			}
		})
	}
}

func TestMatchPattern_CaseInsensitive(t *testing.T) {
	p, _ := parsePattern("*.LOG", 1, true)
	if p == nil {
		t.Fatal("parsePattern returned nil")
	}

	ctx := newMatchContext(0)
	if !matchPattern(p, splitPath("DEBUG.log"), false, true, ctx) {
		t.Error("case-insensitive match failed for DEBUG.log")
	}
	if !matchPattern(p, splitPath("debug.LOG"), false, true, ctx) {
		t.Error("case-insensitive match failed for debug.LOG")
	}

	// Case-sensitive parse of the same line must not match.
	ps, _ := parsePattern("*.LOG", 1, false)
	if matchPattern(ps, splitPath("debug.log"), false, false, newMatchContext(0)) {
		t.Error("case-sensitive pattern matched a lowercased path")
	}
}

func TestMatchContext_Budget(t *testing.T) {
	// A pathological pattern against a non-matching subject must stop once the
	// budget runs out rather than spin.
	p := mustPattern(t, strings.Repeat("*a", 20)+"b")
	subject := strings.Repeat("a", 64)

	ctx := newMatchContext(100)
	if matchPattern(p, []string{subject}, false, false, ctx) {
		t.Error("pattern should not match")
	}
	if ctx.iterations < 100 {
		t.Errorf("matching gave up before the budget: %d iterations", ctx.iterations)
	}
	// Unwinding ticks once per recursion level, so the count may exceed the
	// limit slightly, but never by orders of magnitude.
	if ctx.iterations > 200 {
		t.Errorf("matching continued well past the budget: %d iterations", ctx.iterations)
	}
}

func TestMatchContext_Defaults(t *testing.T) {
	ctx := newMatchContext(0)
	if ctx.maxIter != DefaultMaxBacktrackIterations {
		t.Errorf("maxIter = %d, want %d", ctx.maxIter, DefaultMaxBacktrackIterations)
	}

	unlimited := newMatchContext(-1)
	for i := 0; i < DefaultMaxBacktrackIterations*2; i++ {
		if !unlimited.tick() {
			t.Fatal("unlimited context refused a tick")
		}
	}
}

func TestMatchGlob_FastPaths(t *testing.T) {
	tests := []struct {
		glob string
		s    string
		want bool
	}{
		{"*", "anything", true},
		{"*", "", true},
		{"*.go", "main.go", true},
		{"*.go", "main.rs", false},
		{"test*", "testdata", true},
		{"test*", "contest", false},
	}

	for _, tt := range tests {
		if got := matchGlob(tt.glob, tt.s, newMatchContext(0)); got != tt.want {
			t.Errorf("matchGlob(%q, %q) = %v, want %v", tt.glob, tt.s, got, tt.want)
		}
	}
}
