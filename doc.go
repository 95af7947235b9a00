// Package walk enumerates files and directories under a root path while
// applying gitignore-style ignore rules from multiple layered sources.
//
// It is the walking counterpart to a plain gitignore matcher: patterns are
// read from .gitignore and .ignore files discovered during the traversal,
// from the repository's .git/info/exclude, from the user's global git ignore
// file, and from caller-supplied override globs. Precedence follows git:
// deeper files beat shallower ones, later lines beat earlier ones, and
// overrides beat everything.
//
// # Basic Usage
//
//	w, err := walk.New("/path/to/project")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for ent := range w.All() {
//	    fmt.Println(ent.Path())
//	}
//
// The root is always the first entry produced. Entries are streamed lazily;
// each call to Next does only the directory reading needed to produce one
// entry, so walking a large tree and stopping early is cheap.
//
// # Configuration
//
// Behavior is controlled with functional options:
//
//	w, err := walk.New(root,
//	    walk.WithMaxDepth(3),
//	    walk.WithIgnoreHidden(false),
//	    walk.WithOverrides("*.go", "!*_test.go"),
//	)
//
// Overrides containing at least one non-negated glob switch the walk into
// whitelist mode: files are excluded unless an override matches them, while
// directories are still visited so matching descendants can be found.
//
// # Supported Syntax
//
// Pattern files use standard gitignore syntax:
//
//   - Plain names: "debug.log" matches at any depth
//   - Leading /: "/debug.log" matches only next to the pattern file
//   - Trailing /: "build/" matches directories only
//   - Single star: "*.log" matches within one path segment
//   - Double star: "**/logs" matches across segments
//   - Character classes: "debug[0-9].log", "[!a-z]*"
//   - Negation: "!important.log" re-includes a file
//   - Escapes: "\!literal", "\#literal"
//
// Malformed lines (for example an unterminated character class) are dropped
// without failing the walk; set a warning handler to observe them.
//
// # Error Handling
//
// Construction fails only when the root itself cannot be stat'ed. Everything
// that goes wrong mid-walk — unreadable subdirectories, vanished entries,
// broken symlinks, unparsable ignore files — is skipped and the walk
// continues. Set an error handler to observe skipped failures.
//
// # Concurrency
//
// A Walker is single-threaded and owns all of its state; it is not safe for
// concurrent use, but any number of independent Walkers may run in parallel,
// including over the same root.
package walk
