package walk

import (
	"github.com/go-git/go-billy/v5"
)

// options holds the resolved walker configuration. Callers set it through
// the Option functions; defaults mirror git-aware search tools.
type options struct {
	ignoreHidden        bool
	readIgnoreFiles     bool
	readParentIgnores   bool
	readGitIgnore       bool
	readGlobalGitIgnore bool
	readGitExclude      bool
	requireGit          bool

	additionalIgnoreFiles []string // ignore files referenced by path
	additionalIgnoreNames []string // ignore file names looked up per directory
	overrides             []string

	maxDepth    int   // -1 = unlimited
	maxFilesize int64 // -1 = unlimited

	followLinks     bool
	caseInsensitive bool
	sameFileSystem  bool

	shouldExclude func(*Entry) bool
	fs            billy.Filesystem

	onWarning    WarningHandler
	onError      func(path string, err error)
	maxBacktrack int
}

func defaultOptions() options {
	return options{
		ignoreHidden:        true,
		readIgnoreFiles:     true,
		readGitIgnore:       true,
		readGlobalGitIgnore: true,
		readGitExclude:      true,
		requireGit:          true,
		maxDepth:            -1,
		maxFilesize:         -1,
	}
}

// Option configures a Walker.
type Option func(*options)

// WithIgnoreHidden controls whether dotfile-style hidden entries are skipped.
// Default: true. An entry explicitly matched by a negated pattern or a
// whitelisting override is kept even when hidden.
func WithIgnoreHidden(v bool) Option {
	return func(o *options) { o.ignoreHidden = v }
}

// WithIgnoreFiles controls whether .ignore files in walked directories are
// loaded. Default: true.
func WithIgnoreFiles(v bool) Option {
	return func(o *options) { o.readIgnoreFiles = v }
}

// WithParentIgnores controls whether ignore files in directories above the
// root are preloaded before the walk. Collection stops at the repository
// boundary. Default: false.
func WithParentIgnores(v bool) Option {
	return func(o *options) { o.readParentIgnores = v }
}

// WithGitIgnore controls whether .gitignore files are loaded. Default: true.
func WithGitIgnore(v bool) Option {
	return func(o *options) { o.readGitIgnore = v }
}

// WithGlobalGitIgnore controls whether the user's global git ignore file
// (core.excludesfile, falling back to $XDG_CONFIG_HOME/git/ignore) is
// loaded. Default: true.
func WithGlobalGitIgnore(v bool) Option {
	return func(o *options) { o.readGlobalGitIgnore = v }
}

// WithGitExclude controls whether the repository's .git/info/exclude file is
// loaded. Default: true.
func WithGitExclude(v bool) Option {
	return func(o *options) { o.readGitExclude = v }
}

// WithRequireGit controls whether the git-sourced tiers (.gitignore,
// .git/info/exclude, global git ignore) require the root to be inside a git
// worktree. When true and the root is not in a repository, those tiers are
// simply not loaded; it is never an error. Default: true.
func WithRequireGit(v bool) Option {
	return func(o *options) { o.requireGit = v }
}

// WithAdditionalIgnoreFiles names extra ignore files, by path, whose
// patterns apply relative to each file's directory. They rank below every
// other tier.
func WithAdditionalIgnoreFiles(paths ...string) Option {
	return func(o *options) {
		o.additionalIgnoreFiles = append(o.additionalIgnoreFiles, paths...)
	}
}

// WithAdditionalIgnoreNames names extra ignore files to look for in every
// walked directory (like .gitignore, but caller-named). They rank above
// .ignore and .gitignore, just below overrides.
func WithAdditionalIgnoreNames(names ...string) Option {
	return func(o *options) {
		o.additionalIgnoreNames = append(o.additionalIgnoreNames, names...)
	}
}

// WithOverrides supplies override globs, the highest-precedence tier.
// Plain globs whitelist, !-negated globs ignore. At least one plain glob
// switches the walk into whitelist mode.
func WithOverrides(globs ...string) Option {
	return func(o *options) { o.overrides = append(o.overrides, globs...) }
}

// WithMaxDepth bounds the traversal depth. 0 yields only the root; negative
// means unlimited (the default).
func WithMaxDepth(depth int) Option {
	return func(o *options) { o.maxDepth = depth }
}

// WithMaxFilesize rejects regular files larger than the given number of
// bytes. Directories are never size-filtered. Negative means unlimited (the
// default).
func WithMaxFilesize(bytes int64) Option {
	return func(o *options) { o.maxFilesize = bytes }
}

// WithFollowLinks controls whether symlinked directories are expanded.
// Default: false — the symlink entry itself is still produced. Note that a
// symlink ring together with unlimited depth will loop; bound the walk with
// WithMaxDepth or WithSameFileSystem when following links in untrusted trees.
func WithFollowLinks(v bool) Option {
	return func(o *options) { o.followLinks = v }
}

// WithCaseInsensitive enables case-insensitive pattern matching.
// Default: false, matching git.
func WithCaseInsensitive(v bool) Option {
	return func(o *options) { o.caseInsensitive = v }
}

// WithSameFileSystem prevents the walk from crossing device boundaries.
// Default: false. On platforms without device ids the option has no effect.
func WithSameFileSystem(v bool) Option {
	return func(o *options) { o.sameFileSystem = v }
}

// WithShouldExclude installs a predicate consulted for every entry below the
// root before any other policy. Returning true rejects the entry and, for
// directories, prunes the whole subtree. The predicate must not mutate the
// tree being walked.
func WithShouldExclude(fn func(*Entry) bool) Option {
	return func(o *options) { o.shouldExclude = fn }
}

// WithFilesystem injects the filesystem the walk reads through. Defaults to
// the operating system filesystem. Paths, including the root, are
// interpreted within the injected filesystem.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(o *options) { o.fs = fs }
}

// WithWarningHandler installs a callback for ignore-file parse warnings.
func WithWarningHandler(fn WarningHandler) Option {
	return func(o *options) { o.onWarning = fn }
}

// WithErrorHandler installs a callback for non-fatal errors skipped during
// the walk (unreadable directories, vanished entries, broken links).
func WithErrorHandler(fn func(path string, err error)) Option {
	return func(o *options) { o.onError = fn }
}

// WithMaxBacktrackIterations bounds glob backtracking per ignore decision.
// 0 selects DefaultMaxBacktrackIterations; -1 disables the limit (not
// recommended).
func WithMaxBacktrackIterations(n int) Option {
	return func(o *options) { o.maxBacktrack = n }
}
