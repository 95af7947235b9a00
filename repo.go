package walk

import (
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	git "github.com/go-git/go-git/v5"
)

// findGitRoot walks upward from dir looking for a .git entry (a directory,
// or a gitfile for linked worktrees and submodules) and returns the
// directory containing it, or "" when none is found.
func findGitRoot(fs billy.Filesystem, dir string) string {
	for {
		if _, err := fs.Lstat(fs.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// insideGitWorktree reports whether root is inside a recognized git
// worktree. On the real filesystem, detection is delegated to go-git, which
// validates the repository structure (and understands gitfiles and bare
// repository layouts); on an injected filesystem the presence of a .git
// entry is taken at face value.
func insideGitWorktree(fs billy.Filesystem, root string) bool {
	if fs == defaultOSFS {
		_, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
		return err == nil
	}
	return findGitRoot(fs, root) != ""
}

// gitExcludePath returns the conventional location of the repository's
// exclude file for a worktree root.
func gitExcludePath(fs billy.Filesystem, worktreeRoot string) string {
	return fs.Join(worktreeRoot, ".git", "info", "exclude")
}
