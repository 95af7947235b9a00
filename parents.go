package walk

import (
	"path/filepath"
)

// collectParentDirs returns the ancestors of root from outermost to
// innermost. When boundary is non-empty (the git worktree root), collection
// stays within it: ancestors above the boundary never contribute patterns.
// When root is itself the boundary there are no applicable parents.
func collectParentDirs(root, boundary string) []string {
	parent := filepath.Dir(root)
	if parent == root {
		return nil
	}
	if boundary != "" {
		if _, ok := relativeTo(slashPath(boundary), slashPath(parent)); !ok {
			return nil
		}
	}

	var dirs []string
	dir := parent
	for {
		dirs = append(dirs, dir)
		if dir == boundary {
			break
		}
		next := filepath.Dir(dir)
		if next == dir {
			break
		}
		dir = next
	}

	// Reverse into outermost-first order, the order contexts are extended in.
	for i, j := 0, len(dirs)-1; i < j; i, j = i+1, j-1 {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}
	return dirs
}

// loadParentLists preloads ignore files from the root's ancestor
// directories, outermost first. The set is fixed for the whole walk;
// ancestors are read once, not re-read per descent.
func (w *Walker) loadParentLists(boundary string) []*patternList {
	var lists []*patternList
	for _, dir := range collectParentDirs(w.root, boundary) {
		lists = append(lists, w.loadDirLists(dir)...)
	}
	return lists
}
