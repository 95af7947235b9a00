package walk

import (
	"os"
)

// Entry is one produced result of a walk. Entries are transient: the walker
// does not retain them after they are yielded.
type Entry struct {
	path  string
	depth int
	info  os.FileInfo // lstat-style info from the directory read
	tgt   os.FileInfo // resolved target info when a symlink was followed
}

// Path returns the entry's path, rooted at the walk root.
func (e *Entry) Path() string { return e.path }

// Name returns the entry's base name.
func (e *Entry) Name() string { return e.info.Name() }

// Depth returns the entry's depth below the walk root (root = 0).
func (e *Entry) Depth() int { return e.depth }

// IsDir reports whether the entry is a directory. A symlink whose target was
// resolved (follow-links mode) reports its target's type.
func (e *Entry) IsDir() bool {
	if e.tgt != nil {
		return e.tgt.IsDir()
	}
	return e.info.IsDir()
}

// IsSymlink reports whether the entry itself is a symbolic link, regardless
// of whether its target was resolved.
func (e *Entry) IsSymlink() bool {
	return e.info.Mode()&os.ModeSymlink != 0
}

// Info returns the entry's file info: the link target's when a symlink was
// followed, the lstat result otherwise.
func (e *Entry) Info() os.FileInfo {
	if e.tgt != nil {
		return e.tgt
	}
	return e.info
}

// Size returns the entry's size in bytes, following a resolved link target.
func (e *Entry) Size() int64 { return e.Info().Size() }

func (e *Entry) String() string { return e.path }
