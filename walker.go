package walk

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// defaultOSFS is the shared OS filesystem used when no filesystem is
// injected; identity against it distinguishes the real filesystem from an
// injected one.
var defaultOSFS = osfs.New("/")

// Walker produces the entries of a directory tree, lazily, while applying
// layered ignore rules. A Walker makes a single pass; construct a new one to
// walk again. It owns all of its state exclusively, so independent Walkers
// may run on separate goroutines without locking, but a single Walker must
// not be shared.
type Walker struct {
	root string
	fs   billy.Filesystem
	opts options

	rootInfo  os.FileInfo
	rootDev   uint64
	rootDevOK bool

	gitIgnore  bool // .gitignore tier enabled for this walk
	gitExclude bool // .git/info/exclude tier enabled for this walk

	base      *ignoreContext
	overrides *overrideList

	stack   []*frame
	started bool
	done    bool
}

// frame is one level of the explicit traversal stack: a directory being
// expanded, the ignore context its children inherit, and a cursor into its
// already-read children. depth is the depth of the children (root = 0, so a
// root frame carries depth 1).
type frame struct {
	path     string
	ctx      *ignoreContext
	depth    int
	children []os.FileInfo
	next     int
}

// New constructs a Walker over root. It fails only when the root itself
// cannot be stat'ed; everything that goes wrong later is skipped and the
// walk continues.
func New(root string, opts ...Option) (*Walker, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.fs == nil {
		o.fs = defaultOSFS
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
	}
	root = filepath.Clean(root)

	info, err := o.fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("walk: root %s: %w", root, err)
	}

	w := &Walker{
		root:     root,
		fs:       o.fs,
		opts:     o,
		rootInfo: info,
	}
	w.rootDev, w.rootDevOK = deviceID(info)

	w.overrides = compileOverrides(root, o.overrides, o.caseInsensitive, o.onWarning)

	gitRoot := findGitRoot(w.fs, root)
	gitAllowed := !o.requireGit || insideGitWorktree(w.fs, root)
	w.gitIgnore = o.readGitIgnore && gitAllowed
	w.gitExclude = o.readGitExclude && gitAllowed && gitRoot != ""

	var lists []*patternList

	for _, p := range o.additionalIgnoreFiles {
		if !filepath.IsAbs(p) {
			p = w.fs.Join(root, p)
		}
		w.appendList(&lists, p, filepath.Dir(p), tierExplicit)
	}

	if o.readGlobalGitIgnore && gitAllowed {
		if gp, err := globalIgnorePath(); err == nil {
			w.appendList(&lists, gp, root, tierGlobal)
		}
	}

	if w.gitExclude {
		w.appendList(&lists, gitExcludePath(w.fs, gitRoot), gitRoot, tierGitExclude)
	}

	w.base = &ignoreContext{
		overrides: w.overrides,
		maxIter:   o.maxBacktrack,
	}

	if o.readParentIgnores {
		lists = append(lists, w.loadParentLists(gitRoot)...)
	}
	w.base.lists = lists

	return w, nil
}

// Walk is the convenience form: it constructs a Walker and returns its
// entries as a lazily produced sequence.
func Walk(root string, opts ...Option) (iter.Seq[*Entry], error) {
	w, err := New(root, opts...)
	if err != nil {
		return nil, err
	}
	return w.All(), nil
}

// Next produces the next accepted entry. It performs only the directory
// reading and policy work needed for that one entry, then returns control to
// the caller. The second result is false once the walk is exhausted.
//
// The root is always the first entry, regardless of configuration. A
// directory's entry always precedes its descendants; siblings are produced
// in the order the filesystem returns them, which is not guaranteed to be
// sorted or stable across platforms.
func (w *Walker) Next() (*Entry, bool) {
	if w.done {
		return nil, false
	}

	if !w.started {
		w.started = true
		if w.rootInfo.IsDir() && w.descendOK(0) {
			w.push(w.root, w.base, 1)
		}
		return &Entry{path: w.root, depth: 0, info: w.rootInfo}, true
	}

	for len(w.stack) > 0 {
		f := w.stack[len(w.stack)-1]
		if f.next >= len(f.children) {
			w.stack = w.stack[:len(w.stack)-1]
			continue
		}
		info := f.children[f.next]
		f.next++

		if ent := w.evaluate(f, info); ent != nil {
			return ent, true
		}
	}

	w.done = true
	return nil, false
}

// All returns the walk as a range-over-func sequence. Breaking out of the
// range is the cancellation mechanism; nothing is buffered.
func (w *Walker) All() iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		for ent, ok := w.Next(); ok; ent, ok = w.Next() {
			if !yield(ent) {
				return
			}
		}
	}
}

// evaluate applies the per-entry decision chain to one directory child.
// It returns nil when the entry is rejected; an accepted directory is pushed
// for expansion before its entry is returned.
func (w *Walker) evaluate(f *frame, info os.FileInfo) *Entry {
	name := info.Name()
	path := w.fs.Join(f.path, name)
	ent := &Entry{path: path, depth: f.depth, info: info}

	if w.opts.shouldExclude != nil && w.opts.shouldExclude(ent) {
		return nil
	}

	isLink := info.Mode()&os.ModeSymlink != 0
	isDir := info.IsDir()

	if isLink && w.opts.followLinks {
		if ti, err := w.fs.Stat(path); err == nil {
			ent.tgt = ti
			isDir = ti.IsDir()
		} else {
			// Unresolvable target: treat the entry as a plain symlink.
			w.reportError(path, err)
		}
	}

	if w.opts.sameFileSystem && w.rootDevOK {
		if dev, ok := deviceID(ent.Info()); ok && dev != w.rootDev {
			return nil
		}
	}

	switch f.ctx.decide(slashPath(path), isDir) {
	case decisionIgnore:
		return nil
	case decisionNone:
		// The hidden rule applies only when no pattern had an opinion, so a
		// whitelisting override or negated pattern re-includes a dotfile.
		if w.opts.ignoreHidden && isHiddenName(name) {
			return nil
		}
	}

	if w.opts.maxFilesize >= 0 && !isDir &&
		ent.Info().Mode().IsRegular() && ent.Size() > w.opts.maxFilesize {
		return nil
	}

	if isDir && (!isLink || w.opts.followLinks) && w.descendOK(f.depth) {
		w.push(path, f.ctx, f.depth+1)
	}

	return ent
}

// descendOK reports whether children of an entry at the given depth could
// still be within the depth bound.
func (w *Walker) descendOK(depth int) bool {
	return w.opts.maxDepth < 0 || depth+1 <= w.opts.maxDepth
}

// push reads a directory and places a frame for it on the stack, extending
// the inherited ignore context with the directory's own pattern sources.
// Unreadable directories are reported and skipped; their entry has already
// been produced, so only the subtree is lost.
func (w *Walker) push(dir string, parent *ignoreContext, childDepth int) {
	children, err := w.fs.ReadDir(dir)
	if err != nil {
		w.reportError(dir, err)
		return
	}

	ctx := parent.extend(w.loadDirLists(dir)...)
	w.stack = append(w.stack, &frame{
		path:     dir,
		ctx:      ctx,
		depth:    childDepth,
		children: children,
	})
}

// loadDirLists loads the per-directory pattern sources for dir, in ascending
// tier order: .gitignore, .ignore, then caller-named ignore files.
func (w *Walker) loadDirLists(dir string) []*patternList {
	var lists []*patternList

	if w.gitIgnore {
		w.appendList(&lists, w.fs.Join(dir, ".gitignore"), dir, tierGitignore)
	}
	if w.opts.readIgnoreFiles {
		w.appendList(&lists, w.fs.Join(dir, ".ignore"), dir, tierIgnore)
	}
	for _, name := range w.opts.additionalIgnoreNames {
		w.appendList(&lists, w.fs.Join(dir, name), dir, tierCustom)
	}

	return lists
}

// appendList loads one ignore file and appends it when present. Unreadable
// files are reported and skipped.
func (w *Walker) appendList(lists *[]*patternList, path, origin string, t tier) {
	list, err := loadPatternList(w.fs, path, origin, t, w.opts.caseInsensitive, w.opts.onWarning)
	if err != nil {
		w.reportError(path, err)
		return
	}
	if list != nil {
		*lists = append(*lists, list)
	}
}

func (w *Walker) reportError(path string, err error) {
	if w.opts.onError != nil {
		w.opts.onError(path, err)
	}
}

// isHiddenName reports whether a name uses the POSIX hidden-file convention.
func isHiddenName(name string) bool {
	return len(name) > 0 && name[0] == '.'
}
