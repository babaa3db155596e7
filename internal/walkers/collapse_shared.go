package walkers

import (
	"path/filepath"
	"sync"

	"github.com/jwodder/zarr-checksum-gallery/internal/jobstack"
	"github.com/jwodder/zarr-checksum-gallery/internal/zfs"
	"github.com/jwodder/zarr-checksum-gallery/internal/zsum"
)

// sharedDir is the shared, mutex-protected state for one directory
// being assembled by the collapse-as-you-go shared-memory walker. Once
// its todo count reaches zero every child has reported in; the
// goroutine whose add call drove it to zero pushes a completed job for
// it, and whichever worker pops that job finalizes it.
type sharedDir struct {
	mu      sync.Mutex
	relPath zsum.DirPath
	summer  *zsum.Dirsummer
	todo    int
	parent  *sharedDir
}

func newSharedDir(relPath zsum.DirPath, todo int, parent *sharedDir) *sharedDir {
	return &sharedDir{relPath: relPath, summer: zsum.NewDirsummer(relPath), todo: todo, parent: parent}
}

// add folds a child's checksum into d and reports whether this call
// drove the outstanding-entry count to zero, i.e. whether the caller
// now holds sole responsibility for finalizing d.
func (d *sharedDir) add(c zsum.EntryChecksum) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.summer.Push(c)
	d.todo--
	return d.todo == 0
}

type shJobKind int

const (
	shEntry shJobKind = iota
	shCompleted
)

type shJob struct {
	kind    shJobKind
	path    string
	name    string
	isDir   bool
	// dirRelPath is this job's own directory's relPath when isDir is
	// true, and the *containing* directory's relPath when isDir is
	// false (i.e. always the relPath of j.parent).
	dirRelPath zsum.DirPath
	parent     *sharedDir
	completed  *sharedDir
}

// CollapseShared computes root's checksum using the shared-memory
// collapse-as-you-go flavor: every directory allocates one
// mutex-protected sharedDir tracking how many of its children have yet
// to report in. As soon as a directory's last child reports, whichever
// goroutine delivered it pushes a completed job for that directory; the
// worker that pops it computes the directory's checksum and propagates
// it to the parent, rather than leaving tree assembly for a separate
// final pass.
func CollapseShared(root string, opts Options) (zsum.DirChecksum, error) {
	if err := zfs.StatRoot(root); err != nil {
		return zsum.DirChecksum{}, err
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	stack := jobstack.New(shJob{kind: shEntry, path: root, isDir: true, dirRelPath: zsum.Root, parent: nil})

	var mu sync.Mutex
	var result *zsum.DirChecksum
	var firstErr error

	handle := func(j shJob) ([]shJob, error) {
		switch j.kind {
		case shEntry:
			if j.isDir {
				entries, err := zfs.ListDir(j.path, opts.ExcludeDotfiles)
				if err != nil {
					return nil, err
				}
				d := newSharedDir(j.dirRelPath, len(entries), j.parent)
				if len(entries) == 0 {
					return []shJob{{kind: shCompleted, completed: d}}, nil
				}
				follow := make([]shJob, len(entries))
				for i, e := range entries {
					childRelPath := j.dirRelPath
					if e.IsDir {
						childRelPath = mustChild(j.dirRelPath, e.Name)
					}
					follow[i] = shJob{
						kind:       shEntry,
						path:       filepath.Join(j.path, e.Name),
						name:       e.Name,
						isDir:      e.IsDir,
						dirRelPath: childRelPath,
						parent:     d,
					}
				}
				return follow, nil
			}
			fc, err := digestEntry(j.path, j.dirRelPath, j.name)
			if err != nil {
				return nil, err
			}
			if j.parent.add(fc) {
				return []shJob{{kind: shCompleted, completed: j.parent}}, nil
			}
			return nil, nil

		default: // shCompleted
			d := j.completed
			checksum := d.summer.Checksum()
			if d.parent == nil {
				mu.Lock()
				result = &checksum
				mu.Unlock()
				return nil, nil
			}
			if d.parent.add(checksum) {
				return []shJob{{kind: shCompleted, completed: d.parent}}, nil
			}
			return nil, nil
		}
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := stack.Drain(handle); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return zsum.DirChecksum{}, firstErr
	}
	if result == nil {
		return zsum.DirChecksum{}, errEmptyResult
	}
	return *result, nil
}

// mustChild is used where the directory name is already known-valid
// (it came from an os.DirEntry, never user input), so a Child error
// would indicate an internal invariant violation rather than bad input.
func mustChild(parent zsum.DirPath, name string) zsum.DirPath {
	d, err := parent.Child(name)
	if err != nil {
		panic("INTERNAL ERROR: " + err.Error())
	}
	return d
}
