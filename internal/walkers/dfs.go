package walkers

import (
	"path/filepath"

	"github.com/jwodder/zarr-checksum-gallery/internal/zfs"
	"github.com/jwodder/zarr-checksum-gallery/internal/zsum"
)

// openDir is one frame of the explicit depth-first stack: a directory
// whose entries are being consumed one at a time, accumulating into its
// own summer until exhausted.
type openDir struct {
	path    string
	relPath zsum.DirPath
	name    string // basename as seen by the parent frame, "" for the root
	entries []zfs.Entry
	next    int
	summer  *zsum.Dirsummer
}

// DFS computes root's checksum with an explicit stack instead of the
// call stack used by Recursive: each directory is fully listed up
// front, then consumed one entry at a time, descending into a child
// directory by pushing a new frame and returning to the parent frame by
// popping once a directory's entries are exhausted.
func DFS(root string, opts Options) (zsum.DirChecksum, error) {
	if err := zfs.StatRoot(root); err != nil {
		return zsum.DirChecksum{}, err
	}

	first, err := newOpenDir(root, zsum.Root, "", opts)
	if err != nil {
		return zsum.DirChecksum{}, err
	}
	stack := []*openDir{first}

	for {
		top := stack[len(stack)-1]
		if top.next >= len(top.entries) {
			stack = stack[:len(stack)-1]
			checksum := top.summer.Checksum()
			if len(stack) == 0 {
				return checksum, nil
			}
			stack[len(stack)-1].summer.Push(checksum)
			continue
		}

		e := top.entries[top.next]
		top.next++
		childPath := filepath.Join(top.path, e.Name)
		if e.IsDir {
			childRel, err := top.relPath.Child(e.Name)
			if err != nil {
				return zsum.DirChecksum{}, err
			}
			od, err := newOpenDir(childPath, childRel, e.Name, opts)
			if err != nil {
				return zsum.DirChecksum{}, err
			}
			stack = append(stack, od)
		} else {
			fc, err := digestEntry(childPath, top.relPath, e.Name)
			if err != nil {
				return zsum.DirChecksum{}, err
			}
			top.summer.Push(fc)
		}
	}
}

func newOpenDir(path string, relPath zsum.DirPath, name string, opts Options) (*openDir, error) {
	entries, err := zfs.ListDir(path, opts.ExcludeDotfiles)
	if err != nil {
		return nil, err
	}
	return &openDir{
		path:    path,
		relPath: relPath,
		name:    name,
		entries: entries,
		summer:  zsum.NewDirsummer(relPath),
	}, nil
}
