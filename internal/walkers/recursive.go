// Package walkers implements the five convergent traversal strategies
// that compute a store's checksum: sequential recursive, iterative
// depth-first, iterative breadth-first, parallel (in three flavors:
// tree-at-the-end and two collapse-as-you-go), and an asynchronous
// task-pool walker.
package walkers

import (
	"path/filepath"

	"github.com/jwodder/zarr-checksum-gallery/internal/zfs"
	"github.com/jwodder/zarr-checksum-gallery/internal/zsum"
)

// Options configures every traversal strategy.
type Options struct {
	ExcludeDotfiles bool
	Workers         int // used only by the parallel/async strategies
}

// Recursive computes root's checksum by plain recursive descent: list,
// recurse into subdirectories, digest files, and fold results bottom-up
// with no explicit stack of its own (the call stack is the stack).
func Recursive(root string, opts Options) (zsum.DirChecksum, error) {
	if err := zfs.StatRoot(root); err != nil {
		return zsum.DirChecksum{}, err
	}
	return recurse(root, root, zsum.Root, opts)
}

func recurse(path, basepath string, relPath zsum.DirPath, opts Options) (zsum.DirChecksum, error) {
	entries, err := zfs.ListDir(path, opts.ExcludeDotfiles)
	if err != nil {
		return zsum.DirChecksum{}, err
	}

	children := make([]zsum.EntryChecksum, 0, len(entries))
	for _, e := range entries {
		childPath := filepath.Join(path, e.Name)
		if e.IsDir {
			childRel, err := relPath.Child(e.Name)
			if err != nil {
				return zsum.DirChecksum{}, err
			}
			dc, err := recurse(childPath, basepath, childRel, opts)
			if err != nil {
				return zsum.DirChecksum{}, err
			}
			children = append(children, dc)
		} else {
			fc, err := digestEntry(childPath, relPath, e.Name)
			if err != nil {
				return zsum.DirChecksum{}, err
			}
			children = append(children, fc)
		}
	}
	return zsum.GetChecksum(relPath, children), nil
}

func digestEntry(fullPath string, parent zsum.DirPath, name string) (zsum.FileChecksum, error) {
	relPath, err := parent.Join1(name)
	if err != nil {
		return zsum.FileChecksum{}, err
	}
	digest, size, err := zfs.DigestFile(fullPath)
	if err != nil {
		return zsum.FileChecksum{}, err
	}
	return zsum.FileChecksum{RelPath: relPath, Digest: digest, Size: size}, nil
}
