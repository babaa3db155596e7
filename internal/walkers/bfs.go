package walkers

import (
	"path/filepath"

	"github.com/jwodder/zarr-checksum-gallery/internal/zfs"
	"github.com/jwodder/zarr-checksum-gallery/internal/zsum"
)

type bfsDir struct {
	path    string
	relPath zsum.DirPath
}

// BFS computes root's checksum by enumerating every file in breadth-
// first order through an explicit FIFO queue of directories, feeding
// each discovered file straight into a ChecksumTree, then computing the
// checksum once the whole tree is known.
func BFS(root string, opts Options) (zsum.DirChecksum, error) {
	if err := zfs.StatRoot(root); err != nil {
		return zsum.DirChecksum{}, err
	}

	tree := zsum.NewChecksumTree()
	queue := []bfsDir{{path: root, relPath: zsum.Root}}

	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]

		entries, err := zfs.ListDir(dir.path, opts.ExcludeDotfiles)
		if err != nil {
			return zsum.DirChecksum{}, err
		}
		for _, e := range entries {
			childPath := filepath.Join(dir.path, e.Name)
			if e.IsDir {
				childRel, err := dir.relPath.Child(e.Name)
				if err != nil {
					return zsum.DirChecksum{}, err
				}
				queue = append(queue, bfsDir{path: childPath, relPath: childRel})
			} else {
				fc, err := digestEntry(childPath, dir.relPath, e.Name)
				if err != nil {
					return zsum.DirChecksum{}, err
				}
				if err := tree.AddFile(fc); err != nil {
					return zsum.DirChecksum{}, err
				}
			}
		}
	}

	return tree.Checksum(), nil
}
