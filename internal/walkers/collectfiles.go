package walkers

import (
	"path/filepath"

	"github.com/jwodder/zarr-checksum-gallery/internal/zfs"
	"github.com/jwodder/zarr-checksum-gallery/internal/zsum"
)

// CollectFiles walks root with plain recursion and returns every file
// found, independent of which strategy is used to compute the digest
// itself. It exists so that CLI callers that want a --tree rendering
// can build one ChecksumTree regardless of which traversal strategy
// they asked for, since all strategies are defined to agree on the
// result.
func CollectFiles(root string, opts Options) ([]zsum.FileChecksum, error) {
	if err := zfs.StatRoot(root); err != nil {
		return nil, err
	}
	var files []zsum.FileChecksum
	if err := collectRecurse(root, zsum.Root, opts, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func collectRecurse(path string, relPath zsum.DirPath, opts Options, out *[]zsum.FileChecksum) error {
	entries, err := zfs.ListDir(path, opts.ExcludeDotfiles)
	if err != nil {
		return err
	}
	for _, e := range entries {
		childPath := filepath.Join(path, e.Name)
		if e.IsDir {
			childRel, err := relPath.Child(e.Name)
			if err != nil {
				return err
			}
			if err := collectRecurse(childPath, childRel, opts, out); err != nil {
				return err
			}
			continue
		}
		fc, err := digestEntry(childPath, relPath, e.Name)
		if err != nil {
			return err
		}
		*out = append(*out, fc)
	}
	return nil
}
