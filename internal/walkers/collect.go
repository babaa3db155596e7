package walkers

import (
	"path/filepath"
	"sync"

	"github.com/jwodder/zarr-checksum-gallery/internal/jobstack"
	"github.com/jwodder/zarr-checksum-gallery/internal/zfs"
	"github.com/jwodder/zarr-checksum-gallery/internal/zsum"
)

// dirJob is one unit of work for the tree-at-the-end parallel walker: a
// directory still to be listed.
type dirJob struct {
	path    string
	relPath zsum.DirPath
}

// Parallel computes root's checksum with a fixed pool of worker
// goroutines sharing one JobStack of directories to list. Discovered
// files are collected as they're digested; only once every worker has
// drained the stack is the whole tree assembled and its checksum
// computed. This is the "tree-at-the-end" flavor: workers never
// synchronize on directory completion among themselves, unlike the
// collapse-as-you-go flavors below.
func Parallel(root string, opts Options) (zsum.DirChecksum, error) {
	if err := zfs.StatRoot(root); err != nil {
		return zsum.DirChecksum{}, err
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	stack := jobstack.New(dirJob{path: root, relPath: zsum.Root})

	var mu sync.Mutex
	var files []zsum.FileChecksum
	var firstErr error

	handle := func(job dirJob) ([]dirJob, error) {
		entries, err := zfs.ListDir(job.path, opts.ExcludeDotfiles)
		if err != nil {
			return nil, err
		}
		var follow []dirJob
		for _, e := range entries {
			childPath := filepath.Join(job.path, e.Name)
			if e.IsDir {
				childRel, err := job.relPath.Child(e.Name)
				if err != nil {
					return nil, err
				}
				follow = append(follow, dirJob{path: childPath, relPath: childRel})
			} else {
				fc, err := digestEntry(childPath, job.relPath, e.Name)
				if err != nil {
					return nil, err
				}
				mu.Lock()
				files = append(files, fc)
				mu.Unlock()
			}
		}
		return follow, nil
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

	tree, err := zsum.FromFiles(files)
	if err != nil {
		return zsum.DirChecksum{}, err
	}
	return tree.Checksum(), nil
}
