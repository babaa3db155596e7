package walkers

import (
	"context"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/jwodder/zarr-checksum-gallery/internal/zfs"
	"github.com/jwodder/zarr-checksum-gallery/internal/zsum"
)

// resultChanCapacity bounds the in-flight result channel, the Go
// analogue of the original's bounded tokio::sync::mpsc::channel(64).
const resultChanCapacity = 64

// Async computes root's checksum with a task pool of goroutines bounded
// by a weighted semaphore rather than a fixed number of OS threads:
// every directory listing spawns its own task, which in turn spawns one
// task per subdirectory it finds, all gated by the same semaphore so
// that at most opts.Workers tasks ever run concurrently. Results are
// collected as they complete (tree-at-the-end, like Parallel) and
// assembled into the final checksum once every task finishes.
func Async(ctx context.Context, root string, opts Options) (zsum.DirChecksum, error) {
	if err := zfs.StatRoot(root); err != nil {
		return zsum.DirChecksum{}, err
	}

	workers := int64(opts.Workers)
	if workers < 1 {
		workers = 1
	}
	sem := semaphore.NewWeighted(workers)

	results := make(chan zsum.FileChecksum, resultChanCapacity)
	g, ctx := errgroup.WithContext(ctx)

	var walk func(path string, relPath zsum.DirPath)
	walk = func(path string, relPath zsum.DirPath) {
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			entries, err := zfs.ListDir(path, opts.ExcludeDotfiles)
			if err != nil {
				return err
			}
			for _, e := range entries {
				childPath := filepath.Join(path, e.Name)
				if e.IsDir {
					childRel := mustChild(relPath, e.Name)
					walk(childPath, childRel)
					continue
				}
				fc, err := digestEntry(childPath, relPath, e.Name)
				if err != nil {
					return err
				}
				select {
				case results <- fc:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}
	walk(root, zsum.Root)

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
		close(results)
	}()

	var files []zsum.FileChecksum
	for fc := range results {
		files = append(files, fc)
	}
	if err := <-done; err != nil {
		return zsum.DirChecksum{}, err
	}

	tree, err := zsum.FromFiles(files)
	if err != nil {
		return zsum.DirChecksum{}, err
	}
	return tree.Checksum(), nil
}
