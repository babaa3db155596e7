package walkers

import (
	"path/filepath"
	"sync"

	"github.com/jwodder/zarr-checksum-gallery/internal/jobstack"
	"github.com/jwodder/zarr-checksum-gallery/internal/zfs"
	"github.com/jwodder/zarr-checksum-gallery/internal/zsum"
)

type chJobKind int

const (
	chEntry chJobKind = iota
	chCompleted
)

type chJob struct {
	kind  chJobKind
	path  string
	name  string
	isDir bool

	// entry jobs: dirRelPath is this job's own directory's relPath when
	// isDir is true, the containing directory's relPath otherwise.
	dirRelPath zsum.DirPath
	sendTo     chan<- zsum.EntryChecksum

	// completed jobs: recv collects exactly count child results, one
	// per child this directory was given when it was created; no
	// shared mutable state is touched once a directory reaches this
	// stage, since its own recv channel is private to it.
	relPath zsum.DirPath
	recv    chan zsum.EntryChecksum
	count   int
}

// CollapseChan computes root's checksum using the per-directory,
// single-consumer-channel collapse-as-you-go flavor: every directory
// owns a private channel its children report their checksums on, with
// no shared mutable state between sibling directories at all. This is
// the default parallel strategy (see DESIGN.md's Open Question
// decision): simpler than the shared-memory flavor because there is no
// manual reference-count bookkeeping to get right.
func CollapseChan(root string, opts Options) (zsum.DirChecksum, error) {
	if err := zfs.StatRoot(root); err != nil {
		return zsum.DirChecksum{}, err
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	stack := jobstack.New(chJob{kind: chEntry, path: root, isDir: true, dirRelPath: zsum.Root, sendTo: nil})

	var mu sync.Mutex
	var result *zsum.DirChecksum
	var firstErr error

	handle := func(j chJob) ([]chJob, error) {
		switch j.kind {
		case chEntry:
			if j.isDir {
				entries, err := zfs.ListDir(j.path, opts.ExcludeDotfiles)
				if err != nil {
					return nil, err
				}
				recv := make(chan zsum.EntryChecksum, len(entries))
				follow := make([]chJob, 0, len(entries)+1)
				follow = append(follow, chJob{
					kind:    chCompleted,
					relPath: j.dirRelPath,
					recv:    recv,
					count:   len(entries),
					sendTo:  j.sendTo,
				})
				for _, e := range entries {
					childRelPath := j.dirRelPath
					if e.IsDir {
						childRelPath = mustChild(j.dirRelPath, e.Name)
					}
					follow = append(follow, chJob{
						kind:       chEntry,
						path:       filepath.Join(j.path, e.Name),
						name:       e.Name,
						isDir:      e.IsDir,
						dirRelPath: childRelPath,
						sendTo:     recv,
					})
				}
				return follow, nil
			}
			fc, err := digestEntry(j.path, j.dirRelPath, j.name)
			if err != nil {
				return nil, err
			}
			j.sendTo <- fc
			return nil, nil

		default: // chCompleted
			s := zsum.NewDirsummer(j.relPath)
			for i := 0; i < j.count; i++ {
				s.Push(<-j.recv)
			}
			checksum := s.Checksum()
			if j.sendTo == nil {
				mu.Lock()
				result = &checksum
				mu.Unlock()
				return nil, nil
			}
			j.sendTo <- checksum
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
