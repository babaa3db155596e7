// Package zfs provides the thin filesystem-access layer the traversal
// strategies are built on: listing a directory's entries, filtering out
// excluded dotfiles, and computing a file's MD5 digest and size.
package zfs

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/jwodder/zarr-checksum-gallery/internal/zlog"
)

// excludedBasenames are the dotfiles ignored at every depth of a walk,
// regardless of the store's own contents.
var excludedBasenames = []string{".dandi", ".datalad", ".git", ".gitattributes", ".gitmodules"}

// Entry is one child of a listed directory.
type Entry struct {
	Name  string
	IsDir bool
}

// StatError reports that os.Stat/os.Lstat failed for a path.
type StatError struct {
	Path string
	Err  error
}

func (e *StatError) Error() string { return fmt.Sprintf("stat %s: %v", e.Path, e.Err) }
func (e *StatError) Unwrap() error { return e.Err }

// ReaddirError reports that listing a directory's contents failed.
type ReaddirError struct {
	Path string
	Err  error
}

func (e *ReaddirError) Error() string { return fmt.Sprintf("readdir %s: %v", e.Path, e.Err) }
func (e *ReaddirError) Unwrap() error { return e.Err }

// DigestError reports that computing a file's MD5 digest failed.
type DigestError struct {
	Path string
	Err  error
}

func (e *DigestError) Error() string { return fmt.Sprintf("digest %s: %v", e.Path, e.Err) }
func (e *DigestError) Unwrap() error { return e.Err }

// NotADirectoryError reports that the given root path is not a
// directory.
type NotADirectoryError struct {
	Path string
}

func (e *NotADirectoryError) Error() string {
	return fmt.Sprintf("%s: not a directory", e.Path)
}

// ExcludeDotfiles reports whether basename names one of the paths
// conventionally excluded from a checksum (version-control metadata and
// similar out-of-band bookkeeping files), matched at every depth.
func ExcludeDotfiles(basename string) bool {
	for _, ex := range excludedBasenames {
		if basename == ex {
			return true
		}
	}
	return false
}

// ListDir returns the sorted, non-excluded children of dir. If
// excludeDotfiles is false, no entries are filtered.
func ListDir(dir string, excludeDotfiles bool) ([]Entry, error) {
	zlog.V(zlog.LevelTrace).Infof("listing directory %s", dir)
	des, err := os.ReadDir(dir)
	if err != nil {
		zlog.Default().Warnf("readdir %s failed: %v", dir, err)
		return nil, &ReaddirError{Path: dir, Err: err}
	}
	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		if excludeDotfiles && ExcludeDotfiles(de.Name()) {
			zlog.V(zlog.LevelDebug).Infof("excluding dotfile %s/%s", dir, de.Name())
			continue
		}
		entries = append(entries, Entry{Name: de.Name(), IsDir: de.IsDir()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// StatRoot validates that path is a directory the walk can begin from.
func StatRoot(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		zlog.Default().Warnf("stat %s failed: %v", path, err)
		return &StatError{Path: path, Err: err}
	}
	if !info.IsDir() {
		zlog.Default().Warnf("%s is not a directory", path)
		return &NotADirectoryError{Path: path}
	}
	return nil
}

// DigestFile streams the file at path through MD5 and returns its
// digest (hex-encoded) and size in bytes.
func DigestFile(path string) (digest string, size uint64, err error) {
	zlog.V(zlog.LevelTrace).Infof("digesting file %s", path)
	f, err := os.Open(path)
	if err != nil {
		zlog.Default().Warnf("opening %s failed: %v", path, err)
		return "", 0, &DigestError{Path: path, Err: err}
	}
	defer f.Close()

	h := md5.New()
	n, err := io.Copy(h, f)
	if err != nil {
		zlog.Default().Warnf("digesting %s failed: %v", path, err)
		return "", 0, &DigestError{Path: path, Err: err}
	}
	return hex.EncodeToString(h.Sum(nil)), uint64(n), nil
}

// Join is a small convenience wrapper over filepath.Join kept here so
// callers never need to import path/filepath solely to combine a root
// with a relative entry name.
func Join(elem ...string) string {
	return filepath.Join(elem...)
}
