package zsum

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// FileChecksum is the digest of a single chunk or metadata file.
type FileChecksum struct {
	RelPath EntryPath
	Digest  string
	Size    uint64
}

// DirChecksum is the digest of a directory: the MD5 of its canonical
// JSON listing, combined with the total size and file count beneath it.
type DirChecksum struct {
	RelPath   DirPath
	Digest    string
	Size      uint64
	FileCount uint64
}

// EntryChecksum is satisfied by FileChecksum and DirChecksum, letting
// callers accumulate either kind of child into a Dirsummer uniformly.
type EntryChecksum interface {
	entryName() string
	entryDigest() string
	entrySize() uint64
	entryFileCount() uint64
	isDir() bool
}

func (f FileChecksum) entryName() string      { return f.RelPath.FileName() }
func (f FileChecksum) entryDigest() string     { return f.Digest }
func (f FileChecksum) entrySize() uint64       { return f.Size }
func (f FileChecksum) entryFileCount() uint64  { return 1 }
func (f FileChecksum) isDir() bool             { return false }

func (d DirChecksum) entryName() string     { return d.RelPath.Name() }
func (d DirChecksum) entryDigest() string   { return d.Digest }
func (d DirChecksum) entrySize() uint64     { return d.Size }
func (d DirChecksum) entryFileCount() uint64 { return d.FileCount }
func (d DirChecksum) isDir() bool           { return true }

// Dirsummer incrementally accumulates a directory's children (in any
// order) into a single DirChecksum. It is the mutable counterpart of
// GetChecksum for callers that discover children one at a time rather
// than all at once.
type Dirsummer struct {
	relPath   DirPath
	files     []jsonEntry
	dirs      []jsonEntry
	size      uint64
	fileCount uint64
}

// NewDirsummer returns an empty accumulator for the directory at
// relPath.
func NewDirsummer(relPath DirPath) *Dirsummer {
	return &Dirsummer{relPath: relPath}
}

// Push folds one child checksum into the accumulator.
func (s *Dirsummer) Push(e EntryChecksum) {
	entry := jsonEntry{digest: e.entryDigest(), name: e.entryName(), size: e.entrySize()}
	if e.isDir() {
		// Wholly-empty subtrees contribute nothing and are dropped from
		// the JSON listing here (buildChecksumJSON writes every entry it
		// is given), but keep size/file_count accounting uniform either
		// way.
		if e.entryFileCount() > 0 {
			s.dirs = append(s.dirs, entry)
		}
	} else {
		s.files = append(s.files, entry)
	}
	s.size += e.entrySize()
	s.fileCount += e.entryFileCount()
}

// Checksum computes the accumulated DirChecksum. It does not consume the
// accumulator; further Push calls may follow.
func (s *Dirsummer) Checksum() DirChecksum {
	js := buildChecksumJSON(s.files, s.dirs)
	return DirChecksum{
		RelPath:   s.relPath,
		Digest:    fmt.Sprintf("%s-%d--%d", md5Hex(js), s.fileCount, s.size),
		Size:      s.size,
		FileCount: s.fileCount,
	}
}

// GetChecksum computes the DirChecksum of a directory directly from its
// complete set of children, with no incremental state.
func GetChecksum(relPath DirPath, children []EntryChecksum) DirChecksum {
	s := NewDirsummer(relPath)
	for _, c := range children {
		s.Push(c)
	}
	return s.Checksum()
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
