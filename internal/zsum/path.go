// Package zsum implements the canonical digest algebra for Zarr stores:
// content-addressed file and directory checksums, the JSON serialization
// they're computed from, and an incremental checksum tree.
package zsum

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// rootName is the display name of the top-level directory, which has no
// basename of its own.
const rootName = "<root>"

// EntryPath is a normalized, nonempty, forward-slash relative path to a
// file or directory entry inside a store. It never contains "." or ".."
// components and is never absolute.
type EntryPath struct {
	parts []string
}

// DirPath is a normalized relative path to a directory inside a store,
// or the zero value representing the store's top-level directory.
type DirPath struct {
	parts []string
}

// Root is the DirPath denoting the top-level directory of a store.
var Root = DirPath{}

// NewEntryPath parses s as a slash-separated relative path. It rejects
// the empty string, absolute paths, and any "." or ".." component.
func NewEntryPath(s string) (EntryPath, error) {
	if s == "" {
		return EntryPath{}, &InvalidPathError{Path: s, Reason: "empty path"}
	}
	if strings.HasPrefix(s, "/") {
		return EntryPath{}, &InvalidPathError{Path: s, Reason: "absolute path"}
	}
	parts := strings.Split(s, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		switch p {
		case "":
			return EntryPath{}, &InvalidPathError{Path: s, Reason: "empty path component"}
		case ".", "..":
			return EntryPath{}, &InvalidPathError{Path: s, Reason: "non-normalized path component"}
		}
		if !utf8.ValidString(p) {
			return EntryPath{}, &UndecodableNameError{Segment: p}
		}
		out = append(out, p)
	}
	return EntryPath{parts: out}, nil
}

// mustEntryPath is used internally and in tests for literal paths known
// to be valid.
func mustEntryPath(s string) EntryPath {
	p, err := NewEntryPath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the slash-joined path.
func (p EntryPath) String() string {
	return strings.Join(p.parts, "/")
}

// FileName returns the final path component.
func (p EntryPath) FileName() string {
	if len(p.parts) == 0 {
		return ""
	}
	return p.parts[len(p.parts)-1]
}

// Parents returns the sequence of directories that contain this entry,
// from the store root (Root) down to and including the immediate
// parent.
func (p EntryPath) Parents() []DirPath {
	out := make([]DirPath, len(p.parts))
	for i := range p.parts {
		prefix := make([]string, i)
		copy(prefix, p.parts[:i])
		out[i] = DirPath{parts: prefix}
	}
	return out
}

// Parent returns the immediate containing directory of this entry.
func (p EntryPath) Parent() DirPath {
	return DirPath{parts: append([]string(nil), p.parts[:len(p.parts)-1]...)}
}

// Join1 returns the EntryPath produced by appending a single path
// segment to this directory path. It rejects empty names, "."/"..", and
// names containing a slash.
func (d DirPath) Join1(name string) (EntryPath, error) {
	if name == "" || name == "." || name == ".." || strings.Contains(name, "/") {
		return EntryPath{}, &InvalidPathError{Path: name, Reason: "invalid path segment"}
	}
	if !utf8.ValidString(name) {
		return EntryPath{}, &UndecodableNameError{Segment: name}
	}
	parts := make([]string, len(d.parts)+1)
	copy(parts, d.parts)
	parts[len(d.parts)] = name
	return EntryPath{parts: parts}, nil
}

// Child returns the DirPath for a subdirectory named name directly
// beneath d.
func (d DirPath) Child(name string) (DirPath, error) {
	if name == "" || name == "." || name == ".." || strings.Contains(name, "/") {
		return DirPath{}, &InvalidPathError{Path: name, Reason: "invalid path segment"}
	}
	if !utf8.ValidString(name) {
		return DirPath{}, &UndecodableNameError{Segment: name}
	}
	parts := make([]string, len(d.parts)+1)
	copy(parts, d.parts)
	parts[len(d.parts)] = name
	return DirPath{parts: parts}, nil
}

// IsRoot reports whether d is the store's top-level directory.
func (d DirPath) IsRoot() bool {
	return len(d.parts) == 0
}

// String returns "<root>" for the store root, or the slash-joined path
// otherwise.
func (d DirPath) String() string {
	if d.IsRoot() {
		return rootName
	}
	return strings.Join(d.parts, "/")
}

// Name returns the directory's own basename, or "<root>" at the top
// level.
func (d DirPath) Name() string {
	if d.IsRoot() {
		return rootName
	}
	return d.parts[len(d.parts)-1]
}

// InvalidPathError reports a relative path that cannot be represented as
// an EntryPath or DirPath segment.
type InvalidPathError struct {
	Path   string
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Path, e.Reason)
}

// UndecodableNameError reports a path segment whose bytes are not valid
// text.
type UndecodableNameError struct {
	Segment string
}

func (e *UndecodableNameError) Error() string {
	return fmt.Sprintf("undecodable path segment: %q", e.Segment)
}

// RelativePathError reports that path could not be expressed as an
// EntryPath relative to basepath, either because it is not lexically a
// descendant of basepath or because one of its remaining components is
// not a normal, decodable segment.
type RelativePathError struct {
	Path     string
	Basepath string
	Err      error
}

func (e *RelativePathError) Error() string {
	return fmt.Sprintf("%s relative to %s: %v", e.Path, e.Basepath, e.Err)
}

func (e *RelativePathError) Unwrap() error { return e.Err }

// RelativeTo computes path's location relative to basepath as an
// EntryPath, verifying first that path is lexically a descendant of
// basepath and then that every remaining component is a normal,
// decodable segment.
func RelativeTo(path, basepath string) (EntryPath, error) {
	rel, err := filepath.Rel(basepath, path)
	if err != nil {
		return EntryPath{}, &RelativePathError{Path: path, Basepath: basepath, Err: err}
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return EntryPath{}, &RelativePathError{
			Path: path, Basepath: basepath,
			Err: fmt.Errorf("not a descendant path"),
		}
	}
	ep, err := NewEntryPath(filepath.ToSlash(rel))
	if err != nil {
		return EntryPath{}, &RelativePathError{Path: path, Basepath: basepath, Err: err}
	}
	return ep, nil
}
