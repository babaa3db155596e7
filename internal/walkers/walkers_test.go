package walkers

import (
	"context"
	"testing"

	"github.com/jwodder/zarr-checksum-gallery/internal/testutil"
)

const sampleFixture = `
files:
  arr_0/.zarray: "metadata for arr_0, this content is arbitrary but fixed"
  arr_0/0: "chunk data for arr_0/0"
  arr_1/.zarray: "metadata for arr_1, this content is arbitrary but fixed"
  arr_1/0: "chunk data for arr_1/0"
  .zgroup: "group metadata"
`

func sampleTree(t *testing.T) string {
	t.Helper()
	f, err := testutil.ParseFixture([]byte(sampleFixture))
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	if err := f.Materialize(dir); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestWalkersAgreeOnSampleTree(t *testing.T) {
	dir := sampleTree(t)
	opts := Options{ExcludeDotfiles: true, Workers: 4}

	recursive, err := Recursive(dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	dfs, err := DFS(dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	bfs, err := BFS(dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := Parallel(dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	collapseShared, err := CollapseShared(dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	collapseChan, err := CollapseChan(dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	async, err := Async(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}

	want := recursive.Digest
	for name, got := range map[string]string{
		"dfs":             dfs.Digest,
		"bfs":             bfs.Digest,
		"parallel":        parallel.Digest,
		"collapse-shared": collapseShared.Digest,
		"collapse-chan":   collapseChan.Digest,
		"async":           async.Digest,
	} {
		if got != want {
			t.Errorf("%s digest = %q, want %q (recursive)", name, got, want)
		}
	}
}

func TestWalkersAgreeWithSingleWorker(t *testing.T) {
	dir := sampleTree(t)
	many := Options{ExcludeDotfiles: true, Workers: 8}
	one := Options{ExcludeDotfiles: true, Workers: 1}

	want, err := Parallel(dir, many)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Parallel(dir, one)
	if err != nil {
		t.Fatal(err)
	}
	if got.Digest != want.Digest {
		t.Errorf("single-worker digest = %q, want %q", got.Digest, want.Digest)
	}
}

func TestEmptyDirectoryDigest(t *testing.T) {
	dir := t.TempDir()
	d, err := Recursive(dir, Options{ExcludeDotfiles: true})
	if err != nil {
		t.Fatal(err)
	}
	want := "481a2f77ab786a0f45aafd5db0971caa-0--0"
	if d.Digest != want {
		t.Errorf("got %q, want %q", d.Digest, want)
	}
}

func TestDotfileExclusion(t *testing.T) {
	dir := sampleTree(t)
	withGit, err := testutil.ParseFixture([]byte("files:\n  .git/config: bogus\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := withGit.Materialize(dir); err != nil {
		t.Fatal(err)
	}

	excluded, err := Recursive(dir, Options{ExcludeDotfiles: true})
	if err != nil {
		t.Fatal(err)
	}
	cleanDir := sampleTree(t)
	clean, err := Recursive(cleanDir, Options{ExcludeDotfiles: true})
	if err != nil {
		t.Fatal(err)
	}
	if excluded.Digest != clean.Digest {
		t.Errorf("dotfile was not excluded: %q != %q", excluded.Digest, clean.Digest)
	}
}

func TestStatRootError(t *testing.T) {
	if _, err := Recursive("/nonexistent/path/for/test", Options{}); err == nil {
		t.Error("expected an error for a nonexistent root")
	}
}
