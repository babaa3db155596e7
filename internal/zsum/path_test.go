package zsum

import "testing"

func TestNewEntryPathValid(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"foo", "foo"},
		{"foo/bar", "foo/bar"},
		{"foo/bar/baz.dat", "foo/bar/baz.dat"},
	}
	for _, c := range cases {
		p, err := NewEntryPath(c.in)
		if err != nil {
			t.Errorf("NewEntryPath(%q) error: %v", c.in, err)
			continue
		}
		if got := p.String(); got != c.want {
			t.Errorf("NewEntryPath(%q).String() = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNewEntryPathInvalid(t *testing.T) {
	cases := []string{"", ".", "..", "/", "/foo", "foo/..", "../foo", "foo/../bar", "foo/bar/.."}
	for _, in := range cases {
		if _, err := NewEntryPath(in); err == nil {
			t.Errorf("NewEntryPath(%q) succeeded, want error", in)
		}
	}
}

func TestEntryPathFileName(t *testing.T) {
	p := mustEntryPath("foo/bar/baz.dat")
	if got := p.FileName(); got != "baz.dat" {
		t.Errorf("FileName() = %q, want %q", got, "baz.dat")
	}
}

func TestEntryPathParents(t *testing.T) {
	p := mustEntryPath("foo/bar/baz.dat")
	parents := p.Parents()
	want := []string{"<root>", "foo", "foo/bar"}
	if len(parents) != len(want) {
		t.Fatalf("got %d parents, want %d", len(parents), len(want))
	}
	for i, dp := range parents {
		if got := dp.String(); got != want[i] {
			t.Errorf("parents[%d] = %q, want %q", i, got, want[i])
		}
	}
}

func TestDirPathJoin1(t *testing.T) {
	d := DirPath{parts: []string{"foo", "bar"}}
	p, err := d.Join1("baz.dat")
	if err != nil {
		t.Fatal(err)
	}
	if got := p.String(); got != "foo/bar/baz.dat" {
		t.Errorf("Join1 = %q, want %q", got, "foo/bar/baz.dat")
	}
	if _, err := d.Join1(""); err == nil {
		t.Error("Join1(\"\") succeeded, want error")
	}
	if _, err := d.Join1("a/b"); err == nil {
		t.Error("Join1(\"a/b\") succeeded, want error")
	}
}

func TestRootIsRoot(t *testing.T) {
	if !Root.IsRoot() {
		t.Error("Root.IsRoot() = false")
	}
	if Root.String() != "<root>" {
		t.Errorf("Root.String() = %q", Root.String())
	}
}

func TestRelativeToDescendant(t *testing.T) {
	p, err := RelativeTo("/store/arr_0/0", "/store")
	if err != nil {
		t.Fatal(err)
	}
	if got := p.String(); got != "arr_0/0" {
		t.Errorf("RelativeTo = %q, want %q", got, "arr_0/0")
	}
}

func TestRelativeToRejectsNonDescendant(t *testing.T) {
	cases := []struct{ path, basepath string }{
		{"/store", "/store"},
		{"/other/arr_0/0", "/store"},
		{"/arr_0/0", "/store"},
	}
	for _, c := range cases {
		if _, err := RelativeTo(c.path, c.basepath); err == nil {
			t.Errorf("RelativeTo(%q, %q) succeeded, want error", c.path, c.basepath)
		}
	}
}

func TestUndecodableNameRejected(t *testing.T) {
	bad := string([]byte{0xff, 0xfe})
	if _, err := NewEntryPath(bad); err == nil {
		t.Errorf("NewEntryPath(%q) succeeded, want undecodable-name error", bad)
	}
	d := DirPath{parts: []string{"foo"}}
	if _, err := d.Join1(bad); err == nil {
		t.Error("Join1 with undecodable name succeeded, want error")
	}
	if _, err := d.Child(bad); err == nil {
		t.Error("Child with undecodable name succeeded, want error")
	}
}
