package zsum

import (
	"fmt"
	"sort"

	"github.com/xlab/treeprint"
)

// RenderTree renders the tree as a box-drawing diagram, each directory
// and file annotated with its digest. It is the Go analogue of the
// original's termtree-based into_termtree() rendering, used only by the
// --tree debug flag; it never affects the canonical digest.
func (t *ChecksumTree) RenderTree() string {
	root := checksumOf(t.root)
	tp := treeprint.New()
	tp.SetValue(root.Digest)
	addChildren(tp, t.root)
	return tp.String()
}

func addChildren(tp treeprint.Tree, d *dirNode) {
	names := sortedNames(d)
	for _, name := range names {
		switch c := d.children[name].(type) {
		case FileChecksum:
			tp.AddNode(fmt.Sprintf("%s = %s", name, c.Digest))
		case *dirNode:
			sum := checksumOf(c)
			branch := tp.AddBranch(fmt.Sprintf("%s/ = %s", name, sum.Digest))
			addChildren(branch, c)
		}
	}
}

func sortedNames(d *dirNode) []string {
	names := make([]string, 0, len(d.children))
	for name := range d.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
