package zsum

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Fingerprint returns a SHA3-512 digest of the tree's canonical JSON
// preimage. It is never used for the canonical checksum (which is
// pinned to MD5 by the literal test vectors this package is built
// against) and exists only as a secondary identity hash printed
// alongside --tree output, letting two renders be compared without
// string diffing the whole tree.
func (t *ChecksumTree) Fingerprint() string {
	js := checksumPreimage(t.root)
	sum := sha3.Sum512([]byte(js))
	return hex.EncodeToString(sum[:])
}

// checksumPreimage renders the same canonical JSON buildChecksumJSON
// would hash for the root directory, for use as a fingerprint preimage.
func checksumPreimage(d *dirNode) string {
	names := sortedNames(d)
	files := make([]jsonEntry, 0, len(names))
	dirs := make([]jsonEntry, 0, len(names))
	for _, name := range names {
		switch c := d.children[name].(type) {
		case FileChecksum:
			files = append(files, jsonEntry{digest: c.Digest, name: name, size: c.Size})
		case *dirNode:
			sum := checksumOf(c)
			if sum.FileCount > 0 {
				dirs = append(dirs, jsonEntry{digest: sum.Digest, name: name, size: sum.Size})
			}
		}
	}
	return buildChecksumJSON(files, dirs)
}
