// Package testutil loads declarative directory fixtures used by the
// end-to-end walker-equivalence tests, in the same YAML-based spec
// style the teacher's own CLI test harness uses.
package testutil

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// Fixture is a directory tree to materialize on disk before running a
// walker against it: a flat map from slash-separated relative path to
// file content.
type Fixture struct {
	Files map[string]string `yaml:"files"`
}

// ParseFixture decodes a YAML-encoded Fixture.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Materialize writes every file in the fixture beneath dir, creating
// intermediate directories as needed.
func (f *Fixture) Materialize(dir string) error {
	for relpath, content := range f.Files {
		full := filepath.Join(dir, filepath.FromSlash(relpath))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}
