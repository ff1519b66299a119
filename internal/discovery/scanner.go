package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scanner collects test spec files. Results are sorted, which fixes the
// test-index order and therefore the grid cell each test is assigned.
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a Scanner with the given directory names to skip.
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Scan returns all spec files under root. A file root must itself be a spec
// file. A directory root yields its top-level spec files, or the whole tree
// when recursive is set.
func (s *Scanner) Scan(root string, recursive bool) ([]string, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("test path does not exist: %s", root)
	}

	var specs []string

	if !info.IsDir() {
		if !isSpecFile(root) {
			return nil, fmt.Errorf("not a test spec file: %s", root)
		}
		return []string{root}, nil
	}

	if recursive {
		err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if path != root && strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				if s.skipDirs[name] {
					return filepath.SkipDir
				}
				return nil
			}
			if isSpecFile(d.Name()) {
				specs = append(specs, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && isSpecFile(e.Name()) {
				specs = append(specs, filepath.Join(root, e.Name()))
			}
		}
	}

	sort.Strings(specs)
	return specs, nil
}

func isSpecFile(name string) bool {
	return strings.HasSuffix(name, ".json")
}
