package pipeline

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rulefmt/rulefmt/errors"
)

// ListExt is the rule-list file extension the pipeline operates on.
const ListExt = ".list"

// Discover resolves the given paths into a sorted, deduplicated slice of
// rule-list files. Files are taken as-is; directories are walked for
// *.list entries, skipping hidden directories. No matches at all yields
// errors.ErrNoInput.
func Discover(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var found []string
	add := func(p string) {
		if _, dup := seen[p]; !dup {
			seen[p] = struct{}{}
			found = append(found, p)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving path %s", path)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != path && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(p) == ListExt {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walking %s", path)
		}
	}

	if len(found) == 0 {
		return nil, errors.Wrapf(errors.ErrNoInput, "under %s", strings.Join(paths, ", "))
	}
	sort.Strings(found)
	return found, nil
}

// jsonPath returns the JSON artifact path for a list file: a .json sibling
// by default, or the same base name under jsonDir when configured.
func jsonPath(listPath, jsonDir string) string {
	base := strings.TrimSuffix(filepath.Base(listPath), ListExt) + ".json"
	if jsonDir != "" {
		return filepath.Join(jsonDir, base)
	}
	return filepath.Join(filepath.Dir(listPath), base)
}
