// Package pipeline orchestrates batch processing of rule-list files around
// the rules engine: discovery, per-directory manifests, parallel runs,
// atomic artifact writes, progress emission, and watch mode. All file I/O
// lives here; the engine itself never touches the filesystem.
package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/rulefmt/rulefmt/config"
	"github.com/rulefmt/rulefmt/errors"
	"github.com/rulefmt/rulefmt/rules"
)

// ManifestFileName is the optional per-directory manifest with banner
// overrides for individual lists.
const ManifestFileName = "rules.yaml"

// Manifest maps list file names to banner overrides.
type Manifest struct {
	Lists map[string]ListMeta `yaml:"lists"`
}

// ListMeta overrides banner fields for one list. Empty fields fall back to
// the configured defaults.
type ListMeta struct {
	Name   string `yaml:"name,omitempty"`
	Author string `yaml:"author,omitempty"`
	Repo   string `yaml:"repo,omitempty"`
}

// LoadManifest reads the directory's rules.yaml. A missing manifest is not
// an error and yields an empty one.
func LoadManifest(dir string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, nil
		}
		return Manifest{}, errors.Wrapf(err, "reading manifest in %s", dir)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, errors.Wrapf(err, "parsing manifest in %s", dir)
	}
	return m, nil
}

// MetaFor resolves the banner metadata for one list file: configured
// defaults, overridden per field by the directory manifest. The display
// name defaults to the file's base name with the first rune upper-cased.
func (m Manifest) MetaFor(path string, banner config.BannerConfig) rules.Meta {
	meta := rules.Meta{
		Name:   banner.Name,
		Author: banner.Author,
		Repo:   banner.Repo,
	}
	if meta.Name == "" {
		meta.Name = defaultDisplayName(path)
	}
	if override, ok := m.Lists[filepath.Base(path)]; ok {
		if override.Name != "" {
			meta.Name = override.Name
		}
		if override.Author != "" {
			meta.Author = override.Author
		}
		if override.Repo != "" {
			meta.Repo = override.Repo
		}
	}
	return meta
}

func defaultDisplayName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	runes := []rune(base)
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}
