package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/rulefmt/rulefmt/errors"
)

// starterManifest is the rules.yaml skeleton written by `rulefmt init`.
const starterManifest = `# Per-list banner overrides. Keys are list file names in this directory.
#
# lists:
#   emby.list:
#     name: Emby
#   ai.list:
#     name: AI
#     author: Someone Else
lists: {}
`

// WriteStarter writes a starter rulefmt.toml (current effective defaults)
// and rules.yaml into dir, rotating backups of any previous files. Returns
// the paths written.
func WriteStarter(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		return nil, errors.Wrapf(err, "creating %s", dir)
	}

	v := viper.New()
	SetDefaults(v)
	data, err := toml.Marshal(v.AllSettings())
	if err != nil {
		return nil, errors.Wrap(err, "marshaling config")
	}

	configPath := filepath.Join(dir, ProjectFileName)
	if err := writeWithBackup(configPath, data); err != nil {
		return nil, err
	}

	manifestPath := filepath.Join(dir, "rules.yaml")
	if err := writeWithBackup(manifestPath, []byte(starterManifest)); err != nil {
		return nil, err
	}
	return []string{configPath, manifestPath}, nil
}

// writeWithBackup rotates .back1/.back2/.back3 of path before writing.
func writeWithBackup(path string, data []byte) error {
	if err := createBackup(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// createBackup creates rotating backups (.back1, .back2, .back3) before
// modifying a config file.
func createBackup(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil // no file to back up
	}

	back3 := path + ".back3"
	back2 := path + ".back2"
	back1 := path + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing %s", back3)
	}
	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "rotating .back2 to .back3")
		}
	}
	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "rotating .back1 to .back2")
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s for backup", path)
	}
	if err := os.WriteFile(back1, content, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "creating %s", back1)
	}
	return nil
}
