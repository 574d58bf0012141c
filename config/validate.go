package config

import (
	"github.com/rulefmt/rulefmt/errors"
	"github.com/rulefmt/rulefmt/rules"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Format.JSONVersion < 1 || c.Format.JSONVersion > rules.MaxJSONVersion {
		return errors.Newf("format.json_version must be between 1 and %d, got %d",
			rules.MaxJSONVersion, c.Format.JSONVersion)
	}
	if c.Output.Backups < 0 {
		return errors.Newf("output.backups must be >= 0, got %d", c.Output.Backups)
	}
	if c.Batch.Workers <= 0 {
		return errors.Newf("batch.workers must be > 0, got %d (omit for the CPU-based default)", c.Batch.Workers)
	}
	if c.Watch.DebounceMs <= 0 {
		return errors.Newf("watch.debounce_ms must be > 0, got %d", c.Watch.DebounceMs)
	}
	return nil
}
