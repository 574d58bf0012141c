package config

import (
	"runtime"

	"github.com/spf13/viper"
)

// defaultWorkers caps batch parallelism at 8: runs are I/O-light and more
// workers than that just contend on the result lock.
func defaultWorkers() int {
	n := runtime.NumCPU()
	if n > 8 {
		return 8
	}
	return n
}

// SetDefaults configures default values for all configuration options.
// These are the only built-in banner strings; the engine itself carries no
// authorship constants.
func SetDefaults(v *viper.Viper) {
	// Banner defaults; name stays empty so each list derives its display
	// name from its file name
	v.SetDefault("banner.name", "")
	v.SetDefault("banner.author", "rulefmt")
	v.SetDefault("banner.repo", "https://github.com/rulefmt/rulefmt")

	// Engine defaults
	v.SetDefault("format.dedupe", true)
	v.SetDefault("format.json_version", 1)

	// Artifact placement defaults
	v.SetDefault("output.json_dir", "")
	v.SetDefault("output.backups", 3)

	// Batch defaults
	v.SetDefault("batch.workers", defaultWorkers())
	v.SetDefault("batch.fail_fast", false)

	// Watch defaults
	v.SetDefault("watch.debounce_ms", 500) // coalesce editor save bursts
}
