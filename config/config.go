// Package config holds the layered rulefmt configuration: defaults, TOML
// files (system, user, nearest project file up the tree), and RULEFMT_
// environment variables, loaded through viper.
package config

// Config is the root rulefmt configuration.
type Config struct {
	Banner BannerConfig `mapstructure:"banner"`
	Format FormatConfig `mapstructure:"format"`
	Output OutputConfig `mapstructure:"output"`
	Batch  BatchConfig  `mapstructure:"batch"`
	Watch  WatchConfig  `mapstructure:"watch"`
}

// BannerConfig configures the generated list header. An empty Name derives
// the display name from each list's file name; the manifest can override
// all three per list.
type BannerConfig struct {
	Name   string `mapstructure:"name"`
	Author string `mapstructure:"author"`
	Repo   string `mapstructure:"repo"`
}

// FormatConfig configures engine behavior.
type FormatConfig struct {
	Dedupe      bool `mapstructure:"dedupe"`       // redundancy filter, default true
	JSONVersion int  `mapstructure:"json_version"` // rule-set format version
}

// OutputConfig configures artifact placement.
type OutputConfig struct {
	JSONDir string `mapstructure:"json_dir"` // empty = .json sibling of the list
	Backups int    `mapstructure:"backups"`  // rotating .backN generations, 0 disables
}

// BatchConfig configures parallel batch processing.
type BatchConfig struct {
	Workers  int  `mapstructure:"workers"`
	FailFast bool `mapstructure:"fail_fast"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	DebounceMs int `mapstructure:"debounce_ms"`
}

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)
