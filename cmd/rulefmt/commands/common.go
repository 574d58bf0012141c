// Package commands holds the rulefmt CLI subcommands.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rulefmt/rulefmt/config"
	"github.com/rulefmt/rulefmt/pipeline"
)

// loadConfig resolves configuration for a command run, honoring the
// global --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return config.UseFile(path)
	}
	return config.Load()
}

// newEmitter picks the progress emitter from the global --json flag.
func newEmitter(cmd *cobra.Command) pipeline.Emitter {
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return pipeline.NewJSONEmitter(os.Stdout)
	}
	verbosity, _ := cmd.Flags().GetCount("verbose")
	return pipeline.NewCLIEmitter(verbosity)
}

// pathsOrDot defaults an empty argument list to the current directory.
func pathsOrDot(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}
