package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rulefmt/rulefmt/config"
)

// InitCmd represents the init command
var InitCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a starter rulefmt.toml and rules.yaml",
	Long: `Write a starter project config (current effective defaults) and an empty
list manifest into the directory (default: current directory). Existing
files are rotated to .back1/.back2/.back3 first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	written, err := config.WriteStarter(dir)
	if err != nil {
		return err
	}
	for _, path := range written {
		pterm.Printf("wrote %s\n", pterm.Green(path))
	}
	return nil
}
