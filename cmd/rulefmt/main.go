package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rulefmt/rulefmt/cmd/rulefmt/commands"
	"github.com/rulefmt/rulefmt/errors"
	"github.com/rulefmt/rulefmt/logger"
)

var rootCmd = &cobra.Command{
	Use:   "rulefmt",
	Short: "Canonicalizing formatter for routing rule lists",
	Long: `rulefmt normalizes domain/IP rule lists into two synchronized artifacts:
an annotated, deterministically sorted .list file and a sing-box style
JSON rule-set. Redundant rules already covered by a broader DOMAIN-SUFFIX
rule are removed, duplicates collapse, and output ordering is stable, so
"already canonical" is checkable in CI.

Examples:
  rulefmt fmt              # normalize every *.list under the current directory
  rulefmt fmt emby.list    # normalize one list
  rulefmt check            # verify lists are canonical (CI)
  rulefmt stats --json     # per-kind counts as JSON events
  rulefmt watch rules/     # re-format lists as they change
  rulefmt init             # write starter rulefmt.toml and rules.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if err := logger.Initialize(verbosity, jsonOutput); err != nil {
			return errors.Wrap(err, "initializing logger")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "Machine-readable output: JSON events on stdout, JSON logs on stderr")
	rootCmd.PersistentFlags().String("config", "", "Config file to use instead of the layered lookup")

	rootCmd.AddCommand(commands.FmtCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.StatsCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.InitCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
