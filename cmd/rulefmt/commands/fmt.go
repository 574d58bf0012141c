package commands

import (
	"github.com/spf13/cobra"

	"github.com/rulefmt/rulefmt/pipeline"
)

// FmtCmd represents the fmt command
var FmtCmd = &cobra.Command{
	Use:   "fmt [path...]",
	Short: "Normalize rule lists in place and write JSON rule-sets",
	Long: `Normalize rule lists into canonical form: regenerated header, redundant
rules removed, duplicates collapsed, deterministic ordering. Each list is
rewritten in place and a JSON rule-set sibling is written next to it (or
under output.json_dir).

Paths may be files or directories; directories are walked for *.list
files. With no paths the current directory is used.

Examples:
  rulefmt fmt                      # everything under .
  rulefmt fmt emby.list ai.list    # specific lists
  rulefmt fmt --dry-run            # report what would change, write nothing
  rulefmt fmt --no-dedupe          # keep subsumed rules (legacy pass-through)`,
	RunE: runFmt,
}

var (
	noDedupeFlag    bool
	listOnlyFlag    bool
	jsonOnlyFlag    bool
	jsonVersionFlag int
	dryRunFlag      bool
)

func init() {
	FmtCmd.Flags().BoolVar(&noDedupeFlag, "no-dedupe", false, "Keep rules already covered by a broader DOMAIN-SUFFIX rule")
	FmtCmd.Flags().BoolVar(&listOnlyFlag, "list-only", false, "Write only the text artifact")
	FmtCmd.Flags().BoolVar(&jsonOnlyFlag, "json-only", false, "Write only the JSON artifact")
	FmtCmd.Flags().IntVar(&jsonVersionFlag, "json-version", 0, "Rule-set format version (default from config)")
	FmtCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Report what would change without writing")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if noDedupeFlag {
		cfg.Format.Dedupe = false
	}
	if jsonVersionFlag != 0 {
		cfg.Format.JSONVersion = jsonVersionFlag
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	runner := pipeline.NewRunner(cfg, newEmitter(cmd), nil)
	_, err = runner.Format(cmd.Context(), pathsOrDot(args), pipeline.FormatOptions{
		ListOnly: listOnlyFlag,
		JSONOnly: jsonOnlyFlag,
		DryRun:   dryRunFlag,
	})
	return err
}
