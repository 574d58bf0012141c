package commands

import (
	"github.com/spf13/cobra"

	"github.com/rulefmt/rulefmt/pipeline"
)

// CheckCmd represents the check command
var CheckCmd = &cobra.Command{
	Use:   "check [path...]",
	Short: "Verify rule lists and JSON artifacts are canonical",
	Long: `Verify that every list equals its canonical form (timestamp line
excluded) and that its JSON artifact exists, matches, and validates
against the rule-set schema. Nothing is written.

Exits non-zero and names the offending files when any artifact is stale,
which makes check the CI guard for rule repositories:

  rulefmt check rules/`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(cfg, newEmitter(cmd), nil)
	_, err = runner.Check(cmd.Context(), pathsOrDot(args))
	return err
}
