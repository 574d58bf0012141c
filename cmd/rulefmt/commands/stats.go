package commands

import (
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rulefmt/rulefmt/pipeline"
	"github.com/rulefmt/rulefmt/rules"
)

// StatsCmd represents the stats command
var StatsCmd = &cobra.Command{
	Use:   "stats [path...]",
	Short: "Show per-kind rule counts per list",
	Long: `Process lists in memory and print per-kind rule counts, without writing
any artifacts. Terminal output is a table; --json emits one event per
list for machine consumers.`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	emitter := newEmitter(cmd)
	if !jsonOutput {
		// The table below replaces per-file terminal output.
		emitter = pipeline.NopEmitter{}
	}

	runner := pipeline.NewRunner(cfg, emitter, nil)
	sum, err := runner.Stats(cmd.Context(), pathsOrDot(args))
	if err != nil {
		return err
	}
	if !jsonOutput {
		renderStatsTable(sum)
	}
	return nil
}

func renderStatsTable(sum pipeline.Summary) {
	header := []string{"LIST"}
	for _, k := range rules.Kinds() {
		header = append(header, k.String())
	}
	header = append(header, "TOTAL")

	data := pterm.TableData{header}
	for _, res := range sum.Files {
		row := []string{res.Path}
		for _, k := range rules.Kinds() {
			row = append(row, strconv.Itoa(res.Stats[k.String()]))
		}
		row = append(row, strconv.Itoa(res.Total))
		data = append(data, row)
	}

	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Printf("\n%d lists, %d rules\n", len(sum.Files), sum.Rules)
}
