package commands

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rulefmt/rulefmt/pipeline"
)

// WatchCmd represents the watch command
var WatchCmd = &cobra.Command{
	Use:   "watch [path...]",
	Short: "Watch directories and re-format changed lists",
	Long: `Run an initial format pass, then watch the lists' directories and
re-format any *.list file that changes, until interrupted. Change bursts
are debounced (watch.debounce_ms) and rulefmt's own artifact writes are
ignored so formatting never loops.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	marks := pipeline.NewWriteMarks(10 * time.Second)
	runner := pipeline.NewRunner(cfg, newEmitter(cmd), marks)
	return runner.Watch(ctx, pathsOrDot(args), pipeline.FormatOptions{})
}
