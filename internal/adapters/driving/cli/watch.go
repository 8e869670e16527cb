package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/transrapport/doclint/internal/core/ports/driven"
	"github.com/transrapport/doclint/internal/corpus/filesystem"
	"github.com/transrapport/doclint/internal/logger"
)

var watchStrict bool

// watcherFactory is swapped in tests.
var watcherFactory = func() (driven.CorpusWatcher, error) {
	return filesystem.NewWatcher()
}

// revalidations are throttled so editor save bursts trigger one run.
var watchLimiter = rate.NewLimiter(rate.Every(500*time.Millisecond), 1)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Revalidate on file changes",
	Long: `Validates the corpus, then watches it for markdown file changes and
revalidates on every change. Stops on Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchStrict, "strict", false, "treat structural warnings as errors")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if validatorService == nil {
		return errors.New("validator not configured")
	}

	cmd.SilenceUsage = true

	root := corpusRoot(args)
	cfg := baseConfig()
	if watchStrict {
		cfg.Strict = true
	}

	validate := func() {
		report, err := validatorService.Validate(cmd.Context(), root, cfg)
		if err != nil {
			cmd.PrintErrf("validation error: %v\n", err)
			return
		}
		renderReport(cmd, report)
	}

	validate()

	watcher, err := watcherFactory()
	if err != nil {
		return err
	}
	defer watcher.Close()

	changes, err := watcher.Watch(cmd.Context(), root)
	if err != nil {
		return err
	}

	cmd.Printf("\nWatching %s for changes (Ctrl-C to stop)\n", root)

	for change := range changes {
		logger.Debug("change: %s (%d)", change.Path, change.Type)
		if err := watchLimiter.Wait(cmd.Context()); err != nil {
			return nil // Context cancelled.
		}
		cmd.Printf("\n--- %s changed ---\n", change.Path)
		validate()
	}

	return nil
}
