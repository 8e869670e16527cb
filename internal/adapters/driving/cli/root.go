// Package cli provides the doclint command-line interface built on cobra.
// Commands talk to the core through the driving ports; wiring happens in
// package main via SetServices.
package cli

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/transrapport/doclint/internal/adapters/driven/config/file"
	"github.com/transrapport/doclint/internal/core/domain"
	"github.com/transrapport/doclint/internal/core/ports/driving"
	"github.com/transrapport/doclint/internal/logger"
)

// ErrValidationFailed marks a run that completed but found blocking
// issues. main exits 1 for it, 2 for everything else.
var ErrValidationFailed = errors.New("validation failed")

// version is set via Execute.
var version = "dev"

// verboseFlag enables debug logging on stderr.
var verboseFlag bool

// Services holds the driving ports the commands call.
type Services struct {
	Validator       driving.Validator
	CrossReferencer driving.CrossReferencer
	Status          driving.StatusReporter
	Config          *file.ConfigStore
}

var (
	validatorService driving.Validator
	crossRefService  driving.CrossReferencer
	statusService    driving.StatusReporter
	configStore      *file.ConfigStore
)

// SetServices injects the driving ports used by the commands.
func SetServices(s *Services) {
	validatorService = s.Validator
	crossRefService = s.CrossReferencer
	statusService = s.Status
	configStore = s.Config
}

var rootCmd = &cobra.Command{
	Use:   "doclint",
	Short: "Validate TransRapport documentation",
	Long: `doclint validates a markdown documentation corpus: document structure,
terminology definitions, and cross-references between files.

It is built for the TransRapport documentation set (TRANSRAPPORT.md,
ARCHITECTURE.md, TERMINOLOGIE.md, MARKER.md) but works on any local
markdown tree.`,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command.
func Execute(v string) error {
	version = v
	return rootCmd.Execute()
}

// baseConfig returns the validation config from the config store, or the
// built-in defaults when no store is wired.
func baseConfig() domain.Config {
	if configStore != nil {
		return configStore.ValidationConfig()
	}
	return domain.DefaultConfig()
}

// corpusRoot returns the corpus path argument, defaulting to the current
// directory.
func corpusRoot(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// absolutePaths resolves each path; unresolvable ones pass through as
// written.
func absolutePaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			out = append(out, p)
			continue
		}
		out = append(out, abs)
	}
	return out
}
