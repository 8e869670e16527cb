package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var (
	validateStrict  bool
	validateFormat  string
	validateFiles   []string
	validateWorkers int
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate the documentation corpus",
	Long: `Validates every markdown file under the given path (default: current
directory): document structure, content completeness, terminology
definitions, marker specification compliance, and cross-references.

Exit codes:
  0  validation passed
  1  validation found blocking issues
  2  usage or system error`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "treat structural warnings as errors")
	validateCmd.Flags().StringVar(&validateFormat, "format", "text", "output format: text or json")
	validateCmd.Flags().StringSliceVar(&validateFiles, "files", nil, "restrict per-file rules to these files")
	validateCmd.Flags().IntVar(&validateWorkers, "workers", 0, "parallel parse workers (0 = default)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if validatorService == nil {
		return errors.New("validator not configured")
	}
	if validateFormat != "text" && validateFormat != "json" {
		return errors.New("unknown format: " + validateFormat)
	}

	cfg := baseConfig()
	if validateStrict {
		cfg.Strict = true
	}
	if len(validateFiles) > 0 {
		cfg.TargetFiles = absolutePaths(validateFiles)
	}
	if validateWorkers > 0 {
		cfg.ParseWorkers = validateWorkers
	}

	cmd.SilenceUsage = true

	report, err := validatorService.Validate(cmd.Context(), corpusRoot(args), cfg)
	if err != nil {
		return err
	}

	if validateFormat == "json" {
		if err := renderJSON(cmd, report); err != nil {
			return err
		}
	} else {
		renderReport(cmd, report)
	}

	if !report.Success {
		return ErrValidationFailed
	}
	return nil
}
