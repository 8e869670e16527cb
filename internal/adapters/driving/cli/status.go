package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var statusFormat string

var statusCmd = &cobra.Command{
	Use:   "status [path]",
	Short: "Show per-file validation status",
	Long: `Shows the last-known validation status of every documentation file,
core files first. Answers from the stored run when one exists,
revalidates otherwise.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusFormat, "format", "text", "output format: text or json")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if statusService == nil {
		return errors.New("status reporter not configured")
	}
	if statusFormat != "text" && statusFormat != "json" {
		return errors.New("unknown format: " + statusFormat)
	}

	cmd.SilenceUsage = true

	report, err := statusService.Status(cmd.Context(), corpusRoot(args))
	if err != nil {
		return err
	}

	if statusFormat == "json" {
		return renderJSON(cmd, report)
	}
	renderStatus(cmd, report)
	return nil
}
