package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/transrapport/doclint/internal/core/ports/driving"
)

var (
	crossRefTerm   string
	crossRefFile   string
	crossRefFormat string
)

var crossRefCmd = &cobra.Command{
	Use:   "cross-ref [path]",
	Short: "Report cross-references across the corpus",
	Long: `Lists every observed cross-reference: markdown links between corpus
files and usages of defined terminology. Broken references are marked.

Use --term to filter by term and --file to filter by source file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCrossRef,
}

func init() {
	crossRefCmd.Flags().StringVar(&crossRefTerm, "term", "", "only references whose term contains this value")
	crossRefCmd.Flags().StringVar(&crossRefFile, "file", "", "only references observed in this file")
	crossRefCmd.Flags().StringVar(&crossRefFormat, "format", "text", "output format: text or json")
	rootCmd.AddCommand(crossRefCmd)
}

func runCrossRef(cmd *cobra.Command, args []string) error {
	if crossRefService == nil {
		return errors.New("cross-referencer not configured")
	}
	if crossRefFormat != "text" && crossRefFormat != "json" {
		return errors.New("unknown format: " + crossRefFormat)
	}

	cmd.SilenceUsage = true

	filter := driving.CrossRefFilter{Term: crossRefTerm, File: crossRefFile}
	report, err := crossRefService.CrossReferences(cmd.Context(), corpusRoot(args), filter)
	if err != nil {
		return err
	}

	if crossRefFormat == "json" {
		return renderJSON(cmd, report)
	}
	renderCrossRefs(cmd, report)
	return nil
}
