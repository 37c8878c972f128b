package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sitecorpus/internal/report"
	"sitecorpus/internal/storage"
)

// reportCmd prints aggregate statistics for an existing corpus file
var reportCmd = &cobra.Command{
	Use:   "report [corpus-file]",
	Short: "Analyze a corpus file and print aggregate statistics",
	Long: `Report reads a JSONL corpus produced by a previous run and prints
document counts, word and character statistics, language and content
type distributions, quality signals, and the largest documents.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	path := "./corpus.jsonl"
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("corpus file not found: %s", path)
	}

	docs, err := storage.NewJSONLStore(path).ReadDocuments()
	if err != nil {
		return err
	}

	report.Render(cmd.OutOrStdout(), docs)
	return nil
}
