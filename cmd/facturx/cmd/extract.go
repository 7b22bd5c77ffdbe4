package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/facturx/internal/pdf"
)

var extractOutput string

var extractCmd = &cobra.Command{
	Use:   "extract <invoice.pdf>",
	Short: "Extract the factur-x.xml attachment from a hybrid PDF",
	Long: `Pull the embedded factur-x.xml back out of a merged document.

Examples:
  facturx extract invoice-facturx.pdf
  facturx extract invoice-facturx.pdf -o factur-x.xml`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Output file (default: stdout)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	pdfBytes, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	xmlBytes, err := pdf.ExtractStructuredData(pdfBytes)
	if err != nil {
		return err
	}

	return writeOutput(extractOutput, xmlBytes)
}
