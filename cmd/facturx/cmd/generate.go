package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	generateOutput string
	generatePDF    string
	generateTO     time.Duration
)

var generateCmd = &cobra.Command{
	Use:   "generate <invoice.json>",
	Short: "Generate Factur-X XML (optionally merged into a PDF)",
	Long: `Generate the Cross-Industry Invoice XML for a raw invoice record.

The input file carries the invoice record, the seller profile and optionally
an explicit client record:

  {
    "invoice": { "number": "2024-0001", "issue_date": "2024-03-14T00:00:00Z", ... },
    "seller":  { "company_name": "ACME SARL", ... },
    "client":  { "name": "Client SA", ... }
  }

With --pdf the XML is additionally embedded into the rendered PDF and the
merged hybrid document is written instead of the bare XML.

Examples:
  facturx generate invoice.json
  facturx generate invoice.json -o invoice.xml
  facturx generate invoice.json --profile basic -o invoice.xml
  facturx generate invoice.json --pdf rendered.pdf -o invoice-facturx.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file (default: stdout)")
	generateCmd.Flags().StringVar(&generatePDF, "pdf", "", "Rendered PDF to merge the XML into")
	generateCmd.Flags().DurationVar(&generateTO, "timeout", time.Minute, "Generation timeout")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	input, err := readInput(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), generateTO)
	defer cancel()

	pipeline := newPipeline()
	log.Debug().Str("profile", string(pipeline.Profile())).Str("invoice", input.Invoice.Number).Msg("generating")

	if generatePDF == "" {
		result := pipeline.GenerateXML(ctx, &input.Invoice, &input.Seller, input.Client)
		if result.Error != nil {
			return result.Error
		}
		printWarnings(result.Warnings)
		return writeOutput(generateOutput, result.XML)
	}

	pdfBytes, err := os.ReadFile(generatePDF)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", generatePDF, err)
	}

	result := pipeline.GeneratePDF(ctx, &input.Invoice, &input.Seller, input.Client, pdfBytes)
	if result.Error != nil {
		return result.Error
	}
	printWarnings(result.Warnings)

	if generateOutput == "" {
		generateOutput = input.Invoice.Number + "-facturx.pdf"
	}
	if err := writeOutput(generateOutput, result.PDF); err != nil {
		return err
	}
	log.Info().Str("output", generateOutput).Msg("merged PDF written")
	return nil
}

func printWarnings(warnings []string) {
	for _, w := range warnings {
		log.Warn().Msg(w)
	}
}
