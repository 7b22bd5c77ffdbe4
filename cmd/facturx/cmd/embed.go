package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/facturx/internal/cii"
	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/pdf"
)

var (
	embedOutput string
	embedNumber string
)

var embedCmd = &cobra.Command{
	Use:   "embed <rendered.pdf> <factur-x.xml>",
	Short: "Embed existing Factur-X XML into a rendered PDF",
	Long: `Attach a previously generated factur-x.xml to a rendered PDF and stamp
the document metadata, producing one hybrid artifact.

The invoice number for the metadata is taken from --number, falling back to
the ram:ID in the XML header when unset.

Examples:
  facturx embed rendered.pdf factur-x.xml -o invoice-facturx.pdf
  facturx embed rendered.pdf factur-x.xml --number 2024-0001 -o out.pdf`,
	Args: cobra.ExactArgs(2),
	RunE: runEmbed,
}

func init() {
	rootCmd.AddCommand(embedCmd)

	embedCmd.Flags().StringVarP(&embedOutput, "output", "o", "", "Output file (required)")
	embedCmd.Flags().StringVar(&embedNumber, "number", "", "Invoice number for document metadata")
	_ = embedCmd.MarkFlagRequired("output")
}

func runEmbed(cmd *cobra.Command, args []string) error {
	pdfBytes, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	xmlBytes, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[1], err)
	}

	profile := model.ParseProfile(profileName)
	if urn, err := cii.GuidelineURN(xmlBytes); err == nil {
		if p, ok := model.ProfileForURN(urn); ok {
			profile = p
		}
	}
	if embedNumber == "" {
		if number, err := cii.DocumentNumber(xmlBytes); err == nil {
			embedNumber = number
		}
	}

	merged, err := pdf.Embed(pdfBytes, xmlBytes, pdf.Metadata{
		InvoiceNumber: embedNumber,
		Profile:       profile,
	})
	if err != nil {
		return err
	}

	if err := writeOutput(embedOutput, merged); err != nil {
		return err
	}
	log.Info().Str("output", embedOutput).Msg("merged PDF written")
	return nil
}
