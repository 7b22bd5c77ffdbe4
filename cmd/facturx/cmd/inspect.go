package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/facturx/internal/cii"
	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/pdf"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Inspect a hybrid PDF or a CII XML file",
	Long: `Report whether a PDF carries the factur-x.xml attachment and which
conformance profile the structured payload declares.

Examples:
  facturx inspect invoice-facturx.pdf
  facturx inspect factur-x.xml`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	switch {
	case bytes.HasPrefix(data, []byte("%PDF")):
		fmt.Println("Format:      PDF")
		has, err := pdf.HasStructuredData(data)
		if err != nil {
			return err
		}
		fmt.Printf("Attachment:  %v\n", has)
		if !has {
			return nil
		}
		xmlData, err := pdf.ExtractStructuredData(data)
		if err != nil {
			return err
		}
		printDeclaredProfile(xmlData)

	case bytes.HasPrefix(bytes.TrimSpace(data), []byte("<")):
		fmt.Println("Format:      XML")
		printDeclaredProfile(data)

	default:
		return fmt.Errorf("unsupported file format")
	}

	return nil
}

func printDeclaredProfile(xmlData []byte) {
	number, err := cii.DocumentNumber(xmlData)
	if err == nil {
		fmt.Printf("Invoice:     %s\n", number)
	}

	urn, err := cii.GuidelineURN(xmlData)
	if err != nil {
		fmt.Printf("Profile:     unknown (%v)\n", err)
		return
	}
	fmt.Printf("Guideline:   %s\n", urn)
	if p, ok := model.ProfileForURN(urn); ok {
		fmt.Printf("Profile:     %s\n", p)
	}
}
