package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/facturx/internal/check"
	"github.com/rezonia/facturx/internal/convert"
)

var checkFormat string

var checkCmd = &cobra.Command{
	Use:   "check <invoice.json>",
	Short: "Check record consistency without generating output",
	Long: `Convert the records to the strict document model and run the
consistency checker: VAT breakdown reconciliation, total arithmetic,
vocabulary membership and required fields.

The command exits non-zero when hard errors are found; warnings alone
do not fail it.

Examples:
  facturx check invoice.json
  facturx check invoice.json -f json`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "table", "Output format (table, json)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	input, err := readInput(args[0])
	if err != nil {
		return err
	}

	doc := convert.NewConverter().Convert(&input.Invoice, &input.Seller, input.Client)
	findings := check.NewChecker().Check(doc)
	errs := check.Errors(findings)

	switch checkFormat {
	case "json":
		out, err := json.MarshalIndent(map[string]interface{}{
			"valid":    len(errs) == 0,
			"errors":   errs,
			"warnings": check.Warnings(findings),
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))

	default:
		if len(findings) == 0 {
			fmt.Printf("%s: OK\n", doc.Number)
		} else {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "LEVEL\tFIELD\tMESSAGE")
			for _, r := range findings {
				level := "warning"
				if r.IsError {
					level = "error"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", level, r.Field, r.Message)
			}
			w.Flush()
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d consistency error(s)", len(errs))
	}
	return nil
}
