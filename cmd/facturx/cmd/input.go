package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rezonia/facturx/internal/model"
)

// GenerateInput is the JSON document the generate and check commands read.
type GenerateInput struct {
	Invoice model.InvoiceRecord `json:"invoice"`
	Seller  model.SellerProfile `json:"seller"`
	Client  *model.ClientRecord `json:"client,omitempty"`
}

func readInput(path string) (*GenerateInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var input GenerateInput
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &input, nil
}

// writeOutput writes to the given path, or stdout when path is "-" or empty.
func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
