package facturx

import (
	"context"

	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/processor"
)

// Options configures generator behavior
type Options struct {
	// Profile is the Factur-X conformance level (default EN 16931).
	Profile Profile

	// CountryCode overrides the domestic default country ("FR").
	CountryCode string

	// RunChecks enables the consistency checker between conversion and
	// serialization; check errors then abort generation.
	RunChecks bool
}

// Result is the outcome of a generation call
type Result struct {
	Document *Document
	XML      []byte
	PDF      []byte
	Warnings []string
}

// Generator implements Factur-X generation using the internal pipeline
type Generator struct {
	pipeline *processor.Pipeline
}

// NewGenerator creates a generator with the given options
func NewGenerator(opts Options) *Generator {
	pOpts := []processor.Option{
		processor.WithChecks(opts.RunChecks),
	}
	if opts.Profile != "" {
		pOpts = append(pOpts, processor.WithProfile(opts.Profile))
	}
	if opts.CountryCode != "" {
		pOpts = append(pOpts, processor.WithCountryCode(opts.CountryCode))
	}

	return &Generator{
		pipeline: processor.NewPipeline(pOpts...),
	}
}

// NewDefaultGenerator creates a generator with default options
func NewDefaultGenerator() *Generator {
	return NewGenerator(Options{})
}

// GenerateXML converts the records and returns the CII XML payload.
func (g *Generator) GenerateXML(ctx context.Context, inv *InvoiceRecord, seller *SellerProfile, client *ClientRecord) (*Result, error) {
	return wrap(g.pipeline.GenerateXML(ctx, inv, seller, client))
}

// GeneratePDF converts the records and merges the XML into the rendered PDF.
func (g *Generator) GeneratePDF(ctx context.Context, inv *InvoiceRecord, seller *SellerProfile, client *ClientRecord, pdfBytes []byte) (*Result, error) {
	return wrap(g.pipeline.GeneratePDF(ctx, inv, seller, client, pdfBytes))
}

// EmbedXML merges an existing XML payload into a rendered PDF.
func (g *Generator) EmbedXML(ctx context.Context, pdfBytes, xmlBytes []byte, invoiceNumber string) (*Result, error) {
	return wrap(g.pipeline.EmbedXML(ctx, pdfBytes, xmlBytes, invoiceNumber))
}

// Profile returns the conformance level the generator emits.
func (g *Generator) Profile() model.Profile {
	return g.pipeline.Profile()
}

func wrap(r *processor.Result) (*Result, error) {
	if r.Error != nil {
		return nil, r.Error
	}
	return &Result{
		Document: r.Document,
		XML:      r.XML,
		PDF:      r.PDF,
		Warnings: r.Warnings,
	}, nil
}
