// Package processor wires the converter, the CII builder and the PDF embedder
// into one generation pipeline.
package processor

import (
	"context"
	"fmt"

	"github.com/rezonia/facturx/internal/check"
	"github.com/rezonia/facturx/internal/cii"
	"github.com/rezonia/facturx/internal/convert"
	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/pdf"
)

// Result holds the outcome of a generation call
type Result struct {
	Document *model.Document `json:"document,omitempty"`
	XML      []byte          `json:"-"`
	PDF      []byte          `json:"-"`
	Warnings []string        `json:"warnings,omitempty"`
	Error    error           `json:"-"`
}

// Pipeline generates Factur-X XML and merged PDFs from raw records.
// A Pipeline is stateless between calls; concurrent use is safe.
type Pipeline struct {
	converter *convert.Converter
	builder   *cii.Builder
	checker   *check.Checker
}

// Option configures the pipeline
type Option func(*config)

type config struct {
	profile       model.Profile
	countryCode   string
	addressParser convert.AddressParser
	runChecks     bool
}

// WithProfile selects the Factur-X conformance level (default EN 16931).
func WithProfile(p model.Profile) Option {
	return func(cfg *config) {
		cfg.profile = p
	}
}

// WithCountryCode overrides the domestic default country.
func WithCountryCode(code string) Option {
	return func(cfg *config) {
		cfg.countryCode = code
	}
}

// WithAddressParser substitutes the address heuristic.
func WithAddressParser(p convert.AddressParser) Option {
	return func(cfg *config) {
		cfg.addressParser = p
	}
}

// WithChecks enables the consistency checker after conversion. Check errors
// abort generation; check warnings are reported on the Result.
func WithChecks(enabled bool) Option {
	return func(cfg *config) {
		cfg.runChecks = enabled
	}
}

// NewPipeline creates a pipeline with the given options
func NewPipeline(opts ...Option) *Pipeline {
	cfg := &config{profile: model.ProfileEN16931}
	for _, opt := range opts {
		opt(cfg)
	}

	convOpts := []convert.Option{}
	if cfg.countryCode != "" {
		convOpts = append(convOpts, convert.WithCountryCode(cfg.countryCode))
	}
	if cfg.addressParser != nil {
		convOpts = append(convOpts, convert.WithAddressParser(cfg.addressParser))
	}

	p := &Pipeline{
		converter: convert.NewConverter(convOpts...),
		builder:   cii.NewBuilder(cfg.profile),
	}
	if cfg.runChecks {
		p.checker = check.NewChecker()
	}
	return p
}

// Profile returns the conformance level the pipeline emits.
func (p *Pipeline) Profile() model.Profile {
	return p.builder.Profile()
}

// GenerateXML converts the records and serializes the CII XML.
func (p *Pipeline) GenerateXML(ctx context.Context, inv *model.InvoiceRecord, seller *model.SellerProfile, client *model.ClientRecord) *Result {
	result := &Result{}

	if err := ctx.Err(); err != nil {
		result.Error = err
		return result
	}

	doc := p.converter.Convert(inv, seller, client)
	result.Document = doc

	if p.checker != nil {
		findings := p.checker.Check(doc)
		for _, w := range check.Warnings(findings) {
			result.Warnings = append(result.Warnings, w.Message)
		}
		if errs := check.Errors(findings); len(errs) > 0 {
			result.Error = model.NewValidationError(errs[0].Field, errs[0].Value, "consistency", errs[0].Message)
			return result
		}
	}

	xml, err := p.builder.Build(doc)
	if err != nil {
		result.Error = fmt.Errorf("failed to serialize document: %w", err)
		return result
	}
	result.XML = xml

	return result
}

// GeneratePDF runs GenerateXML and merges the XML into the rendered PDF.
func (p *Pipeline) GeneratePDF(ctx context.Context, inv *model.InvoiceRecord, seller *model.SellerProfile, client *model.ClientRecord, pdfBytes []byte) *Result {
	result := p.GenerateXML(ctx, inv, seller, client)
	if result.Error != nil {
		return result
	}

	if err := ctx.Err(); err != nil {
		result.Error = err
		return result
	}

	merged, err := pdf.Embed(pdfBytes, result.XML, pdf.Metadata{
		InvoiceNumber: result.Document.Number,
		Profile:       p.builder.Profile(),
	})
	if err != nil {
		result.Error = err
		return result
	}
	result.PDF = merged

	return result
}

// EmbedXML merges previously generated XML into a rendered PDF without
// re-running conversion, for callers that already hold the structured payload.
func (p *Pipeline) EmbedXML(ctx context.Context, pdfBytes, xmlBytes []byte, invoiceNumber string) *Result {
	result := &Result{}

	if err := ctx.Err(); err != nil {
		result.Error = err
		return result
	}

	merged, err := pdf.Embed(pdfBytes, xmlBytes, pdf.Metadata{
		InvoiceNumber: invoiceNumber,
		Profile:       p.builder.Profile(),
	})
	if err != nil {
		result.Error = err
		return result
	}
	result.PDF = merged
	result.XML = xmlBytes

	return result
}
