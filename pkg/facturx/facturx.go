// Package facturx provides a public API for generating Factur-X e-invoices.
//
// This package exposes the core types for converting raw invoice records into
// the EN 16931 document model, serializing it as Cross-Industry Invoice XML,
// and embedding the XML into a rendered PDF.
//
// Example usage:
//
//	gen := facturx.NewGenerator(facturx.Options{Profile: facturx.ProfileEN16931})
//	result, err := gen.GenerateXML(ctx, invoice, seller, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("factur-x.xml", result.XML, 0o644)
package facturx

import "github.com/rezonia/facturx/internal/model"

// Re-export core types for public API
type (
	Document      = model.Document
	Party         = model.Party
	InvoiceLine   = model.InvoiceLine
	VATBreakdown  = model.VATBreakdown
	InvoiceRecord = model.InvoiceRecord
	LineRecord    = model.LineRecord
	SellerProfile = model.SellerProfile
	ClientRecord  = model.ClientRecord
	TypeCode      = model.TypeCode
	VATCategory   = model.VATCategory
	UnitCode      = model.UnitCode
	PaymentMeans  = model.PaymentMeans
	Profile       = model.Profile
)

// Re-export profiles
const (
	ProfileMinimum  = model.ProfileMinimum
	ProfileBasicWL  = model.ProfileBasicWL
	ProfileBasic    = model.ProfileBasic
	ProfileEN16931  = model.ProfileEN16931
	ProfileExtended = model.ProfileExtended
)

// Re-export invoice type codes
const (
	TypeCommercialInvoice = model.TypeCommercialInvoice
	TypeCreditNote        = model.TypeCreditNote
	TypeCorrectiveInvoice = model.TypeCorrectiveInvoice
	TypeSelfBilledInvoice = model.TypeSelfBilledInvoice
)

// Re-export VAT categories
const (
	CategoryStandard       = model.CategoryStandard
	CategoryZeroRated      = model.CategoryZeroRated
	CategoryExempt         = model.CategoryExempt
	CategoryReverseCharge  = model.CategoryReverseCharge
	CategoryIntraCommunity = model.CategoryIntraCommunity
	CategoryExport         = model.CategoryExport
	CategoryNotSubject     = model.CategoryNotSubject
	CategoryCanaryIslands  = model.CategoryCanaryIslands
	CategoryCeutaMelilla   = model.CategoryCeutaMelilla
)

// Re-export payment means
const (
	MeansCash            = model.MeansCash
	MeansCheque          = model.MeansCheque
	MeansTransfer        = model.MeansTransfer
	MeansCard            = model.MeansCard
	MeansDirectDebit     = model.MeansDirectDebit
	MeansStandingOrder   = model.MeansStandingOrder
	MeansSEPATransfer    = model.MeansSEPATransfer
	MeansSEPADirectDebit = model.MeansSEPADirectDebit
)

// Re-export error types
type (
	EmbedError      = model.EmbedError
	ValidationError = model.ValidationError
)
