package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Party represents the seller or buyer on a document. Parties are value
// objects, they only exist nested inside a Document.
type Party struct {
	Name        string `json:"name"`
	AddressLine string `json:"address_line,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
	City        string `json:"city,omitempty"`
	CountryCode string `json:"country_code"` // ISO 3166-1 alpha-2
	LegalID     string `json:"legal_id,omitempty"` // business registration number (SIREN)
	VATNumber   string `json:"vat_number,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// HasAddress reports whether at least one postal address field is set.
func (p Party) HasAddress() bool {
	return p.AddressLine != "" || p.PostalCode != "" || p.City != ""
}

// InvoiceLine is one billed item. LineTotal is accepted as given, not
// recomputed from Quantity and UnitPrice, so rounding applied upstream
// survives the conversion.
type InvoiceLine struct {
	ID          int             `json:"id"` // 1-based, stable in document order
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        UnitCode        `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"` // pre-tax
	LineTotal   decimal.Decimal `json:"line_total"` // pre-tax
	VATRate     decimal.Decimal `json:"vat_rate"`   // percentage
	VATCategory VATCategory     `json:"vat_category"`
}

// VATBreakdown aggregates all lines sharing one VAT rate.
type VATBreakdown struct {
	Rate     decimal.Decimal `json:"rate"`
	Category VATCategory     `json:"category"`
	Base     decimal.Decimal `json:"base"` // sum of line totals at this rate
	Tax      decimal.Decimal `json:"tax"`  // sum of per-line tax amounts
}

// Document is the strict invoice model consumed by the CII builder.
// It is built fresh per conversion call and not mutated afterwards.
type Document struct {
	Number    string     `json:"number"`
	TypeCode  TypeCode   `json:"type_code"`
	IssueDate time.Time  `json:"issue_date"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Currency  string     `json:"currency"`

	BuyerReference string `json:"buyer_reference,omitempty"`

	Seller Party `json:"seller"`
	Buyer  Party `json:"buyer"`

	Lines      []InvoiceLine  `json:"lines"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Breakdowns []VATBreakdown `json:"breakdowns"`
	TotalVAT   decimal.Decimal `json:"total_vat"`
	Total      decimal.Decimal `json:"total"`
	AmountDue  decimal.Decimal `json:"amount_due"`

	PaymentMeans PaymentMeans `json:"payment_means,omitempty"`
	IBAN         string       `json:"iban,omitempty"`
	BIC          string       `json:"bic,omitempty"`
	PaymentTerms string       `json:"payment_terms,omitempty"`

	Notes string `json:"notes,omitempty"`
}
