package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loosely-typed records as delivered by the upstream store. Every field the
// converter needs may be missing; conversion degrades to defaults instead of
// failing.

// InvoiceRecord is a raw invoice row.
type InvoiceRecord struct {
	Number    string     `json:"number"`
	TypeCode  string     `json:"type_code,omitempty"` // "380" when empty
	IssueDate time.Time  `json:"issue_date"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Currency  string     `json:"currency,omitempty"` // "EUR" when empty

	// Flat VAT rate applied to every line without its own override.
	VATRate decimal.Decimal `json:"vat_rate"`

	// Stated totals, accepted as given.
	Subtotal  decimal.Decimal `json:"subtotal"`
	TotalVAT  decimal.Decimal `json:"total_vat"`
	Total     decimal.Decimal `json:"total"`
	AmountDue decimal.Decimal `json:"amount_due"`

	// Embedded flat client fields, used when no explicit client record exists.
	ClientName    string `json:"client_name,omitempty"`
	ClientAddress string `json:"client_address,omitempty"`
	ClientEmail   string `json:"client_email,omitempty"`
	ClientPhone   string `json:"client_phone,omitempty"`

	BuyerReference string `json:"buyer_reference,omitempty"`

	PaymentMeans string `json:"payment_means,omitempty"`
	PaymentTerms string `json:"payment_terms,omitempty"`
	Notes        string `json:"notes,omitempty"`

	Items []LineRecord `json:"items"`
}

// LineRecord is a raw invoice line item.
type LineRecord struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	Unit        string          `json:"unit,omitempty"` // Rec 20 code, C62 when empty

	// Per-line override of the invoice's flat VAT rate.
	VATRate *decimal.Decimal `json:"vat_rate,omitempty"`
}

// SellerProfile is the raw seller account row.
type SellerProfile struct {
	CompanyName string `json:"company_name,omitempty"`
	FullName    string `json:"full_name,omitempty"`
	Address     string `json:"address,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	SIREN       string `json:"siren,omitempty"`
	VATNumber   string `json:"vat_number,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	IBAN        string `json:"iban,omitempty"`
	BIC         string `json:"bic,omitempty"`
}

// ClientRecord is the raw buyer row. When absent the converter falls back to
// the invoice's embedded client fields.
type ClientRecord struct {
	Name        string `json:"name,omitempty"`
	Address     string `json:"address,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	SIREN       string `json:"siren,omitempty"`
	VATNumber   string `json:"vat_number,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
}
