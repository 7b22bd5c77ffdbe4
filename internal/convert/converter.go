// Package convert normalizes loosely-typed invoice, seller and client records
// into the strict document model consumed by the CII builder.
//
// Conversion is a pure function of its inputs and never fails: missing
// optional data degrades to an explicit default so that generation is never
// blocked on an incomplete business record.
package convert

import (
	"github.com/shopspring/decimal"

	money "github.com/rezonia/facturx/internal/decimal"
	"github.com/rezonia/facturx/internal/model"
)

const (
	// DefaultCountryCode is the domestic country used when a party record
	// carries no country of its own.
	DefaultCountryCode = "FR"

	// DefaultSellerName is the generic label used when neither a company
	// name nor an individual name is on file.
	DefaultSellerName = "Vendeur"
)

// Converter builds strict Documents from raw records.
type Converter struct {
	addressParser AddressParser
	countryCode   string
	defaultUnit   model.UnitCode
}

// Option configures the converter
type Option func(*Converter)

// WithAddressParser replaces the default regex address heuristic.
func WithAddressParser(p AddressParser) Option {
	return func(c *Converter) {
		if p != nil {
			c.addressParser = p
		}
	}
}

// WithCountryCode overrides the domestic default country code.
func WithCountryCode(code string) Option {
	return func(c *Converter) {
		if code != "" {
			c.countryCode = code
		}
	}
}

// NewConverter creates a converter with the given options
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		addressParser: NewRegexAddressParser(),
		countryCode:   DefaultCountryCode,
		defaultUnit:   model.UnitGeneric,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert produces a fully-populated Document. The client record may be nil,
// in which case the invoice's embedded flat client fields are used.
func (c *Converter) Convert(inv *model.InvoiceRecord, seller *model.SellerProfile, client *model.ClientRecord) *model.Document {
	if seller == nil {
		seller = &model.SellerProfile{}
	}

	doc := &model.Document{
		Number:         inv.Number,
		TypeCode:       parseTypeCode(inv.TypeCode),
		IssueDate:      inv.IssueDate,
		DueDate:        inv.DueDate,
		Currency:       firstNonEmpty(inv.Currency, "EUR"),
		BuyerReference: inv.BuyerReference,
		Subtotal:       inv.Subtotal,
		TotalVAT:       inv.TotalVAT,
		Total:          inv.Total,
		AmountDue:      inv.AmountDue,
		PaymentTerms:   inv.PaymentTerms,
		Notes:          inv.Notes,
	}

	if means := model.PaymentMeans(inv.PaymentMeans); means.IsValid() {
		doc.PaymentMeans = means
		if means.IsTransfer() {
			doc.IBAN = seller.IBAN
			doc.BIC = seller.BIC
		}
	}

	doc.Lines = c.convertLines(inv)
	doc.Breakdowns = aggregateVAT(doc.Lines)

	doc.Seller = c.convertSeller(seller)
	doc.Buyer = c.convertBuyer(inv, client)

	return doc
}

// convertLines builds one InvoiceLine per raw item with sequential 1-based
// ids. Quantity, unit price and line total are copied verbatim.
func (c *Converter) convertLines(inv *model.InvoiceRecord) []model.InvoiceLine {
	lines := make([]model.InvoiceLine, 0, len(inv.Items))

	for i, item := range inv.Items {
		rate := inv.VATRate
		if item.VATRate != nil {
			rate = *item.VATRate
		}

		unit := model.UnitCode(item.Unit)
		if !unit.IsValid() {
			unit = c.defaultUnit
		}

		lines = append(lines, model.InvoiceLine{
			ID:          i + 1,
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        unit,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.Total,
			VATRate:     rate,
			VATCategory: model.CategoryForRate(rate),
		})
	}

	return lines
}

// aggregateVAT groups lines by resolved rate, in order of first appearance.
// The tax amount is computed independently per line and summed.
func aggregateVAT(lines []model.InvoiceLine) []model.VATBreakdown {
	var breakdowns []model.VATBreakdown
	index := make(map[string]int)

	for _, line := range lines {
		key := line.VATRate.String()
		idx, ok := index[key]
		if !ok {
			idx = len(breakdowns)
			index[key] = idx
			breakdowns = append(breakdowns, model.VATBreakdown{
				Rate:     line.VATRate,
				Category: line.VATCategory,
				Base:     decimal.Zero,
				Tax:      decimal.Zero,
			})
		}

		breakdowns[idx].Base = breakdowns[idx].Base.Add(line.LineTotal)
		breakdowns[idx].Tax = breakdowns[idx].Tax.Add(money.CalculateVAT(line.LineTotal, line.VATRate))
	}

	return breakdowns
}

func (c *Converter) convertSeller(seller *model.SellerProfile) model.Party {
	addr := c.addressParser.Parse(seller.Address)

	return model.Party{
		Name:        firstNonEmpty(seller.CompanyName, seller.FullName, DefaultSellerName),
		AddressLine: addr.Line,
		PostalCode:  addr.PostalCode,
		City:        addr.City,
		CountryCode: firstNonEmpty(seller.CountryCode, c.countryCode),
		LegalID:     seller.SIREN,
		VATNumber:   seller.VATNumber,
		Email:       seller.Email,
		Phone:       seller.Phone,
	}
}

func (c *Converter) convertBuyer(inv *model.InvoiceRecord, client *model.ClientRecord) model.Party {
	if client == nil {
		client = &model.ClientRecord{}
	}

	addr := c.addressParser.Parse(firstNonEmpty(client.Address, inv.ClientAddress))

	return model.Party{
		Name:        firstNonEmpty(client.Name, inv.ClientName),
		AddressLine: addr.Line,
		PostalCode:  addr.PostalCode,
		City:        addr.City,
		CountryCode: firstNonEmpty(client.CountryCode, c.countryCode),
		LegalID:     client.SIREN,
		VATNumber:   client.VATNumber,
		Email:       firstNonEmpty(client.Email, inv.ClientEmail),
		Phone:       firstNonEmpty(client.Phone, inv.ClientPhone),
	}
}

func parseTypeCode(s string) model.TypeCode {
	if code := model.TypeCode(s); code.IsValid() {
		return code
	}
	return model.TypeCommercialInvoice
}
