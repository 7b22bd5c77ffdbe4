// Package check verifies the internal consistency of a Document after
// conversion and before (or independently of) serialization.
//
// Generation itself never validates; the builder serializes whatever it is
// given. Callers that want strictness run the checker as a separate step.
package check

import (
	money "github.com/rezonia/facturx/internal/decimal"
	"github.com/rezonia/facturx/internal/model"
)

// Result is one finding. IsError distinguishes hard inconsistencies from
// advisory warnings.
type Result struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	IsError bool        `json:"is_error"`
}

// Checker runs document consistency checks.
type Checker struct{}

// NewChecker creates a checker
func NewChecker() *Checker {
	return &Checker{}
}

// Check returns all findings for the document. An empty slice means the
// document is internally consistent.
func (c *Checker) Check(doc *model.Document) []Result {
	var results []Result

	results = append(results, checkRequired(doc)...)
	results = append(results, checkVocabularies(doc)...)
	results = append(results, checkLines(doc)...)
	results = append(results, checkAmounts(doc)...)
	results = append(results, checkPayment(doc)...)

	return results
}

// Errors filters the findings down to hard errors.
func Errors(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.IsError {
			out = append(out, r)
		}
	}
	return out
}

// Warnings filters the findings down to advisory warnings.
func Warnings(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.IsError {
			out = append(out, r)
		}
	}
	return out
}

func checkRequired(doc *model.Document) []Result {
	var results []Result

	if doc.Number == "" {
		results = append(results, Result{Field: "number", Message: "missing invoice number", IsError: true})
	}
	if doc.IssueDate.IsZero() {
		results = append(results, Result{Field: "issue_date", Message: "missing issue date", IsError: true})
	}
	if doc.Seller.Name == "" {
		results = append(results, Result{Field: "seller.name", Message: "missing seller name", IsError: true})
	}
	if doc.Currency == "" {
		results = append(results, Result{Field: "currency", Message: "missing currency code", IsError: true})
	}

	return results
}

func checkVocabularies(doc *model.Document) []Result {
	var results []Result

	if !doc.TypeCode.IsValid() {
		results = append(results, Result{Field: "type_code", Message: "type code outside supported vocabulary", Value: string(doc.TypeCode), IsError: true})
	}
	if doc.PaymentMeans != "" && !doc.PaymentMeans.IsValid() {
		results = append(results, Result{Field: "payment_means", Message: "payment means outside supported vocabulary", Value: string(doc.PaymentMeans), IsError: true})
	}

	for _, line := range doc.Lines {
		if !line.Unit.IsValid() {
			results = append(results, Result{Field: "lines.unit", Message: "unit code outside supported vocabulary", Value: string(line.Unit), IsError: true})
		}
		if !line.VATCategory.IsValid() {
			results = append(results, Result{Field: "lines.vat_category", Message: "VAT category outside supported vocabulary", Value: string(line.VATCategory), IsError: true})
		}
		// The converter only derives S and Z; anything else came from an
		// external Document and deserves a second look.
		if line.VATCategory.IsValid() && line.VATCategory != model.CategoryStandard && line.VATCategory != model.CategoryZeroRated {
			results = append(results, Result{Field: "lines.vat_category", Message: "category not derivable from rate, verify tax treatment", Value: string(line.VATCategory), IsError: false})
		}
	}

	return results
}

func checkLines(doc *model.Document) []Result {
	var results []Result

	for i, line := range doc.Lines {
		if line.ID != i+1 {
			results = append(results, Result{Field: "lines.id", Message: "line ids must be sequential starting at 1", Value: line.ID, IsError: true})
		}
		if line.Description == "" {
			results = append(results, Result{Field: "lines.description", Message: "missing line description", IsError: false})
		}
	}

	return results
}

// checkAmounts verifies that the VAT breakdown reconciles with the stated
// totals to 2-decimal precision.
func checkAmounts(doc *model.Document) []Result {
	var results []Result

	base := money.Zero
	tax := money.Zero
	for _, bd := range doc.Breakdowns {
		base = base.Add(bd.Base)
		tax = tax.Add(bd.Tax)
	}

	if len(doc.Breakdowns) > 0 {
		if !money.EqualCents(base, doc.Subtotal) {
			results = append(results, Result{Field: "breakdowns", Message: "breakdown bases do not sum to subtotal", Value: base.StringFixed(2), IsError: true})
		}
		if !money.EqualCents(tax, doc.TotalVAT) {
			results = append(results, Result{Field: "breakdowns", Message: "breakdown taxes do not sum to total VAT", Value: tax.StringFixed(2), IsError: true})
		}
	}

	if !money.EqualCents(doc.Subtotal.Add(doc.TotalVAT), doc.Total) {
		results = append(results, Result{Field: "total", Message: "grand total does not equal subtotal plus VAT", Value: doc.Total.StringFixed(2), IsError: true})
	}
	if doc.AmountDue.GreaterThan(doc.Total) {
		results = append(results, Result{Field: "amount_due", Message: "amount due exceeds grand total", Value: doc.AmountDue.StringFixed(2), IsError: false})
	}

	return results
}

func checkPayment(doc *model.Document) []Result {
	var results []Result

	if doc.IBAN != "" && !doc.PaymentMeans.IsTransfer() {
		results = append(results, Result{Field: "iban", Message: "IBAN set but payment means is not a transfer", Value: string(doc.PaymentMeans), IsError: false})
	}

	return results
}
