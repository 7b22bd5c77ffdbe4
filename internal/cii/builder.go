// Package cii serializes strict invoice documents into UN/CEFACT
// Cross-Industry Invoice XML shaped for the Factur-X profiles.
//
// The builder trusts the Document to be internally consistent: amounts are
// serialized as given and codes are assumed to come from the controlled
// vocabularies. Consistency checking is a separate concern (internal/check).
// Sibling order is fixed by the CII schema; validators reject out-of-order
// elements even when all required ones are present.
package cii

import (
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/rezonia/facturx/internal/model"
)

// CII namespaces declared on the document root.
const (
	nsRSM = "urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"
	nsQDT = "urn:un:unece:uncefact:data:standard:QualifiedDataType:100"
	nsRAM = "urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:100"
	nsUDT = "urn:un:unece:uncefact:data:standard:UnqualifiedDataType:100"
)

// Identification schemes used on party elements.
const (
	schemeSIREN = "0002" // French business registration
	schemeVAT   = "VA"
	schemeEmail = "EM"
)

// Builder serializes Documents for one Factur-X profile.
type Builder struct {
	profile model.Profile
}

// NewBuilder creates a builder for the given profile.
func NewBuilder(profile model.Profile) *Builder {
	if !profile.IsValid() {
		profile = model.ProfileEN16931
	}
	return &Builder{profile: profile}
}

// Profile returns the builder's conformance level.
func (b *Builder) Profile() model.Profile {
	return b.profile
}

// Build serializes the document to indented UTF-8 XML. Whitespace is not part
// of the semantic contract; consumers must treat it as insignificant.
func (b *Builder) Build(doc *model.Document) ([]byte, error) {
	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := x.CreateElement("rsm:CrossIndustryInvoice")
	root.CreateAttr("xmlns:rsm", nsRSM)
	root.CreateAttr("xmlns:qdt", nsQDT)
	root.CreateAttr("xmlns:ram", nsRAM)
	root.CreateAttr("xmlns:udt", nsUDT)

	b.buildContext(root)
	b.buildHeader(root, doc)
	b.buildTransaction(root, doc)

	x.Indent(2)
	return x.WriteToBytes()
}

// buildContext writes the guideline parameter identifying the profile.
func (b *Builder) buildContext(root *etree.Element) {
	ctx := root.CreateElement("rsm:ExchangedDocumentContext")
	param := ctx.CreateElement("ram:GuidelineSpecifiedDocumentContextParameter")
	param.CreateElement("ram:ID").SetText(b.profile.URN())
}

func (b *Builder) buildHeader(root *etree.Element, doc *model.Document) {
	header := root.CreateElement("rsm:ExchangedDocument")
	header.CreateElement("ram:ID").SetText(doc.Number)
	header.CreateElement("ram:TypeCode").SetText(string(doc.TypeCode))

	issue := header.CreateElement("ram:IssueDateTime")
	setDateTime(issue, doc.IssueDate)

	if doc.Notes != "" {
		note := header.CreateElement("ram:IncludedNote")
		note.CreateElement("ram:Content").SetText(doc.Notes)
	}
}

func (b *Builder) buildTransaction(root *etree.Element, doc *model.Document) {
	tx := root.CreateElement("rsm:SupplyChainTradeTransaction")

	// Minimum and Basic WL are header-only levels.
	if b.profile.HasLines() {
		for _, line := range doc.Lines {
			b.buildLine(tx, line)
		}
	}

	b.buildAgreement(tx, doc)

	// The schema expects the delivery element even though no delivery terms
	// are modeled.
	tx.CreateElement("ram:ApplicableHeaderTradeDelivery")

	b.buildSettlement(tx, doc)
}

func (b *Builder) buildLine(tx *etree.Element, line model.InvoiceLine) {
	item := tx.CreateElement("ram:IncludedSupplyChainTradeLineItem")

	lineDoc := item.CreateElement("ram:AssociatedDocumentLineDocument")
	lineDoc.CreateElement("ram:LineID").SetText(strconv.Itoa(line.ID))

	product := item.CreateElement("ram:SpecifiedTradeProduct")
	product.CreateElement("ram:Name").SetText(line.Description)

	agreement := item.CreateElement("ram:SpecifiedLineTradeAgreement")
	price := agreement.CreateElement("ram:NetPriceProductTradePrice")
	price.CreateElement("ram:ChargeAmount").SetText(formatAmount(line.UnitPrice))

	delivery := item.CreateElement("ram:SpecifiedLineTradeDelivery")
	qty := delivery.CreateElement("ram:BilledQuantity")
	qty.CreateAttr("unitCode", string(line.Unit))
	qty.SetText(line.Quantity.String())

	settlement := item.CreateElement("ram:SpecifiedLineTradeSettlement")
	tax := settlement.CreateElement("ram:ApplicableTradeTax")
	tax.CreateElement("ram:TypeCode").SetText("VAT")
	tax.CreateElement("ram:CategoryCode").SetText(string(line.VATCategory))
	tax.CreateElement("ram:RateApplicablePercent").SetText(formatRate(line.VATRate))

	sum := settlement.CreateElement("ram:SpecifiedTradeSettlementLineMonetarySummation")
	sum.CreateElement("ram:LineTotalAmount").SetText(formatAmount(line.LineTotal))
}

func (b *Builder) buildAgreement(tx *etree.Element, doc *model.Document) {
	agreement := tx.CreateElement("ram:ApplicableHeaderTradeAgreement")

	if doc.BuyerReference != "" {
		agreement.CreateElement("ram:BuyerReference").SetText(doc.BuyerReference)
	}

	b.buildParty(agreement, "ram:SellerTradeParty", doc.Seller)
	b.buildParty(agreement, "ram:BuyerTradeParty", doc.Buyer)
}

// buildParty writes a trade party block. The VAT registration element is only
// emitted for parties that carry a VAT number, which in practice means the
// seller and identified business buyers.
func (b *Builder) buildParty(parent *etree.Element, tag string, party model.Party) {
	p := parent.CreateElement(tag)
	p.CreateElement("ram:Name").SetText(party.Name)

	if party.LegalID != "" {
		legal := p.CreateElement("ram:SpecifiedLegalOrganization")
		id := legal.CreateElement("ram:ID")
		id.CreateAttr("schemeID", schemeSIREN)
		id.SetText(party.LegalID)
	}

	if party.HasAddress() {
		addr := p.CreateElement("ram:PostalTradeAddress")
		if party.PostalCode != "" {
			addr.CreateElement("ram:PostcodeCode").SetText(party.PostalCode)
		}
		if party.AddressLine != "" {
			addr.CreateElement("ram:LineOne").SetText(party.AddressLine)
		}
		if party.City != "" {
			addr.CreateElement("ram:CityName").SetText(party.City)
		}
		addr.CreateElement("ram:CountryID").SetText(party.CountryCode)
	}

	if party.Email != "" {
		comm := p.CreateElement("ram:URIUniversalCommunication")
		uri := comm.CreateElement("ram:URIID")
		uri.CreateAttr("schemeID", schemeEmail)
		uri.SetText(party.Email)
	}

	if party.VATNumber != "" {
		reg := p.CreateElement("ram:SpecifiedTaxRegistration")
		id := reg.CreateElement("ram:ID")
		id.CreateAttr("schemeID", schemeVAT)
		id.SetText(party.VATNumber)
	}
}

func (b *Builder) buildSettlement(tx *etree.Element, doc *model.Document) {
	settlement := tx.CreateElement("ram:ApplicableHeaderTradeSettlement")
	settlement.CreateElement("ram:InvoiceCurrencyCode").SetText(doc.Currency)

	if doc.PaymentMeans != "" {
		means := settlement.CreateElement("ram:SpecifiedTradeSettlementPaymentMeans")
		means.CreateElement("ram:TypeCode").SetText(string(doc.PaymentMeans))
		if doc.PaymentMeans.IsTransfer() && doc.IBAN != "" {
			account := means.CreateElement("ram:PayeePartyCreditorFinancialAccount")
			account.CreateElement("ram:IBANID").SetText(doc.IBAN)
			if doc.BIC != "" {
				inst := means.CreateElement("ram:PayeeSpecifiedCreditorFinancialInstitution")
				inst.CreateElement("ram:BICID").SetText(doc.BIC)
			}
		}
	}

	for _, bd := range doc.Breakdowns {
		tax := settlement.CreateElement("ram:ApplicableTradeTax")
		tax.CreateElement("ram:CalculatedAmount").SetText(formatAmount(bd.Tax))
		tax.CreateElement("ram:TypeCode").SetText("VAT")
		tax.CreateElement("ram:BasisAmount").SetText(formatAmount(bd.Base))
		tax.CreateElement("ram:CategoryCode").SetText(string(bd.Category))
		tax.CreateElement("ram:RateApplicablePercent").SetText(formatRate(bd.Rate))
	}

	if doc.PaymentTerms != "" || doc.DueDate != nil {
		terms := settlement.CreateElement("ram:SpecifiedTradePaymentTerms")
		if doc.PaymentTerms != "" {
			terms.CreateElement("ram:Description").SetText(doc.PaymentTerms)
		}
		if doc.DueDate != nil {
			due := terms.CreateElement("ram:DueDateDateTime")
			setDateTime(due, *doc.DueDate)
		}
	}

	sum := settlement.CreateElement("ram:SpecifiedTradeSettlementHeaderMonetarySummation")
	sum.CreateElement("ram:LineTotalAmount").SetText(formatAmount(doc.Subtotal))
	sum.CreateElement("ram:TaxBasisTotalAmount").SetText(formatAmount(doc.Subtotal))
	taxTotal := sum.CreateElement("ram:TaxTotalAmount")
	taxTotal.CreateAttr("currencyID", doc.Currency)
	taxTotal.SetText(formatAmount(doc.TotalVAT))
	sum.CreateElement("ram:GrandTotalAmount").SetText(formatAmount(doc.Total))
	sum.CreateElement("ram:DuePayableAmount").SetText(formatAmount(doc.AmountDue))
}

// setDateTime writes a udt:DateTimeString child with the explicit format code
// so downstream parsers can disambiguate the encoding.
func setDateTime(parent *etree.Element, t time.Time) {
	s := parent.CreateElement("udt:DateTimeString")
	s.CreateAttr("format", dateFormat102)
	s.SetText(formatDate(t))
}
