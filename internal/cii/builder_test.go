package cii_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	dec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/facturx/internal/cii"
	"github.com/rezonia/facturx/internal/model"
)

func testDocument() *model.Document {
	due := time.Date(2024, 4, 13, 0, 0, 0, 0, time.UTC)
	return &model.Document{
		Number:    "2024-0042",
		TypeCode:  model.TypeCommercialInvoice,
		IssueDate: time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		DueDate:   &due,
		Currency:  "EUR",
		Seller: model.Party{
			Name:        "Plomberie Dupont SARL",
			AddressLine: "10 rue Example",
			PostalCode:  "75001",
			City:        "Paris",
			CountryCode: "FR",
			LegalID:     "123456789",
			VATNumber:   "FR00123456789",
		},
		Buyer: model.Party{
			Name:        "ACME SAS",
			CountryCode: "FR",
		},
		Lines: []model.InvoiceLine{
			{
				ID:          1,
				Description: "Plumbing repair",
				Quantity:    dec.NewFromInt(2),
				Unit:        model.UnitHour,
				UnitPrice:   dec.RequireFromString("50.00"),
				LineTotal:   dec.RequireFromString("100.00"),
				VATRate:     dec.NewFromInt(20),
				VATCategory: model.CategoryStandard,
			},
			{
				ID:          2,
				Description: "Materials",
				Quantity:    dec.NewFromInt(1),
				Unit:        model.UnitGeneric,
				UnitPrice:   dec.RequireFromString("50.00"),
				LineTotal:   dec.RequireFromString("50.00"),
				VATRate:     dec.NewFromInt(10),
				VATCategory: model.CategoryStandard,
			},
		},
		Subtotal: dec.RequireFromString("150.00"),
		Breakdowns: []model.VATBreakdown{
			{Rate: dec.NewFromInt(20), Category: model.CategoryStandard, Base: dec.RequireFromString("100.00"), Tax: dec.RequireFromString("20.00")},
			{Rate: dec.NewFromInt(10), Category: model.CategoryStandard, Base: dec.RequireFromString("50.00"), Tax: dec.RequireFromString("5.00")},
		},
		TotalVAT:     dec.RequireFromString("25.00"),
		Total:        dec.RequireFromString("175.00"),
		AmountDue:    dec.RequireFromString("175.00"),
		PaymentMeans: model.MeansTransfer,
		IBAN:         "FR7630006000011234567890189",
		BIC:          "AGRIFRPP",
		PaymentTerms: "30 jours net",
	}
}

func parseXML(t *testing.T, data []byte) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))
	return doc
}

func elementText(t *testing.T, doc *etree.Document, path string) string {
	t.Helper()
	elem := doc.FindElement(path)
	require.NotNil(t, elem, "missing element %s", path)
	return elem.Text()
}

func TestBuild_Namespaces(t *testing.T) {
	builder := cii.NewBuilder(model.ProfileEN16931)

	data, err := builder.Build(testDocument())
	require.NoError(t, err)

	x := parseXML(t, data)
	root := x.Root()
	require.NotNil(t, root)
	assert.Equal(t, "CrossIndustryInvoice", root.Tag)
	assert.Equal(t, "urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100",
		root.SelectAttrValue("xmlns:rsm", ""))
	assert.Equal(t, "urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:100",
		root.SelectAttrValue("xmlns:ram", ""))
	assert.Equal(t, "urn:un:unece:uncefact:data:standard:UnqualifiedDataType:100",
		root.SelectAttrValue("xmlns:udt", ""))
	assert.Equal(t, "urn:un:unece:uncefact:data:standard:QualifiedDataType:100",
		root.SelectAttrValue("xmlns:qdt", ""))
}

func TestBuild_GuidelineParameter(t *testing.T) {
	for _, profile := range []model.Profile{
		model.ProfileMinimum, model.ProfileBasicWL, model.ProfileBasic,
		model.ProfileEN16931, model.ProfileExtended,
	} {
		t.Run(string(profile), func(t *testing.T) {
			data, err := cii.NewBuilder(profile).Build(testDocument())
			require.NoError(t, err)

			x := parseXML(t, data)
			urn := elementText(t, x, "//ram:GuidelineSpecifiedDocumentContextParameter/ram:ID")
			assert.Equal(t, profile.URN(), urn)
		})
	}
}

func TestBuild_Header(t *testing.T) {
	data, err := cii.NewBuilder(model.ProfileEN16931).Build(testDocument())
	require.NoError(t, err)

	x := parseXML(t, data)
	assert.Equal(t, "2024-0042", elementText(t, x, "//rsm:ExchangedDocument/ram:ID"))
	assert.Equal(t, "380", elementText(t, x, "//rsm:ExchangedDocument/ram:TypeCode"))

	date := x.FindElement("//rsm:ExchangedDocument/ram:IssueDateTime/udt:DateTimeString")
	require.NotNil(t, date)
	assert.Equal(t, "20240314", date.Text())
	assert.Equal(t, "102", date.SelectAttrValue("format", ""))
}

func TestBuild_Lines(t *testing.T) {
	data, err := cii.NewBuilder(model.ProfileEN16931).Build(testDocument())
	require.NoError(t, err)

	x := parseXML(t, data)
	items := x.FindElements("//ram:IncludedSupplyChainTradeLineItem")
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "1", first.FindElement(".//ram:LineID").Text())
	assert.Equal(t, "Plumbing repair", first.FindElement(".//ram:SpecifiedTradeProduct/ram:Name").Text())
	assert.Equal(t, "50.00", first.FindElement(".//ram:NetPriceProductTradePrice/ram:ChargeAmount").Text())

	qty := first.FindElement(".//ram:BilledQuantity")
	require.NotNil(t, qty)
	assert.Equal(t, "2", qty.Text())
	assert.Equal(t, "HUR", qty.SelectAttrValue("unitCode", ""))

	assert.Equal(t, "20.00", first.FindElement(".//ram:RateApplicablePercent").Text())
	assert.Equal(t, "100.00", first.FindElement(".//ram:LineTotalAmount").Text())

	assert.Equal(t, "2", items[1].FindElement(".//ram:LineID").Text())
}

func TestBuild_HeaderOnlyProfilesOmitLines(t *testing.T) {
	for _, profile := range []model.Profile{model.ProfileMinimum, model.ProfileBasicWL} {
		t.Run(string(profile), func(t *testing.T) {
			data, err := cii.NewBuilder(profile).Build(testDocument())
			require.NoError(t, err)

			x := parseXML(t, data)
			assert.Empty(t, x.FindElements("//ram:IncludedSupplyChainTradeLineItem"))

			// Header totals survive even without lines
			assert.Equal(t, "175.00", elementText(t, x, "//ram:GrandTotalAmount"))
		})
	}
}

func TestBuild_Parties(t *testing.T) {
	data, err := cii.NewBuilder(model.ProfileEN16931).Build(testDocument())
	require.NoError(t, err)

	x := parseXML(t, data)
	seller := x.FindElement("//ram:SellerTradeParty")
	require.NotNil(t, seller)
	assert.Equal(t, "Plomberie Dupont SARL", seller.FindElement("ram:Name").Text())

	legal := seller.FindElement(".//ram:SpecifiedLegalOrganization/ram:ID")
	require.NotNil(t, legal)
	assert.Equal(t, "123456789", legal.Text())
	assert.Equal(t, "0002", legal.SelectAttrValue("schemeID", ""))

	addr := seller.FindElement("ram:PostalTradeAddress")
	require.NotNil(t, addr)
	assert.Equal(t, "75001", addr.FindElement("ram:PostcodeCode").Text())
	assert.Equal(t, "10 rue Example", addr.FindElement("ram:LineOne").Text())
	assert.Equal(t, "Paris", addr.FindElement("ram:CityName").Text())
	assert.Equal(t, "FR", addr.FindElement("ram:CountryID").Text())

	vat := seller.FindElement(".//ram:SpecifiedTaxRegistration/ram:ID")
	require.NotNil(t, vat)
	assert.Equal(t, "FR00123456789", vat.Text())
	assert.Equal(t, "VA", vat.SelectAttrValue("schemeID", ""))

	// Buyer has no address or VAT number, so neither block is emitted
	buyer := x.FindElement("//ram:BuyerTradeParty")
	require.NotNil(t, buyer)
	assert.Equal(t, "ACME SAS", buyer.FindElement("ram:Name").Text())
	assert.Nil(t, buyer.FindElement("ram:PostalTradeAddress"))
	assert.Nil(t, buyer.FindElement("ram:SpecifiedTaxRegistration"))
}

func TestBuild_Settlement(t *testing.T) {
	data, err := cii.NewBuilder(model.ProfileEN16931).Build(testDocument())
	require.NoError(t, err)

	x := parseXML(t, data)
	assert.Equal(t, "EUR", elementText(t, x, "//ram:InvoiceCurrencyCode"))

	means := x.FindElement("//ram:SpecifiedTradeSettlementPaymentMeans")
	require.NotNil(t, means)
	assert.Equal(t, "30", means.FindElement("ram:TypeCode").Text())
	assert.Equal(t, "FR7630006000011234567890189", means.FindElement(".//ram:IBANID").Text())
	assert.Equal(t, "AGRIFRPP", means.FindElement(".//ram:BICID").Text())

	taxes := x.FindElements("//ram:ApplicableHeaderTradeSettlement/ram:ApplicableTradeTax")
	require.Len(t, taxes, 2)
	assert.Equal(t, "20.00", taxes[0].FindElement("ram:CalculatedAmount").Text())
	assert.Equal(t, "100.00", taxes[0].FindElement("ram:BasisAmount").Text())
	assert.Equal(t, "S", taxes[0].FindElement("ram:CategoryCode").Text())
	assert.Equal(t, "20.00", taxes[0].FindElement("ram:RateApplicablePercent").Text())
	assert.Equal(t, "5.00", taxes[1].FindElement("ram:CalculatedAmount").Text())

	terms := x.FindElement("//ram:SpecifiedTradePaymentTerms")
	require.NotNil(t, terms)
	assert.Equal(t, "30 jours net", terms.FindElement("ram:Description").Text())
	assert.Equal(t, "20240413", terms.FindElement(".//udt:DateTimeString").Text())

	lineTotals := x.FindElements("//ram:LineTotalAmount")
	require.NotEmpty(t, lineTotals)
	assert.Equal(t, "150.00", lineTotals[len(lineTotals)-1].Text())
	assert.Equal(t, "150.00", elementText(t, x, "//ram:TaxBasisTotalAmount"))
	taxTotal := x.FindElement("//ram:TaxTotalAmount")
	require.NotNil(t, taxTotal)
	assert.Equal(t, "25.00", taxTotal.Text())
	assert.Equal(t, "EUR", taxTotal.SelectAttrValue("currencyID", ""))
	assert.Equal(t, "175.00", elementText(t, x, "//ram:GrandTotalAmount"))
	assert.Equal(t, "175.00", elementText(t, x, "//ram:DuePayableAmount"))
}

func TestBuild_SiblingOrder(t *testing.T) {
	data, err := cii.NewBuilder(model.ProfileEN16931).Build(testDocument())
	require.NoError(t, err)

	x := parseXML(t, data)
	root := x.Root()

	var tags []string
	for _, child := range root.ChildElements() {
		tags = append(tags, child.Tag)
	}
	assert.Equal(t, []string{
		"ExchangedDocumentContext",
		"ExchangedDocument",
		"SupplyChainTradeTransaction",
	}, tags)

	tx := x.FindElement("//rsm:SupplyChainTradeTransaction")
	require.NotNil(t, tx)
	children := tx.ChildElements()
	require.NotEmpty(t, children)
	// Lines first, then agreement, delivery, settlement
	n := len(children)
	assert.Equal(t, "ApplicableHeaderTradeAgreement", children[n-3].Tag)
	assert.Equal(t, "ApplicableHeaderTradeDelivery", children[n-2].Tag)
	assert.Equal(t, "ApplicableHeaderTradeSettlement", children[n-1].Tag)
}

func TestBuild_OptionalBlocksOmitted(t *testing.T) {
	doc := testDocument()
	doc.PaymentMeans = ""
	doc.IBAN = ""
	doc.BIC = ""
	doc.PaymentTerms = ""
	doc.DueDate = nil
	doc.Notes = ""

	data, err := cii.NewBuilder(model.ProfileEN16931).Build(doc)
	require.NoError(t, err)

	x := parseXML(t, data)
	assert.Nil(t, x.FindElement("//ram:SpecifiedTradeSettlementPaymentMeans"))
	assert.Nil(t, x.FindElement("//ram:SpecifiedTradePaymentTerms"))
	assert.Nil(t, x.FindElement("//ram:IncludedNote"))
}

func TestBuild_Notes(t *testing.T) {
	doc := testDocument()
	doc.Notes = "TVA sur les encaissements"

	data, err := cii.NewBuilder(model.ProfileEN16931).Build(doc)
	require.NoError(t, err)

	x := parseXML(t, data)
	assert.Equal(t, "TVA sur les encaissements",
		elementText(t, x, "//ram:IncludedNote/ram:Content"))
}

func TestNewBuilder_InvalidProfileDefaults(t *testing.T) {
	builder := cii.NewBuilder(model.Profile("full"))
	assert.Equal(t, model.ProfileEN16931, builder.Profile())
}
