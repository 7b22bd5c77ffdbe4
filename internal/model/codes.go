package model

import "github.com/shopspring/decimal"

// TypeCode identifies the document function (UNTDID 1001 subset).
type TypeCode string

const (
	TypeCommercialInvoice TypeCode = "380"
	TypeCreditNote        TypeCode = "381"
	TypeCorrectiveInvoice TypeCode = "384"
	TypeSelfBilledInvoice TypeCode = "389"
)

// IsValid reports whether the type code belongs to the supported subset.
func (t TypeCode) IsValid() bool {
	switch t {
	case TypeCommercialInvoice, TypeCreditNote, TypeCorrectiveInvoice, TypeSelfBilledInvoice:
		return true
	}
	return false
}

// VATCategory is the EN 16931 VAT category code (UNTDID 5305 subset).
type VATCategory string

const (
	CategoryStandard       VATCategory = "S"
	CategoryZeroRated      VATCategory = "Z"
	CategoryExempt         VATCategory = "E"
	CategoryReverseCharge  VATCategory = "AE"
	CategoryIntraCommunity VATCategory = "K"
	CategoryExport         VATCategory = "G"
	CategoryNotSubject     VATCategory = "O"
	CategoryCanaryIslands  VATCategory = "L"
	CategoryCeutaMelilla   VATCategory = "M"
)

// IsValid reports whether the category belongs to the supported subset.
func (c VATCategory) IsValid() bool {
	switch c {
	case CategoryStandard, CategoryZeroRated, CategoryExempt, CategoryReverseCharge,
		CategoryIntraCommunity, CategoryExport, CategoryNotSubject,
		CategoryCanaryIslands, CategoryCeutaMelilla:
		return true
	}
	return false
}

// CategoryForRate derives the VAT category from a rate percentage.
//
// Only zero-rated and standard are derivable from a bare rate: exempt,
// reverse-charge, intra-community and the other categories need transaction
// context the upstream records do not carry. Extending the derivation means
// extending this one function.
func CategoryForRate(rate decimal.Decimal) VATCategory {
	if rate.IsZero() {
		return CategoryZeroRated
	}
	return CategoryStandard
}

// UnitCode is a UN/ECE Recommendation 20 unit of measure code.
type UnitCode string

const (
	UnitPiece       UnitCode = "H87"
	UnitHour        UnitCode = "HUR"
	UnitDay         UnitCode = "DAY"
	UnitMetre       UnitCode = "MTR"
	UnitSquareMetre UnitCode = "MTK"
	UnitCubicMetre  UnitCode = "MTQ"
	UnitKilogram    UnitCode = "KGM"
	UnitLitre       UnitCode = "LTR"
	UnitSet         UnitCode = "SET"
	UnitGeneric     UnitCode = "C62" // "one", the default when nothing is specified
)

// IsValid reports whether the unit code belongs to the supported subset.
func (u UnitCode) IsValid() bool {
	switch u {
	case UnitPiece, UnitHour, UnitDay, UnitMetre, UnitSquareMetre,
		UnitCubicMetre, UnitKilogram, UnitLitre, UnitSet, UnitGeneric:
		return true
	}
	return false
}

// PaymentMeans is the UNTDID 4461 payment means code.
type PaymentMeans string

const (
	MeansCash            PaymentMeans = "10"
	MeansCheque          PaymentMeans = "20"
	MeansTransfer        PaymentMeans = "30"
	MeansCard            PaymentMeans = "48"
	MeansDirectDebit     PaymentMeans = "49"
	MeansStandingOrder   PaymentMeans = "57"
	MeansSEPATransfer    PaymentMeans = "58"
	MeansSEPADirectDebit PaymentMeans = "59"
)

// IsValid reports whether the payment means belongs to the supported subset.
func (m PaymentMeans) IsValid() bool {
	switch m {
	case MeansCash, MeansCheque, MeansTransfer, MeansCard,
		MeansDirectDebit, MeansStandingOrder, MeansSEPATransfer, MeansSEPADirectDebit:
		return true
	}
	return false
}

// IsTransfer reports whether the payment means denotes a credit transfer,
// i.e. whether IBAN/BIC details are meaningful for it.
func (m PaymentMeans) IsTransfer() bool {
	return m == MeansTransfer || m == MeansSEPATransfer
}

// Profile is a Factur-X conformance level.
type Profile string

const (
	ProfileMinimum  Profile = "minimum"
	ProfileBasicWL  Profile = "basicwl"
	ProfileBasic    Profile = "basic"
	ProfileEN16931  Profile = "en16931"
	ProfileExtended Profile = "extended"
)

// Guideline URNs written into the ExchangedDocumentContext parameter.
var profileURNs = map[Profile]string{
	ProfileMinimum:  "urn:factur-x.eu:1p0:minimum",
	ProfileBasicWL:  "urn:factur-x.eu:1p0:basicwl",
	ProfileBasic:    "urn:cen.eu:en16931:2017#compliant#urn:factur-x.eu:1p0:basic",
	ProfileEN16931:  "urn:cen.eu:en16931:2017",
	ProfileExtended: "urn:cen.eu:en16931:2017#conformant#urn:factur-x.eu:1p0:extended",
}

// URN returns the guideline URN identifying the profile.
func (p Profile) URN() string {
	return profileURNs[p]
}

// IsValid reports whether the profile is one of the five supported levels.
func (p Profile) IsValid() bool {
	_, ok := profileURNs[p]
	return ok
}

// HasLines reports whether the profile carries invoice line items.
// Minimum and Basic WL are header-only conformance levels.
func (p Profile) HasLines() bool {
	return p != ProfileMinimum && p != ProfileBasicWL
}

// ProfileForURN resolves a guideline URN back to its profile. The second
// return value is false for URNs outside the five supported levels.
func ProfileForURN(urn string) (Profile, bool) {
	for p, u := range profileURNs {
		if u == urn {
			return p, true
		}
	}
	return "", false
}

// ParseProfile resolves a profile name, defaulting to EN 16931.
func ParseProfile(s string) Profile {
	switch Profile(s) {
	case ProfileMinimum, ProfileBasicWL, ProfileBasic, ProfileEN16931, ProfileExtended:
		return Profile(s)
	default:
		return ProfileEN16931
	}
}
