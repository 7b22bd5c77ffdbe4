package convert

import (
	"regexp"
	"strings"
)

// Address is a parsed postal address.
type Address struct {
	Line       string
	PostalCode string
	City       string
}

// AddressParser splits free-text address input into components. Parsing never
// fails: when the text does not match the expected shape the whole string is
// kept as the address line with postal code and city left empty.
type AddressParser interface {
	Parse(text string) Address
}

// Matches "10 rue Example, 75001 Paris": optional leading line, a 5-digit
// postal code, a trailing city name. French-shaped on purpose; anything else
// degrades to a bare line.
var addressPattern = regexp.MustCompile(`^(?:(.*?)[,\n]\s*)?(\d{5})\s+(.+)$`)

// RegexAddressParser is the default heuristic parser.
type RegexAddressParser struct{}

// NewRegexAddressParser creates the default address parser
func NewRegexAddressParser() *RegexAddressParser {
	return &RegexAddressParser{}
}

// Parse applies the postal-code heuristic to the text.
func (p *RegexAddressParser) Parse(text string) Address {
	text = strings.TrimSpace(text)
	if text == "" {
		return Address{}
	}

	m := addressPattern.FindStringSubmatch(text)
	if m == nil {
		return Address{Line: text}
	}

	return Address{
		Line:       strings.TrimSpace(m[1]),
		PostalCode: m[2],
		City:       strings.TrimSpace(m[3]),
	}
}
