package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rezonia/facturx/internal/convert"
)

type stubChatter struct {
	response string
	err      error

	gotModel string
	gotUser  string
}

func (s *stubChatter) ChatText(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	s.gotModel = model
	s.gotUser = userPrompt
	return s.response, s.err
}

func newStubParser(stub *stubChatter, opts ...ParserOption) *AddressParser {
	p := &AddressParser{client: stub, timeout: time.Second}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func TestAddressParserParse(t *testing.T) {
	stub := &stubChatter{response: `{"line": "10 rue Example", "postal_code": "75001", "city": "Paris"}`}
	parser := newStubParser(stub)

	addr := parser.Parse("10 rue Example, 75001 Paris")
	assert.Equal(t, convert.Address{
		Line:       "10 rue Example",
		PostalCode: "75001",
		City:       "Paris",
	}, addr)
	assert.Contains(t, stub.gotUser, "10 rue Example, 75001 Paris")
}

func TestAddressParserParse_MarkdownResponse(t *testing.T) {
	stub := &stubChatter{response: "```json\n{\"line\": \"BP 12\", \"postal_code\": \"97400\", \"city\": \"Saint-Denis\"}\n```"}
	parser := newStubParser(stub)

	addr := parser.Parse("BP 12 97400 Saint-Denis")
	assert.Equal(t, "BP 12", addr.Line)
	assert.Equal(t, "97400", addr.PostalCode)
	assert.Equal(t, "Saint-Denis", addr.City)
}

func TestAddressParserParse_APIFailureDegrades(t *testing.T) {
	stub := &stubChatter{err: errors.New("connection refused")}
	parser := newStubParser(stub)

	addr := parser.Parse("Lieu-dit Les Chênes")
	assert.Equal(t, convert.Address{Line: "Lieu-dit Les Chênes"}, addr)
}

func TestAddressParserParse_GarbageResponseDegrades(t *testing.T) {
	stub := &stubChatter{response: "sorry, I cannot help with that"}
	parser := newStubParser(stub)

	addr := parser.Parse("10 rue Example, 75001 Paris")
	assert.Equal(t, convert.Address{Line: "10 rue Example, 75001 Paris"}, addr)
}

func TestAddressParserParse_EmptyFieldsDegrade(t *testing.T) {
	stub := &stubChatter{response: `{"line": "", "postal_code": "", "city": ""}`}
	parser := newStubParser(stub)

	addr := parser.Parse("somewhere")
	assert.Equal(t, convert.Address{Line: "somewhere"}, addr)
}

func TestAddressParserParse_EmptyInput(t *testing.T) {
	stub := &stubChatter{response: `{"line": "x"}`}
	parser := newStubParser(stub)

	assert.Equal(t, convert.Address{}, parser.Parse(""))
	assert.Equal(t, convert.Address{}, parser.Parse("   "))
	assert.Empty(t, stub.gotUser, "no call for empty input")
}

func TestAddressParserParse_ModelOption(t *testing.T) {
	stub := &stubChatter{response: `{"line": "x", "postal_code": "", "city": ""}`}
	parser := newStubParser(stub, WithModel("openai/gpt-4o"))

	parser.Parse("x")
	assert.Equal(t, "openai/gpt-4o", stub.gotModel)
}
