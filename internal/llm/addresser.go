package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rezonia/facturx/internal/convert"
)

// chatter is the slice of Client the parser needs; tests substitute a stub.
type chatter interface {
	ChatText(ctx context.Context, model, systemPrompt, userPrompt string) (string, error)
}

// AddressParser structures free-text addresses with an LLM. It implements
// convert.AddressParser and has the same failure mode as the regex heuristic:
// it never errors, and on any API or decoding failure the whole input is kept
// as the address line.
type AddressParser struct {
	client  chatter
	model   string
	timeout time.Duration
}

// ParserOption configures the address parser
type ParserOption func(*AddressParser)

// WithModel sets the model used for address structuring
func WithModel(model string) ParserOption {
	return func(p *AddressParser) {
		p.model = model
	}
}

// WithCallTimeout bounds each structuring call
func WithCallTimeout(d time.Duration) ParserOption {
	return func(p *AddressParser) {
		p.timeout = d
	}
}

// NewAddressParser creates an LLM-backed address parser
func NewAddressParser(client *Client, opts ...ParserOption) *AddressParser {
	p := &AddressParser{
		client:  client,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type addressJSON struct {
	Line       string `json:"line"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}

// Parse structures the address text. Degrades to the whole string as the
// line when the model call or response decoding fails.
func (p *AddressParser) Parse(text string) convert.Address {
	text = strings.TrimSpace(text)
	if text == "" {
		return convert.Address{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	resp, err := p.client.ChatText(ctx, p.model, SystemPromptAddressParser, fmt.Sprintf(UserPromptAddressParse, text))
	if err != nil {
		return convert.Address{Line: text}
	}

	var parsed addressJSON
	if err := json.Unmarshal([]byte(ExtractJSON(resp)), &parsed); err != nil {
		return convert.Address{Line: text}
	}
	if parsed.Line == "" && parsed.PostalCode == "" && parsed.City == "" {
		return convert.Address{Line: text}
	}

	return convert.Address{
		Line:       strings.TrimSpace(parsed.Line),
		PostalCode: strings.TrimSpace(parsed.PostalCode),
		City:       strings.TrimSpace(parsed.City),
	}
}
