package llm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rezonia/facturx/internal/llm"
)

func TestExtractJSON_MarkdownCodeBlock(t *testing.T) {
	response := "Here is the result:\n```json\n{\"line\": \"10 rue Example\"}\n```\nDone."
	assert.Equal(t, `{"line": "10 rue Example"}`, llm.ExtractJSON(response))
}

func TestExtractJSON_GenericCodeBlock(t *testing.T) {
	response := "```\n{\"city\": \"Paris\"}\n```"
	assert.Equal(t, `{"city": "Paris"}`, llm.ExtractJSON(response))
}

func TestExtractJSON_RawObject(t *testing.T) {
	response := `{"postal_code": "75001"}`
	assert.Equal(t, `{"postal_code": "75001"}`, llm.ExtractJSON(response))
}

func TestExtractJSON_RawArray(t *testing.T) {
	response := `[1, 2, 3]`
	assert.Equal(t, `[1, 2, 3]`, llm.ExtractJSON(response))
}

func TestExtractJSON_PlainText(t *testing.T) {
	response := "I could not parse the address."
	assert.Equal(t, response, llm.ExtractJSON(response))
}

func TestNewClient(t *testing.T) {
	client := llm.NewClient("test-key")
	assert.NotNil(t, client)

	client = llm.NewClient("test-key",
		llm.WithBaseURL("https://api.example.com/v1"),
		llm.WithDefaultModel(llm.ModelClaude3Haiku),
	)
	assert.NotNil(t, client)
}
