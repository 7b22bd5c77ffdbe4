package server

import (
	"github.com/rezonia/facturx/internal/check"
	"github.com/rezonia/facturx/internal/model"
)

// GenerateRequest is the JSON payload for the generate and check endpoints
type GenerateRequest struct {
	Profile string              `json:"profile,omitempty"`
	Invoice model.InvoiceRecord `json:"invoice"`
	Seller  model.SellerProfile `json:"seller"`
	Client  *model.ClientRecord `json:"client,omitempty"`
}

// CheckResponse is the response for the check endpoint
type CheckResponse struct {
	Valid    bool           `json:"valid"`
	Errors   []check.Result `json:"errors,omitempty"`
	Warnings []check.Result `json:"warnings,omitempty"`
}

// InspectResponse is the response for the inspect endpoint
type InspectResponse struct {
	Format        string `json:"format"`
	Size          int    `json:"size"`
	HasAttachment bool   `json:"has_attachment"`
	GuidelineURN  string `json:"guideline_urn,omitempty"`
	Profile       string `json:"profile,omitempty"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error    string   `json:"error"`
	Details  string   `json:"details,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
