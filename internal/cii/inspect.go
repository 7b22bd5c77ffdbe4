package cii

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// GuidelineURN reads the declared guideline parameter out of CII XML,
// identifying which profile the document claims to satisfy.
func GuidelineURN(xmlData []byte) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xmlData); err != nil {
		return "", fmt.Errorf("failed to parse XML: %w", err)
	}

	elem := doc.FindElement("//ram:GuidelineSpecifiedDocumentContextParameter/ram:ID")
	if elem == nil {
		return "", fmt.Errorf("no guideline parameter found in document context")
	}

	urn := strings.TrimSpace(elem.Text())
	if urn == "" {
		return "", fmt.Errorf("guideline parameter is empty")
	}
	return urn, nil
}

// DocumentNumber reads the invoice number out of the CII document header.
func DocumentNumber(xmlData []byte) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xmlData); err != nil {
		return "", fmt.Errorf("failed to parse XML: %w", err)
	}

	elem := doc.FindElement("//rsm:ExchangedDocument/ram:ID")
	if elem == nil {
		return "", fmt.Errorf("no document id found in header")
	}
	return strings.TrimSpace(elem.Text()), nil
}
