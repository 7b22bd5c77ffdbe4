package pdf_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/pdf"
)

// minimalPDF assembles a single blank page document with a correct xref table.
func minimalPDF(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << >> >>\nendobj\n",
	}

	offsets := make([]int, 0, len(objects))
	for _, obj := range objects {
		offsets = append(offsets, buf.Len())
		buf.WriteString(obj)
	}

	xref := buf.Len()
	buf.WriteString("xref\n0 4\n0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 4 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xref)

	return buf.Bytes()
}

func testXML() []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8"?>
<rsm:CrossIndustryInvoice xmlns:rsm="urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"/>
`)
}

func testMetadata() pdf.Metadata {
	return pdf.Metadata{
		InvoiceNumber: "2024-0042",
		Profile:       model.ProfileEN16931,
		Timestamp:     time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC),
	}
}

func TestEmbed(t *testing.T) {
	merged, err := pdf.Embed(minimalPDF(t), testXML(), testMetadata())
	require.NoError(t, err)
	require.NotEmpty(t, merged)

	assert.True(t, bytes.HasPrefix(merged, []byte("%PDF")))
}

func TestEmbed_RoundTrip(t *testing.T) {
	xml := testXML()

	merged, err := pdf.Embed(minimalPDF(t), xml, testMetadata())
	require.NoError(t, err)

	has, err := pdf.HasStructuredData(merged)
	require.NoError(t, err)
	assert.True(t, has)

	extracted, err := pdf.ExtractStructuredData(merged)
	require.NoError(t, err)
	assert.Equal(t, xml, extracted, "attachment must survive byte for byte")
}

func TestEmbed_InvalidPDF(t *testing.T) {
	_, err := pdf.Embed([]byte("this is not a pdf"), testXML(), testMetadata())
	require.Error(t, err)

	var embedErr *model.EmbedError
	require.True(t, errors.As(err, &embedErr))
	assert.Equal(t, "read", embedErr.Stage)
}

func TestHasStructuredData_PlainPDF(t *testing.T) {
	has, err := pdf.HasStructuredData(minimalPDF(t))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestExtractStructuredData_NoAttachment(t *testing.T) {
	_, err := pdf.ExtractStructuredData(minimalPDF(t))
	require.Error(t, err)

	var embedErr *model.EmbedError
	require.True(t, errors.As(err, &embedErr))
}
