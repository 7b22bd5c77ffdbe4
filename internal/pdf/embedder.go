// Package pdf merges the machine-readable invoice XML into a previously
// rendered visual PDF so one artifact is both human- and machine-readable.
//
// The result is not claimed to be PDF/A-3 conformant: no XMP packet or colour
// profile is written. Run the output through a conformance validator before
// treating it as archival-grade.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/rezonia/facturx/internal/model"
)

const (
	// AttachmentName is the exact embedded file name mandated by Factur-X.
	AttachmentName = "factur-x.xml"

	// MIMEType of the embedded payload.
	MIMEType = "text/xml"

	attachmentDesc = "Factur-X invoice data"
	creatorName    = "facturx"
	producerName   = "facturx (github.com/rezonia/facturx)"
)

// Metadata describes the document-level info stamped onto the merged PDF.
type Metadata struct {
	InvoiceNumber string
	Profile       model.Profile

	// Timestamp used for the attachment and the info dictionary.
	// Zero means time.Now.
	Timestamp time.Time
}

// Embed attaches the invoice XML to the rendered PDF and stamps descriptive
// metadata. If the PDF bytes cannot be parsed the whole operation fails;
// there is no meaningful partial result.
func Embed(pdfBytes, xmlBytes []byte, meta Metadata) ([]byte, error) {
	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(pdfBytes), conf)
	if err != nil {
		return nil, model.NewEmbedError("read", "input is not a parseable PDF", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, model.NewEmbedError("read", "input PDF failed structural validation", err)
	}

	ts := meta.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	attachment := pdfmodel.Attachment{
		Reader:   bytes.NewReader(xmlBytes),
		ID:       AttachmentName,
		FileName: AttachmentName,
		Desc:     attachmentDesc,
		ModTime:  &ts,
	}

	if err := ctx.AddAttachment(attachment, false); err != nil {
		return nil, model.NewEmbedError("attach", "failed to attach "+AttachmentName, err)
	}

	if err := stampInfoDict(ctx, meta, ts); err != nil {
		return nil, model.NewEmbedError("metadata", "failed to stamp document metadata", err)
	}

	var buf bytes.Buffer
	if err := api.WriteContext(ctx, &buf); err != nil {
		return nil, model.NewEmbedError("write", "failed to serialize merged PDF", err)
	}
	return buf.Bytes(), nil
}

// ExtractStructuredData pulls the factur-x.xml attachment back out of a
// merged PDF.
func ExtractStructuredData(pdfBytes []byte) ([]byte, error) {
	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed

	attachments, err := api.ExtractAttachmentsRaw(bytes.NewReader(pdfBytes), "", []string{AttachmentName}, conf)
	if err != nil {
		return nil, model.NewEmbedError("read", "failed to extract attachments", err)
	}
	for _, a := range attachments {
		if a.ID == AttachmentName {
			data, err := io.ReadAll(a.Reader)
			if err != nil {
				return nil, model.NewEmbedError("read", "failed to read attachment stream", err)
			}
			return data, nil
		}
	}
	return nil, model.NewEmbedError("read", AttachmentName+" not found in document", nil)
}

// HasStructuredData reports whether the PDF carries a factur-x.xml attachment.
func HasStructuredData(pdfBytes []byte) (bool, error) {
	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed

	attachments, err := api.Attachments(bytes.NewReader(pdfBytes), conf)
	if err != nil {
		return false, model.NewEmbedError("read", "failed to list attachments", err)
	}
	for _, a := range attachments {
		if strings.Contains(a.FileName, AttachmentName) || a.ID == AttachmentName {
			return true, nil
		}
	}
	return false, nil
}

// stampInfoDict sets title, subject, keywords, producer, creator and the two
// timestamps on the document information dictionary.
func stampInfoDict(ctx *pdfmodel.Context, meta Metadata, ts time.Time) error {
	var d types.Dict
	if ctx.Info != nil {
		var err error
		d, err = ctx.DereferenceDict(*ctx.Info)
		if err != nil {
			return err
		}
	}
	if d == nil {
		d = types.NewDict()
		ir, err := ctx.IndRefForNewObject(d)
		if err != nil {
			return err
		}
		ctx.Info = ir
	}

	keywords := strings.Join([]string{
		meta.InvoiceNumber,
		"Factur-X",
		string(meta.Profile),
		meta.Profile.URN(),
	}, ", ")

	date := types.StringLiteral(types.DateString(ts))

	d["Title"] = types.StringLiteral(fmt.Sprintf("Invoice %s", meta.InvoiceNumber))
	d["Subject"] = types.StringLiteral(fmt.Sprintf("Factur-X invoice %s", meta.InvoiceNumber))
	d["Keywords"] = types.StringLiteral(keywords)
	d["Producer"] = types.StringLiteral(producerName)
	d["Creator"] = types.StringLiteral(creatorName)
	d["CreationDate"] = date
	d["ModDate"] = date

	return nil
}
