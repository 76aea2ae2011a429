package pdf

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pyhub-apps/pdfinspect/internal/logger"
)

// PDFDocument implements the Document interface using pdfcpu
type PDFDocument struct {
	ctx      *model.Context
	metadata Metadata
}

// OpenWithPDFCPU reads and validates a PDF from rs using pdfcpu.
// Unlike the other backends it handles AES encrypted documents.
func OpenWithPDFCPU(rs io.ReadSeeker, opts OpenOptions) (Document, error) {
	conf := model.NewDefaultConfiguration()
	if opts.Password != "" {
		conf.UserPW = opts.Password
	}

	ctx, err := api.ReadContext(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}

	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}

	doc := &PDFDocument{ctx: ctx}
	doc.metadata = doc.extractMetadata()
	logger.Debug("pdfcpu: %d pages, encrypted=%t", ctx.PageCount, doc.IsEncrypted())

	return doc, nil
}

// extractMetadata resolves the Info dictionary referenced by the trailer
func (d *PDFDocument) extractMetadata() Metadata {
	if d.ctx.Info == nil {
		return nil
	}

	dict, err := d.ctx.DereferenceDict(*d.ctx.Info)
	if err != nil || len(dict) == 0 {
		if err != nil {
			logger.Warn("pdfcpu: unreadable Info dictionary: %v", err)
		}
		return nil
	}

	md := make(Metadata, len(dict))
	for key, obj := range dict {
		obj, err := d.ctx.Dereference(obj)
		if err != nil || obj == nil {
			continue
		}
		md[key] = objectText(obj)
	}
	return md
}

// objectText renders an Info dictionary value as display text
func objectText(obj types.Object) string {
	switch v := obj.(type) {
	case types.StringLiteral:
		b, err := types.Unescape(v.Value())
		if err != nil {
			return v.Value()
		}
		return decodeTextString(b)
	case types.HexLiteral:
		b, err := v.Bytes()
		if err != nil {
			return v.Value()
		}
		return decodeTextString(b)
	case types.Name:
		return v.Value()
	default:
		return obj.String()
	}
}

// GetMetadata returns the PDF metadata
func (d *PDFDocument) GetMetadata() Metadata {
	return d.metadata
}

// GetPage returns a specific page by index (0-based)
func (d *PDFDocument) GetPage(index int) (Page, error) {
	if index < 0 || index >= d.PageCount() {
		return nil, pageOutOfRange(index, d.PageCount())
	}
	return &PDFCPUPage{ctx: d.ctx, pageNumber: index + 1}, nil
}

// PageCount returns the total number of pages
func (d *PDFDocument) PageCount() int {
	if d.ctx == nil {
		return 0
	}
	return d.ctx.PageCount
}

// IsEncrypted reports whether the trailer carries an Encrypt entry
func (d *PDFDocument) IsEncrypted() bool {
	return d.ctx != nil && d.ctx.Encrypt != nil
}

// Backend returns BackendPDFCPU
func (d *PDFDocument) Backend() Backend {
	return BackendPDFCPU
}

// Close releases resources associated with the document
func (d *PDFDocument) Close() error {
	d.ctx = nil
	return nil
}
