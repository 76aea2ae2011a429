package pdf

import (
	"fmt"
	"io"
	"strings"

	gopdf "github.com/dslipak/pdf"

	"github.com/pyhub-apps/pdfinspect/internal/logger"
)

// DsliPakDocument implements the Document interface using dslipak/pdf library
type DsliPakDocument struct {
	reader    *gopdf.Reader
	metadata  Metadata
	encrypted bool
}

// OpenWithDslipak reads a PDF from r using the dslipak/pdf library
func OpenWithDslipak(r io.ReaderAt, size int64, opts OpenOptions) (doc Document, err error) {
	defer recoverAsError(&err, "dslipak: malformed PDF")

	reader, err := gopdf.NewReaderEncrypted(r, size, passwordOnce(opts.Password))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with dslipak: %w", err)
	}

	trailer := reader.Trailer()
	d := &DsliPakDocument{
		reader:    reader,
		metadata:  dslipakMetadata(trailer.Key("Info")),
		encrypted: !trailer.Key("Encrypt").IsNull(),
	}
	logger.Debug("dslipak: %d pages, encrypted=%t", reader.NumPage(), d.encrypted)

	return d, nil
}

func dslipakMetadata(info gopdf.Value) Metadata {
	if info.Kind() != gopdf.Dict || len(info.Keys()) == 0 {
		return nil
	}

	md := make(Metadata)
	for _, key := range info.Keys() {
		v := info.Key(key)
		switch v.Kind() {
		case gopdf.String:
			md[key] = v.Text()
		case gopdf.Name:
			md[key] = v.Name()
		case gopdf.Null:
		default:
			md[key] = v.String()
		}
	}
	return md
}

// GetMetadata returns the PDF metadata
func (d *DsliPakDocument) GetMetadata() Metadata {
	return d.metadata
}

// GetPage returns a specific page by index (0-based)
func (d *DsliPakDocument) GetPage(index int) (Page, error) {
	if index < 0 || index >= d.PageCount() {
		return nil, pageOutOfRange(index, d.PageCount())
	}
	return &DsliPakPage{page: d.reader.Page(index + 1), pageNumber: index + 1}, nil
}

// PageCount returns the total number of pages
func (d *DsliPakDocument) PageCount() int {
	if d.reader == nil {
		return 0
	}
	return d.reader.NumPage()
}

// IsEncrypted reports whether the document is encrypted
func (d *DsliPakDocument) IsEncrypted() bool {
	return d.encrypted
}

// Backend returns BackendDslipak
func (d *DsliPakDocument) Backend() Backend {
	return BackendDslipak
}

// Close releases resources associated with the document
func (d *DsliPakDocument) Close() error {
	d.reader = nil
	return nil
}

// DsliPakPage implements the Page interface using dslipak/pdf
type DsliPakPage struct {
	page       gopdf.Page
	pageNumber int
}

// GetPageNumber returns the page number (1-based)
func (p *DsliPakPage) GetPageNumber() int {
	return p.pageNumber
}

// ExtractText concatenates the text runs of the page content
func (p *DsliPakPage) ExtractText() (text string, err error) {
	defer recoverAsError(&err, fmt.Sprintf("dslipak: page %d", p.pageNumber))

	if p.page.V.IsNull() {
		return "", nil
	}

	var sb strings.Builder
	for _, item := range p.page.Content().Text {
		sb.WriteString(item.S)
	}
	return sb.String(), nil
}
