package pdf

import (
	"fmt"
	"io"

	lpdf "github.com/ledongthuc/pdf"

	"github.com/pyhub-apps/pdfinspect/internal/logger"
)

// LedongthucDocument implements the Document interface using ledongthuc/pdf library
type LedongthucDocument struct {
	reader    *lpdf.Reader
	metadata  Metadata
	encrypted bool
}

// OpenWithLedongthuc reads a PDF from r using the ledongthuc/pdf library.
// The caller keeps ownership of r and must keep it open until Close.
func OpenWithLedongthuc(r io.ReaderAt, size int64, opts OpenOptions) (doc Document, err error) {
	defer recoverAsError(&err, "ledongthuc: malformed PDF")

	reader, err := lpdf.NewReaderEncrypted(r, size, passwordOnce(opts.Password))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with ledongthuc: %w", err)
	}

	trailer := reader.Trailer()
	d := &LedongthucDocument{
		reader:    reader,
		metadata:  ledongthucMetadata(trailer.Key("Info")),
		encrypted: !trailer.Key("Encrypt").IsNull(),
	}
	logger.Debug("ledongthuc: %d pages, encrypted=%t", reader.NumPage(), d.encrypted)

	return d, nil
}

// ledongthucMetadata flattens the Info dictionary into a Metadata map
func ledongthucMetadata(info lpdf.Value) Metadata {
	if info.Kind() != lpdf.Dict {
		return nil
	}

	keys := info.Keys()
	if len(keys) == 0 {
		return nil
	}

	md := make(Metadata, len(keys))
	for _, key := range keys {
		v := info.Key(key)
		switch v.Kind() {
		case lpdf.String:
			md[key] = v.Text()
		case lpdf.Name:
			md[key] = v.Name()
		case lpdf.Null:
			// dangling reference
		default:
			md[key] = v.String()
		}
	}
	return md
}

// GetMetadata returns the PDF metadata
func (d *LedongthucDocument) GetMetadata() Metadata {
	return d.metadata
}

// GetPage returns a specific page by index (0-based)
func (d *LedongthucDocument) GetPage(index int) (Page, error) {
	if index < 0 || index >= d.PageCount() {
		return nil, pageOutOfRange(index, d.PageCount())
	}
	return &LedongthucPage{page: d.reader.Page(index + 1), pageNumber: index + 1}, nil
}

// PageCount returns the total number of pages
func (d *LedongthucDocument) PageCount() int {
	if d.reader == nil {
		return 0
	}
	return d.reader.NumPage()
}

// IsEncrypted reports whether the document is encrypted
func (d *LedongthucDocument) IsEncrypted() bool {
	return d.encrypted
}

// Backend returns BackendLedongthuc
func (d *LedongthucDocument) Backend() Backend {
	return BackendLedongthuc
}

// Close releases resources associated with the document
func (d *LedongthucDocument) Close() error {
	d.reader = nil
	return nil
}

// LedongthucPage implements the Page interface using ledongthuc/pdf
type LedongthucPage struct {
	page       lpdf.Page
	pageNumber int
}

// GetPageNumber returns the page number (1-based)
func (p *LedongthucPage) GetPageNumber() int {
	return p.pageNumber
}

// ExtractText extracts text from the page
func (p *LedongthucPage) ExtractText() (text string, err error) {
	defer recoverAsError(&err, fmt.Sprintf("ledongthuc: page %d", p.pageNumber))

	// nil lets the library resolve the page fonts itself
	text, err = p.page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from page %d: %w", p.pageNumber, err)
	}
	return text, nil
}

// passwordOnce yields password on the first call and "" afterwards,
// which is how the rsc.io/pdf family stops asking for passwords.
func passwordOnce(password string) func() string {
	asked := false
	return func() string {
		if asked {
			return ""
		}
		asked = true
		return password
	}
}
