// Package pdfinspect opens PDF documents for inspection, trying several
// PDF libraries in turn until one of them can parse the file
package pdfinspect

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/pyhub-apps/pdfinspect/internal/logger"
	"github.com/pyhub-apps/pdfinspect/pkg/pdf"
)

// Re-export types from pdf package for public API
type (
	Document    = pdf.Document
	Page        = pdf.Page
	Metadata    = pdf.Metadata
	Backend     = pdf.Backend
	OpenOptions = pdf.OpenOptions
)

// ReadSeekerAt is the byte stream a Document is read from
type ReadSeekerAt interface {
	io.ReaderAt
	io.ReadSeeker
}

// Open reads a PDF from r. The ledongthuc implementation is tried first
// as it has the most accurate text extraction, then dslipak, then pdfcpu.
// The caller keeps ownership of r.
func Open(r ReadSeekerAt, size int64, opts OpenOptions) (Document, error) {
	var errs backendErrors
	for _, backend := range pdf.Backends {
		doc, err := OpenWith(backend, r, size, opts)
		if err == nil {
			logger.Info("opened with %s backend", backend)
			return doc, nil
		}
		logger.Warn("%s backend failed: %v", backend, err)
		errs = append(errs, err)
	}
	return nil, errs
}

// backendErrors collects the failure of every backend Open tried.
// The message stays on one line.
type backendErrors []error

func (e backendErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return "no backend could read the PDF: " + strings.Join(msgs, "; ")
}

func (e backendErrors) Unwrap() []error {
	return e
}

// OpenWith reads a PDF from r using a single backend. BackendAuto
// behaves like Open.
func OpenWith(backend Backend, r ReadSeekerAt, size int64, opts OpenOptions) (Document, error) {
	switch backend {
	case pdf.BackendAuto, "":
		return Open(r, size, opts)
	case pdf.BackendLedongthuc:
		return pdf.OpenWithLedongthuc(r, size, opts)
	case pdf.BackendDslipak:
		return pdf.OpenWithDslipak(r, size, opts)
	case pdf.BackendPDFCPU:
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to rewind input: %w", err)
		}
		return pdf.OpenWithPDFCPU(r, opts)
	default:
		return nil, fmt.Errorf("%w: %q", pdf.ErrUnknownBackend, backend)
	}
}

// OpenFile opens the PDF at path. Closing the returned Document also
// closes the file. Errors from the file system are returned as is,
// without consulting any backend.
func OpenFile(path string, backend Backend, opts OpenOptions) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, &fs.PathError{Op: "open", Path: path, Err: errors.New("is a directory")}
	}

	doc, err := OpenWith(backend, f, info.Size(), opts)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &fileDocument{Document: doc, file: f}, nil
}

// fileDocument ties the lifetime of the underlying file to the Document
type fileDocument struct {
	pdf.Document
	file *os.File
}

func (d *fileDocument) Close() error {
	return errors.Join(d.Document.Close(), d.file.Close())
}
