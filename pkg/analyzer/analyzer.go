// Package analyzer prints a diagnostic report for a single PDF file:
// page count, encryption, basic metadata and an estimate of how usable
// the text extracted from the first page is.
package analyzer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pyhub-apps/pdfinspect"
	"github.com/pyhub-apps/pdfinspect/internal/logger"
	"github.com/pyhub-apps/pdfinspect/pkg/pdf"
)

const unknown = "Unknown"

// Analyze opens the file named by cfg.Path and writes the report to w.
// Every failure is reported as a single "Error analyzing PDF" line on w;
// lines written before the failure stay. The error is also returned.
func Analyze(w io.Writer, cfg Config) (err error) {
	cfg = cfg.withDefaults()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
		if err != nil {
			fmt.Fprintf(w, "Error analyzing PDF: %s\n", singleLine(err.Error()))
		}
	}()

	logger.Section("Open")
	start := time.Now()
	doc, err := pdfinspect.OpenFile(cfg.Path, cfg.Backend, pdf.OpenOptions{Password: cfg.Password})
	if err != nil {
		return err
	}
	defer doc.Close()
	logger.Debug("opened %s with %s in %v", cfg.Path, doc.Backend(), time.Since(start))

	return Report(w, cfg.Path, doc, cfg.PreviewLength)
}

// Report writes the report for an already opened document
func Report(w io.Writer, path string, doc pdf.Document, previewLength int) error {
	pages := doc.PageCount()

	fmt.Fprintln(w, "=== PDF Analysis ===")
	fmt.Fprintf(w, "File: %s\n", path)
	fmt.Fprintf(w, "Pages: %d\n", pages)
	fmt.Fprintf(w, "Is Encrypted: %s\n", formatBool(doc.IsEncrypted()))

	if md := doc.GetMetadata(); len(md) > 0 {
		logger.Debug("metadata keys: %s", strings.Join(md.Keys(), ", "))
		fmt.Fprintf(w, "PDF Version: %s\n", md.Lookup("PDF", unknown))
		fmt.Fprintf(w, "Creator: %s\n", md.Lookup("Creator", unknown))
		fmt.Fprintf(w, "Producer: %s\n", md.Lookup("Producer", unknown))
	} else {
		fmt.Fprintln(w, "No metadata found")
	}

	if pages == 0 {
		fmt.Fprintln(w, "No pages found")
		return nil
	}

	logger.Section("Extract")
	page, err := doc.GetPage(0)
	if err != nil {
		return err
	}

	start := time.Now()
	text, err := page.ExtractText()
	if err != nil {
		return err
	}
	logger.Debug("extracted page %d in %v", page.GetPageNumber(), time.Since(start))

	stats := NewTextStats(text)
	fmt.Fprintf(w, "First page text length: %d\n", stats.Length)
	fmt.Fprintf(w, "First page text preview: %s...\n", stats.Preview(previewLength))
	fmt.Fprintf(w, "Non-whitespace characters: %d\n", stats.Alphanumeric)
	fmt.Fprintf(w, "Text quality ratio: %s\n", stats.FormatQualityRatio())

	return nil
}

// singleLine folds a multi-line message so the error stays on one line
func singleLine(msg string) string {
	return strings.Join(strings.FieldsFunc(msg, func(r rune) bool {
		return r == '\n' || r == '\r'
	}), "; ")
}

// formatBool spells booleans capitalised, as the report has always done
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
