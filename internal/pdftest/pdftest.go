// Package pdftest builds small, well-formed PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Spec describes the document to build
type Spec struct {
	// Pages holds one content stream per page; empty means a zero page document
	Pages []string
	// Info becomes the document information dictionary; nil omits it
	Info map[string]string
}

// Text returns a content stream showing each line in Helvetica
func Text(lines ...string) string {
	var sb strings.Builder
	sb.WriteString("BT\n/F1 12 Tf\n72 720 Td\n")
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("0 -14 Td\n")
		}
		fmt.Fprintf(&sb, "(%s) Tj\n", Escape(line))
	}
	sb.WriteString("ET")
	return sb.String()
}

// Escape escapes s for use inside a PDF literal string
func Escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

// Build serialises spec into PDF bytes with a correct cross-reference table
func Build(spec Spec) []byte {
	var (
		buf     bytes.Buffer
		offsets []int
	)

	// objects: 1 catalog, 2 pages, 3 font, then page/content pairs, then info
	nPages := len(spec.Pages)
	pageObj := func(i int) int { return 4 + 2*i }
	infoObj := 4 + 2*nPages

	obj := func(num int, body string) {
		for len(offsets) < num {
			offsets = append(offsets, 0)
		}
		offsets[num-1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	buf.WriteString("%PDF-1.4\n%\xE2\xE3\xCF\xD3\n")

	obj(1, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, nPages)
	for i := range spec.Pages {
		kids[i] = fmt.Sprintf("%d 0 R", pageObj(i))
	}
	obj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 792] >>",
		strings.Join(kids, " "), nPages))

	obj(3, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	for i, content := range spec.Pages {
		obj(pageObj(i), fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			pageObj(i)+1))
		obj(pageObj(i)+1, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	size := infoObj
	trailerInfo := ""
	if spec.Info != nil {
		keys := make([]string, 0, len(spec.Info))
		for k := range spec.Info {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var sb strings.Builder
		sb.WriteString("<<")
		for _, k := range keys {
			fmt.Fprintf(&sb, " /%s (%s)", k, Escape(spec.Info[k]))
		}
		sb.WriteString(" >>")
		obj(infoObj, sb.String())

		size = infoObj + 1
		trailerInfo = fmt.Sprintf(" /Info %d 0 R", infoObj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", size)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R%s >>\nstartxref\n%d\n%%%%EOF\n", size, trailerInfo, xref)

	return buf.Bytes()
}

// WriteFile builds spec into a file under t.TempDir and returns its path
func WriteFile(t testing.TB, name string, spec Spec) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, Build(spec), 0o644); err != nil {
		t.Fatalf("failed to write test PDF: %v", err)
	}
	return path
}

// Encrypt returns data encrypted with 128 bit AES under ownerPW and an
// empty user password, so readers open it without asking for one.
func Encrypt(t testing.TB, data []byte, ownerPW string) []byte {
	t.Helper()

	conf := model.NewAESConfiguration("", ownerPW, 128)
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false

	var out bytes.Buffer
	if err := api.Encrypt(bytes.NewReader(data), &out, conf); err != nil {
		t.Fatalf("failed to encrypt test PDF: %v", err)
	}
	return out.Bytes()
}
