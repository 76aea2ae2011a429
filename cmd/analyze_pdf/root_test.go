package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/pdfinspect/internal/logger"
	"github.com/pyhub-apps/pdfinspect/internal/pdftest"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	cmd := newRootCmd()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "analyze_pdf [path]", cmd.Use)
	assert.Contains(t, cmd.Long, "8.25.25IPanalysis.md.pdf")
}

func TestRootCmd_AnalysesGivenPath(t *testing.T) {
	path := pdftest.WriteFile(t, "doc.pdf", pdftest.Spec{
		Pages: []string{pdftest.Text("Invoice 42")},
		Info:  map[string]string{"Producer": "Quartz PDFContext"},
	})

	out, err := run(t, path)
	require.NoError(t, err)

	assert.Contains(t, out, "File: "+path)
	assert.Contains(t, out, "Pages: 1")
	assert.Contains(t, out, "Creator: Unknown")
	assert.Contains(t, out, "Producer: Quartz PDFContext")
	assert.Contains(t, out, "Invoice 42")
}

func TestRootCmd_DefaultPath(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	// the default file does not exist in an empty directory
	out, err := run(t)
	require.NoError(t, err, "analysis failures do not fail the command")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "Error analyzing PDF: "))
	assert.Contains(t, lines[0], "8.25.25IPanalysis.md.pdf")
}

func TestRootCmd_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o644))

	out, err := run(t, path)
	require.NoError(t, err, "analysis failures do not fail the command")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "Error analyzing PDF: "))
	assert.NotContains(t, out, "Pages:")
}

func TestRootCmd_PreviewFlag(t *testing.T) {
	path := pdftest.WriteFile(t, "doc.pdf", pdftest.Spec{
		Pages: []string{pdftest.Text("abcdefghij")},
	})

	out, err := run(t, "--preview", "3", "--backend", "pdfcpu", path)
	require.NoError(t, err)
	assert.Contains(t, out, "First page text preview: abc...\n")
}

func TestRootCmd_UnknownBackend(t *testing.T) {
	_, err := run(t, "--backend", "poppler", filepath.Join(t.TempDir(), "x.pdf"))
	assert.Error(t, err)
}

func TestRootCmd_TooManyArgs(t *testing.T) {
	_, err := run(t, "a.pdf", "b.pdf")
	assert.Error(t, err)
}

func TestRootCmd_Verbose(t *testing.T) {
	defer func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	}()

	logs := new(bytes.Buffer)
	logger.SetOutput(logs)

	path := pdftest.WriteFile(t, "doc.pdf", pdftest.Spec{Pages: []string{pdftest.Text("x")}})
	_, err := run(t, "-v", path)
	require.NoError(t, err)

	assert.True(t, logger.IsVerbose())
	assert.Contains(t, logs.String(), "[INFO] opened with ledongthuc backend")
}
