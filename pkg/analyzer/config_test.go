package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pyhub-apps/pdfinspect/pkg/pdf"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "8.25.25IPanalysis.md.pdf", cfg.Path)
	assert.Equal(t, pdf.BackendAuto, cfg.Backend)
	assert.Equal(t, 200, cfg.PreviewLength)
	assert.Empty(t, cfg.Password)
}

func TestConfig_WithDefaults(t *testing.T) {
	assert.Equal(t, DefaultConfig(), Config{}.withDefaults())

	cfg := Config{Path: "a.pdf", Backend: pdf.BackendPDFCPU, PreviewLength: 50}.withDefaults()
	assert.Equal(t, "a.pdf", cfg.Path)
	assert.Equal(t, pdf.BackendPDFCPU, cfg.Backend)
	assert.Equal(t, 50, cfg.PreviewLength)
}
