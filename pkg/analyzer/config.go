package analyzer

import "github.com/pyhub-apps/pdfinspect/pkg/pdf"

const (
	// DefaultPath is analysed when no path is given
	DefaultPath = "8.25.25IPanalysis.md.pdf"

	// DefaultPreviewLength is the number of characters shown from the first page
	DefaultPreviewLength = 200
)

// Config controls a single analysis run
type Config struct {
	Path          string
	Backend       pdf.Backend
	Password      string
	PreviewLength int
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	return Config{
		Path:          DefaultPath,
		Backend:       pdf.BackendAuto,
		PreviewLength: DefaultPreviewLength,
	}
}

func (c Config) withDefaults() Config {
	if c.Path == "" {
		c.Path = DefaultPath
	}
	if c.Backend == "" {
		c.Backend = pdf.BackendAuto
	}
	if c.PreviewLength <= 0 {
		c.PreviewLength = DefaultPreviewLength
	}
	return c
}
