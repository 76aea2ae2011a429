package pdf

// Document represents an opened PDF document
type Document interface {
	// GetMetadata returns the document information dictionary, or nil
	// when the document carries none
	GetMetadata() Metadata

	// GetPage returns a specific page by index (0-based)
	GetPage(index int) (Page, error)

	// PageCount returns the total number of pages
	PageCount() int

	// IsEncrypted reports whether the trailer references an encryption dictionary
	IsEncrypted() bool

	// Backend returns the library that parsed the document
	Backend() Backend

	// Close releases resources associated with the document
	Close() error
}

// Page represents a single page in a PDF document
type Page interface {
	// GetPageNumber returns the page number (1-based)
	GetPageNumber() int

	// ExtractText extracts plain text from the page content stream.
	// The text is decoded on every call.
	ExtractText() (string, error)
}
