package pdf

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Backend identifies the PDF library behind a Document
type Backend string

const (
	BackendAuto       Backend = "auto"
	BackendLedongthuc Backend = "ledongthuc"
	BackendDslipak    Backend = "dslipak"
	BackendPDFCPU     Backend = "pdfcpu"
)

// Backends lists the concrete backends in the order Open tries them
var Backends = []Backend{BackendLedongthuc, BackendDslipak, BackendPDFCPU}

var (
	// ErrPageOutOfRange is returned by GetPage for an invalid index
	ErrPageOutOfRange = errors.New("page index out of range")

	// ErrUnknownBackend is returned when a backend name is not recognised
	ErrUnknownBackend = errors.New("unknown backend")
)

// ParseBackend converts a backend name into a Backend
func ParseBackend(name string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(name)))
	if b == "" {
		return BackendAuto, nil
	}
	if b == BackendAuto {
		return b, nil
	}
	for _, known := range Backends {
		if b == known {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// Metadata holds the entries of the document information dictionary,
// keyed by name without the leading slash (e.g. "Creator", "Producer")
type Metadata map[string]string

// Lookup returns the value for key, or fallback when the key is absent
func (m Metadata) Lookup(key, fallback string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}

// Keys returns the metadata keys in sorted order
func (m Metadata) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// OpenOptions configures how a document is opened
type OpenOptions struct {
	// Password is tried as the user password for encrypted documents
	Password string
}

func pageOutOfRange(index, count int) error {
	return fmt.Errorf("%w: %d not in [0, %d)", ErrPageOutOfRange, index, count)
}

// recoverAsError converts a parser panic into an error stored in *err.
// The ledongthuc and dslipak readers panic on malformed streams.
func recoverAsError(err *error, what string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s: %v", what, r)
	}
}
