// Command analyze_pdf prints page count, encryption state, metadata and a
// text extraction quality estimate for one PDF file.
//
// Usage:
//
//	analyze_pdf [path] [--backend auto|ledongthuc|dslipak|pdfcpu] [--password pw] [-v]
//
// Without a path the built-in default file is analysed. Analysis failures
// are printed and the process still exits with status 0.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
