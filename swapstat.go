// Package swapstat counts battery-swap stations found in battery service
// detail statement PDFs.
package swapstat

import (
	"github.com/pyhub-apps/swapstat/pkg/pdf"
)

// Re-export types from pdf package for public API
type (
	Document   = pdf.Document
	Page       = pdf.Page
	Word       = pdf.Word
	CharObject = pdf.CharObject
	Opener     = pdf.Opener
)

// Re-export option functions
var (
	WithWordXTolerance = pdf.WithWordXTolerance
	WithWordYTolerance = pdf.WithWordYTolerance
)

// Open opens a PDF file, trying ledongthuc first and dslipak second
func Open(filepath string) (pdf.Document, error) {
	return pdf.OpenAuto(filepath)
}

// OpenWith opens a PDF file with the named backend
func OpenWith(backend, filepath string) (pdf.Document, error) {
	open, err := pdf.Lookup(backend)
	if err != nil {
		return nil, err
	}
	return open(filepath)
}
