package pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Validate parses the file with pdfcpu and runs its structural validation.
// It returns the page count pdfcpu found, which callers can compare with
// what a decoding backend reports.
func Validate(filepath string) (int, error) {
	ctx, err := api.ReadContextFile(filepath)
	if err != nil {
		return 0, fmt.Errorf("failed to read PDF context: %w", err)
	}

	if err := api.ValidateContext(ctx); err != nil {
		return 0, fmt.Errorf("invalid PDF: %w", err)
	}

	return ctx.PageCount, nil
}

// Validated wraps an Opener so every file passes pdfcpu validation first
func Validated(open Opener) Opener {
	return func(filepath string) (Document, error) {
		pages, err := Validate(filepath)
		if err != nil {
			return nil, err
		}

		doc, err := open(filepath)
		if err != nil {
			return nil, err
		}

		if doc.PageCount() != pages {
			doc.Close()
			return nil, fmt.Errorf("decoder found %d pages, pdfcpu found %d", doc.PageCount(), pages)
		}
		return doc, nil
	}
}
