package pdf

import (
	"fmt"
	"io"
	"os"
	"strings"

	lpdf "github.com/ledongthuc/pdf"
)

// LedongthucDocument implements the Document interface using ledongthuc/pdf library
type LedongthucDocument struct {
	file     io.Closer
	reader   *lpdf.Reader
	filepath string
	pages    []Page
}

// OpenWithLedongthuc opens a PDF file using the ledongthuc/pdf library.
// All pages are decoded up front so a broken content stream fails the open
// instead of surfacing halfway through a caller's loop.
func OpenWithLedongthuc(filepath string) (doc Document, err error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with ledongthuc: %w", err)
	}

	// The reader panics on malformed trailers, catalogs and page trees.
	defer func() {
		if r := recover(); r != nil {
			f.Close()
			doc = nil
			err = fmt.Errorf("failed to open PDF with ledongthuc: panic: %v", r)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat PDF: %w", err)
	}

	r, err := lpdf.NewReader(f, info.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to open PDF with ledongthuc: %w", err)
	}

	d := &LedongthucDocument{
		file:     f,
		reader:   r,
		filepath: filepath,
	}

	if err := d.initializePages(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to initialize pages: %w", err)
	}

	return d, nil
}

// initializePages initializes all pages in the document
func (d *LedongthucDocument) initializePages() error {
	pageCount := d.reader.NumPage()
	d.pages = make([]Page, pageCount)

	for i := 1; i <= pageCount; i++ {
		page, err := NewLedongthucPage(d.reader, i)
		if err != nil {
			return fmt.Errorf("failed to initialize page %d: %w", i, err)
		}
		d.pages[i-1] = page
	}

	return nil
}

// GetPages returns all pages in the document
func (d *LedongthucDocument) GetPages() []Page {
	return d.pages
}

// GetPage returns a specific page by index (0-based)
func (d *LedongthucDocument) GetPage(index int) (Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(d.pages))
	}
	return d.pages[index], nil
}

// PageCount returns the total number of pages
func (d *LedongthucDocument) PageCount() int {
	return len(d.pages)
}

// Close releases resources associated with the document
func (d *LedongthucDocument) Close() error {
	d.pages = nil
	if d.file != nil {
		err := d.file.Close()
		d.file = nil
		return err
	}
	return nil
}

// NewLedongthucPage decodes one page using ledongthuc/pdf
func NewLedongthucPage(reader *lpdf.Reader, pageNumber int) (page Page, err error) {
	if pageNumber < 1 || pageNumber > reader.NumPage() {
		return nil, fmt.Errorf("invalid page number: %d", pageNumber)
	}

	// The decoder panics on malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			page = nil
			err = fmt.Errorf("panic while decoding page %d: %v", pageNumber, r)
		}
	}()

	lp := reader.Page(pageNumber)
	if lp.V.IsNull() {
		return nil, fmt.Errorf("page %d has no page object", pageNumber)
	}

	// Default to US Letter when MediaBox is missing
	width, height := 612.0, 792.0
	mediaBox := lp.V.Key("MediaBox")
	if mediaBox.Kind() == lpdf.Array && mediaBox.Len() == 4 {
		width = mediaBox.Index(2).Float64() - mediaBox.Index(0).Float64()
		height = mediaBox.Index(3).Float64() - mediaBox.Index(1).Float64()
	}

	p := &decodedPage{
		pageNumber: pageNumber,
		width:      width,
		height:     height,
	}

	var text strings.Builder
	for _, item := range lp.Content().Text {
		text.WriteString(item.S)
		top := topFromBaseline(height, item.Y, item.FontSize)
		p.chars = append(p.chars, splitRun(item.S, item.Font, item.FontSize, item.X, top, item.W)...)
	}
	p.text = text.String()

	return p, nil
}
