package pdf

import (
	"fmt"
	"io"
	"os"
	"strings"

	gopdf "github.com/dslipak/pdf"
)

// DsliPakDocument implements the Document interface using dslipak/pdf library
type DsliPakDocument struct {
	file     io.Closer
	reader   *gopdf.Reader
	filepath string
	pages    []Page
}

// OpenWithDslipak opens a PDF file using the dslipak/pdf library.
// The file is opened here rather than by gopdf.Open, which never closes it.
func OpenWithDslipak(filepath string) (doc Document, err error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with dslipak: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			f.Close()
			doc = nil
			err = fmt.Errorf("failed to open PDF with dslipak: panic: %v", r)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat PDF: %w", err)
	}

	r, err := gopdf.NewReader(f, info.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to open PDF with dslipak: %w", err)
	}

	d := &DsliPakDocument{
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
func (d *DsliPakDocument) initializePages() error {
	pageCount := d.reader.NumPage()
	d.pages = make([]Page, pageCount)

	for i := 1; i <= pageCount; i++ {
		page, err := NewDsliPakPage(d.reader, i)
		if err != nil {
			return fmt.Errorf("failed to initialize page %d: %w", i, err)
		}
		d.pages[i-1] = page
	}

	return nil
}

// GetPages returns all pages in the document
func (d *DsliPakDocument) GetPages() []Page {
	return d.pages
}

// GetPage returns a specific page by index (0-based)
func (d *DsliPakDocument) GetPage(index int) (Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(d.pages))
	}
	return d.pages[index], nil
}

// PageCount returns the total number of pages
func (d *DsliPakDocument) PageCount() int {
	return len(d.pages)
}

// Close releases resources associated with the document
func (d *DsliPakDocument) Close() error {
	d.reader = nil
	d.pages = nil
	if d.file != nil {
		err := d.file.Close()
		d.file = nil
		return err
	}
	return nil
}

// NewDsliPakPage decodes one page using dslipak/pdf
func NewDsliPakPage(reader *gopdf.Reader, pageNumber int) (page Page, err error) {
	if pageNumber < 1 || pageNumber > reader.NumPage() {
		return nil, fmt.Errorf("invalid page number: %d", pageNumber)
	}

	defer func() {
		if r := recover(); r != nil {
			page = nil
			err = fmt.Errorf("panic while decoding page %d: %v", pageNumber, r)
		}
	}()

	dp := reader.Page(pageNumber)
	if dp.V.IsNull() {
		return nil, fmt.Errorf("page %d has no page object", pageNumber)
	}

	width, height := 612.0, 792.0
	mediaBox := dp.V.Key("MediaBox")
	if mediaBox.Kind() == gopdf.Array && mediaBox.Len() == 4 {
		width = mediaBox.Index(2).Float64() - mediaBox.Index(0).Float64()
		height = mediaBox.Index(3).Float64() - mediaBox.Index(1).Float64()
	}

	p := &decodedPage{
		pageNumber: pageNumber,
		width:      width,
		height:     height,
	}

	var text strings.Builder
	for _, item := range dp.Content().Text {
		text.WriteString(item.S)
		top := topFromBaseline(height, item.Y, item.FontSize)
		p.chars = append(p.chars, splitRun(item.S, item.Font, item.FontSize, item.X, top, item.W)...)
	}
	p.text = text.String()

	return p, nil
}
