package pdf

// Document represents an opened PDF document
type Document interface {
	// GetPages returns all pages in the document
	GetPages() []Page

	// GetPage returns a specific page by index (0-based)
	GetPage(index int) (Page, error)

	// PageCount returns the total number of pages
	PageCount() int

	// Close releases resources associated with the document
	Close() error
}

// Page represents a single decoded page in a PDF document
type Page interface {
	// GetPageNumber returns the page number (1-based)
	GetPageNumber() int

	// GetWidth returns the page width
	GetWidth() float64

	// GetHeight returns the page height
	GetHeight() float64

	// GetChars returns the page glyphs in content stream order
	GetChars() []CharObject

	// ExtractText returns the page text in content stream order
	ExtractText() string

	// ExtractWords groups glyphs into positioned words, keeping stream order
	ExtractWords(opts ...WordExtractionOption) []Word
}

// Opener opens a document from a file path
type Opener func(filepath string) (Document, error)
