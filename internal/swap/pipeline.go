package swap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/text/width"

	"github.com/pyhub-apps/swapstat/pkg/pdf"
)

// DocumentMarker is the title printed on every page of a battery service
// detail statement. Pages without it are skipped.
const DocumentMarker = "電池服務明細表"

var (
	// ErrNoDocuments is returned by Run when there is nothing to process
	ErrNoDocuments = errors.New("no PDF documents found")
	// ErrNoRecords is returned by Run when no station name was extracted
	ErrNoRecords = errors.New("no swap records extracted")
)

// DocumentResult is the outcome of processing one file. When Err is set,
// Stations is nil: nothing from a failed document is kept.
type DocumentResult struct {
	Path     string
	Pages    int
	Matched  int
	Stations []string
	Err      error
}

// Failed reports whether the document could not be processed
func (r DocumentResult) Failed() bool {
	return r.Err != nil
}

// RunSummary describes a whole run
type RunSummary struct {
	Documents int
	Failed    int
	Stations  int
}

// Analyzer turns statement PDFs into station names.
type Analyzer struct {
	open      pdf.Opener
	extractor *Extractor
	rowUnit   float64
	marker    string
	foldWidth bool
	wordOpts  []pdf.WordExtractionOption
	logger    *slog.Logger
	progress  func(path string)
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithRowUnit sets the vertical distance that maps to one row key
func WithRowUnit(unit float64) Option {
	return func(a *Analyzer) {
		if unit > 0 {
			a.rowUnit = unit
		}
	}
}

// WithPageMarker replaces DocumentMarker
func WithPageMarker(marker string) Option {
	return func(a *Analyzer) {
		if marker != "" {
			a.marker = marker
		}
	}
}

// WithExtractor replaces the default Extractor
func WithExtractor(e *Extractor) Option {
	return func(a *Analyzer) {
		if e != nil {
			a.extractor = e
		}
	}
}

// WithWidthFolding folds full-width forms such as "（安時）" to their
// narrow equivalents before rows are built.
func WithWidthFolding(enabled bool) Option {
	return func(a *Analyzer) {
		a.foldWidth = enabled
	}
}

// WithWordOptions passes word grouping options to the decoder
func WithWordOptions(opts ...pdf.WordExtractionOption) Option {
	return func(a *Analyzer) {
		a.wordOpts = append(a.wordOpts, opts...)
	}
}

// WithLogger sets the logger used for per-document progress and failures
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithProgress sets a callback invoked with each path before it is processed
func WithProgress(fn func(path string)) Option {
	return func(a *Analyzer) {
		a.progress = fn
	}
}

// NewAnalyzer creates an Analyzer that opens documents with open
func NewAnalyzer(open pdf.Opener, opts ...Option) *Analyzer {
	a := &Analyzer{
		open:      open,
		extractor: NewExtractor(),
		rowUnit:   DefaultRowUnit,
		marker:    DocumentMarker,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// IsStatementPage reports whether the page carries the statement marker
func (a *Analyzer) IsStatementPage(page pdf.Page) bool {
	return strings.Contains(a.normalize(page.ExtractText()), a.marker)
}

// Rows rebuilds the logical rows of a page
func (a *Analyzer) Rows(page pdf.Page) []Row {
	words := page.ExtractWords(a.wordOpts...)
	tokens := make([]Token, 0, len(words))
	for _, w := range words {
		tokens = append(tokens, Token{
			Text: a.normalize(w.Text),
			Y:    w.Y0,
			Page: page.GetPageNumber(),
		})
	}
	return GroupRows(tokens, a.rowUnit)
}

// ProcessPage returns the station names on a statement page, or nil when the
// page is not part of a statement.
func (a *Analyzer) ProcessPage(page pdf.Page) []string {
	if !a.IsStatementPage(page) {
		return nil
	}
	return a.extract(page)
}

func (a *Analyzer) extract(page pdf.Page) []string {
	var names []string
	for _, row := range a.Rows(page) {
		if !Classify(row.Text) {
			continue
		}
		names = append(names, a.extractor.Extract(row.Text)...)
	}
	return names
}

// ProcessDocument opens and processes one file. A panic raised while the
// document is open or its pages are read fails only this document.
func (a *Analyzer) ProcessDocument(path string) (result DocumentResult) {
	result = DocumentResult{Path: path}

	defer func() {
		if r := recover(); r != nil {
			result.Stations = nil
			result.Err = fmt.Errorf("process %s: panic: %v", filepath.Base(path), r)
		}
	}()

	doc, err := a.open(path)
	if err != nil {
		result.Err = fmt.Errorf("open %s: %w", filepath.Base(path), err)
		return result
	}
	defer doc.Close()

	var stations []string
	for _, page := range doc.GetPages() {
		result.Pages++
		if !a.IsStatementPage(page) {
			continue
		}
		result.Matched++
		stations = append(stations, a.extract(page)...)
	}
	result.Stations = stations

	return result
}

// Run processes paths one at a time and adds every extracted name to tally.
// A failing document is logged and skipped; it never stops the run.
func (a *Analyzer) Run(paths []string, tally *Tally) (RunSummary, error) {
	var summary RunSummary
	if len(paths) == 0 {
		return summary, ErrNoDocuments
	}

	for _, path := range paths {
		summary.Documents++
		if a.progress != nil {
			a.progress(path)
		}
		a.logger.Debug("processing document", slog.String("file", filepath.Base(path)))

		result := a.ProcessDocument(path)
		if result.Failed() {
			summary.Failed++
			a.logger.Error("process document",
				slog.String("file", path),
				slog.String("error", result.Err.Error()),
			)
			continue
		}

		a.logger.Debug("document processed",
			slog.String("file", filepath.Base(path)),
			slog.Int("pages", result.Pages),
			slog.Int("statement_pages", result.Matched),
			slog.Int("stations", len(result.Stations)),
		)
		tally.Add(result.Stations...)
		summary.Stations += len(result.Stations)
	}

	if summary.Stations == 0 {
		return summary, ErrNoRecords
	}
	return summary, nil
}

func (a *Analyzer) normalize(s string) string {
	if a.foldWidth {
		return width.Fold.String(s)
	}
	return s
}
