package pdf

import (
	"strings"
	"unicode"
)

// decodedPage holds the glyphs of a page after the backend has decoded it.
// Both backends share it so word grouping behaves the same whichever
// library produced the glyphs.
type decodedPage struct {
	pageNumber int
	width      float64
	height     float64
	chars      []CharObject
	text       string
}

// GetPageNumber returns the page number (1-based)
func (p *decodedPage) GetPageNumber() int {
	return p.pageNumber
}

// GetWidth returns the page width
func (p *decodedPage) GetWidth() float64 {
	return p.width
}

// GetHeight returns the page height
func (p *decodedPage) GetHeight() float64 {
	return p.height
}

// GetChars returns the page glyphs in content stream order
func (p *decodedPage) GetChars() []CharObject {
	return p.chars
}

// ExtractText returns the page text in content stream order
func (p *decodedPage) ExtractText() string {
	return p.text
}

// ExtractWords groups glyphs into words without re-sorting them.
// A word ends at whitespace, when the baseline drifts more than the
// Y tolerance, or when the next glyph is not directly to the right.
func (p *decodedPage) ExtractWords(opts ...WordExtractionOption) []Word {
	config := defaultWordConfig()
	for _, opt := range opts {
		opt(config)
	}
	return groupWords(p.chars, config)
}

func groupWords(chars []CharObject, config *wordExtractionConfig) []Word {
	var words []Word
	var current []CharObject

	flush := func() {
		if len(current) > 0 {
			words = append(words, createWord(current))
			current = nil
		}
	}

	for _, char := range chars {
		if isBlank(char.Text) {
			flush()
			continue
		}
		if len(current) > 0 {
			last := current[len(current)-1]
			gap := char.X0 - last.X1
			if abs(char.Y0-last.Y0) > config.YTolerance || gap > config.XTolerance || gap < -config.XTolerance {
				flush()
			}
		}
		current = append(current, char)
	}
	flush()

	return words
}

// createWord creates a Word from a group of characters
func createWord(chars []CharObject) Word {
	var text strings.Builder
	minX, minY := chars[0].X0, chars[0].Y0
	maxX, maxY := chars[0].X1, chars[0].Y1

	for _, char := range chars {
		text.WriteString(char.Text)
		minX = min(minX, char.X0)
		minY = min(minY, char.Y0)
		maxX = max(maxX, char.X1)
		maxY = max(maxY, char.Y1)
	}

	return Word{
		Text:       text.String(),
		X0:         minX,
		Y0:         minY,
		X1:         maxX,
		Y1:         maxY,
		Characters: chars,
	}
}

func isBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}

// splitRun spreads a decoded text run over per-glyph CharObjects.
// top is the run's top edge in top-left page coordinates.
func splitRun(s, font string, fontSize, x, top, width float64) []CharObject {
	runes := []rune(s)
	if len(runes) == 0 {
		return nil
	}

	charWidth := width / float64(len(runes))
	chars := make([]CharObject, 0, len(runes))
	for _, r := range runes {
		chars = append(chars, CharObject{
			Text:     string(r),
			Font:     font,
			FontSize: fontSize,
			X0:       x,
			Y0:       top,
			X1:       x + charWidth,
			Y1:       top + fontSize,
			Width:    charWidth,
			Height:   fontSize,
		})
		x += charWidth
	}
	return chars
}

// topFromBaseline converts a PDF baseline (bottom-left origin) into the top
// edge of the glyph box measured from the top of the page.
// The baseline sits at roughly 80% of the font height.
func topFromBaseline(pageHeight, baseline, fontSize float64) float64 {
	return pageHeight - (baseline + fontSize*0.8)
}
