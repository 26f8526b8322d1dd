package pdf

// BoundingBox represents a rectangular area with coordinates.
// Y grows downwards from the top edge of the page.
type BoundingBox struct {
	X0 float64 // Left
	Y0 float64 // Top
	X1 float64 // Right
	Y1 float64 // Bottom
}

// Width returns the width of the bounding box
func (b BoundingBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the height of the bounding box
func (b BoundingBox) Height() float64 {
	return b.Y1 - b.Y0
}

// CharObject represents a single glyph in the order the content stream drew it
type CharObject struct {
	Text     string
	Font     string
	FontSize float64
	X0       float64
	Y0       float64
	X1       float64
	Y1       float64
	Width    float64
	Height   float64
}

// GetBBox returns the character's bounding box
func (c CharObject) GetBBox() BoundingBox {
	return BoundingBox{X0: c.X0, Y0: c.Y0, X1: c.X1, Y1: c.Y1}
}

// Word is a run of non-space glyphs drawn next to each other on one baseline.
type Word struct {
	Text       string
	X0         float64
	Y0         float64
	X1         float64
	Y1         float64
	Characters []CharObject
}

// GetBBox returns the word's bounding box
func (w Word) GetBBox() BoundingBox {
	return BoundingBox{X0: w.X0, Y0: w.Y0, X1: w.X1, Y1: w.Y1}
}

// WordExtractionOption is a function that modifies word extraction behavior
type WordExtractionOption func(*wordExtractionConfig)

type wordExtractionConfig struct {
	XTolerance float64
	YTolerance float64
}

func defaultWordConfig() *wordExtractionConfig {
	return &wordExtractionConfig{
		XTolerance: 3.0,
		YTolerance: 3.0,
	}
}

// WithWordXTolerance sets the largest horizontal gap between two glyphs of one word
func WithWordXTolerance(tolerance float64) WordExtractionOption {
	return func(c *wordExtractionConfig) {
		c.XTolerance = tolerance
	}
}

// WithWordYTolerance sets the largest baseline drift allowed inside one word
func WithWordYTolerance(tolerance float64) WordExtractionOption {
	return func(c *wordExtractionConfig) {
		c.YTolerance = tolerance
	}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
