package swap

import (
	"math"
	"sort"
	"strings"
)

// DefaultRowUnit is the vertical distance, in page points, that maps to one row key.
const DefaultRowUnit = 1.0

// Token is a positioned word taken from one page.
type Token struct {
	Text string
	Y    float64
	Page int
}

// Row is a logical line of text: every token whose Y rounds to Key.
// Text is the tokens' text joined without separators, in emission order.
type Row struct {
	Key    int
	Text   string
	Tokens []Token
}

// RowKey maps a vertical coordinate to its row key. Halves round to the
// even key.
func RowKey(y, unit float64) int {
	if unit <= 0 {
		unit = DefaultRowUnit
	}
	return int(math.RoundToEven(y / unit))
}

// GroupRows clusters tokens by row key and returns rows top to bottom.
//
// Tokens are not re-sorted horizontally: the decoder already emits the words
// of one line left to right. Rounding is a trade-off tuned by unit. Two
// visual lines closer than one unit collapse into one row, and a line whose
// tokens straddle a rounding boundary splits in two. Raise unit for
// documents with jittery baselines, lower it for tightly spaced tables.
func GroupRows(tokens []Token, unit float64) []Row {
	groups := make(map[int][]Token)
	for _, tok := range tokens {
		key := RowKey(tok.Y, unit)
		groups[key] = append(groups[key], tok)
	}

	keys := make([]int, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Ints(keys)

	rows := make([]Row, 0, len(keys))
	for _, key := range keys {
		var text strings.Builder
		for _, tok := range groups[key] {
			text.WriteString(tok.Text)
		}
		rows = append(rows, Row{Key: key, Text: text.String(), Tokens: groups[key]})
	}
	return rows
}
