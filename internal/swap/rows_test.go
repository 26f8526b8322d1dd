package swap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRows(t *testing.T) {
	tokens := []Token{
		{Text: "忠孝店", Y: 120.2},
		{Text: "信義站", Y: 99.6},
		{Text: "12:30:45", Y: 100.4},
		{Text: "0.85(安時)", Y: 100.1},
		{Text: "13:00:00", Y: 119.9},
	}

	rows := GroupRows(tokens, DefaultRowUnit)

	require.Len(t, rows, 2)
	assert.Equal(t, 100, rows[0].Key)
	assert.Equal(t, "信義站12:30:450.85(安時)", rows[0].Text)
	assert.Equal(t, 120, rows[1].Key)
	assert.Equal(t, "忠孝店13:00:00", rows[1].Text, "tokens keep emission order inside a row")
}

func TestGroupRowsEveryTokenOnce(t *testing.T) {
	var tokens []Token
	for i := 0; i < 200; i++ {
		// deliberately unordered and jittered coordinates
		y := float64((i*37)%53) + float64(i%7)*0.13
		tokens = append(tokens, Token{Text: "x", Y: y})
	}

	for _, unit := range []float64{0.5, 1, 2.5} {
		rows := GroupRows(tokens, unit)

		seen := 0
		for i, row := range rows {
			seen += len(row.Tokens)
			assert.Equal(t, len(row.Tokens), len(row.Text))
			for _, tok := range row.Tokens {
				assert.Equal(t, row.Key, RowKey(tok.Y, unit))
			}
			if i > 0 {
				assert.Less(t, rows[i-1].Key, row.Key, "row keys must ascend")
			}
		}
		assert.Equal(t, len(tokens), seen, "unit %v", unit)
	}
}

func TestGroupRowsRoundingTradeOff(t *testing.T) {
	// two visual lines less than one unit apart collapse
	merged := GroupRows([]Token{{Text: "A", Y: 10.6}, {Text: "B", Y: 11.4}}, 1)
	require.Len(t, merged, 1)
	assert.Equal(t, "AB", merged[0].Text)

	// one visual line straddling a rounding boundary splits
	split := GroupRows([]Token{{Text: "A", Y: 10.49}, {Text: "B", Y: 10.51}}, 1)
	assert.Len(t, split, 2)

	// a coarser unit joins them again
	assert.Len(t, GroupRows([]Token{{Text: "A", Y: 10.49}, {Text: "B", Y: 10.51}}, 2), 1)
}

func TestRowKey(t *testing.T) {
	tests := []struct {
		y    float64
		unit float64
		want int
	}{
		{y: 99.6, unit: 1, want: 100},
		{y: 2.5, unit: 1, want: 2},
		{y: 3.5, unit: 1, want: 4},
		{y: 10, unit: 4, want: 2},
		{y: 7.2, unit: 0, want: 7},
		{y: 7.2, unit: -3, want: 7},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RowKey(tt.y, tt.unit), "RowKey(%v, %v)", tt.y, tt.unit)
	}
}

func TestGroupRowsEmpty(t *testing.T) {
	assert.Empty(t, GroupRows(nil, 1))
}
