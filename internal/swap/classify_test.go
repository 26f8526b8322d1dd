package swap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "swap line", text: "陽光公所A 12:30:45 0.85(安時)", want: true},
		{name: "free period line", text: "換電免費時段折抵 01:00:00 (安時)", want: true},
		{name: "hour is not range checked", text: "信義站 99:99:99 1.00(安時)", want: true},
		{name: "no time", text: "信義站 1.00(安時)", want: false},
		{name: "short time", text: "信義站 12:30 1.00(安時)", want: false},
		{name: "no unit marker", text: "信義站 12:30:45 1.00", want: false},
		{name: "marker without parentheses", text: "信義站 12:30:45 1.00安時", want: false},
		{name: "header row", text: "站點 時間 計費數量", want: false},
		{name: "empty", text: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestClassifyNeedsBothAnchors(t *testing.T) {
	row := "忠孝店 08:15:00 0.91" + UnitMarker
	assert.True(t, Classify(row))

	assert.False(t, Classify("忠孝店 0.91"+UnitMarker), "time removed")
	assert.False(t, Classify("忠孝店 08:15:00 0.91"), "unit marker removed")
}
