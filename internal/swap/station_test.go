package swap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractorExtract(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "office suffix with bay letter", text: "陽光公所A 12:30:45 0.85(安時)", want: []string{"陽光公所"}},
		{name: "station", text: "信義站 12:30:45 0.85(安時)", want: []string{"信義站"}},
		{name: "leading spaces trimmed", text: "  光復站(1) 07:00:01 1.02(安時)", want: []string{"光復站"}},
		{name: "shop", text: "全家便利商店-台北民生店 22:10:00 0.77(安時)", want: []string{"全家便利商店-台北民生店"}},
		{name: "store", text: "Gogoro 南京門市 09:00:00 0.66(安時)", want: []string{"Gogoro 南京門市"}},
		{name: "center", text: "市民活動中心 10:00:00 0.50(安時)", want: []string{"市民活動中心"}},
		{name: "parking lot", text: "府前廣場地下停車場 11:11:11 0.41(安時)", want: []string{"府前廣場地下停車場"}},
		{name: "two names split by punctuation", text: "信義站(A)忠孝店 12:00:00 (安時)", want: []string{"信義站", "忠孝店"}},
		{name: "free period line", text: "換電免費時段折抵 01:00:00 (安時)", want: nil},
		{name: "free period line with suffix", text: "換電免費時段折抵站 01:00:00 (安時)", want: nil},
		{name: "billing header", text: "計費數量中心 00:00:00 (安時)", want: nil},
		{name: "no suffix", text: "12:30:45 0.85(安時)", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Extract(tt.text))
		})
	}
}

func TestExtractorNeverEmitsExclusions(t *testing.T) {
	e := NewExtractor()
	rows := []string{
		"換電免費時段折抵站 01:00:00 (安時)",
		"本期計費數量停車場 02:00:00 (安時)",
		"A 換電免費時段折抵 B 中心 03:00:00 (安時)",
		"信義站 04:00:00 (安時)",
	}

	for _, row := range rows {
		for _, name := range e.Extract(row) {
			for _, phrase := range ExclusionPhrases {
				assert.NotContains(t, name, phrase)
			}
			assert.NotEmpty(t, strings.TrimSpace(name))
		}
	}
}

func TestTrimBaySuffix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "信義站 A", want: "信義站"},
		{in: "信義站  D", want: "信義站"},
		{in: "信義站　B", want: "信義站"},
		{in: "信義站A", want: "信義站A"},
		{in: "信義站 E", want: "信義站 E"},
		{in: "信義站 a", want: "信義站 a"},
		{in: "站 A B", want: "站 A"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TrimBaySuffix(tt.in), "TrimBaySuffix(%q)", tt.in)
	}
}

func TestExtractorOptions(t *testing.T) {
	row := "台北營業所 12:00:00 1.00(安時)"

	assert.Empty(t, NewExtractor().Extract(row))

	e := NewExtractor(WithSuffixes("營業所", "站", " "))
	assert.Equal(t, []string{"台北營業所"}, e.Extract(row))
	assert.Equal(t, append(append([]string{}, SuffixVocabulary...), "營業所"), e.Suffixes())

	e = NewExtractor(WithExclusions("測試"))
	assert.Empty(t, e.Extract("測試站 12:00:00 1.00(安時)"))
	assert.Equal(t, []string{"正式站"}, e.Extract("正式站 12:00:00 1.00(安時)"))
	assert.Contains(t, e.Exclusions(), "測試")
}

func TestExtractorSuffixesAreCopies(t *testing.T) {
	e := NewExtractor()
	got := e.Suffixes()
	got[0] = "changed"
	assert.Equal(t, SuffixVocabulary[0], e.Suffixes()[0])
}
