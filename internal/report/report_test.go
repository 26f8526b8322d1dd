package report

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pyhub-apps/swapstat/internal/swap"
)

func sampleTally() *swap.Tally {
	tally := swap.NewTally()
	tally.Add("信義站", "忠孝店", "信義站", "大安中心", "忠孝店", "信義站", "北投公所")
	return tally
}

func TestWriteConsole(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteConsole(&buf, sampleTally()))

	out := buf.String()
	assert.Contains(t, out, "總交換次數: 7 次")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	tail := lines[len(lines)-4:]
	assert.Equal(t, []string{"信義站", "3"}, strings.Fields(tail[0]))
	assert.Equal(t, []string{"忠孝店", "2"}, strings.Fields(tail[1]))
	assert.Equal(t, []string{"大安中心", "1"}, strings.Fields(tail[2]))
	assert.Equal(t, []string{"北投公所", "1"}, strings.Fields(tail[3]))
}

func TestChartRender(t *testing.T) {
	chart := NewChart(2, FallbackFonts())
	assert.Equal(t, "Gogoro 電池交換站點分析 (交換次數 > 1)", chart.Title)

	img, err := chart.Render(sampleTally().Frequent(2))
	require.NoError(t, err)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 1000, img.Bounds().Dy())

	// the first bar is the longest and sits above the second
	var firstRow, secondRow, firstLen, secondLen int
	for y := 0; y < img.Bounds().Dy(); y++ {
		n := 0
		for x := 0; x < img.Bounds().Dx(); x++ {
			if img.RGBAAt(x, y) == barColor {
				n++
			}
		}
		switch {
		case n == 0:
		case firstRow == 0:
			firstRow, firstLen = y, n
		case n != firstLen && secondRow == 0:
			secondRow, secondLen = y, n
		}
	}
	require.NotZero(t, firstRow)
	require.NotZero(t, secondRow)
	assert.Less(t, firstRow, secondRow)
	assert.Greater(t, firstLen, secondLen)
}

func TestChartEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	chart := NewChart(2, FallbackFonts())

	err := chart.WritePNG(path, nil)
	assert.ErrorIs(t, err, ErrEmptyTable)
	assert.NoFileExists(t, path)
}

func TestChartWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	chart := NewChart(2, FallbackFonts())

	require.NoError(t, chart.WritePNG(path, sampleTally().Frequent(2)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))
}

func TestFindFontsWarnsForUnusableFont(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "broken.ttf")
	require.NoError(t, os.WriteFile(bad, []byte("not a font"), 0o644))

	var logs bytes.Buffer
	fonts := FindFonts(bad, slog.New(slog.NewTextHandler(&logs, nil)))

	assert.NotNil(t, fonts.Title)
	assert.NotNil(t, fonts.Label)
	assert.Contains(t, logs.String(), "configured chart font unusable")
}

func TestLoadFontsMissing(t *testing.T) {
	_, err := LoadFonts(filepath.Join(t.TempDir(), "missing.ttc"))
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleTally().Ranked()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "rank,station,count", lines[0])
	assert.Equal(t, "1,信義站,3", lines[1])
	assert.Equal(t, "4,北投公所,1", lines[4])
}

func TestWriteXLSXFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.xlsx")
	tally := sampleTally()
	require.NoError(t, WriteXLSXFile(path, tally.Ranked(), tally.Total()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, []string{"rank", "station", "count"}, rows[0])
	assert.Equal(t, []string{"1", "信義站", "3"}, rows[1])

	total, err := f.GetCellValue(SheetName, "C7")
	require.NoError(t, err)
	assert.Equal(t, "7", total)
}

func TestSimilar(t *testing.T) {
	ranked := []swap.StationCount{
		{Name: "忠孝東站", Count: 4},
		{Name: "信義站", Count: 3},
		{Name: "忠孝西站", Count: 1},
	}

	pairs := Similar(ranked, 1)
	require.Len(t, pairs, 1)
	assert.Equal(t, "忠孝東站", pairs[0].A.Name)
	assert.Equal(t, "忠孝西站", pairs[0].B.Name)
	assert.Equal(t, 1, pairs[0].Distance)

	assert.Nil(t, Similar(ranked, 0))

	var buf bytes.Buffer
	require.NoError(t, WriteSimilar(&buf, pairs))
	assert.Contains(t, buf.String(), "忠孝西站 (1)")
}
