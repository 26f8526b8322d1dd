package report

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/pyhub-apps/swapstat/internal/swap"
)

// ErrEmptyTable is returned when there is nothing to draw
var ErrEmptyTable = errors.New("no stations to chart")

// DefaultFontPaths are tried in order when no font is configured.
// Microsoft JhengHei comes first because the statements are in Traditional Chinese.
var DefaultFontPaths = []string{
	`C:\Windows\Fonts\msjh.ttc`,
	"/System/Library/Fonts/PingFang.ttc",
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/google-noto-cjk/NotoSansCJK-Regular.ttc",
}

var (
	barColor   = color.RGBA{R: 0x28, G: 0xb4, B: 0xc0, A: 0xff}
	gridColor  = color.RGBA{R: 0xbb, G: 0xbb, B: 0xbb, A: 0xff}
	axisColor  = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	textColor  = image.NewUniform(color.Black)
	background = image.NewUniform(color.White)
)

// Fonts are the faces used by a chart
type Fonts struct {
	Title font.Face
	Label font.Face
}

// FallbackFonts uses the built-in bitmap face, which has no CJK glyphs
func FallbackFonts() Fonts {
	return Fonts{Title: basicfont.Face7x13, Label: basicfont.Face7x13}
}

// LoadFonts parses a TrueType/OpenType font or the first font of a collection
func LoadFonts(path string) (Fonts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fonts{}, fmt.Errorf("read font: %w", err)
	}

	var f *opentype.Font
	if strings.HasSuffix(strings.ToLower(path), ".ttc") {
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return Fonts{}, fmt.Errorf("parse font collection %s: %w", path, err)
		}
		if f, err = coll.Font(0); err != nil {
			return Fonts{}, fmt.Errorf("font collection %s: %w", path, err)
		}
	} else if f, err = opentype.Parse(data); err != nil {
		return Fonts{}, fmt.Errorf("parse font %s: %w", path, err)
	}

	title, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 24, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return Fonts{}, fmt.Errorf("title face: %w", err)
	}
	label, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 14, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return Fonts{}, fmt.Errorf("label face: %w", err)
	}
	return Fonts{Title: title, Label: label}, nil
}

// FindFonts loads the first usable font among preferred and DefaultFontPaths.
// When none loads it warns and falls back to the bitmap face.
func FindFonts(preferred string, logger *slog.Logger) Fonts {
	paths := DefaultFontPaths
	if preferred != "" {
		paths = append([]string{preferred}, paths...)
	}

	for _, path := range paths {
		fonts, err := LoadFonts(path)
		if err == nil {
			logger.Debug("chart font loaded", slog.String("path", path))
			return fonts
		}
		if path == preferred {
			logger.Warn("configured chart font unusable", slog.String("path", path), slog.String("error", err.Error()))
		}
	}

	logger.Warn("no CJK font found, falling back to the built-in face; Chinese labels may not render",
		slog.String("hint", "set report.font_path to a .ttf, .otf or .ttc font"))
	return FallbackFonts()
}

// Chart describes a horizontal bar chart of station counts
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Width  int
	Height int
	Fonts  Fonts
}

// NewChart returns a chart with the default titles and size
func NewChart(minCount int, fonts Fonts) *Chart {
	return &Chart{
		Title:  fmt.Sprintf("Gogoro 電池交換站點分析 (交換次數 > %d)", minCount-1),
		XLabel: "交換次數",
		YLabel: "電池交換站",
		Width:  1200,
		Height: 1000,
		Fonts:  fonts,
	}
}

// Render draws data, which must be sorted by descending count, with the
// largest bar at the top.
func (c *Chart) Render(data []swap.StationCount) (*image.RGBA, error) {
	if len(data) == 0 {
		return nil, ErrEmptyTable
	}

	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	draw.Draw(img, img.Bounds(), background, image.Point{}, draw.Src)

	labelWidth := 0
	for _, sc := range data {
		if w := font.MeasureString(c.Fonts.Label, sc.Name).Ceil(); w > labelWidth {
			labelWidth = w
		}
	}
	if labelWidth > c.Width/2 {
		labelWidth = c.Width / 2
	}

	titleHeight := lineHeight(c.Fonts.Title)
	labelHeight := lineHeight(c.Fonts.Label)

	plot := image.Rect(
		labelWidth+30,
		titleHeight*2+labelHeight,
		c.Width-60,
		c.Height-labelHeight*3,
	)

	maxCount := data[0].Count
	for _, sc := range data {
		if sc.Count > maxCount {
			maxCount = sc.Count
		}
	}
	// leave room for the count printed after the longest bar
	scale := float64(plot.Dx()) / (float64(maxCount) * 1.1)

	c.drawGrid(img, plot, maxCount, scale, labelHeight)

	slot := float64(plot.Dy()) / float64(len(data))
	barHeight := int(slot * 0.5)
	if barHeight < 1 {
		barHeight = 1
	}
	for i, sc := range data {
		center := plot.Min.Y + int(slot*float64(i)+slot/2)
		bar := image.Rect(plot.Min.X, center-barHeight/2, plot.Min.X+int(float64(sc.Count)*scale), center+barHeight/2+barHeight%2)
		draw.Draw(img, bar, image.NewUniform(barColor), image.Point{}, draw.Src)

		baseline := center + ascent(c.Fonts.Label)/2
		c.text(img, c.Fonts.Label, sc.Name, plot.Min.X-10-font.MeasureString(c.Fonts.Label, sc.Name).Ceil(), baseline)
		c.text(img, c.Fonts.Label, strconv.Itoa(sc.Count), bar.Max.X+6, baseline)
	}

	// axes
	draw.Draw(img, image.Rect(plot.Min.X, plot.Min.Y, plot.Min.X+1, plot.Max.Y), image.NewUniform(axisColor), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(plot.Min.X, plot.Max.Y, plot.Max.X, plot.Max.Y+1), image.NewUniform(axisColor), image.Point{}, draw.Src)

	c.text(img, c.Fonts.Title, c.Title, (c.Width-font.MeasureString(c.Fonts.Title, c.Title).Ceil())/2, titleHeight+ascent(c.Fonts.Title)/2)
	c.text(img, c.Fonts.Label, c.YLabel, 10, plot.Min.Y-labelHeight/2)
	c.text(img, c.Fonts.Label, c.XLabel, plot.Min.X+(plot.Dx()-font.MeasureString(c.Fonts.Label, c.XLabel).Ceil())/2, c.Height-labelHeight)

	return img, nil
}

// drawGrid draws dashed vertical lines at integer ticks with their labels
func (c *Chart) drawGrid(img *image.RGBA, plot image.Rectangle, maxCount int, scale float64, labelHeight int) {
	step := 1
	for maxCount/step > 10 {
		step *= 2
	}
	for tick := 0; tick <= maxCount; tick += step {
		x := plot.Min.X + int(float64(tick)*scale)
		for y := plot.Min.Y; y < plot.Max.Y; y++ {
			if (y/6)%2 == 0 {
				img.Set(x, y, gridColor)
			}
		}
		label := strconv.Itoa(tick)
		c.text(img, c.Fonts.Label, label, x-font.MeasureString(c.Fonts.Label, label).Ceil()/2, plot.Max.Y+labelHeight+4)
	}
}

func (c *Chart) text(img *image.RGBA, face font.Face, s string, x, y int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  textColor,
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// WritePNG renders data and writes it to path. No file is created for an
// empty table.
func (c *Chart) WritePNG(path string, data []swap.StationCount) error {
	img, err := c.Render(data)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode chart: %w", err)
	}
	return f.Close()
}

func lineHeight(face font.Face) int {
	return face.Metrics().Height.Ceil()
}

func ascent(face font.Face) int {
	return face.Metrics().Ascent.Ceil()
}
