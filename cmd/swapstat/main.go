package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/pyhub-apps/swapstat/internal/config"
	"github.com/pyhub-apps/swapstat/internal/report"
	"github.com/pyhub-apps/swapstat/internal/scan"
	"github.com/pyhub-apps/swapstat/internal/swap"
	"github.com/pyhub-apps/swapstat/pkg/pdf"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to a YAML config file")
		dir        = flag.String("dir", "", "Directory containing statement PDFs (overrides input.dir)")
		chartPath  = flag.String("chart", "", "Chart output path (overrides report.chart_path)")
		backend    = flag.String("lib", "", "PDF library to use (overrides extract.backend)")
	)
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *dir != "" {
		cfg.Input.Dir = *dir
	}
	if *chartPath != "" {
		cfg.Report.ChartPath = *chartPath
	}
	if *backend != "" {
		cfg.Extract.Backend = *backend
	}

	level, _ := config.ParseLevel(cfg.Log.Level)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	open, err := pdf.Lookup(cfg.Extract.Backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "錯誤：無法使用 PDF 解析函式庫 %q。\n", cfg.Extract.Backend)
		fmt.Fprintf(os.Stderr, "請將 extract.backend 或 -lib 設為以下其中之一：%v\n", pdf.Backends())
		os.Exit(1)
	}
	if cfg.Extract.Validate {
		open = pdf.Validated(open)
	}

	files, err := scan.PDFs(cfg.Input.Dir, cfg.Input.Recursive)
	if err != nil {
		logger.Error("failed to scan input directory", slog.String("dir", cfg.Input.Dir), slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Println("錯誤：在指定資料夾中找不到任何 PDF 檔案。")
		return
	}
	fmt.Printf("找到 %d 個 PDF 檔案，開始分析...\n", len(files))

	extractor := swap.NewExtractor(
		swap.WithSuffixes(cfg.Extract.Suffixes...),
		swap.WithExclusions(cfg.Extract.Exclusions...),
	)
	analyzer := swap.NewAnalyzer(open,
		swap.WithExtractor(extractor),
		swap.WithRowUnit(cfg.Extract.RowUnit),
		swap.WithPageMarker(cfg.Extract.PageMarker),
		swap.WithWidthFolding(cfg.Extract.FoldWidth),
		swap.WithWordOptions(pdf.WithWordXTolerance(cfg.Extract.XTolerance)),
		swap.WithLogger(logger),
		swap.WithProgress(func(path string) {
			fmt.Printf("  - 正在處理: %s\n", filepath.Base(path))
		}),
	)

	tally := swap.NewTally()
	summary, err := analyzer.Run(files, tally)
	fmt.Println("分析完成！")
	if errors.Is(err, swap.ErrNoRecords) {
		fmt.Println("警告：未能在 PDF 檔案中提取到任何換電紀錄。")
		return
	}
	if err != nil {
		logger.Error("analysis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("run finished",
		slog.Int("documents", summary.Documents),
		slog.Int("failed", summary.Failed),
		slog.Int("stations", summary.Stations),
	)

	if err := report.WriteConsole(os.Stdout, tally); err != nil {
		logger.Error("failed to write report", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := report.WriteSimilar(os.Stdout, report.Similar(tally.Ranked(), cfg.Report.SimilarDistance)); err != nil {
		logger.Error("failed to write similar names", slog.String("error", err.Error()))
	}

	writeChart(cfg, tally, logger)
	writeExports(cfg, tally, logger)
}

func writeChart(cfg *config.Config, tally *swap.Tally, logger *slog.Logger) {
	chart := report.NewChart(cfg.Report.ChartMinCount, report.FindFonts(cfg.Report.FontPath, logger))

	err := chart.WritePNG(cfg.Report.ChartPath, tally.Frequent(cfg.Report.ChartMinCount))
	switch {
	case errors.Is(err, report.ErrEmptyTable):
		fmt.Printf("\n沒有交換次數達 %d 次的站點，不產生圖表。\n", cfg.Report.ChartMinCount)
	case err != nil:
		logger.Error("failed to write chart", slog.String("path", cfg.Report.ChartPath), slog.String("error", err.Error()))
	default:
		fmt.Printf("\n分析圖表已儲存為 '%s'\n", cfg.Report.ChartPath)
	}
}

func writeExports(cfg *config.Config, tally *swap.Tally, logger *slog.Logger) {
	if cfg.Report.CSVPath != "" {
		if err := report.WriteCSVFile(cfg.Report.CSVPath, tally.Ranked()); err != nil {
			logger.Error("failed to write csv", slog.String("path", cfg.Report.CSVPath), slog.String("error", err.Error()))
		} else {
			logger.Info("csv written", slog.String("path", cfg.Report.CSVPath))
		}
	}
	if cfg.Report.XLSXPath != "" {
		if err := report.WriteXLSXFile(cfg.Report.XLSXPath, tally.Ranked(), tally.Total()); err != nil {
			logger.Error("failed to write xlsx", slog.String("path", cfg.Report.XLSXPath), slog.String("error", err.Error()))
		} else {
			logger.Info("xlsx written", slog.String("path", cfg.Report.XLSXPath))
		}
	}
}
