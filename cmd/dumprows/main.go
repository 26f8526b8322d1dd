package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pyhub-apps/swapstat/internal/swap"
	"github.com/pyhub-apps/swapstat/pkg/pdf"
)

func main() {
	var (
		pdfPath    = flag.String("pdf", "", "Path to PDF file")
		library    = flag.String("lib", pdf.BackendAuto, "PDF library to use (auto, ledongthuc, dslipak)")
		rowUnit    = flag.Float64("row-unit", swap.DefaultRowUnit, "Vertical distance that maps to one row key")
		xTolerance = flag.Float64("x-tolerance", 3.0, "X tolerance for word separation")
		fold       = flag.Bool("fold", false, "Fold full-width forms before grouping")
		all        = flag.Bool("all", false, "Dump pages without the statement marker too")
		candidates = flag.Bool("candidates", false, "Only print rows that classify as swap records")
	)
	flag.Parse()

	if *pdfPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	open, err := pdf.Lookup(*library)
	if err != nil {
		log.Fatal(err)
	}

	doc, err := open(*pdfPath)
	if err != nil {
		log.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	analyzer := swap.NewAnalyzer(open,
		swap.WithRowUnit(*rowUnit),
		swap.WithWidthFolding(*fold),
		swap.WithWordOptions(pdf.WithWordXTolerance(*xTolerance)),
	)
	extractor := swap.NewExtractor()

	fmt.Printf("Using library: %s\n", *library)
	fmt.Printf("Pages: %d\n", doc.PageCount())
	fmt.Printf("Row unit: %.2f\n\n", *rowUnit)

	for _, page := range doc.GetPages() {
		statement := analyzer.IsStatementPage(page)
		fmt.Printf("=== Page %d (statement: %v) ===\n", page.GetPageNumber(), statement)
		if !statement && !*all {
			continue
		}

		for _, row := range analyzer.Rows(page) {
			record := swap.Classify(row.Text)
			if *candidates && !record {
				continue
			}

			mark := " "
			if record {
				mark = "*"
			}
			fmt.Printf("%s %6d  %q\n", mark, row.Key, row.Text)
			if record {
				for _, name := range extractor.Extract(row.Text) {
					fmt.Printf("          -> %s\n", name)
				}
			}
		}
		fmt.Println()
	}
}
