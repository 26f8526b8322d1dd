package report

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"github.com/pyhub-apps/swapstat/internal/swap"
)

// SheetName is the worksheet written by WriteXLSX
const SheetName = "stations"

// StationRow is one exported line of the ranked table
type StationRow struct {
	Rank    int    `csv:"rank"`
	Station string `csv:"station"`
	Count   int    `csv:"count"`
}

// Rows converts ranked counts to export rows, ranks starting at 1
func Rows(ranked []swap.StationCount) []*StationRow {
	rows := make([]*StationRow, 0, len(ranked))
	for i, sc := range ranked {
		rows = append(rows, &StationRow{Rank: i + 1, Station: sc.Name, Count: sc.Count})
	}
	return rows
}

// WriteCSV writes the ranked table with a header line
func WriteCSV(w io.Writer, ranked []swap.StationCount) error {
	if err := gocsv.Marshal(Rows(ranked), w); err != nil {
		return fmt.Errorf("marshal csv: %w", err)
	}
	return nil
}

// WriteCSVFile writes the ranked table to path
func WriteCSVFile(path string, ranked []swap.StationCount) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	if err := WriteCSV(f, ranked); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteXLSXFile writes the ranked table and the total to a workbook
func WriteXLSXFile(path string, ranked []swap.StationCount, total int) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &[]any{"rank", "station", "count"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range Rows(ranked) {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &[]any{row.Rank, row.Station, row.Count}); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	totalRow := len(ranked) + 3
	labelCell, _ := excelize.CoordinatesToCellName(2, totalRow)
	valCell, _ := excelize.CoordinatesToCellName(3, totalRow)
	if err := f.SetCellValue(SheetName, labelCell, "total"); err != nil {
		return fmt.Errorf("write total: %w", err)
	}
	if err := f.SetCellValue(SheetName, valCell, total); err != nil {
		return fmt.Errorf("write total: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}
