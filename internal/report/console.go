// Package report renders a station tally as console text, a bar chart and
// optional spreadsheet exports.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pyhub-apps/swapstat/internal/swap"
)

// WriteConsole prints the total and one line per station in ranked order
func WriteConsole(w io.Writer, tally *swap.Tally) error {
	if _, err := fmt.Fprintf(w, "\n--- Gogoro 電池交換分析結果 ---\n\n總交換次數: %d 次\n\n各站點交換次數統計:\n", tally.Total()); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "站點\t次數")
	for _, sc := range tally.Ranked() {
		fmt.Fprintf(tw, "%s\t%d\n", sc.Name, sc.Count)
	}
	return tw.Flush()
}

// WriteSimilar prints pairs of names that may be spellings of one station
func WriteSimilar(w io.Writer, pairs []SimilarPair) error {
	if len(pairs) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(w, "\n名稱相近的站點 (未合併):"); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, p := range pairs {
		fmt.Fprintf(tw, "  %s (%d)\t%s (%d)\t距離 %d\n", p.A.Name, p.A.Count, p.B.Name, p.B.Count, p.Distance)
	}
	return tw.Flush()
}
