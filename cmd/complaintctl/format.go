package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/complaint-map/internal/aggregate"
	"github.com/complaint-map/internal/repository/sqlstore"
)

func printImportResult(w io.Writer, source, table string, r *sqlstore.ImportResult) {
	fmt.Fprintf(w, "Imported %d complaints from %s (table %s), skipped %d\n", r.Imported, source, table, r.Skipped)

	canonical := make([]string, 0, len(r.Columns))
	for c := range r.Columns {
		canonical = append(canonical, c)
	}
	sort.Strings(canonical)
	for _, c := range canonical {
		fmt.Fprintf(w, "  %s <- %s\n", c, r.Columns[c])
	}
}

func printSummary(w io.Writer, total int, rows []aggregate.TypeSummary) {
	if total == 0 {
		fmt.Fprintln(w, "No complaints recorded.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ISSUE TYPE\tCOUNT\tMEAN INTENSITY\tSHARE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.1f%%\n", r.IssueType, r.Count, r.MeanIntensity, r.Percentage)
	}
	fmt.Fprintf(tw, "TOTAL\t%d\t\t\n", total)
	_ = tw.Flush()
}
