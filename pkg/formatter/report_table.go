package formatter

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/rvelez/iamscan/internal/models"
)

// PrintReportTable writes the report rows as an aligned preview table.
func PrintReportTable(writer io.Writer, rows []models.ReportRow) {
	if len(rows) == 0 {
		fmt.Fprintln(writer, "No IAM report rows to display.")
		return
	}

	// Create tabwriter for aligned output
	w := tabwriter.NewWriter(writer, 0, 0, 3, ' ', tabwriter.TabIndent)

	fmt.Fprintln(w, "ACCOUNT\tACCOUNT ID\tUSER\tCONSOLE\tMFA\tKEY ID\tKEY STATUS\tLAST USED")

	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Account,
			row.AccountID,
			row.UserName,
			row.ConsoleAccess,
			row.MFA,
			row.AccessKeyID,
			row.KeyStatus,
			row.LastUsedDate,
		)
	}

	w.Flush()
}

// PrintReportSummary reports the final record count and output file name.
func PrintReportSummary(writer io.Writer, count int, filename string) {
	fmt.Fprintf(writer, "\n[OK] Report generated: %s with %s records.\n",
		filename, humanize.Comma(int64(count)))
}
