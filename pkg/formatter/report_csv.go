package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/rvelez/iamscan/internal/models"
)

// utf8BOM is prepended to the report so spreadsheet tools detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// reportHeader is the fixed column order of the report.
var reportHeader = []string{
	"CUENTA",
	"ID Cuenta",
	"Usuarios",
	"CreateDate",
	"LastConsoleLogin",
	"ConsoleAccess",
	"AccessKeyId",
	"KeyStatus",
	"LastUsedDate",
	"ServiceName",
	"Region",
	"MFA",
}

// SortReportRows orders rows by account label, then by key status. Both keys
// compare as literal strings, so "Active" sorts before "Inactive" and the
// "None" sentinel of keyless users sorts after both. The sort is stable.
func SortReportRows(rows []models.ReportRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Account != rows[j].Account {
			return rows[i].Account < rows[j].Account
		}
		return rows[i].KeyStatus < rows[j].KeyStatus
	})
}

// ReportFilename returns the report file name for the given run date.
func ReportFilename(t time.Time) string {
	return fmt.Sprintf("reporte_iam_detallado_%s.csv", t.Format("20060102"))
}

// WriteReportCSV writes the header and rows as UTF-8 CSV, preceded by a
// byte-order marker.
func WriteReportCSV(w io.Writer, rows []models.ReportRow) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("error writing byte-order marker: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Account,
			row.AccountID,
			row.UserName,
			row.CreateDate,
			row.LastConsoleLogin,
			row.ConsoleAccess,
			row.AccessKeyID,
			row.KeyStatus,
			row.LastUsedDate,
			row.ServiceName,
			row.Region,
			row.MFA,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("error writing CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
