package reports

import (
	"bytes"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/vantro-labs/coinledger-backend/internal/money"
)

const statementMaxRows = 200

func buildStatementPDF(stmt Statement, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "CoinLedger Statement")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, "Period: "+stmt.From+" to "+stmt.To)
	pdf.Ln(10)

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 11)

	sumW := []float64{62, 62, 62}
	pdf.CellFormat(sumW[0], 10, "Income", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[1], 10, "Expenses", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[2], 10, "Balance", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(sumW[0], 10, formatAmount(stmt.TotalIncome), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[1], 10, formatAmount(stmt.TotalExpenses), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[2], 10, formatAmount(stmt.Balance()), "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	colW := []float64{20, 24, 40, 40, 36, 26}
	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(245, 245, 245)
		pdf.CellFormat(colW[0], 8, "TYPE", "1", 0, "C", true, 0, "")
		pdf.CellFormat(colW[1], 8, "DATE", "1", 0, "C", true, 0, "")
		pdf.CellFormat(colW[2], 8, "CATEGORY", "1", 0, "L", true, 0, "")
		pdf.CellFormat(colW[3], 8, "ACCOUNT", "1", 0, "L", true, 0, "")
		pdf.CellFormat(colW[4], 8, "NOTE", "1", 0, "L", true, 0, "")
		pdf.CellFormat(colW[5], 8, "AMOUNT", "1", 1, "R", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
	}
	writeHeader()
	pdf.SetTextColor(30, 30, 30)

	for i, row := range stmt.Rows {
		if i >= statementMaxRows {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.CellFormat(0, 8, "truncated: too many rows", "1", 1, "C", false, 0, "")
			break
		}
		if pdf.GetY() > 270 {
			pdf.AddPage()
			writeHeader()
		}

		pdf.CellFormat(colW[0], 8, strings.ToUpper(row.Type), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[1], 8, row.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[2], 8, trimTo(row.Category, 24), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[3], 8, trimTo(row.Account, 24), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[4], 8, trimTo(row.Note, 22), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[5], 8, formatSigned(row.Amount, row.Type), "1", 1, "R", false, 0, "")
	}

	pdf.SetY(-18)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 10, "Generated by CoinLedger on "+generatedAt.Format(time.RFC3339), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// trimTo truncates on rune boundaries so multi-byte names survive intact.
func trimTo(s string, max int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "~"
}

func formatAmount(a money.Amount) string {
	s := money.String(int64(a))
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	whole, frac, _ := strings.Cut(s, ".")
	out := withCommas(whole)
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

func formatSigned(a money.Amount, typ string) string {
	if typ == "expense" && a > 0 {
		return "-" + formatAmount(a)
	}
	return formatAmount(a)
}

func withCommas(digits string) string {
	var b strings.Builder
	l := len(digits)
	for i := 0; i < l; i++ {
		b.WriteByte(digits[i])
		rem := l - i - 1
		if rem > 0 && rem%3 == 0 {
			b.WriteByte(',')
		}
	}
	return b.String()
}
