package reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/vantro-labs/coinledger-backend/internal/money"
)

const exportSheet = "Transactions"

func buildExportXLSX(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Type", "Date", "Category", "Account", "Note", "Amount"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for idx, row := range rows {
		n := idx + 2
		f.SetCellValue(exportSheet, fmt.Sprintf("A%d", n), row.Type)
		f.SetCellValue(exportSheet, fmt.Sprintf("B%d", n), row.Date)
		f.SetCellValue(exportSheet, fmt.Sprintf("C%d", n), row.Category)
		f.SetCellValue(exportSheet, fmt.Sprintf("D%d", n), row.Account)
		f.SetCellValue(exportSheet, fmt.Sprintf("E%d", n), row.Note)
		f.SetCellValue(exportSheet, fmt.Sprintf("F%d", n), money.Float(int64(row.Amount)))
	}

	f.SetColWidth(exportSheet, "A", "A", 10)
	f.SetColWidth(exportSheet, "B", "B", 12)
	f.SetColWidth(exportSheet, "C", "D", 18)
	f.SetColWidth(exportSheet, "E", "E", 30)
	f.SetColWidth(exportSheet, "F", "F", 12)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
