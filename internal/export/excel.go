package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"stockledger/internal/domain"
)

// BalanceWorkbook renders the balance report as a single-sheet XLSX.
func BalanceWorkbook(rows []domain.BalanceRow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{"product", "location", "qty"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	n := 2
	for _, r := range rows {
		row := []interface{}{r.Product, r.Location, r.Qty}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", n), &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", n, err)
		}
		n++
	}

	return f.WriteToBuffer()
}
