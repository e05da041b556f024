package export

import (
	"bytes"
	"fmt"

	"github.com/Dhoini/invoice-dashboard/internal/domain"
	"github.com/xuri/excelize/v2"
)

// SheetName имя листа со счетами
const SheetName = "Invoices"

// ContentTypeXLSX MIME-тип книги Excel
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var header = []any{"ID", "Customer", "Amount", "Status", "Date"}

// InvoicesXLSX собирает книгу Excel со списком счетов. Сумма выгружается
// в долларах, хранится она в центах.
func InvoicesXLSX(invoices []domain.Invoice) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, inv := range invoices {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{inv.ID, inv.CustomerID, float64(inv.Amount) / 100, string(inv.Status), inv.Date}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write invoice %s: %w", inv.ID, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
