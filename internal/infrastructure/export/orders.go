// Package export renders list views as spreadsheets.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/erp/backoffice/internal/domain/trade"
	"github.com/erp/backoffice/internal/infrastructure/i18n"
)

// ContentType is the MIME type of generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var orderColumns = []string{
	"export.col.number",
	"export.col.date",
	"export.col.customer",
	"export.col.status",
	"export.col.stage",
	"export.col.employee",
	"export.col.currency",
	"export.col.amount",
	"export.col.comment",
}

// amountColumn is the 1-based index of the amount column.
const amountColumn = 8

// OrdersWorkbook writes orders to a single-sheet workbook with a totals row.
func OrdersWorkbook(orders []trade.Order, loc *i18n.Localizer) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := loc.T("export.orders.sheet")
	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheet); err != nil {
		return nil, fmt.Errorf("export: rename sheet: %w", err)
	}

	header := make([]any, len(orderColumns))
	for i, key := range orderColumns {
		header[i] = loc.T(key)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("export: header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("export: style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("export: style: %w", err)
	}
	date, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		return nil, fmt.Errorf("export: style: %w", err)
	}

	total := decimal.Zero
	for i := range orders {
		o := &orders[i]
		amount, _ := o.DocumentAmount.Float64()
		total = total.Add(o.DocumentAmount)

		var when any
		if !o.Date.IsZero() {
			when = o.Date
		}
		row := []any{
			o.Number,
			when,
			o.Customer.String(),
			o.OrderState.String(),
			loc.T("stage." + strings.ToLower(string(o.Stage()))),
			o.Employee.String(),
			o.Currency.String(),
			amount,
			o.Comment,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("export: row %d: %w", i+2, err)
		}
	}

	last := len(orders) + 1
	totalRow := last + 1
	labelCell, _ := excelize.CoordinatesToCellName(1, totalRow)
	if err := f.SetCellValue(sheet, labelCell, loc.T("export.total")); err != nil {
		return nil, err
	}
	totalCell, _ := excelize.CoordinatesToCellName(amountColumn, totalRow)
	grand, _ := total.Float64()
	if err := f.SetCellValue(sheet, totalCell, grand); err != nil {
		return nil, err
	}

	lastCol, _ := excelize.ColumnNumberToName(len(orderColumns))
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", bold); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, labelCell, totalCell, bold); err != nil {
		return nil, err
	}
	amountCol, _ := excelize.ColumnNumberToName(amountColumn)
	if err := f.SetCellStyle(sheet, amountCol+"2", fmt.Sprintf("%s%d", amountCol, totalRow), money); err != nil {
		return nil, err
	}
	if last >= 2 {
		if err := f.SetCellStyle(sheet, "B2", fmt.Sprintf("B%d", last), date); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
		return nil, err
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("export: write: %w", err)
	}
	return buf.Bytes(), nil
}

// OrdersFileName names an order export taken at the given timestamp label.
func OrdersFileName(stamp string) string {
	return "orders_" + stamp + ".xlsx"
}
