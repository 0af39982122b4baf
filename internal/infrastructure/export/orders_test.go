package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/domain/trade"
	"github.com/erp/backoffice/internal/infrastructure/i18n"
)

func TestOrdersWorkbook(t *testing.T) {
	orders := []trade.Order{
		{
			Number:         "SO-1",
			Date:           time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
			Customer:       shared.Ref{ID: "c1", Presentation: "ACME"},
			OrderState:     shared.Ref{ID: "s1", Presentation: "Đã giao"},
			DocumentAmount: decimal.RequireFromString("100.50"),
		},
		{
			Number:         "SO-2",
			Customer:       shared.Ref{ID: "c2", Presentation: "Globex"},
			DocumentAmount: decimal.RequireFromString("20"),
		},
	}

	data, err := OrdersWorkbook(orders, i18n.New(language.English))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "Orders", f.GetSheetName(0))
	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "Number", rows[0][0])
	assert.Equal(t, "Amount", rows[0][7])
	assert.Equal(t, "SO-1", rows[1][0])
	assert.Equal(t, "ACME", rows[1][2])
	assert.Equal(t, "Delivered", rows[1][4])
	assert.Equal(t, "Editing", rows[2][4], "orders without a status are still being edited")
	assert.Equal(t, "Total", rows[3][0])

	raw, err := f.GetCellValue("Orders", "H4", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "120.5", raw)
}

func TestOrdersWorkbookLocalized(t *testing.T) {
	data, err := OrdersWorkbook(nil, i18n.New(language.Vietnamese))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Đơn hàng")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Số", rows[0][0])
	assert.Equal(t, "Tổng cộng", rows[1][0])
}
