package trade

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/erp/backoffice/internal/domain/shared"
)

func TestStageFromLabel(t *testing.T) {
	tests := []struct {
		label string
		want  OrderStage
	}{
		{"", StageEditing},
		{"Đang soạn thảo", StageEditing},
		{"Mới", StageEditing},
		{"Editing", StageEditing},
		{"Đang chuẩn bị", StagePreparing},
		{"  CHUẨN   BỊ hàng ", StagePreparing},
		{"In progress", StagePreparing},
		{"Đã giao", StageDelivered},
		{"da giao hang", StageDelivered},
		{"Hoàn thành", StageDelivered},
		{"Delivered", StageDelivered},
		{"Chưa giao", StageEditing},
		{"something else", StageEditing},
		{"Undelivered", StageEditing},
		{"Not delivered", StageEditing},
		{"Incomplete", StageEditing},
		{"Chưa hoàn thành", StageEditing},
		{"Không hoàn thành", StageEditing},
		{"Ready for delivery", StagePreparing},
		{"Đang giao hàng", StagePreparing},
		{"Chờ giao hàng", StagePreparing},
		{"Renewed", StageEditing},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, StageFromLabel(tt.label))
		})
	}
}

func TestParseStageLabel(t *testing.T) {
	st, ok := ParseStageLabel("Hoàn thành")
	assert.True(t, ok)
	assert.Equal(t, StageDelivered, st)

	for _, label := range []string{"", "Chưa hoàn thành", "Undelivered", "something else"} {
		_, ok := ParseStageLabel(label)
		assert.False(t, ok, label)
	}
	assert.False(t, StageDelivered.MatchesLabel("Chưa hoàn thành"))
	assert.False(t, StageEditing.MatchesLabel("something else"))
}

func TestOrderStage_IsCanonicalLabel(t *testing.T) {
	assert.True(t, StageDelivered.IsCanonicalLabel("đã  GIAO"))
	assert.True(t, StagePreparing.IsCanonicalLabel("Preparing"))
	assert.False(t, StageDelivered.IsCanonicalLabel("Hoàn thành"))
	assert.False(t, StageEditing.IsCanonicalLabel("Đã giao"))
}

func TestOrderStage_Next(t *testing.T) {
	next, ok := StageEditing.Next()
	assert.True(t, ok)
	assert.Equal(t, StagePreparing, next)

	next, ok = StagePreparing.Next()
	assert.True(t, ok)
	assert.Equal(t, StageDelivered, next)

	_, ok = StageDelivered.Next()
	assert.False(t, ok)
	assert.True(t, StageDelivered.IsTerminal())
	assert.False(t, StageEditing.IsTerminal())

	assert.Equal(t, 0, StageEditing.Index())
	assert.Equal(t, 2, StageDelivered.Index())
	assert.Equal(t, -1, OrderStage("X").Index())
}

func TestFoldLabel(t *testing.T) {
	assert.Equal(t, "da giao", FoldLabel("Đã  Giao"))
	assert.Equal(t, "dang chuan bi", FoldLabel("đang chuẩn bị"))
}

func TestOrder_Recalculate(t *testing.T) {
	o := &Order{
		OrderState: shared.Ref{Presentation: "Đang chuẩn bị"},
		Lines: []OrderLine{
			{Quantity: decimal.NewFromInt(3), Price: decimal.RequireFromString("12.50")},
			{Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(100), DiscountRate: decimal.NewFromInt(10)},
		},
	}
	o.Recalculate()

	assert.True(t, decimal.RequireFromString("37.5").Equal(o.Lines[0].Amount))
	assert.True(t, decimal.NewFromInt(180).Equal(o.Lines[1].Amount))
	assert.True(t, decimal.RequireFromString("217.5").Equal(o.DocumentAmount))
	assert.Equal(t, StagePreparing, o.Stage())
}
