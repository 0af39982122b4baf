package report

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/backoffice/internal/domain/report"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/domain/trade"
	"github.com/erp/backoffice/internal/infrastructure/i18n"
)

// StageCount is the number of orders in one stage.
type StageCount struct {
	Stage string `json:"stage"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CustomerTotalResponse is one row of the top customers table.
type CustomerTotalResponse struct {
	Customer   shared.Ref      `json:"customer"`
	OrderCount int             `json:"order_count"`
	Amount     decimal.Decimal `json:"amount"`
	Display    string          `json:"display"`
}

// OverviewDisplay holds the totals rendered for the request language.
type OverviewDisplay struct {
	Summary     string `json:"summary"`
	OrderTotal  string `json:"order_total"`
	CashIn      string `json:"cash_in"`
	Purchases   string `json:"purchases"`
	NetCashFlow string `json:"net_cash_flow"`
	Notice      string `json:"notice,omitempty"`
}

// OverviewResponse is the dashboard payload
type OverviewResponse struct {
	From           time.Time               `json:"from"`
	To             time.Time               `json:"to"`
	OrderCount     int                     `json:"order_count"`
	OrderTotal     decimal.Decimal         `json:"order_total"`
	OrdersByStage  []StageCount            `json:"orders_by_stage"`
	CashReceipts   decimal.Decimal         `json:"cash_receipts"`
	TransferIncome decimal.Decimal         `json:"transfer_income"`
	CashIn         decimal.Decimal         `json:"cash_in"`
	Purchases      decimal.Decimal         `json:"purchases"`
	NetCashFlow    decimal.Decimal         `json:"net_cash_flow"`
	TopCustomers   []CustomerTotalResponse `json:"top_customers"`
	Truncated      bool                    `json:"truncated"`
	GeneratedAt    time.Time               `json:"generated_at"`
	Display        OverviewDisplay         `json:"display"`
}

// ToOverviewResponse converts the overview, rendering display strings with loc.
func ToOverviewResponse(ov *report.Overview, loc *i18n.Localizer, maxRecords int) *OverviewResponse {
	resp := &OverviewResponse{
		From:           ov.From,
		To:             ov.To,
		OrderCount:     ov.OrderCount,
		OrderTotal:     ov.OrderTotal,
		OrdersByStage:  make([]StageCount, 0, len(trade.Stages)),
		CashReceipts:   ov.CashReceipts,
		TransferIncome: ov.TransferIncome,
		CashIn:         ov.CashIn,
		Purchases:      ov.Purchases,
		NetCashFlow:    ov.NetCashFlow,
		TopCustomers:   make([]CustomerTotalResponse, 0, len(ov.TopCustomers)),
		Truncated:      ov.Truncated,
		GeneratedAt:    ov.GeneratedAt,
	}
	for _, st := range trade.Stages {
		resp.OrdersByStage = append(resp.OrdersByStage, StageCount{
			Stage: string(st),
			Label: loc.T("stage." + strings.ToLower(string(st))),
			Count: ov.OrdersByStage[string(st)],
		})
	}
	for _, ct := range ov.TopCustomers {
		resp.TopCustomers = append(resp.TopCustomers, CustomerTotalResponse{
			Customer:   ct.Customer,
			OrderCount: ct.OrderCount,
			Amount:     ct.Amount,
			Display:    loc.Amount(ct.Amount),
		})
	}

	resp.Display = OverviewDisplay{
		Summary:     loc.T("overview.summary", loc.Count(ov.OrderCount), loc.Amount(ov.OrderTotal)),
		OrderTotal:  loc.Amount(ov.OrderTotal),
		CashIn:      loc.T("overview.cash_in", loc.Amount(ov.CashIn)),
		Purchases:   loc.T("overview.purchases", loc.Amount(ov.Purchases)),
		NetCashFlow: loc.T("overview.net", loc.Amount(ov.NetCashFlow)),
	}
	if ov.Truncated {
		resp.Display.Notice = loc.T("overview.truncated", loc.Count(maxRecords))
	}
	return resp
}
