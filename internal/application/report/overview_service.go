package report

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/report"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/domain/trade"
	"github.com/erp/backoffice/internal/infrastructure/i18n"
	"github.com/erp/backoffice/internal/infrastructure/logger"
	"github.com/erp/backoffice/internal/infrastructure/telemetry"
)

// OverviewConfig bounds the dashboard aggregation.
type OverviewConfig struct {
	// MaxRecords caps how many documents of each kind are read.
	MaxRecords   int
	TopCustomers int
	PageSize     int
}

// OverviewService builds the dashboard summary
type OverviewService struct {
	orders    trade.OrderRepository
	cash      finance.CashReceiptRepository
	transfers finance.TransferReceiptRepository
	invoices  finance.SupplierInvoiceRepository
	config    OverviewConfig
	now       func() time.Time
}

// NewOverviewService creates a new OverviewService
func NewOverviewService(
	orders trade.OrderRepository,
	cash finance.CashReceiptRepository,
	transfers finance.TransferReceiptRepository,
	invoices finance.SupplierInvoiceRepository,
	config OverviewConfig,
) *OverviewService {
	if config.MaxRecords <= 0 {
		config.MaxRecords = 1000
	}
	if config.TopCustomers <= 0 {
		config.TopCustomers = 5
	}
	if config.PageSize <= 0 {
		config.PageSize = shared.MaxPageSize
	}
	return &OverviewService{
		orders:    orders,
		cash:      cash,
		transfers: transfers,
		invoices:  invoices,
		config:    config,
		now:       time.Now,
	}
}

// Dashboard aggregates the documents dated within [from, to]. Zero bounds
// default to the current month.
func (s *OverviewService) Dashboard(ctx context.Context, from, to time.Time) (_ *OverviewResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "overview", "dashboard")
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	from, to, err = s.period(from, to)
	if err != nil {
		return nil, err
	}

	q := shared.ListQuery{
		Page:       1,
		PageSize:   s.config.PageSize,
		Conditions: shared.PeriodConditions("date", from, to),
	}

	var (
		orders    []trade.Order
		cash      []finance.CashReceipt
		transfers []finance.TransferReceipt
		invoices  []finance.SupplierInvoice
		truncated [4]bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		orders, truncated[0], err = shared.Collect[trade.Order](gctx, s.orders, q, s.config.MaxRecords)
		return err
	})
	g.Go(func() (err error) {
		cash, truncated[1], err = shared.Collect[finance.CashReceipt](gctx, s.cash, q, s.config.MaxRecords)
		return err
	})
	g.Go(func() (err error) {
		transfers, truncated[2], err = shared.Collect[finance.TransferReceipt](gctx, s.transfers, q, s.config.MaxRecords)
		return err
	})
	g.Go(func() (err error) {
		invoices, truncated[3], err = shared.Collect[finance.SupplierInvoice](gctx, s.invoices, q, s.config.MaxRecords)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ov := Aggregate(orders, cash, transfers, invoices, s.config.TopCustomers)
	ov.From, ov.To = from, to
	ov.GeneratedAt = s.now()
	ov.Truncated = truncated[0] || truncated[1] || truncated[2] || truncated[3]

	telemetry.SetAttributes(span, "overview.orders", len(orders), "overview.truncated", ov.Truncated)
	logger.L(ctx).Debug("overview computed",
		zap.Int("orders", len(orders)),
		zap.Int("cash_receipts", len(cash)),
		zap.Int("transfer_receipts", len(transfers)),
		zap.Int("supplier_invoices", len(invoices)),
		zap.Bool("truncated", ov.Truncated),
	)
	return ToOverviewResponse(ov, i18n.FromContext(ctx), s.config.MaxRecords), nil
}

func (s *OverviewService) period(from, to time.Time) (time.Time, time.Time, error) {
	if from.IsZero() && to.IsZero() {
		now := s.now()
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		to = now
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return from, to, shared.NewValidationError("from", "from: Must not be after to")
	}
	return from, to, nil
}

// Aggregate computes the dashboard figures from already fetched documents.
func Aggregate(
	orders []trade.Order,
	cash []finance.CashReceipt,
	transfers []finance.TransferReceipt,
	invoices []finance.SupplierInvoice,
	top int,
) *report.Overview {
	ov := &report.Overview{
		OrderCount:     len(orders),
		OrderTotal:     decimal.Zero,
		OrdersByStage:  make(map[string]int, len(trade.Stages)),
		CashReceipts:   decimal.Zero,
		TransferIncome: decimal.Zero,
		Purchases:      decimal.Zero,
	}
	for _, st := range trade.Stages {
		ov.OrdersByStage[string(st)] = 0
	}

	customers := make(map[string]*report.CustomerTotal)
	for _, o := range orders {
		ov.OrderTotal = ov.OrderTotal.Add(o.DocumentAmount)
		ov.OrdersByStage[string(o.Stage())]++

		key := o.Customer.ID
		ct, ok := customers[key]
		if !ok {
			ct = &report.CustomerTotal{Customer: o.Customer, Amount: decimal.Zero}
			customers[key] = ct
		}
		ct.OrderCount++
		ct.Amount = ct.Amount.Add(o.DocumentAmount)
	}
	for _, r := range cash {
		ov.CashReceipts = ov.CashReceipts.Add(r.Amount)
	}
	for _, r := range transfers {
		ov.TransferIncome = ov.TransferIncome.Add(r.Amount)
	}
	for _, inv := range invoices {
		ov.Purchases = ov.Purchases.Add(inv.DocumentAmount)
	}
	ov.CashIn = ov.CashReceipts.Add(ov.TransferIncome)
	ov.NetCashFlow = ov.CashIn.Sub(ov.Purchases)

	ranked := make([]report.CustomerTotal, 0, len(customers))
	for _, ct := range customers {
		ranked = append(ranked, *ct)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if c := ranked[i].Amount.Cmp(ranked[j].Amount); c != 0 {
			return c > 0
		}
		return strings.Compare(ranked[i].Customer.String(), ranked[j].Customer.String()) < 0
	})
	if len(ranked) > top {
		ranked = ranked[:top]
	}
	ov.TopCustomers = ranked
	return ov
}
