package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/backoffice/internal/domain/shared"
)

// Overview is the dashboard summary for a period.
type Overview struct {
	From           time.Time
	To             time.Time
	OrderCount     int
	OrderTotal     decimal.Decimal
	OrdersByStage  map[string]int
	CashIn         decimal.Decimal
	CashReceipts   decimal.Decimal
	TransferIncome decimal.Decimal
	Purchases      decimal.Decimal
	NetCashFlow    decimal.Decimal
	TopCustomers   []CustomerTotal
	Truncated      bool
	GeneratedAt    time.Time
}

// CustomerTotal is one row of the top customers table.
type CustomerTotal struct {
	Customer   shared.Ref
	OrderCount int
	Amount     decimal.Decimal
}
