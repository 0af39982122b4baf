package finance

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/application/validation"
	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/identity"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/logger"
)

// documentDate resolves the document date. New documents default to now; a
// full replace must carry the date it is replacing.
func documentDate(id string, date *time.Time, now func() time.Time) (time.Time, error) {
	if date != nil {
		return *date, nil
	}
	if id != "" {
		return time.Time{}, shared.NewValidationError("date", "date: This field is required")
	}
	return now(), nil
}

var errAmountNotPositive = shared.NewValidationError("amount", "amount: Must be greater than 0")

func checkID(id string) error {
	if id == "" {
		return nil
	}
	return validation.ID("id", id)
}

// CashReceiptService handles cash receipt operations
type CashReceiptService struct {
	repo finance.CashReceiptRepository
	now  func() time.Time
}

// NewCashReceiptService creates a new CashReceiptService
func NewCashReceiptService(repo finance.CashReceiptRepository) *CashReceiptService {
	return &CashReceiptService{repo: repo, now: time.Now}
}

// List returns one page of cash receipts
func (s *CashReceiptService) List(ctx context.Context, q shared.ListQuery, f DocumentFilter) (shared.PageResult[CashReceiptResponse], error) {
	page, err := s.repo.List(ctx, f.apply(q))
	if err != nil {
		return shared.PageResult[CashReceiptResponse]{}, err
	}
	return shared.MapPage(page, ToCashReceiptResponse), nil
}

// GetByID returns a cash receipt
func (s *CashReceiptService) GetByID(ctx context.Context, id string) (*CashReceiptResponse, error) {
	if err := validation.ID("id", id); err != nil {
		return nil, err
	}
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCashReceiptResponse(*r)
	return &resp, nil
}

// Preview validates the form and returns the receipt that would be sent.
func (s *CashReceiptService) Preview(ctx context.Context, id string, in CashReceiptInput) (*CashReceiptResponse, error) {
	r, err := s.build(ctx, id, in)
	if err != nil {
		return nil, err
	}
	resp := ToCashReceiptResponse(*r)
	return &resp, nil
}

// Create validates the form and creates the receipt
func (s *CashReceiptService) Create(ctx context.Context, in CashReceiptInput) (*CashReceiptResponse, error) {
	r, err := s.build(ctx, "", in)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, r)
	if err != nil {
		return nil, err
	}
	logger.L(ctx).Info("cash receipt created",
		zap.String("receipt_id", created.ID),
		zap.String("amount", created.Amount.String()),
	)
	resp := ToCashReceiptResponse(*created)
	return &resp, nil
}

// Update replaces the whole receipt
func (s *CashReceiptService) Update(ctx context.Context, id string, in CashReceiptInput) (*CashReceiptResponse, error) {
	r, err := s.build(ctx, id, in)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, r)
	if err != nil {
		return nil, err
	}
	resp := ToCashReceiptResponse(*updated)
	return &resp, nil
}

func (s *CashReceiptService) build(ctx context.Context, id string, in CashReceiptInput) (*finance.CashReceipt, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	date, err := documentDate(id, in.Date, s.now)
	if err != nil {
		return nil, err
	}

	defaults := identity.DefaultsFromContext(ctx)
	r := &finance.CashReceipt{
		Ref:           shared.NewRef(shared.TypeCashReceipt, id),
		Number:        in.Number,
		Date:          date,
		Posted:        in.Posted,
		OperationKind: in.OperationKind,
		Company:       shared.NewRef(shared.TypeCompany, in.CompanyID).Or(defaults.Company),
		Counterparty:  shared.NewRef(shared.TypeCounterparty, in.CounterpartyID),
		Contract:      shared.NewRef(shared.TypeContract, in.ContractID),
		CashAccount:   shared.NewRef(shared.TypeCashAccount, in.CashAccountID).Or(defaults.CashAccount),
		Currency:      shared.NewRef(shared.TypeCurrency, in.CurrencyID).Or(defaults.Currency),
		Amount:        in.Amount.Round(2),
		DocumentBasis: shared.NewRef(shared.TypeOrder, in.DocumentBasisID),
		Employee:      shared.NewRef(shared.TypeEmployee, in.EmployeeID).Or(defaults.Employee),
		Comment:       in.Comment,
	}
	if r.OperationKind == "" {
		r.OperationKind = finance.OperationFromCustomer
	}
	if !r.Amount.IsPositive() {
		return nil, errAmountNotPositive
	}
	if r.CashAccount.IsZero() {
		return nil, shared.NewValidationError("cash_account_id", "cash_account_id: This field is required")
	}
	return r, nil
}

// TransferReceiptService handles bank transfer receipt operations
type TransferReceiptService struct {
	repo finance.TransferReceiptRepository
	now  func() time.Time
}

// NewTransferReceiptService creates a new TransferReceiptService
func NewTransferReceiptService(repo finance.TransferReceiptRepository) *TransferReceiptService {
	return &TransferReceiptService{repo: repo, now: time.Now}
}

// List returns one page of transfer receipts
func (s *TransferReceiptService) List(ctx context.Context, q shared.ListQuery, f DocumentFilter) (shared.PageResult[TransferReceiptResponse], error) {
	page, err := s.repo.List(ctx, f.apply(q))
	if err != nil {
		return shared.PageResult[TransferReceiptResponse]{}, err
	}
	return shared.MapPage(page, ToTransferReceiptResponse), nil
}

// GetByID returns a transfer receipt
func (s *TransferReceiptService) GetByID(ctx context.Context, id string) (*TransferReceiptResponse, error) {
	if err := validation.ID("id", id); err != nil {
		return nil, err
	}
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToTransferReceiptResponse(*r)
	return &resp, nil
}

// Preview validates the form and returns the receipt that would be sent.
func (s *TransferReceiptService) Preview(ctx context.Context, id string, in TransferReceiptInput) (*TransferReceiptResponse, error) {
	r, err := s.build(ctx, id, in)
	if err != nil {
		return nil, err
	}
	resp := ToTransferReceiptResponse(*r)
	return &resp, nil
}

// Create validates the form and creates the receipt
func (s *TransferReceiptService) Create(ctx context.Context, in TransferReceiptInput) (*TransferReceiptResponse, error) {
	r, err := s.build(ctx, "", in)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, r)
	if err != nil {
		return nil, err
	}
	logger.L(ctx).Info("transfer receipt created",
		zap.String("receipt_id", created.ID),
		zap.String("amount", created.Amount.String()),
	)
	resp := ToTransferReceiptResponse(*created)
	return &resp, nil
}

// Update replaces the whole receipt
func (s *TransferReceiptService) Update(ctx context.Context, id string, in TransferReceiptInput) (*TransferReceiptResponse, error) {
	r, err := s.build(ctx, id, in)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, r)
	if err != nil {
		return nil, err
	}
	resp := ToTransferReceiptResponse(*updated)
	return &resp, nil
}

func (s *TransferReceiptService) build(ctx context.Context, id string, in TransferReceiptInput) (*finance.TransferReceipt, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	date, err := documentDate(id, in.Date, s.now)
	if err != nil {
		return nil, err
	}

	defaults := identity.DefaultsFromContext(ctx)
	r := &finance.TransferReceipt{
		Ref:            shared.NewRef(shared.TypeTransferReceipt, id),
		Number:         in.Number,
		Date:           date,
		Posted:         in.Posted,
		OperationKind:  in.OperationKind,
		Company:        shared.NewRef(shared.TypeCompany, in.CompanyID).Or(defaults.Company),
		Counterparty:   shared.NewRef(shared.TypeCounterparty, in.CounterpartyID),
		Contract:       shared.NewRef(shared.TypeContract, in.ContractID),
		BankAccount:    shared.NewRef(shared.TypeBankAccount, in.BankAccountID).Or(defaults.BankAccount),
		Currency:       shared.NewRef(shared.TypeCurrency, in.CurrencyID).Or(defaults.Currency),
		Amount:         in.Amount.Round(2),
		DocumentBasis:  shared.NewRef(shared.TypeOrder, in.DocumentBasisID),
		PaymentPurpose: in.PaymentPurpose,
		Comment:        in.Comment,
	}
	if r.OperationKind == "" {
		r.OperationKind = finance.OperationFromCustomer
	}
	if !r.Amount.IsPositive() {
		return nil, errAmountNotPositive
	}
	if r.BankAccount.IsZero() {
		return nil, shared.NewValidationError("bank_account_id", "bank_account_id: This field is required")
	}
	return r, nil
}
