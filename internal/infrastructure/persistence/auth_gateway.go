package persistence

import (
	"context"
	"errors"

	"github.com/erp/backoffice/internal/domain/document"
	"github.com/erp/backoffice/internal/domain/identity"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/xts"
)

// ErrInvalidCredentials is returned when the accounting service rejects a sign-in.
var ErrInvalidCredentials = shared.NewDomainError(shared.CodeUnauthorized, "Invalid user name or password")

// XTSAuthenticator verifies credentials with a sign-in call.
type XTSAuthenticator struct {
	client xts.Caller
}

// NewXTSAuthenticator creates an authenticator.
func NewXTSAuthenticator(client xts.Caller) *XTSAuthenticator {
	return &XTSAuthenticator{client: client}
}

// SignIn checks creds and returns the user's identity and defaults.
func (a *XTSAuthenticator) SignIn(ctx context.Context, creds identity.Credentials) (*identity.SignInResult, error) {
	var resp xts.SignInResponse
	err := a.client.Call(ctx, &xts.SignInRequest{UserName: creds.UserName, Password: creds.Password}, &resp)
	if err != nil {
		if errors.Is(err, xts.ErrUnauthorized) {
			return nil, ErrInvalidCredentials.WithCause(err)
		}
		return nil, translateError(err)
	}

	dv := resp.DefaultValues
	company := fromObjectID(resp.Company)
	if company.IsZero() {
		company = fromObjectID(dv.Company)
	}
	employee := fromObjectID(resp.Employee)
	if employee.IsZero() {
		employee = fromObjectID(dv.Employee)
	}
	return &identity.SignInResult{
		User:     fromObjectID(resp.User),
		Employee: employee,
		Company:  company,
		Defaults: identity.Defaults{
			Company:     fromObjectID(dv.Company).Or(company),
			Currency:    fromObjectID(dv.Currency),
			Department:  fromObjectID(dv.Department),
			Warehouse:   fromObjectID(dv.Warehouse),
			CashAccount: fromObjectID(dv.CashAccount),
			BankAccount: fromObjectID(dv.BankAccount),
			PriceKind:   fromObjectID(dv.PriceKind),
			Employee:    fromObjectID(dv.Employee).Or(employee),
		},
	}, nil
}

// XTSFileSource fetches rendered print forms and attached files.
type XTSFileSource struct {
	client xts.Caller
}

// NewXTSFileSource creates a file source.
func NewXTSFileSource(client xts.Caller) *XTSFileSource {
	return &XTSFileSource{client: client}
}

// PrintForm renders form for object.
func (s *XTSFileSource) PrintForm(ctx context.Context, object shared.Ref, form string) (*document.File, error) {
	if object.IsZero() {
		return nil, shared.ErrNotFound
	}
	id := toObjectID(object)
	return s.fetch(ctx, &xts.GetFileRequest{PrintForm: form, Object: &id}, object.ID)
}

// File fetches the attached file fileID.
func (s *XTSFileSource) File(ctx context.Context, fileID string) (*document.File, error) {
	if fileID == "" {
		return nil, shared.ErrNotFound
	}
	return s.fetch(ctx, &xts.GetFileRequest{FileID: fileID}, fileID)
}

func (s *XTSFileSource) fetch(ctx context.Context, req *xts.GetFileRequest, fallbackName string) (*document.File, error) {
	var resp xts.GetFileResponse
	if err := s.client.Call(ctx, req, &resp); err != nil {
		return nil, translateError(err)
	}
	if len(resp.BinaryData) == 0 {
		return nil, shared.ErrNotFound
	}
	f := &document.File{FileName: resp.FileName, MimeType: resp.MimeType, Data: resp.BinaryData}
	if f.MimeType == "" {
		f.MimeType = "application/octet-stream"
	}
	if f.FileName == "" {
		f.FileName = fallbackName
	}
	return f, nil
}

var (
	_ identity.Authenticator = (*XTSAuthenticator)(nil)
	_ document.FileSource    = (*XTSFileSource)(nil)
)
