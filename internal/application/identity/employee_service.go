package identity

import (
	"context"
	"strings"

	"github.com/erp/backoffice/internal/application/validation"
	"github.com/erp/backoffice/internal/domain/identity"
	"github.com/erp/backoffice/internal/domain/shared"
)

// EmployeeService handles employee catalog operations
type EmployeeService struct {
	repo identity.EmployeeRepository
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(repo identity.EmployeeRepository) *EmployeeService {
	return &EmployeeService{repo: repo}
}

// List returns one page of employees
func (s *EmployeeService) List(ctx context.Context, q shared.ListQuery) (shared.PageResult[EmployeeResponse], error) {
	if q.SortBy != "description" && q.SortBy != "code" {
		q.SortBy = ""
	}
	page, err := s.repo.List(ctx, q)
	if err != nil {
		return shared.PageResult[EmployeeResponse]{}, err
	}
	return shared.MapPage(page, ToEmployeeResponse), nil
}

// GetByID returns an employee
func (s *EmployeeService) GetByID(ctx context.Context, id string) (*EmployeeResponse, error) {
	if err := validation.ID("id", id); err != nil {
		return nil, err
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(*e)
	return &resp, nil
}

// Preview validates the form and returns the employee that would be sent.
func (s *EmployeeService) Preview(_ context.Context, id string, in EmployeeInput) (*EmployeeResponse, error) {
	if err := validation.OptionalID("id", id); err != nil {
		return nil, err
	}
	e, err := buildEmployee(id, in)
	if err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(*e)
	return &resp, nil
}

// Create creates an employee
func (s *EmployeeService) Create(ctx context.Context, in EmployeeInput) (*EmployeeResponse, error) {
	e, err := buildEmployee("", in)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(*created)
	return &resp, nil
}

// Update replaces the whole employee
func (s *EmployeeService) Update(ctx context.Context, id string, in EmployeeInput) (*EmployeeResponse, error) {
	if err := validation.ID("id", id); err != nil {
		return nil, err
	}
	e, err := buildEmployee(id, in)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, e)
	if err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(*updated)
	return &resp, nil
}

func buildEmployee(id string, in EmployeeInput) (*identity.Employee, error) {
	in.Description = strings.TrimSpace(in.Description)
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return &identity.Employee{
		Ref:         shared.NewRef(shared.TypeEmployee, id),
		Code:        strings.TrimSpace(in.Code),
		Description: in.Description,
		Position:    in.Position,
		Department:  shared.NewRef(shared.TypeDepartment, in.DepartmentID),
		Phone:       in.Phone,
		Email:       strings.ToLower(in.Email),
		Invalid:     in.Invalid,
	}, nil
}
