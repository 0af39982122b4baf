package identity

import (
	"time"

	"github.com/erp/backoffice/internal/domain/identity"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/auth"
)

// SignInInput represents sign-in credentials
type SignInInput struct {
	UserName string `json:"user_name" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=200"`
	// Language is the preferred UI language, taken from Accept-Language.
	Language string `json:"-"`
}

// SignInResult is returned after a successful sign-in
type SignInResult struct {
	Token auth.AccessToken `json:"token"`
	User  UserInfo         `json:"user"`
}

// UserInfo describes the signed-in user without the credentials.
type UserInfo struct {
	User      shared.Ref        `json:"user"`
	Employee  shared.Ref        `json:"employee,omitzero"`
	Company   shared.Ref        `json:"company,omitzero"`
	Defaults  identity.Defaults `json:"defaults"`
	Language  string            `json:"language,omitempty"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// ToUserInfo converts a session to user info
func ToUserInfo(s *identity.Session) UserInfo {
	return UserInfo{
		User:      s.User,
		Employee:  s.Employee,
		Company:   s.Company,
		Defaults:  s.Defaults,
		Language:  s.Language,
		ExpiresAt: s.ExpiresAt,
	}
}

// EmployeeInput is the full employee form
type EmployeeInput struct {
	Code         string `json:"code" binding:"max=20"`
	Description  string `json:"description" binding:"required,min=1,max=200"`
	Position     string `json:"position" binding:"max=100"`
	DepartmentID string `json:"department_id" binding:"omitempty,uuid"`
	Phone        string `json:"phone" binding:"max=50"`
	Email        string `json:"email" binding:"omitempty,email,max=200"`
	Invalid      bool   `json:"invalid"`
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID          string     `json:"id"`
	Code        string     `json:"code"`
	Description string     `json:"description"`
	Position    string     `json:"position,omitempty"`
	Department  shared.Ref `json:"department,omitzero"`
	Phone       string     `json:"phone,omitempty"`
	Email       string     `json:"email,omitempty"`
	Invalid     bool       `json:"invalid"`
}

// ToEmployeeResponse converts an employee to its response
func ToEmployeeResponse(e identity.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		Code:        e.Code,
		Description: e.Description,
		Position:    e.Position,
		Department:  e.Department,
		Phone:       e.Phone,
		Email:       e.Email,
		Invalid:     e.Invalid,
	}
}
