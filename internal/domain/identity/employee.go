package identity

import "github.com/erp/backoffice/internal/domain/shared"

// Employee is an entry of the employee catalog.
type Employee struct {
	shared.Ref
	Code        string
	Description string
	Position    string
	Department  shared.Ref
	Phone       string
	Email       string
	Invalid     bool
}

// EmployeeRepository reads and writes employees.
type EmployeeRepository interface {
	shared.Repository[Employee]
}
