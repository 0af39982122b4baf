package persistence

import (
	"github.com/erp/backoffice/internal/domain/identity"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/xts"
)

type employeeRecord struct {
	Type        string       `json:"_type"`
	ObjectID    xts.ObjectID `json:"objectId"`
	Code        string       `json:"code"`
	Description string       `json:"description"`
	Position    string       `json:"position"`
	Department  xts.ObjectID `json:"department"`
	Phone       string       `json:"phone"`
	Email       string       `json:"email"`
	Invalid     bool         `json:"invalid"`
}

func employeeFromRecord(r employeeRecord) identity.Employee {
	return identity.Employee{
		Ref:         fromObjectID(r.ObjectID),
		Code:        r.Code,
		Description: r.Description,
		Position:    r.Position,
		Department:  fromObjectID(r.Department),
		Phone:       r.Phone,
		Email:       r.Email,
		Invalid:     r.Invalid,
	}
}

func employeeToRecord(e *identity.Employee) employeeRecord {
	return employeeRecord{
		Type:        "XTSEmployee",
		ObjectID:    selfID(e.Ref, shared.TypeEmployee),
		Code:        e.Code,
		Description: e.Description,
		Position:    e.Position,
		Department:  toObjectID(e.Department),
		Phone:       e.Phone,
		Email:       e.Email,
		Invalid:     e.Invalid,
	}
}

// XTSEmployeeRepository implements identity.EmployeeRepository.
type XTSEmployeeRepository struct {
	xtsRepository[identity.Employee, employeeRecord]
}

// NewXTSEmployeeRepository creates an employee repository.
func NewXTSEmployeeRepository(client xts.Caller) *XTSEmployeeRepository {
	return &XTSEmployeeRepository{xtsRepository[identity.Employee, employeeRecord]{
		client:   client,
		spec:     listSpec{dataType: shared.TypeEmployee, searchField: "description", defaultSort: "description"},
		toDomain: employeeFromRecord,
		toWire:   employeeToRecord,
	}}
}

var _ identity.EmployeeRepository = (*XTSEmployeeRepository)(nil)
