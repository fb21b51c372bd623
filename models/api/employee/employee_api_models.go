package employeeapimodels

import (
	"time"

	"github.com/pkg/errors"

	"hrm-backend/models"
	dbmodels "hrm-backend/models/db"
)

type EmployeeData struct {
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Email        string          `json:"email"`
	Password     string          `json:"password"`
	PhoneNumber  string          `json:"phone_number"`
	DepartmentID string          `json:"department_id"`
	JobTitle     string          `json:"job_title"`
	Role         models.UserRole `json:"role"`
	HireDate     time.Time       `json:"hire_date"`
}

func (r EmployeeData) Validate(isCreate bool) error {
	if r.FirstName == "" {
		return errors.New("не указано имя сотрудника")
	}
	if r.LastName == "" {
		return errors.New("не указана фамилия сотрудника")
	}
	if r.Email == "" {
		return errors.New("не указана почта")
	}
	if isCreate && r.Password == "" {
		return errors.New("не указан пароль")
	}
	if r.Role != "" && r.Role != models.UserRoleAdmin && r.Role != models.UserRoleManager && r.Role != models.UserRoleEmployee {
		return errors.New("не поддерживаемая роль")
	}
	return nil
}

type EmployeeFilter struct {
	DepartmentID string `json:"department_id"`
	OnlyActive   bool   `json:"only_active"`
	Search       string `json:"search"` // поиск по имени/фамилии/почте
}

type EmployeeView struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phone_number,omitempty"`
	DepartmentID   string    `json:"department_id,omitempty"`
	DepartmentName string    `json:"department_name,omitempty"`
	JobTitle       string    `json:"job_title,omitempty"`
	Role           string    `json:"role"`
	HireDate       time.Time `json:"hire_date"`
	IsActive       bool      `json:"is_active"`
}

func EmployeeConvert(rec dbmodels.Employee) EmployeeView {
	view := EmployeeView{
		ID:           rec.ID,
		FirstName:    rec.FirstName,
		LastName:     rec.LastName,
		Email:        rec.Email,
		PhoneNumber:  rec.PhoneNumber,
		DepartmentID: rec.DepartmentID,
		JobTitle:     rec.JobTitle,
		Role:         rec.Role.ToHuman(),
		HireDate:     rec.HireDate,
		IsActive:     rec.IsActive,
	}
	if rec.Department != nil {
		view.DepartmentName = rec.Department.Name
	}
	return view
}
