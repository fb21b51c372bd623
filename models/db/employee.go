package dbmodels

import (
	"fmt"
	"time"

	"hrm-backend/models"
)

type Employee struct {
	BaseModel
	Password     string `gorm:"type:varchar(128)"`
	FirstName    string `gorm:"type:varchar(150)"`
	LastName     string `gorm:"type:varchar(150)"`
	Email        string `gorm:"type:varchar(255);uniqueIndex:idx_employee_email"`
	PhoneNumber  string `gorm:"type:varchar(15)"`
	DepartmentID string `gorm:"type:varchar(36);index:idx_employee_department"`
	JobTitle     string `gorm:"type:varchar(255)"`
	Role         models.UserRole `gorm:"type:varchar(50)"`
	HireDate     time.Time
	IsActive     bool
	LastLogin    time.Time

	Department *Department `gorm:"foreignKey:DepartmentID"`
}

func (r Employee) GetFullName() string {
	return fmt.Sprintf("%s %s", r.FirstName, r.LastName)
}
