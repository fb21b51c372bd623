package dbmodels

import (
	"time"

	"hrm-backend/models"
)

type LeaveRequest struct {
	BaseModel
	EmployeeID     string           `gorm:"type:varchar(36);index:idx_leave_employee_dates"`
	LeaveType      models.LeaveType `gorm:"type:varchar(30)"`
	StartDate      time.Time        `gorm:"type:date;index:idx_leave_employee_dates"`
	EndDate        time.Time        `gorm:"type:date;index:idx_leave_employee_dates"`
	DaysRequested  int
	Status         models.LeaveStatus `gorm:"type:varchar(20);default:'PENDING';index:idx_leave_status"`
	Reason         string             `gorm:"type:text"`
	ManagerComment string             `gorm:"type:text"`
	ReviewedAt     *time.Time
	ReviewedBy     string `gorm:"type:varchar(36)"`

	Employee *Employee `gorm:"foreignKey:EmployeeID"`
}
