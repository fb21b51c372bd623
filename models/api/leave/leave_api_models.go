package leaveapimodels

import (
	"time"

	"github.com/pkg/errors"

	"hrm-backend/models"
	dbmodels "hrm-backend/models/db"
)

type LeaveRequestData struct {
	LeaveType models.LeaveType `json:"leave_type"`
	StartDate time.Time        `json:"start_date"`
	EndDate   time.Time        `json:"end_date"`
	Reason    string           `json:"reason"`
}

func (r LeaveRequestData) Validate() error {
	if !r.LeaveType.IsValid() {
		return errors.New("не поддерживаемый тип отпуска")
	}
	if r.StartDate.IsZero() {
		return errors.New("не указана дата начала")
	}
	if r.EndDate.IsZero() {
		return errors.New("не указана дата окончания")
	}
	return nil
}

type LeaveStatusUpdateData struct {
	Status  models.LeaveStatus `json:"status"`
	Comment string             `json:"comment"`
}

func (r LeaveStatusUpdateData) Validate() error {
	if !r.Status.IsValid() {
		return errors.New("не поддерживаемый статус заявки")
	}
	if r.Status == models.LeaveStatusPending {
		return errors.New("заявку нельзя вернуть на рассмотрение")
	}
	return nil
}

type LeaveFilter struct {
	EmployeeID string             `json:"employee_id"`
	Status     models.LeaveStatus `json:"status"`
	Year       int                `json:"year"`
}

type LeaveRequestView struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employee_id"`
	EmployeeName   string     `json:"employee_name,omitempty"`
	LeaveType      string     `json:"leave_type"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        time.Time  `json:"end_date"`
	DaysRequested  int        `json:"days_requested"`
	Status         string     `json:"status"`
	Reason         string     `json:"reason,omitempty"`
	ManagerComment string     `json:"manager_comment,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type RemainingDaysView struct {
	EmployeeID    string `json:"employee_id"`
	Year          int    `json:"year"`
	RemainingDays int    `json:"remaining_days"`
}

func LeaveRequestConvert(rec dbmodels.LeaveRequest) LeaveRequestView {
	view := LeaveRequestView{
		ID:             rec.ID,
		EmployeeID:     rec.EmployeeID,
		LeaveType:      rec.LeaveType.ToHuman(),
		StartDate:      rec.StartDate,
		EndDate:        rec.EndDate,
		DaysRequested:  rec.DaysRequested,
		Status:         rec.Status.ToHuman(),
		Reason:         rec.Reason,
		ManagerComment: rec.ManagerComment,
		ReviewedAt:     rec.ReviewedAt,
		CreatedAt:      rec.CreatedAt,
	}
	if rec.Employee != nil {
		view.EmployeeName = rec.Employee.GetFullName()
	}
	return view
}

type AttachmentView struct {
	ID          string `json:"id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	FileSize    int64  `json:"file_size"`
}

func AttachmentConvert(rec dbmodels.Attachment) AttachmentView {
	return AttachmentView{
		ID:          rec.ID,
		FileName:    rec.FileName,
		ContentType: rec.ContentType,
		FileSize:    rec.FileSize,
	}
}
