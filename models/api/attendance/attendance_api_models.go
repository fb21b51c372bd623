package attendanceapimodels

import (
	"time"

	"github.com/pkg/errors"

	dbmodels "hrm-backend/models/db"
)

type ClockRequest struct {
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes"`
}

func (r ClockRequest) Validate() error {
	if r.Timestamp.IsZero() {
		return errors.New("не указана отметка времени")
	}
	return nil
}

type AttendanceData struct {
	EmployeeID   string     `json:"employee_id"`
	Date         time.Time  `json:"date"`
	ClockIn      *time.Time `json:"clock_in"`
	ClockOut     *time.Time `json:"clock_out"`
	BreakMinutes int        `json:"break_minutes"`
	Notes        string     `json:"notes"`
}

func (r AttendanceData) Validate() error {
	if r.EmployeeID == "" {
		return errors.New("не указан сотрудник")
	}
	if r.Date.IsZero() {
		return errors.New("не указана дата")
	}
	if r.BreakMinutes < 0 {
		return errors.New("длительность перерыва не может быть отрицательной")
	}
	if r.ClockIn != nil && r.ClockOut != nil && r.ClockOut.Before(*r.ClockIn) {
		return errors.New("время ухода раньше времени прихода")
	}
	return nil
}

type AttendanceUpdateData struct {
	ClockIn      *time.Time `json:"clock_in"`
	ClockOut     *time.Time `json:"clock_out"`
	BreakMinutes *int       `json:"break_minutes"`
	Notes        *string    `json:"notes"`
}

type AttendanceFilter struct {
	EmployeeID string    `json:"employee_id"`
	DateFrom   time.Time `json:"date_from"`
	DateTo     time.Time `json:"date_to"`
}

type AttendanceView struct {
	ID            string     `json:"id"`
	EmployeeID    string     `json:"employee_id"`
	EmployeeName  string     `json:"employee_name,omitempty"`
	Date          time.Time  `json:"date"`
	ClockIn       *time.Time `json:"clock_in,omitempty"`
	ClockOut      *time.Time `json:"clock_out,omitempty"`
	BreakMinutes  int        `json:"break_minutes,omitempty"`
	WorkedHours   float64    `json:"worked_hours"`
	OvertimeHours float64    `json:"overtime_hours"`
	Notes         string     `json:"notes,omitempty"`
}

type MonthlyTotalView struct {
	EmployeeID  string  `json:"employee_id"`
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	WorkedHours float64 `json:"worked_hours"`
}

func AttendanceConvert(rec dbmodels.AttendanceRecord) AttendanceView {
	view := AttendanceView{
		ID:            rec.ID,
		EmployeeID:    rec.EmployeeID,
		Date:          rec.Date,
		ClockIn:       rec.ClockIn,
		ClockOut:      rec.ClockOut,
		BreakMinutes:  rec.BreakMinutes,
		WorkedHours:   rec.WorkedHours,
		OvertimeHours: rec.OvertimeHours,
		Notes:         rec.Notes,
	}
	if rec.Employee != nil {
		view.EmployeeName = rec.Employee.GetFullName()
	}
	return view
}
