package dbmodels

import (
	"time"
)

type AttendanceRecord struct {
	BaseModel
	EmployeeID   string    `gorm:"type:varchar(36);uniqueIndex:idx_attendance_employee_date"`
	Date         time.Time `gorm:"type:date;uniqueIndex:idx_attendance_employee_date"`
	ClockIn      *time.Time
	ClockOut     *time.Time
	BreakMinutes int
	// расчетные поля, заполняются только пересчетом
	WorkedHours   float64
	OvertimeHours float64
	Notes         string `gorm:"type:text"`

	Employee *Employee `gorm:"foreignKey:EmployeeID"`
}

// AppendNote дописывает заметку к уже существующим через разделитель
func (r *AttendanceRecord) AppendNote(note string) {
	if note == "" {
		return
	}
	if r.Notes == "" {
		r.Notes = note
		return
	}
	r.Notes = r.Notes + "; " + note
}
