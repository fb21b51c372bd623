package attendancehandler

import (
	"bytes"
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"hrm-backend/db"
	attendancestore "hrm-backend/lib/attendance/store"
	employeestore "hrm-backend/lib/employee/store"
	xlsexport "hrm-backend/lib/export/xls"
	initchecker "hrm-backend/lib/utils/init-checker"
	"hrm-backend/models"
	attendanceapimodels "hrm-backend/models/api/attendance"
	dbmodels "hrm-backend/models/db"
)

// дневная норма, сверх нее часы считаются сверхурочными
const workDayHours = 8.0

type Provider interface {
	ClockIn(ctx context.Context, employeeID string, data attendanceapimodels.ClockRequest) (view attendanceapimodels.AttendanceView, err error)
	ClockOut(ctx context.Context, employeeID string, data attendanceapimodels.ClockRequest) (view attendanceapimodels.AttendanceView, err error)
	Create(ctx context.Context, data attendanceapimodels.AttendanceData) (id string, err error)
	Update(ctx context.Context, id string, data attendanceapimodels.AttendanceUpdateData) error
	List(ctx context.Context, filter attendanceapimodels.AttendanceFilter) (list []attendanceapimodels.AttendanceView, err error)
	MonthlyTotal(ctx context.Context, employeeID string, year int, month time.Month) (view attendanceapimodels.MonthlyTotalView, err error)
	ExportMonth(ctx context.Context, employeeID string, year int, month time.Month) (file *bytes.Buffer, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:         attendancestore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		export:        xlsexport.Instance,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"employeeStore", instance.employeeStore,
		"export", instance.export,
	)
	Instance = instance
}

type impl struct {
	store         attendancestore.Provider
	employeeStore employeestore.Provider
	export        xlsexport.Provider
}

func (i impl) getLogger(employeeID string) *log.Entry {
	return log.WithField("employee_id", employeeID)
}

func (i impl) checkEmployee(ctx context.Context, employeeID string) error {
	exist, err := i.employeeStore.Exist(ctx, employeeID)
	if err != nil {
		return errors.Wrap(err, "ошибка проверки сотрудника")
	}
	if !exist {
		return models.ErrEmployeeNotFound
	}
	return nil
}

func (i impl) ClockIn(ctx context.Context, employeeID string, data attendanceapimodels.ClockRequest) (attendanceapimodels.AttendanceView, error) {
	logger := i.getLogger(employeeID)
	if err := i.checkEmployee(ctx, employeeID); err != nil {
		return attendanceapimodels.AttendanceView{}, err
	}
	date := dbmodels.DateOf(data.Timestamp)
	rec, err := i.store.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendanceapimodels.AttendanceView{}, errors.Wrap(err, "ошибка поиска записи учета времени")
	}
	if rec != nil {
		if rec.ClockIn != nil {
			return attendanceapimodels.AttendanceView{}, models.ErrAlreadyClockedIn
		}
		clockIn := data.Timestamp
		rec.ClockIn = &clockIn
		rec.AppendNote(data.Notes)
		recalcHours(rec)
		if err = i.store.Save(ctx, rec); err != nil {
			return attendanceapimodels.AttendanceView{}, errors.Wrap(err, "ошибка сохранения записи учета времени")
		}
		logger.WithField("rec_id", rec.ID).Info("отмечен приход")
		return attendanceapimodels.AttendanceConvert(*rec), nil
	}
	clockIn := data.Timestamp
	newRec := dbmodels.AttendanceRecord{
		EmployeeID: employeeID,
		Date:       date,
		ClockIn:    &clockIn,
		Notes:      data.Notes,
	}
	id, err := i.store.Create(ctx, newRec)
	if err != nil {
		return attendanceapimodels.AttendanceView{}, errors.Wrap(err, "ошибка создания записи учета времени")
	}
	newRec.ID = id
	logger.WithField("rec_id", id).Info("отмечен приход")
	return attendanceapimodels.AttendanceConvert(newRec), nil
}

func (i impl) ClockOut(ctx context.Context, employeeID string, data attendanceapimodels.ClockRequest) (attendanceapimodels.AttendanceView, error) {
	logger := i.getLogger(employeeID)
	if err := i.checkEmployee(ctx, employeeID); err != nil {
		return attendanceapimodels.AttendanceView{}, err
	}
	date := dbmodels.DateOf(data.Timestamp)
	rec, err := i.store.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendanceapimodels.AttendanceView{}, errors.Wrap(err, "ошибка поиска записи учета времени")
	}
	if rec == nil {
		return attendanceapimodels.AttendanceView{}, models.ErrNoAttendanceToday
	}
	if rec.ClockIn == nil {
		return attendanceapimodels.AttendanceView{}, models.ErrNotClockedIn
	}
	if rec.ClockOut != nil {
		return attendanceapimodels.AttendanceView{}, models.ErrAlreadyClockedOut
	}
	clockOut := data.Timestamp
	rec.ClockOut = &clockOut
	rec.AppendNote(data.Notes)
	recalcHours(rec)
	if err = i.store.Save(ctx, rec); err != nil {
		return attendanceapimodels.AttendanceView{}, errors.Wrap(err, "ошибка сохранения записи учета времени")
	}
	logger.
		WithField("rec_id", rec.ID).
		WithField("worked_hours", rec.WorkedHours).
		Info("отмечен уход")
	return attendanceapimodels.AttendanceConvert(*rec), nil
}

func (i impl) Create(ctx context.Context, data attendanceapimodels.AttendanceData) (id string, err error) {
	logger := i.getLogger(data.EmployeeID)
	if err = i.checkEmployee(ctx, data.EmployeeID); err != nil {
		return "", err
	}
	date := dbmodels.DateOf(data.Date)
	existing, err := i.store.GetByEmployeeAndDate(ctx, data.EmployeeID, date)
	if err != nil {
		return "", errors.Wrap(err, "ошибка поиска записи учета времени")
	}
	if existing != nil {
		return "", models.ErrAttendanceExists
	}
	rec := dbmodels.AttendanceRecord{
		EmployeeID:   data.EmployeeID,
		Date:         date,
		ClockIn:      data.ClockIn,
		ClockOut:     data.ClockOut,
		BreakMinutes: data.BreakMinutes,
		Notes:        data.Notes,
	}
	recalcHours(&rec)
	id, err = i.store.Create(ctx, rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания записи учета времени")
	}
	logger.WithField("rec_id", id).Info("создана запись учета времени")
	return id, nil
}

func (i impl) Update(ctx context.Context, id string, data attendanceapimodels.AttendanceUpdateData) error {
	rec, err := i.store.GetByID(ctx, id)
	if err != nil {
		return errors.Wrap(err, "ошибка поиска записи учета времени")
	}
	if rec == nil {
		return models.ErrNoAttendanceToday
	}
	if data.ClockIn != nil {
		rec.ClockIn = data.ClockIn
	}
	if data.ClockOut != nil {
		rec.ClockOut = data.ClockOut
	}
	if data.BreakMinutes != nil {
		rec.BreakMinutes = *data.BreakMinutes
	}
	if data.Notes != nil {
		rec.Notes = *data.Notes
	}
	recalcHours(rec)
	if err = i.store.Save(ctx, rec); err != nil {
		return errors.Wrap(err, "ошибка сохранения записи учета времени")
	}
	i.getLogger(rec.EmployeeID).WithField("rec_id", id).Info("обновлена запись учета времени")
	return nil
}

func (i impl) List(ctx context.Context, filter attendanceapimodels.AttendanceFilter) (list []attendanceapimodels.AttendanceView, err error) {
	if err = i.checkEmployee(ctx, filter.EmployeeID); err != nil {
		return nil, err
	}
	recList, err := i.store.ListByPeriod(ctx, filter.EmployeeID, filter.DateFrom, filter.DateTo)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения записей учета времени")
	}
	list = make([]attendanceapimodels.AttendanceView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, attendanceapimodels.AttendanceConvert(rec))
	}
	return list, nil
}

// MonthlyTotal суммирует отработанные часы за календарный месяц,
// сверхурочные в сумму не входят
func (i impl) MonthlyTotal(ctx context.Context, employeeID string, year int, month time.Month) (attendanceapimodels.MonthlyTotalView, error) {
	if err := i.checkEmployee(ctx, employeeID); err != nil {
		return attendanceapimodels.MonthlyTotalView{}, err
	}
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	total, err := i.store.SumWorkedHours(ctx, employeeID, monthStart, monthEnd)
	if err != nil {
		return attendanceapimodels.MonthlyTotalView{}, errors.Wrap(err, "ошибка расчета отработанных часов за месяц")
	}
	return attendanceapimodels.MonthlyTotalView{
		EmployeeID:  employeeID,
		Year:        year,
		Month:       int(month),
		WorkedHours: total,
	}, nil
}

// ExportMonth выгружает записи учета времени за месяц в xlsx
func (i impl) ExportMonth(ctx context.Context, employeeID string, year int, month time.Month) (*bytes.Buffer, error) {
	if err := i.checkEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	recList, err := i.store.ListByPeriod(ctx, employeeID, monthStart, monthEnd)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения записей учета времени")
	}
	file, err := i.export.ExportAttendanceList(recList)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка выгрузки записей учета времени в xlsx")
	}
	i.getLogger(employeeID).
		WithField("year", year).
		WithField("month", int(month)).
		Info("выгружен отчет учета времени")
	return file, nil
}

// recalcHours пересчитывает отработанные и сверхурочные часы.
// Без обеих отметок расчет не выполняется.
func recalcHours(rec *dbmodels.AttendanceRecord) {
	if rec.ClockIn == nil || rec.ClockOut == nil {
		return
	}
	raw := rec.ClockOut.Sub(*rec.ClockIn)
	if rec.BreakMinutes > 0 {
		raw -= time.Duration(rec.BreakMinutes) * time.Minute
	}
	hours := raw.Hours()
	if hours <= workDayHours {
		if hours < 0 {
			hours = 0
		}
		rec.WorkedHours = hours
		rec.OvertimeHours = 0
		return
	}
	rec.WorkedHours = workDayHours
	rec.OvertimeHours = hours - workDayHours
}
