package attendancehandler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hrm-backend/models"
	attendanceapimodels "hrm-backend/models/api/attendance"
	employeeapimodels "hrm-backend/models/api/employee"
	dbmodels "hrm-backend/models/db"
)

type fakeAttendanceStore struct {
	recs map[string]*dbmodels.AttendanceRecord
	seq  int
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{recs: map[string]*dbmodels.AttendanceRecord{}}
}

func (f *fakeAttendanceStore) key(employeeID string, date time.Time) string {
	return employeeID + "/" + dbmodels.DateOf(date).Format("2006-01-02")
}

func (f *fakeAttendanceStore) Create(ctx context.Context, rec dbmodels.AttendanceRecord) (string, error) {
	f.seq++
	rec.ID = fmt.Sprintf("rec-%d", f.seq)
	f.recs[f.key(rec.EmployeeID, rec.Date)] = &rec
	return rec.ID, nil
}

func (f *fakeAttendanceStore) Save(ctx context.Context, rec *dbmodels.AttendanceRecord) error {
	f.recs[f.key(rec.EmployeeID, rec.Date)] = rec
	return nil
}

func (f *fakeAttendanceStore) GetByID(ctx context.Context, id string) (*dbmodels.AttendanceRecord, error) {
	for _, rec := range f.recs {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceStore) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*dbmodels.AttendanceRecord, error) {
	return f.recs[f.key(employeeID, date)], nil
}

func (f *fakeAttendanceStore) ListByPeriod(ctx context.Context, employeeID string, dateFrom, dateTo time.Time) ([]dbmodels.AttendanceRecord, error) {
	list := []dbmodels.AttendanceRecord{}
	for _, rec := range f.recs {
		if rec.EmployeeID == employeeID {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (f *fakeAttendanceStore) SumWorkedHours(ctx context.Context, employeeID string, dateFrom, dateTo time.Time) (float64, error) {
	total := 0.0
	for _, rec := range f.recs {
		if rec.EmployeeID != employeeID {
			continue
		}
		date := dbmodels.DateOf(rec.Date)
		if date.Before(dbmodels.DateOf(dateFrom)) || date.After(dbmodels.DateOf(dateTo)) {
			continue
		}
		total += rec.WorkedHours
	}
	return total, nil
}

type fakeEmployeeExist struct {
	existing map[string]bool
}

func (f fakeEmployeeExist) Exist(ctx context.Context, id string) (bool, error) {
	return f.existing[id], nil
}

func newTestHandler(store *fakeAttendanceStore, existing ...string) impl {
	existMap := map[string]bool{}
	for _, id := range existing {
		existMap[id] = true
	}
	return impl{
		store:         store,
		employeeStore: employeeExistStub{fakeEmployeeExist{existing: existMap}},
	}
}

// employeeExistStub дополняет fakeEmployeeExist до employeestore.Provider
type employeeExistStub struct {
	fakeEmployeeExist
}

func (employeeExistStub) Create(ctx context.Context, rec dbmodels.Employee) (string, error) {
	return "", nil
}
func (employeeExistStub) GetByID(ctx context.Context, id string) (*dbmodels.Employee, error) {
	return nil, nil
}
func (employeeExistStub) FindByEmail(ctx context.Context, email string) (*dbmodels.Employee, error) {
	return nil, nil
}
func (employeeExistStub) Update(ctx context.Context, id string, updMap map[string]interface{}) error {
	return nil
}
func (employeeExistStub) ListCount(ctx context.Context, filter employeeapimodels.EmployeeFilter) (int64, error) {
	return 0, nil
}
func (employeeExistStub) List(ctx context.Context, filter employeeapimodels.EmployeeFilter, page, limit int) ([]dbmodels.Employee, error) {
	return nil, nil
}

func TestRecalcHours(t *testing.T) {
	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	at := func(hour, min int) *time.Time {
		ts := day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
		return &ts
	}

	t.Run(`без отметки ухода расчет не выполняется`, func(t *testing.T) {
		rec := dbmodels.AttendanceRecord{ClockIn: at(9, 0)}
		recalcHours(&rec)
		require.Equal(t, 0.0, rec.WorkedHours)
		require.Equal(t, 0.0, rec.OvertimeHours)
	})

	t.Run(`ровно дневная норма`, func(t *testing.T) {
		rec := dbmodels.AttendanceRecord{ClockIn: at(9, 0), ClockOut: at(17, 0)}
		recalcHours(&rec)
		require.Equal(t, 8.0, rec.WorkedHours)
		require.Equal(t, 0.0, rec.OvertimeHours)
	})

	t.Run(`сверхурочные сверх нормы`, func(t *testing.T) {
		rec := dbmodels.AttendanceRecord{ClockIn: at(9, 0), ClockOut: at(17, 30)}
		recalcHours(&rec)
		require.Equal(t, 8.0, rec.WorkedHours)
		require.InDelta(t, 0.5, rec.OvertimeHours, 0.0001)
	})

	t.Run(`перерыв вычитается из отработанного`, func(t *testing.T) {
		rec := dbmodels.AttendanceRecord{ClockIn: at(9, 0), ClockOut: at(17, 0), BreakMinutes: 60}
		recalcHours(&rec)
		require.Equal(t, 7.0, rec.WorkedHours)
		require.Equal(t, 0.0, rec.OvertimeHours)
	})

	t.Run(`перерыв длиннее смены дает ноль`, func(t *testing.T) {
		rec := dbmodels.AttendanceRecord{ClockIn: at(9, 0), ClockOut: at(9, 30), BreakMinutes: 120}
		recalcHours(&rec)
		require.Equal(t, 0.0, rec.WorkedHours)
		require.Equal(t, 0.0, rec.OvertimeHours)
	})

	t.Run(`сумма часов равна смене за вычетом перерыва`, func(t *testing.T) {
		rec := dbmodels.AttendanceRecord{ClockIn: at(8, 0), ClockOut: at(19, 15), BreakMinutes: 45}
		recalcHours(&rec)
		require.InDelta(t, 10.5, rec.WorkedHours+rec.OvertimeHours, 0.0001)
		require.Equal(t, 8.0, rec.WorkedHours)
	})
}

func TestClockInOut(t *testing.T) {
	ctx := context.Background()
	employeeID := "emp-1"
	morning := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2025, time.March, 3, 18, 0, 0, 0, time.UTC)

	t.Run(`приход неизвестного сотрудника`, func(t *testing.T) {
		handler := newTestHandler(newFakeAttendanceStore())
		_, err := handler.ClockIn(ctx, employeeID, attendanceapimodels.ClockRequest{Timestamp: morning})
		require.ErrorIs(t, err, models.ErrEmployeeNotFound)
	})

	t.Run(`повторный приход в тот же день`, func(t *testing.T) {
		handler := newTestHandler(newFakeAttendanceStore(), employeeID)
		_, err := handler.ClockIn(ctx, employeeID, attendanceapimodels.ClockRequest{Timestamp: morning})
		require.Nil(t, err)
		_, err = handler.ClockIn(ctx, employeeID, attendanceapimodels.ClockRequest{Timestamp: morning.Add(time.Hour)})
		require.ErrorIs(t, err, models.ErrAlreadyClockedIn)
	})

	t.Run(`уход без записи за день`, func(t *testing.T) {
		handler := newTestHandler(newFakeAttendanceStore(), employeeID)
		_, err := handler.ClockOut(ctx, employeeID, attendanceapimodels.ClockRequest{Timestamp: evening})
		require.ErrorIs(t, err, models.ErrNoAttendanceToday)
	})

	t.Run(`уход без отметки прихода`, func(t *testing.T) {
		store := newFakeAttendanceStore()
		_, err := store.Create(ctx, dbmodels.AttendanceRecord{
			EmployeeID: employeeID,
			Date:       dbmodels.DateOf(morning),
		})
		require.Nil(t, err)
		handler := newTestHandler(store, employeeID)
		_, err = handler.ClockOut(ctx, employeeID, attendanceapimodels.ClockRequest{Timestamp: evening})
		require.ErrorIs(t, err, models.ErrNotClockedIn)
	})

	t.Run(`полный день прихода и ухода`, func(t *testing.T) {
		handler := newTestHandler(newFakeAttendanceStore(), employeeID)
		_, err := handler.ClockIn(ctx, employeeID, attendanceapimodels.ClockRequest{Timestamp: morning, Notes: "начало"})
		require.Nil(t, err)
		view, err := handler.ClockOut(ctx, employeeID, attendanceapimodels.ClockRequest{Timestamp: evening, Notes: "конец"})
		require.Nil(t, err)
		require.Equal(t, 8.0, view.WorkedHours)
		require.InDelta(t, 1.0, view.OvertimeHours, 0.0001)
		require.Equal(t, "начало; конец", view.Notes)
	})

	t.Run(`повторный уход`, func(t *testing.T) {
		handler := newTestHandler(newFakeAttendanceStore(), employeeID)
		_, err := handler.ClockIn(ctx, employeeID, attendanceapimodels.ClockRequest{Timestamp: morning})
		require.Nil(t, err)
		_, err = handler.ClockOut(ctx, employeeID, attendanceapimodels.ClockRequest{Timestamp: evening})
		require.Nil(t, err)
		_, err = handler.ClockOut(ctx, employeeID, attendanceapimodels.ClockRequest{Timestamp: evening.Add(time.Hour)})
		require.ErrorIs(t, err, models.ErrAlreadyClockedOut)
	})

	t.Run(`повторное ручное создание записи за день`, func(t *testing.T) {
		handler := newTestHandler(newFakeAttendanceStore(), employeeID)
		data := attendanceapimodels.AttendanceData{
			EmployeeID: employeeID,
			Date:       morning,
			ClockIn:    &morning,
			ClockOut:   &evening,
		}
		_, err := handler.Create(ctx, data)
		require.Nil(t, err)
		_, err = handler.Create(ctx, data)
		require.ErrorIs(t, err, models.ErrAttendanceExists)
	})
}
