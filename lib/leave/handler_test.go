package leavehandler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hrm-backend/models"
	employeeapimodels "hrm-backend/models/api/employee"
	leaveapimodels "hrm-backend/models/api/leave"
	dbmodels "hrm-backend/models/db"
)

type fakeLeaveStore struct {
	recs map[string]*dbmodels.LeaveRequest
	seq  int
}

func newFakeLeaveStore() *fakeLeaveStore {
	return &fakeLeaveStore{recs: map[string]*dbmodels.LeaveRequest{}}
}

func (f *fakeLeaveStore) Create(ctx context.Context, rec dbmodels.LeaveRequest) (string, error) {
	f.seq++
	rec.ID = fmt.Sprintf("leave-%d", f.seq)
	f.recs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeLeaveStore) GetByID(ctx context.Context, id string) (*dbmodels.LeaveRequest, error) {
	return f.recs[id], nil
}

func (f *fakeLeaveStore) Update(ctx context.Context, id string, updMap map[string]interface{}) error {
	rec, ok := f.recs[id]
	if !ok {
		return fmt.Errorf("запись не найдена")
	}
	if status, ok := updMap["status"]; ok {
		rec.Status = status.(models.LeaveStatus)
	}
	if comment, ok := updMap["manager_comment"]; ok {
		rec.ManagerComment = comment.(string)
	}
	if reviewedBy, ok := updMap["reviewed_by"]; ok {
		rec.ReviewedBy = reviewedBy.(string)
	}
	return nil
}

func (f *fakeLeaveStore) List(ctx context.Context, filter leaveapimodels.LeaveFilter) ([]dbmodels.LeaveRequest, error) {
	list := []dbmodels.LeaveRequest{}
	for _, rec := range f.recs {
		if filter.EmployeeID != "" && rec.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		list = append(list, *rec)
	}
	return list, nil
}

func (f *fakeLeaveStore) ListApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID string) ([]dbmodels.LeaveRequest, error) {
	list := []dbmodels.LeaveRequest{}
	for _, rec := range f.recs {
		if rec.EmployeeID != employeeID || rec.Status != models.LeaveStatusApproved {
			continue
		}
		if rec.ID == excludeID {
			continue
		}
		if !rec.StartDate.After(dbmodels.DateOf(end)) && !rec.EndDate.Before(dbmodels.DateOf(start)) {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (f *fakeLeaveStore) SumApprovedAnnualDays(ctx context.Context, employeeID string, year int) (int, error) {
	days := 0
	for _, rec := range f.recs {
		if rec.EmployeeID != employeeID ||
			rec.Status != models.LeaveStatusApproved ||
			rec.LeaveType != models.LeaveTypeAnnual ||
			rec.StartDate.Year() != year {
			continue
		}
		days += rec.DaysRequested
	}
	return days, nil
}

type fakeEmployeeStore struct {
	employees map[string]*dbmodels.Employee
}

func newFakeEmployeeStore(ids ...string) *fakeEmployeeStore {
	store := &fakeEmployeeStore{employees: map[string]*dbmodels.Employee{}}
	for _, id := range ids {
		employee := &dbmodels.Employee{
			FirstName: "Иван",
			LastName:  "Иванов",
			Email:     id + "@example.com",
			IsActive:  true,
		}
		employee.ID = id
		store.employees[id] = employee
	}
	return store
}

func (f *fakeEmployeeStore) Create(ctx context.Context, rec dbmodels.Employee) (string, error) {
	return "", nil
}

func (f *fakeEmployeeStore) GetByID(ctx context.Context, id string) (*dbmodels.Employee, error) {
	return f.employees[id], nil
}

func (f *fakeEmployeeStore) FindByEmail(ctx context.Context, email string) (*dbmodels.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeStore) Update(ctx context.Context, id string, updMap map[string]interface{}) error {
	return nil
}

func (f *fakeEmployeeStore) Exist(ctx context.Context, id string) (bool, error) {
	_, ok := f.employees[id]
	return ok, nil
}

func (f *fakeEmployeeStore) ListCount(ctx context.Context, filter employeeapimodels.EmployeeFilter) (int64, error) {
	return 0, nil
}

func (f *fakeEmployeeStore) List(ctx context.Context, filter employeeapimodels.EmployeeFilter, page, limit int) ([]dbmodels.Employee, error) {
	return nil, nil
}

type fakeNotify struct {
	decisions []models.LeaveStatus
}

func (f *fakeNotify) LeaveDecision(employee dbmodels.Employee, rec dbmodels.LeaveRequest) {
	f.decisions = append(f.decisions, rec.Status)
}

func newTestHandler(store *fakeLeaveStore, notify *fakeNotify, employeeIDs ...string) impl {
	return impl{
		store:         store,
		employeeStore: newFakeEmployeeStore(employeeIDs...),
		notify:        notify,
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestBusinessDays(t *testing.T) {
	t.Run(`полная рабочая неделя`, func(t *testing.T) {
		// 2024-01-01 понедельник
		require.Equal(t, 5, BusinessDays(date(2024, time.January, 1), date(2024, time.January, 5)))
	})

	t.Run(`только выходные`, func(t *testing.T) {
		require.Equal(t, 0, BusinessDays(date(2024, time.January, 6), date(2024, time.January, 7)))
	})

	t.Run(`две недели с выходными внутри`, func(t *testing.T) {
		require.Equal(t, 10, BusinessDays(date(2024, time.January, 1), date(2024, time.January, 14)))
	})

	t.Run(`один день`, func(t *testing.T) {
		require.Equal(t, 1, BusinessDays(date(2024, time.January, 3), date(2024, time.January, 3)))
	})
}

func TestLeaveCreate(t *testing.T) {
	ctx := context.Background()
	employeeID := "emp-1"
	nextMonday := dbmodels.DateOf(time.Now().AddDate(0, 1, 0))
	for nextMonday.Weekday() != time.Monday {
		nextMonday = nextMonday.AddDate(0, 0, 1)
	}

	t.Run(`неизвестный сотрудник`, func(t *testing.T) {
		handler := newTestHandler(newFakeLeaveStore(), &fakeNotify{})
		_, err := handler.Create(ctx, employeeID, leaveapimodels.LeaveRequestData{
			LeaveType: models.LeaveTypeAnnual,
			StartDate: nextMonday,
			EndDate:   nextMonday.AddDate(0, 0, 4),
		})
		require.ErrorIs(t, err, models.ErrEmployeeNotFound)
	})

	t.Run(`окончание раньше начала`, func(t *testing.T) {
		handler := newTestHandler(newFakeLeaveStore(), &fakeNotify{}, employeeID)
		_, err := handler.Create(ctx, employeeID, leaveapimodels.LeaveRequestData{
			LeaveType: models.LeaveTypeAnnual,
			StartDate: nextMonday,
			EndDate:   nextMonday.AddDate(0, 0, -1),
		})
		var vErr *models.ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, "end_date", vErr.Field)
	})

	t.Run(`начало в прошлом`, func(t *testing.T) {
		handler := newTestHandler(newFakeLeaveStore(), &fakeNotify{}, employeeID)
		_, err := handler.Create(ctx, employeeID, leaveapimodels.LeaveRequestData{
			LeaveType: models.LeaveTypeAnnual,
			StartDate: time.Now().AddDate(0, 0, -10),
			EndDate:   nextMonday,
		})
		var vErr *models.ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, "start_date", vErr.Field)
	})

	t.Run(`пересечение с согласованным отпуском`, func(t *testing.T) {
		store := newFakeLeaveStore()
		_, err := store.Create(ctx, dbmodels.LeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  models.LeaveTypeAnnual,
			StartDate:  nextMonday,
			EndDate:    nextMonday.AddDate(0, 0, 9),
			Status:     models.LeaveStatusApproved,
		})
		require.Nil(t, err)
		handler := newTestHandler(store, &fakeNotify{}, employeeID)
		_, err = handler.Create(ctx, employeeID, leaveapimodels.LeaveRequestData{
			LeaveType: models.LeaveTypeAnnual,
			StartDate: nextMonday.AddDate(0, 0, 4),
			EndDate:   nextMonday.AddDate(0, 0, 14),
		})
		require.ErrorIs(t, err, models.ErrConflictingLeave)
	})

	t.Run(`смежные непересекающиеся периоды`, func(t *testing.T) {
		store := newFakeLeaveStore()
		_, err := store.Create(ctx, dbmodels.LeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  models.LeaveTypeAnnual,
			StartDate:  nextMonday,
			EndDate:    nextMonday.AddDate(0, 0, 4),
			Status:     models.LeaveStatusApproved,
		})
		require.Nil(t, err)
		handler := newTestHandler(store, &fakeNotify{}, employeeID)
		view, err := handler.Create(ctx, employeeID, leaveapimodels.LeaveRequestData{
			LeaveType: models.LeaveTypeAnnual,
			StartDate: nextMonday.AddDate(0, 0, 7),
			EndDate:   nextMonday.AddDate(0, 0, 11),
		})
		require.Nil(t, err)
		require.Equal(t, 5, view.DaysRequested)
		require.Equal(t, models.LeaveStatusPending.ToHuman(), view.Status)
	})
}

func TestLeaveStatusFlow(t *testing.T) {
	ctx := context.Background()
	employeeID := "emp-1"
	reviewerID := "mgr-1"
	start := date(2025, time.June, 2)

	newPending := func(t *testing.T, store *fakeLeaveStore) string {
		id, err := store.Create(ctx, dbmodels.LeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  models.LeaveTypeAnnual,
			StartDate:  start,
			EndDate:    start.AddDate(0, 0, 4),
			Status:     models.LeaveStatusPending,
		})
		require.Nil(t, err)
		rec, _ := store.GetByID(ctx, id)
		employee := &dbmodels.Employee{Email: "emp@example.com"}
		employee.ID = employeeID
		rec.Employee = employee
		return id
	}

	t.Run(`заявка не найдена`, func(t *testing.T) {
		handler := newTestHandler(newFakeLeaveStore(), &fakeNotify{}, employeeID)
		err := handler.UpdateStatus(ctx, "missing", reviewerID, leaveapimodels.LeaveStatusUpdateData{
			Status: models.LeaveStatusApproved,
		})
		require.ErrorIs(t, err, models.ErrLeaveRequestNotFound)
	})

	t.Run(`согласование с уведомлением`, func(t *testing.T) {
		store := newFakeLeaveStore()
		notify := &fakeNotify{}
		id := newPending(t, store)
		handler := newTestHandler(store, notify, employeeID)
		err := handler.UpdateStatus(ctx, id, reviewerID, leaveapimodels.LeaveStatusUpdateData{
			Status:  models.LeaveStatusApproved,
			Comment: "хорошего отдыха",
		})
		require.Nil(t, err)
		rec, _ := store.GetByID(ctx, id)
		require.Equal(t, models.LeaveStatusApproved, rec.Status)
		require.Equal(t, "хорошего отдыха", rec.ManagerComment)
		require.Equal(t, reviewerID, rec.ReviewedBy)
		require.Equal(t, []models.LeaveStatus{models.LeaveStatusApproved}, notify.decisions)
	})

	t.Run(`согласование при пересечении`, func(t *testing.T) {
		store := newFakeLeaveStore()
		_, err := store.Create(ctx, dbmodels.LeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  models.LeaveTypeAnnual,
			StartDate:  start,
			EndDate:    start.AddDate(0, 0, 11),
			Status:     models.LeaveStatusApproved,
		})
		require.Nil(t, err)
		id := newPending(t, store)
		handler := newTestHandler(store, &fakeNotify{}, employeeID)
		err = handler.UpdateStatus(ctx, id, reviewerID, leaveapimodels.LeaveStatusUpdateData{
			Status: models.LeaveStatusApproved,
		})
		require.ErrorIs(t, err, models.ErrConflictingLeave)
	})

	t.Run(`отклонение с уведомлением`, func(t *testing.T) {
		store := newFakeLeaveStore()
		notify := &fakeNotify{}
		id := newPending(t, store)
		handler := newTestHandler(store, notify, employeeID)
		err := handler.UpdateStatus(ctx, id, reviewerID, leaveapimodels.LeaveStatusUpdateData{
			Status: models.LeaveStatusRejected,
		})
		require.Nil(t, err)
		require.Equal(t, []models.LeaveStatus{models.LeaveStatusRejected}, notify.decisions)
	})

	t.Run(`повторное решение по отклоненной заявке`, func(t *testing.T) {
		store := newFakeLeaveStore()
		notify := &fakeNotify{}
		id := newPending(t, store)
		rec, _ := store.GetByID(ctx, id)
		rec.Status = models.LeaveStatusRejected
		handler := newTestHandler(store, notify, employeeID)
		err := handler.UpdateStatus(ctx, id, reviewerID, leaveapimodels.LeaveStatusUpdateData{
			Status:  models.LeaveStatusApproved,
			Comment: "пересмотрено",
		})
		require.Nil(t, err)
		rec, _ = store.GetByID(ctx, id)
		require.Equal(t, models.LeaveStatusApproved, rec.Status)
		require.Equal(t, []models.LeaveStatus{models.LeaveStatusApproved}, notify.decisions)
	})

	t.Run(`повторное согласование при пересечении`, func(t *testing.T) {
		store := newFakeLeaveStore()
		_, err := store.Create(ctx, dbmodels.LeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  models.LeaveTypeAnnual,
			StartDate:  start,
			EndDate:    start.AddDate(0, 0, 11),
			Status:     models.LeaveStatusApproved,
		})
		require.Nil(t, err)
		id := newPending(t, store)
		rec, _ := store.GetByID(ctx, id)
		rec.Status = models.LeaveStatusRejected
		handler := newTestHandler(store, &fakeNotify{}, employeeID)
		err = handler.UpdateStatus(ctx, id, reviewerID, leaveapimodels.LeaveStatusUpdateData{
			Status: models.LeaveStatusApproved,
		})
		require.ErrorIs(t, err, models.ErrConflictingLeave)
	})

	t.Run(`отмена чужой заявки`, func(t *testing.T) {
		store := newFakeLeaveStore()
		id := newPending(t, store)
		handler := newTestHandler(store, &fakeNotify{}, employeeID)
		err := handler.Cancel(ctx, id, "emp-2")
		require.ErrorIs(t, err, models.ErrLeaveRequestNotFound)
	})

	t.Run(`отмена собственной заявки`, func(t *testing.T) {
		store := newFakeLeaveStore()
		id := newPending(t, store)
		handler := newTestHandler(store, &fakeNotify{}, employeeID)
		err := handler.Cancel(ctx, id, employeeID)
		require.Nil(t, err)
		rec, _ := store.GetByID(ctx, id)
		require.Equal(t, models.LeaveStatusCancelled, rec.Status)
	})

	t.Run(`отмена согласованной заявки`, func(t *testing.T) {
		store := newFakeLeaveStore()
		id := newPending(t, store)
		rec, _ := store.GetByID(ctx, id)
		rec.Status = models.LeaveStatusApproved
		handler := newTestHandler(store, &fakeNotify{}, employeeID)
		err := handler.Cancel(ctx, id, employeeID)
		require.NotNil(t, err)
	})
}

func TestRemainingLeaveDays(t *testing.T) {
	ctx := context.Background()
	employeeID := "emp-1"

	t.Run(`неизвестный сотрудник`, func(t *testing.T) {
		handler := newTestHandler(newFakeLeaveStore(), &fakeNotify{})
		_, err := handler.RemainingLeaveDays(ctx, employeeID, 2025)
		require.ErrorIs(t, err, models.ErrEmployeeNotFound)
	})

	t.Run(`без использованных дней`, func(t *testing.T) {
		handler := newTestHandler(newFakeLeaveStore(), &fakeNotify{}, employeeID)
		view, err := handler.RemainingLeaveDays(ctx, employeeID, 2025)
		require.Nil(t, err)
		require.Equal(t, annualLeaveDays, view.RemainingDays)
	})

	t.Run(`часть лимита использована`, func(t *testing.T) {
		store := newFakeLeaveStore()
		_, err := store.Create(ctx, dbmodels.LeaveRequest{
			EmployeeID:    employeeID,
			LeaveType:     models.LeaveTypeAnnual,
			StartDate:     date(2025, time.June, 2),
			EndDate:       date(2025, time.June, 27),
			DaysRequested: 20,
			Status:        models.LeaveStatusApproved,
		})
		require.Nil(t, err)
		handler := newTestHandler(store, &fakeNotify{}, employeeID)
		view, err := handler.RemainingLeaveDays(ctx, employeeID, 2025)
		require.Nil(t, err)
		require.Equal(t, 5, view.RemainingDays)
	})

	t.Run(`больничные лимит не уменьшают`, func(t *testing.T) {
		store := newFakeLeaveStore()
		_, err := store.Create(ctx, dbmodels.LeaveRequest{
			EmployeeID:    employeeID,
			LeaveType:     models.LeaveTypeSick,
			StartDate:     date(2025, time.June, 2),
			EndDate:       date(2025, time.June, 6),
			DaysRequested: 5,
			Status:        models.LeaveStatusApproved,
		})
		require.Nil(t, err)
		handler := newTestHandler(store, &fakeNotify{}, employeeID)
		view, err := handler.RemainingLeaveDays(ctx, employeeID, 2025)
		require.Nil(t, err)
		require.Equal(t, annualLeaveDays, view.RemainingDays)
	})

	t.Run(`остаток не уходит в минус`, func(t *testing.T) {
		store := newFakeLeaveStore()
		_, err := store.Create(ctx, dbmodels.LeaveRequest{
			EmployeeID:    employeeID,
			LeaveType:     models.LeaveTypeAnnual,
			StartDate:     date(2025, time.March, 3),
			EndDate:       date(2025, time.April, 11),
			DaysRequested: 30,
			Status:        models.LeaveStatusApproved,
		})
		require.Nil(t, err)
		handler := newTestHandler(store, &fakeNotify{}, employeeID)
		view, err := handler.RemainingLeaveDays(ctx, employeeID, 2025)
		require.Nil(t, err)
		require.Equal(t, 0, view.RemainingDays)
	})
}
