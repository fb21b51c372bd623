package leavehandler

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"hrm-backend/db"
	employeestore "hrm-backend/lib/employee/store"
	leavestore "hrm-backend/lib/leave/store"
	notifyhandler "hrm-backend/lib/notify"
	initchecker "hrm-backend/lib/utils/init-checker"
	"hrm-backend/models"
	leaveapimodels "hrm-backend/models/api/leave"
	dbmodels "hrm-backend/models/db"
)

// годовой лимит ежегодного отпуска в рабочих днях
const annualLeaveDays = 25

type Provider interface {
	Create(ctx context.Context, employeeID string, data leaveapimodels.LeaveRequestData) (view leaveapimodels.LeaveRequestView, err error)
	GetByID(ctx context.Context, id string) (view leaveapimodels.LeaveRequestView, err error)
	List(ctx context.Context, filter leaveapimodels.LeaveFilter) (list []leaveapimodels.LeaveRequestView, err error)
	UpdateStatus(ctx context.Context, id, reviewerID string, data leaveapimodels.LeaveStatusUpdateData) error
	Cancel(ctx context.Context, id, employeeID string) error
	HasConflictingLeave(ctx context.Context, employeeID string, start, end time.Time, excludeRequestID string) (bool, error)
	RemainingLeaveDays(ctx context.Context, employeeID string, year int) (view leaveapimodels.RemainingDaysView, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:         leavestore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		notify:        notifyhandler.Instance,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"employeeStore", instance.employeeStore,
		"notify", instance.notify,
	)
	Instance = instance
}

type impl struct {
	store         leavestore.Provider
	employeeStore employeestore.Provider
	notify        notifyhandler.Provider
}

func (i impl) getLogger(employeeID, recID string) *log.Entry {
	logger := log.WithField("employee_id", employeeID)
	if recID != "" {
		logger = logger.WithField("rec_id", recID)
	}
	return logger
}

func (i impl) Create(ctx context.Context, employeeID string, data leaveapimodels.LeaveRequestData) (leaveapimodels.LeaveRequestView, error) {
	logger := i.getLogger(employeeID, "")
	employee, err := i.employeeStore.GetByID(ctx, employeeID)
	if err != nil {
		return leaveapimodels.LeaveRequestView{}, errors.Wrap(err, "ошибка поиска сотрудника")
	}
	if employee == nil {
		return leaveapimodels.LeaveRequestView{}, models.ErrEmployeeNotFound
	}
	start := dbmodels.DateOf(data.StartDate)
	end := dbmodels.DateOf(data.EndDate)
	if end.Before(start) {
		return leaveapimodels.LeaveRequestView{}, models.NewValidationError("end_date", "дата окончания раньше даты начала")
	}
	if start.Before(dbmodels.DateOf(time.Now())) {
		return leaveapimodels.LeaveRequestView{}, models.NewValidationError("start_date", "дата начала уже прошла")
	}
	conflict, err := i.HasConflictingLeave(ctx, employeeID, start, end, "")
	if err != nil {
		return leaveapimodels.LeaveRequestView{}, err
	}
	if conflict {
		return leaveapimodels.LeaveRequestView{}, models.ErrConflictingLeave
	}
	rec := dbmodels.LeaveRequest{
		EmployeeID:    employeeID,
		LeaveType:     data.LeaveType,
		StartDate:     start,
		EndDate:       end,
		DaysRequested: BusinessDays(start, end),
		Status:        models.LeaveStatusPending,
		Reason:        data.Reason,
	}
	id, err := i.store.Create(ctx, rec)
	if err != nil {
		return leaveapimodels.LeaveRequestView{}, errors.Wrap(err, "ошибка создания заявки на отпуск")
	}
	rec.ID = id
	rec.Employee = employee
	logger.
		WithField("rec_id", id).
		WithField("days_requested", rec.DaysRequested).
		Info("создана заявка на отпуск")
	return leaveapimodels.LeaveRequestConvert(rec), nil
}

func (i impl) GetByID(ctx context.Context, id string) (leaveapimodels.LeaveRequestView, error) {
	rec, err := i.store.GetByID(ctx, id)
	if err != nil {
		return leaveapimodels.LeaveRequestView{}, errors.Wrap(err, "ошибка поиска заявки на отпуск")
	}
	if rec == nil {
		return leaveapimodels.LeaveRequestView{}, models.ErrLeaveRequestNotFound
	}
	return leaveapimodels.LeaveRequestConvert(*rec), nil
}

func (i impl) List(ctx context.Context, filter leaveapimodels.LeaveFilter) (list []leaveapimodels.LeaveRequestView, err error) {
	recList, err := i.store.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения заявок на отпуск")
	}
	list = make([]leaveapimodels.LeaveRequestView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, leaveapimodels.LeaveRequestConvert(rec))
	}
	return list, nil
}

// UpdateStatus перезаписывает статус без проверки текущего,
// но перевод в "Согласована" повторно проверяет пересечения
func (i impl) UpdateStatus(ctx context.Context, id, reviewerID string, data leaveapimodels.LeaveStatusUpdateData) error {
	rec, err := i.store.GetByID(ctx, id)
	if err != nil {
		return errors.Wrap(err, "ошибка поиска заявки на отпуск")
	}
	if rec == nil {
		return models.ErrLeaveRequestNotFound
	}
	logger := i.getLogger(rec.EmployeeID, id)
	if data.Status == models.LeaveStatusApproved {
		conflict, err := i.HasConflictingLeave(ctx, rec.EmployeeID, rec.StartDate, rec.EndDate, rec.ID)
		if err != nil {
			return err
		}
		if conflict {
			return models.ErrConflictingLeave
		}
	}
	now := time.Now()
	updMap := map[string]interface{}{
		"status":          data.Status,
		"manager_comment": data.Comment,
		"reviewed_at":     now,
		"reviewed_by":     reviewerID,
	}
	if err = i.store.Update(ctx, id, updMap); err != nil {
		return errors.Wrap(err, "ошибка обновления заявки на отпуск")
	}
	logger.WithField("status", data.Status).Info("изменен статус заявки на отпуск")
	if rec.Employee != nil &&
		(data.Status == models.LeaveStatusApproved || data.Status == models.LeaveStatusRejected) {
		rec.Status = data.Status
		rec.ManagerComment = data.Comment
		// уведомление не влияет на результат операции
		i.notify.LeaveDecision(*rec.Employee, *rec)
	}
	return nil
}

// Cancel позволяет сотруднику отменить собственную заявку на рассмотрении
func (i impl) Cancel(ctx context.Context, id, employeeID string) error {
	rec, err := i.store.GetByID(ctx, id)
	if err != nil {
		return errors.Wrap(err, "ошибка поиска заявки на отпуск")
	}
	if rec == nil || rec.EmployeeID != employeeID {
		return models.ErrLeaveRequestNotFound
	}
	if rec.Status != models.LeaveStatusPending {
		return errors.New("отменить можно только заявку на рассмотрении")
	}
	updMap := map[string]interface{}{
		"status": models.LeaveStatusCancelled,
	}
	if err = i.store.Update(ctx, id, updMap); err != nil {
		return errors.Wrap(err, "ошибка обновления заявки на отпуск")
	}
	i.getLogger(employeeID, id).Info("заявка на отпуск отменена")
	return nil
}

func (i impl) HasConflictingLeave(ctx context.Context, employeeID string, start, end time.Time, excludeRequestID string) (bool, error) {
	overlapping, err := i.store.ListApprovedOverlapping(ctx, employeeID, start, end, excludeRequestID)
	if err != nil {
		return false, errors.Wrap(err, "ошибка поиска пересекающихся заявок")
	}
	return len(overlapping) > 0, nil
}

// RemainingLeaveDays считает остаток ежегодного отпуска за год,
// больничные и отпуска без содержания лимит не уменьшают
func (i impl) RemainingLeaveDays(ctx context.Context, employeeID string, year int) (leaveapimodels.RemainingDaysView, error) {
	if exist, err := i.employeeStore.Exist(ctx, employeeID); err != nil {
		return leaveapimodels.RemainingDaysView{}, errors.Wrap(err, "ошибка проверки сотрудника")
	} else if !exist {
		return leaveapimodels.RemainingDaysView{}, models.ErrEmployeeNotFound
	}
	used, err := i.store.SumApprovedAnnualDays(ctx, employeeID, year)
	if err != nil {
		return leaveapimodels.RemainingDaysView{}, errors.Wrap(err, "ошибка расчета использованных дней отпуска")
	}
	remaining := annualLeaveDays - used
	if remaining < 0 {
		remaining = 0
	}
	return leaveapimodels.RemainingDaysView{
		EmployeeID:    employeeID,
		Year:          year,
		RemainingDays: remaining,
	}, nil
}

// BusinessDays считает рабочие дни (пн-пт) в диапазоне включительно,
// праздничные дни не учитываются
func BusinessDays(start, end time.Time) int {
	days := 0
	for d := dbmodels.DateOf(start); !d.After(dbmodels.DateOf(end)); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		days++
	}
	return days
}
