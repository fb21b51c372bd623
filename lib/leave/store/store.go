package leavestore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hrm-backend/models"
	leaveapimodels "hrm-backend/models/api/leave"
	dbmodels "hrm-backend/models/db"
)

type Provider interface {
	Create(ctx context.Context, rec dbmodels.LeaveRequest) (id string, err error)
	GetByID(ctx context.Context, id string) (rec *dbmodels.LeaveRequest, err error)
	Update(ctx context.Context, id string, updMap map[string]interface{}) error
	List(ctx context.Context, filter leaveapimodels.LeaveFilter) (list []dbmodels.LeaveRequest, err error)
	ListApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (list []dbmodels.LeaveRequest, err error)
	SumApprovedAnnualDays(ctx context.Context, employeeID string, year int) (days int, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(ctx context.Context, rec dbmodels.LeaveRequest) (id string, err error) {
	err = i.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(ctx context.Context, id string) (*dbmodels.LeaveRequest, error) {
	rec := dbmodels.LeaveRequest{}
	err := i.db.WithContext(ctx).
		Model(&dbmodels.LeaveRequest{}).
		Where("id = ?", id).
		Preload("Employee").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(ctx context.Context, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.WithContext(ctx).
		Model(&dbmodels.LeaveRequest{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) List(ctx context.Context, filter leaveapimodels.LeaveFilter) (list []dbmodels.LeaveRequest, err error) {
	list = []dbmodels.LeaveRequest{}
	tx := i.db.WithContext(ctx).
		Model(&dbmodels.LeaveRequest{}).
		Preload("Employee")
	if filter.EmployeeID != "" {
		tx.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		tx.Where("status = ?", filter.Status)
	}
	if filter.Year != 0 {
		yearStart := time.Date(filter.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		tx.Where("start_date >= ? AND start_date < ?", yearStart, yearStart.AddDate(1, 0, 0))
	}
	err = tx.
		Order("start_date desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// пересечение включительное: existing.start <= end AND existing.end >= start
func (i impl) ListApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (list []dbmodels.LeaveRequest, err error) {
	list = []dbmodels.LeaveRequest{}
	tx := i.db.WithContext(ctx).
		Model(&dbmodels.LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status = ?", models.LeaveStatusApproved).
		Where("start_date <= ? AND end_date >= ?", dbmodels.DateOf(end), dbmodels.DateOf(start))
	if excludeID != "" {
		tx.Where("id <> ?", excludeID)
	}
	err = tx.
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) SumApprovedAnnualDays(ctx context.Context, employeeID string, year int) (days int, err error) {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	err = i.db.WithContext(ctx).
		Model(&dbmodels.LeaveRequest{}).
		Select("coalesce(sum(days_requested), 0)").
		Where("employee_id = ?", employeeID).
		Where("status = ?", models.LeaveStatusApproved).
		Where("leave_type = ?", models.LeaveTypeAnnual).
		Where("start_date >= ? AND start_date < ?", yearStart, yearStart.AddDate(1, 0, 0)).
		Scan(&days).
		Error
	if err != nil {
		return 0, err
	}
	return days, nil
}
