package attendancestore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbmodels "hrm-backend/models/db"
)

type Provider interface {
	Create(ctx context.Context, rec dbmodels.AttendanceRecord) (id string, err error)
	Save(ctx context.Context, rec *dbmodels.AttendanceRecord) error
	GetByID(ctx context.Context, id string) (rec *dbmodels.AttendanceRecord, err error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (rec *dbmodels.AttendanceRecord, err error)
	ListByPeriod(ctx context.Context, employeeID string, dateFrom, dateTo time.Time) (list []dbmodels.AttendanceRecord, err error)
	SumWorkedHours(ctx context.Context, employeeID string, dateFrom, dateTo time.Time) (total float64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(ctx context.Context, rec dbmodels.AttendanceRecord) (id string, err error) {
	err = i.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Save(ctx context.Context, rec *dbmodels.AttendanceRecord) error {
	return i.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(rec).
		Error
}

func (i impl) GetByID(ctx context.Context, id string) (*dbmodels.AttendanceRecord, error) {
	rec := dbmodels.AttendanceRecord{}
	err := i.db.WithContext(ctx).
		Model(&dbmodels.AttendanceRecord{}).
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

func (i impl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*dbmodels.AttendanceRecord, error) {
	rec := dbmodels.AttendanceRecord{}
	err := i.db.WithContext(ctx).
		Model(&dbmodels.AttendanceRecord{}).
		Where("employee_id = ?", employeeID).
		Where("date = ?", dbmodels.DateOf(date)).
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

func (i impl) ListByPeriod(ctx context.Context, employeeID string, dateFrom, dateTo time.Time) (list []dbmodels.AttendanceRecord, err error) {
	list = []dbmodels.AttendanceRecord{}
	tx := i.db.WithContext(ctx).
		Model(&dbmodels.AttendanceRecord{}).
		Preload("Employee").
		Where("employee_id = ?", employeeID)
	if !dateFrom.IsZero() {
		tx.Where("date >= ?", dbmodels.DateOf(dateFrom))
	}
	if !dateTo.IsZero() {
		tx.Where("date <= ?", dbmodels.DateOf(dateTo))
	}
	err = tx.
		Order("date desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) SumWorkedHours(ctx context.Context, employeeID string, dateFrom, dateTo time.Time) (total float64, err error) {
	err = i.db.WithContext(ctx).
		Model(&dbmodels.AttendanceRecord{}).
		Select("coalesce(sum(worked_hours), 0)").
		Where("employee_id = ?", employeeID).
		Where("date >= ? AND date <= ?", dbmodels.DateOf(dateFrom), dbmodels.DateOf(dateTo)).
		Scan(&total).
		Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
