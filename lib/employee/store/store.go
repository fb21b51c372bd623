package employeestore

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	employeeapimodels "hrm-backend/models/api/employee"
	dbmodels "hrm-backend/models/db"
)

type Provider interface {
	Create(ctx context.Context, rec dbmodels.Employee) (id string, err error)
	GetByID(ctx context.Context, id string) (rec *dbmodels.Employee, err error)
	FindByEmail(ctx context.Context, email string) (rec *dbmodels.Employee, err error)
	Update(ctx context.Context, id string, updMap map[string]interface{}) error
	Exist(ctx context.Context, id string) (bool, error)
	ListCount(ctx context.Context, filter employeeapimodels.EmployeeFilter) (count int64, err error)
	List(ctx context.Context, filter employeeapimodels.EmployeeFilter, page, limit int) (list []dbmodels.Employee, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(ctx context.Context, rec dbmodels.Employee) (id string, err error) {
	err = i.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(ctx context.Context, id string) (*dbmodels.Employee, error) {
	rec := dbmodels.Employee{}
	err := i.db.WithContext(ctx).
		Model(&dbmodels.Employee{}).
		Where("id = ?", id).
		Preload("Department").
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

func (i impl) FindByEmail(ctx context.Context, email string) (*dbmodels.Employee, error) {
	rec := dbmodels.Employee{}
	err := i.db.WithContext(ctx).
		Model(&dbmodels.Employee{}).
		Where("lower(email) = ?", strings.ToLower(email)).
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
		Model(&dbmodels.Employee{}).
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

func (i impl) Exist(ctx context.Context, id string) (bool, error) {
	var count int64
	err := i.db.WithContext(ctx).
		Model(&dbmodels.Employee{}).
		Where("id = ?", id).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (i impl) ListCount(ctx context.Context, filter employeeapimodels.EmployeeFilter) (count int64, err error) {
	tx := i.db.WithContext(ctx).
		Model(&dbmodels.Employee{})
	i.addFilter(tx, filter)
	err = tx.Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) List(ctx context.Context, filter employeeapimodels.EmployeeFilter, page, limit int) (list []dbmodels.Employee, err error) {
	list = []dbmodels.Employee{}
	tx := i.db.WithContext(ctx).
		Model(&dbmodels.Employee{}).
		Preload("Department")
	i.addFilter(tx, filter)
	err = tx.
		Order("last_name, first_name").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) addFilter(tx *gorm.DB, filter employeeapimodels.EmployeeFilter) {
	if filter.DepartmentID != "" {
		tx.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.OnlyActive {
		tx.Where("is_active = true")
	}
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		tx.Where("lower(first_name) like ? OR lower(last_name) like ? OR lower(email) like ?", search, search, search)
	}
}
