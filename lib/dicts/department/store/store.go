package departmentstore

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "hrm-backend/models/db"
)

type Provider interface {
	Create(ctx context.Context, rec dbmodels.Department) (id string, err error)
	GetByID(ctx context.Context, id string) (rec *dbmodels.Department, err error)
	Update(ctx context.Context, id string, updMap map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) (list []dbmodels.Department, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(ctx context.Context, rec dbmodels.Department) (id string, err error) {
	err = i.db.WithContext(ctx).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(ctx context.Context, id string) (*dbmodels.Department, error) {
	rec := dbmodels.Department{}
	err := i.db.WithContext(ctx).
		Model(&dbmodels.Department{}).
		Where("id = ?", id).
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
		Model(&dbmodels.Department{}).
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

func (i impl) Delete(ctx context.Context, id string) error {
	rec := dbmodels.Department{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	err := i.db.WithContext(ctx).
		Delete(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(ctx context.Context) (list []dbmodels.Department, err error) {
	list = []dbmodels.Department{}
	err = i.db.WithContext(ctx).
		Model(&dbmodels.Department{}).
		Order("name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
