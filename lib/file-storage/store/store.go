package filesdbstorage

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "hrm-backend/models/db"
)

type Provider interface {
	SaveFile(ctx context.Context, rec dbmodels.Attachment) (id string, err error)
	GetByID(ctx context.Context, id string) (rec *dbmodels.Attachment, err error)
	ListByLeaveRequest(ctx context.Context, leaveRequestID string) (list []dbmodels.Attachment, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{db: DB}
}

type impl struct {
	db *gorm.DB
}

func (i impl) SaveFile(ctx context.Context, rec dbmodels.Attachment) (id string, err error) {
	err = i.db.WithContext(ctx).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(ctx context.Context, id string) (*dbmodels.Attachment, error) {
	rec := dbmodels.Attachment{}
	err := i.db.WithContext(ctx).
		Model(&dbmodels.Attachment{}).
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

func (i impl) ListByLeaveRequest(ctx context.Context, leaveRequestID string) (list []dbmodels.Attachment, err error) {
	list = []dbmodels.Attachment{}
	err = i.db.WithContext(ctx).
		Model(&dbmodels.Attachment{}).
		Where("leave_request_id = ?", leaveRequestID).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
