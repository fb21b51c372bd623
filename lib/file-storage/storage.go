package filestorage

import (
	"bytes"
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"hrm-backend/config"
	"hrm-backend/db"
	filesdbstorage "hrm-backend/lib/file-storage/store"
	leavestore "hrm-backend/lib/leave/store"
	initchecker "hrm-backend/lib/utils/init-checker"
	"hrm-backend/models"
	leaveapimodels "hrm-backend/models/api/leave"
	dbmodels "hrm-backend/models/db"
)

type Provider interface {
	UploadLeaveAttachment(ctx context.Context, leaveRequestID, fileName, contentType string, file []byte) (id string, err error)
	GetAttachment(ctx context.Context, id string) (view leaveapimodels.AttachmentView, data []byte, err error)
	ListByLeaveRequest(ctx context.Context, leaveRequestID string) (list []leaveapimodels.AttachmentView, err error)
}

var Instance Provider

func NewHandler(s3client *minio.Client) {
	instance := impl{
		s3client:   s3client,
		store:      filesdbstorage.NewInstance(db.DB),
		leaveStore: leavestore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"s3client", instance.s3client,
		"store", instance.store,
		"leaveStore", instance.leaveStore,
	)
	Instance = instance
}

type impl struct {
	s3client   *minio.Client
	store      filesdbstorage.Provider
	leaveStore leavestore.Provider
}

func (i impl) UploadLeaveAttachment(ctx context.Context, leaveRequestID, fileName, contentType string, file []byte) (id string, err error) {
	logger := log.WithField("rec_id", leaveRequestID)
	leaveRec, err := i.leaveStore.GetByID(ctx, leaveRequestID)
	if err != nil {
		return "", errors.Wrap(err, "ошибка поиска заявки на отпуск")
	}
	if leaveRec == nil {
		return "", models.ErrLeaveRequestNotFound
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectKey := uuid.NewString()
	_, err = i.s3client.PutObject(ctx, config.Conf.S3.BucketName, objectKey,
		bytes.NewReader(file), int64(len(file)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "ошибка загрузки файла в хранилище")
	}
	rec := dbmodels.Attachment{
		LeaveRequestID: leaveRequestID,
		FileName:       fileName,
		ObjectKey:      objectKey,
		ContentType:    contentType,
		FileSize:       int64(len(file)),
	}
	id, err = i.store.SaveFile(ctx, rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка сохранения сведений о вложении")
	}
	logger.
		WithField("attachment_id", id).
		WithField("file_name", fileName).
		Info("загружено вложение к заявке на отпуск")
	return id, nil
}

func (i impl) GetAttachment(ctx context.Context, id string) (leaveapimodels.AttachmentView, []byte, error) {
	rec, err := i.store.GetByID(ctx, id)
	if err != nil {
		return leaveapimodels.AttachmentView{}, nil, errors.Wrap(err, "ошибка поиска вложения")
	}
	if rec == nil {
		return leaveapimodels.AttachmentView{}, nil, models.ErrAttachmentNotFound
	}
	object, err := i.s3client.GetObject(ctx, config.Conf.S3.BucketName, rec.ObjectKey, minio.GetObjectOptions{})
	if err != nil {
		return leaveapimodels.AttachmentView{}, nil, errors.Wrap(err, "ошибка получения файла из хранилища")
	}
	defer object.Close()
	data, err := io.ReadAll(object)
	if err != nil {
		return leaveapimodels.AttachmentView{}, nil, errors.Wrap(err, "ошибка чтения файла из хранилища")
	}
	return leaveapimodels.AttachmentConvert(*rec), data, nil
}

func (i impl) ListByLeaveRequest(ctx context.Context, leaveRequestID string) (list []leaveapimodels.AttachmentView, err error) {
	recList, err := i.store.ListByLeaveRequest(ctx, leaveRequestID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения вложений")
	}
	list = make([]leaveapimodels.AttachmentView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, leaveapimodels.AttachmentConvert(rec))
	}
	return list, nil
}
