package initializers

import (
	"context"

	"github.com/minio/minio-go/v7"
	log "github.com/sirupsen/logrus"

	s3client "hrm-backend/s3"
)

func InitS3(ctx context.Context) *minio.Client {
	minioClient, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return nil
	}

	err = s3client.MakeBucket(ctx, minioClient)
	if err != nil {
		log.WithError(err).Error("Ошибка создания бакета S3")
		return nil
	}

	log.Info("S3 клиент успешно инициализирован")
	return minioClient
}
