package db

import (
	log "github.com/sirupsen/logrus"

	"hrm-backend/config"
	authutils "hrm-backend/lib/utils/auth-utils"
	"hrm-backend/models"
	dbmodels "hrm-backend/models/db"
)

// InitPreload создает учетную запись администратора, если ее еще нет
func InitPreload() {
	email := config.Conf.Admin.Email
	if email == "" || config.Conf.Admin.Password == "" {
		log.Info("предзаполнение администратора пропущено, не заданы учетные данные")
		return
	}
	var count int64
	err := DB.Model(&dbmodels.Employee{}).
		Where("email = ?", email).
		Count(&count).
		Error
	if err != nil {
		log.WithError(err).Error("ошибка предзаполнения администратора")
		return
	}
	if count > 0 {
		return
	}
	rec := dbmodels.Employee{
		FirstName: "Администратор",
		LastName:  "Системы",
		Email:     email,
		Password:  authutils.GetMD5Hash(config.Conf.Admin.Password),
		Role:      models.UserRoleAdmin,
		IsActive:  true,
	}
	err = DB.Create(&rec).Error
	if err != nil {
		log.WithError(err).Error("ошибка предзаполнения администратора")
		return
	}
	log.WithField("email", email).Info("создана учетная запись администратора")
}
