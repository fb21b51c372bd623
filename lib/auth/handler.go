package authhandler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"hrm-backend/db"
	employeestore "hrm-backend/lib/employee/store"
	authutils "hrm-backend/lib/utils/auth-utils"
	initchecker "hrm-backend/lib/utils/init-checker"
	authapimodels "hrm-backend/models/api/auth"
	employeeapimodels "hrm-backend/models/api/employee"
	dbmodels "hrm-backend/models/db"
)

type Provider interface {
	Login(ctx context.Context, email, password string) (response authapimodels.JWTResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (response authapimodels.JWTResponse, err error)
	Me(ctx *fiber.Ctx) (view employeeapimodels.EmployeeView, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store: employeestore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	Instance = instance
}

type impl struct {
	store employeestore.Provider
}

func (i impl) Login(ctx context.Context, email, password string) (authapimodels.JWTResponse, error) {
	logger := log.WithField("email", email)
	user, err := i.store.FindByEmail(ctx, email)
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка поиска сотрудника по почте")
		return authapimodels.JWTResponse{}, err
	}
	if user == nil {
		logger.Debug("сотрудник с такой почтой не найден")
		return authapimodels.JWTResponse{}, errors.New("сотрудник с такой почтой не найден")
	}
	if !user.IsActive {
		logger.Debug("учетная запись сотрудника деактивирована")
		return authapimodels.JWTResponse{}, errors.New("учетная запись деактивирована")
	}
	if authutils.GetMD5Hash(password) != user.Password {
		logger.Debug("сотрудник не прошел проверку пароля")
		return authapimodels.JWTResponse{}, errors.New("сотрудник не прошел проверку пароля")
	}
	response, err := i.issueTokens(*user)
	if err != nil {
		logger.WithError(err).Error("ошибка генерации JWT")
		return authapimodels.JWTResponse{}, err
	}
	err = i.store.Update(ctx, user.ID, map[string]interface{}{"last_login": time.Now()})
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка обновления даты последнего входа")
	}
	return response, nil
}

func (i impl) RefreshToken(ctx context.Context, refreshToken string) (authapimodels.JWTResponse, error) {
	userID, err := authutils.ParseRefreshToken(refreshToken)
	if err != nil {
		log.WithError(err).Debug("refresh token не прошел проверку")
		return authapimodels.JWTResponse{}, errors.New("refresh token не прошел проверку")
	}
	user, err := i.store.GetByID(ctx, userID)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	if user == nil || !user.IsActive {
		return authapimodels.JWTResponse{}, errors.New("учетная запись не найдена или деактивирована")
	}
	return i.issueTokens(*user)
}

func (i impl) Me(ctx *fiber.Ctx) (employeeapimodels.EmployeeView, error) {
	claims := authutils.GetClaims(ctx)
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return employeeapimodels.EmployeeView{}, errors.New("токен не содержит идентификатор пользователя")
	}
	user, err := i.store.GetByID(ctx.UserContext(), sub)
	if err != nil {
		return employeeapimodels.EmployeeView{}, err
	}
	if user == nil {
		return employeeapimodels.EmployeeView{}, errors.New("учетная запись не найдена")
	}
	return employeeapimodels.EmployeeConvert(*user), nil
}

func (i impl) issueTokens(user dbmodels.Employee) (authapimodels.JWTResponse, error) {
	token, err := authutils.GetToken(user.ID, user.GetFullName(), user.Role)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	refresh, err := authutils.GetRefreshToken(user.ID, user.GetFullName())
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	return authapimodels.JWTResponse{
		Token:        token,
		RefreshToken: refresh,
	}, nil
}
