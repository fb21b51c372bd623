package employeehandler

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"hrm-backend/db"
	departmentprovider "hrm-backend/lib/dicts/department"
	employeestore "hrm-backend/lib/employee/store"
	authutils "hrm-backend/lib/utils/auth-utils"
	initchecker "hrm-backend/lib/utils/init-checker"
	"hrm-backend/models"
	apimodels "hrm-backend/models/api"
	employeeapimodels "hrm-backend/models/api/employee"
	dbmodels "hrm-backend/models/db"
)

type Provider interface {
	Create(ctx context.Context, data employeeapimodels.EmployeeData) (id string, err error)
	Update(ctx context.Context, id string, data employeeapimodels.EmployeeData) error
	Get(ctx context.Context, id string) (view employeeapimodels.EmployeeView, err error)
	List(ctx context.Context, filter employeeapimodels.EmployeeFilter, pagination apimodels.Pagination) (list []employeeapimodels.EmployeeView, rowCount int64, err error)
	Deactivate(ctx context.Context, id string) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:      employeestore.NewInstance(db.DB),
		department: departmentprovider.Instance,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"department", instance.department,
	)
	Instance = instance
}

type impl struct {
	store      employeestore.Provider
	department departmentprovider.Provider
}

func (i impl) checkDependency(ctx context.Context, data employeeapimodels.EmployeeData) error {
	if data.DepartmentID != "" {
		_, err := i.department.Get(ctx, data.DepartmentID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (i impl) Create(ctx context.Context, data employeeapimodels.EmployeeData) (id string, err error) {
	logger := log.WithField("email", data.Email)
	if err = i.checkDependency(ctx, data); err != nil {
		return "", err
	}
	existing, err := i.store.FindByEmail(ctx, data.Email)
	if err != nil {
		return "", errors.Wrap(err, "ошибка поиска сотрудника по почте")
	}
	if existing != nil {
		return "", errors.New("сотрудник с такой почтой уже существует")
	}
	role := data.Role
	if role == "" {
		role = models.UserRoleEmployee
	}
	hireDate := data.HireDate
	if hireDate.IsZero() {
		hireDate = time.Now()
	}
	rec := dbmodels.Employee{
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Email:        data.Email,
		Password:     authutils.GetMD5Hash(data.Password),
		PhoneNumber:  data.PhoneNumber,
		DepartmentID: data.DepartmentID,
		JobTitle:     data.JobTitle,
		Role:         role,
		HireDate:     hireDate,
		IsActive:     true,
	}
	id, err = i.store.Create(ctx, rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания сотрудника")
	}
	logger.WithField("rec_id", id).Info("создан сотрудник")
	return id, nil
}

func (i impl) Update(ctx context.Context, id string, data employeeapimodels.EmployeeData) error {
	logger := log.WithField("rec_id", id)
	rec, err := i.store.GetByID(ctx, id)
	if err != nil {
		return errors.Wrap(err, "ошибка поиска сотрудника")
	}
	if rec == nil {
		return models.ErrEmployeeNotFound
	}
	if err = i.checkDependency(ctx, data); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"first_name":    data.FirstName,
		"last_name":     data.LastName,
		"email":         data.Email,
		"phone_number":  data.PhoneNumber,
		"department_id": data.DepartmentID,
		"job_title":     data.JobTitle,
	}
	if data.Role != "" {
		updMap["role"] = data.Role
	}
	if data.Password != "" {
		updMap["password"] = authutils.GetMD5Hash(data.Password)
	}
	if !data.HireDate.IsZero() {
		updMap["hire_date"] = data.HireDate
	}
	if err = i.store.Update(ctx, id, updMap); err != nil {
		return errors.Wrap(err, "ошибка обновления сотрудника")
	}
	logger.Info("обновлен сотрудник")
	return nil
}

func (i impl) Get(ctx context.Context, id string) (employeeapimodels.EmployeeView, error) {
	rec, err := i.store.GetByID(ctx, id)
	if err != nil {
		return employeeapimodels.EmployeeView{}, errors.Wrap(err, "ошибка поиска сотрудника")
	}
	if rec == nil {
		return employeeapimodels.EmployeeView{}, models.ErrEmployeeNotFound
	}
	return employeeapimodels.EmployeeConvert(*rec), nil
}

func (i impl) List(ctx context.Context, filter employeeapimodels.EmployeeFilter, pagination apimodels.Pagination) (list []employeeapimodels.EmployeeView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(ctx, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения количества сотрудников")
	}
	page, limit := pagination.GetPage()
	recList, err := i.store.List(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения списка сотрудников")
	}
	list = make([]employeeapimodels.EmployeeView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, employeeapimodels.EmployeeConvert(rec))
	}
	return list, rowCount, nil
}

// Deactivate закрывает доступ сотрудника, запись не удаляется
func (i impl) Deactivate(ctx context.Context, id string) error {
	rec, err := i.store.GetByID(ctx, id)
	if err != nil {
		return errors.Wrap(err, "ошибка поиска сотрудника")
	}
	if rec == nil {
		return models.ErrEmployeeNotFound
	}
	if err = i.store.Update(ctx, id, map[string]interface{}{"is_active": false}); err != nil {
		return errors.Wrap(err, "ошибка обновления сотрудника")
	}
	log.WithField("rec_id", id).Info("сотрудник деактивирован")
	return nil
}
