package departmentprovider

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"hrm-backend/db"
	departmentstore "hrm-backend/lib/dicts/department/store"
	initchecker "hrm-backend/lib/utils/init-checker"
	"hrm-backend/models"
	departmentapimodels "hrm-backend/models/api/department"
	dbmodels "hrm-backend/models/db"
)

type Provider interface {
	Create(ctx context.Context, request departmentapimodels.DepartmentData) (id string, err error)
	Update(ctx context.Context, id string, request departmentapimodels.DepartmentData) error
	Get(ctx context.Context, id string) (item departmentapimodels.DepartmentView, err error)
	Tree(ctx context.Context) (list []departmentapimodels.DepartmentTreeItem, err error)
	Delete(ctx context.Context, id string) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store: departmentstore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	Instance = instance
}

type impl struct {
	store departmentstore.Provider
}

func (i impl) Create(ctx context.Context, request departmentapimodels.DepartmentData) (id string, err error) {
	if request.ParentID != "" {
		parent, err := i.store.GetByID(ctx, request.ParentID)
		if err != nil {
			return "", errors.Wrap(err, "ошибка поиска родительского подразделения")
		}
		if parent == nil {
			return "", models.ErrDepartmentNotFound
		}
	}
	rec := dbmodels.Department{
		ParentID:    request.ParentID,
		Name:        request.Name,
		Description: request.Description,
	}
	id, err = i.store.Create(ctx, rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания подразделения")
	}
	log.
		WithField("department_name", request.Name).
		WithField("rec_id", id).
		Info("создано подразделение")
	return id, nil
}

func (i impl) Update(ctx context.Context, id string, request departmentapimodels.DepartmentData) error {
	updMap := map[string]interface{}{
		"name":        request.Name,
		"description": request.Description,
		"parent_id":   request.ParentID,
	}
	err := i.store.Update(ctx, id, updMap)
	if err != nil {
		return errors.Wrap(err, "ошибка обновления подразделения")
	}
	log.WithField("rec_id", id).Info("обновлено подразделение")
	return nil
}

func (i impl) Get(ctx context.Context, id string) (departmentapimodels.DepartmentView, error) {
	rec, err := i.store.GetByID(ctx, id)
	if err != nil {
		return departmentapimodels.DepartmentView{}, errors.Wrap(err, "ошибка поиска подразделения")
	}
	if rec == nil {
		return departmentapimodels.DepartmentView{}, models.ErrDepartmentNotFound
	}
	return departmentapimodels.DepartmentConvert(*rec), nil
}

func (i impl) Tree(ctx context.Context) (list []departmentapimodels.DepartmentTreeItem, err error) {
	recList, err := i.store.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения подразделений")
	}
	tree := []departmentapimodels.DepartmentTreeItem{}
	for _, rec := range recList {
		if rec.ParentID != "" {
			continue
		}
		item := departmentapimodels.DepartmentTreeItem{
			DepartmentView: departmentapimodels.DepartmentConvert(rec),
			SubUnits:       getChildren(rec.ID, recList),
		}
		tree = append(tree, item)
	}
	return tree, nil
}

func (i impl) Delete(ctx context.Context, id string) error {
	rec, err := i.store.GetByID(ctx, id)
	if err != nil {
		return errors.Wrap(err, "ошибка поиска подразделения")
	}
	if rec == nil {
		return models.ErrDepartmentNotFound
	}
	if err = i.store.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "ошибка удаления подразделения")
	}
	log.WithField("rec_id", id).Info("удалено подразделение")
	return nil
}

func getChildren(parentID string, recList []dbmodels.Department) []departmentapimodels.DepartmentTreeItem {
	children := []departmentapimodels.DepartmentTreeItem{}
	for _, rec := range recList {
		if rec.ParentID != parentID {
			continue
		}
		children = append(children, departmentapimodels.DepartmentTreeItem{
			DepartmentView: departmentapimodels.DepartmentConvert(rec),
			SubUnits:       getChildren(rec.ID, recList),
		})
	}
	return children
}
