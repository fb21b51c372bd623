package dbmodels

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Department struct {
	BaseModel
	ParentID    string `gorm:"type:varchar(36);index:idx_department_parent"`
	Name        string `gorm:"type:varchar(255)"`
	Description string `gorm:"type:text"`
}

// при удалении подразделения сотрудники остаются, но открепляются от него
func (d *Department) AfterDelete(tx *gorm.DB) (err error) {
	if d.ID == "" {
		return nil
	}
	tx.Model(&Employee{}).Where("department_id = ?", d.ID).Update("department_id", "")
	tx.Model(&Department{}).Where("parent_id = ?", d.ID).Update("parent_id", "")
	return
}

func (d *Department) Validate() error {
	if d.Name == "" {
		return errors.New("не указано название подразделения")
	}
	return nil
}
