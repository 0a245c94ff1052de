package dao

import (
	"github.com/ego-component/egorm"
)

// InitTables 建立模板表以及发送记录的基础表，分表通过 LIKE 基础表创建
func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(
		&TemplateConfig{},
		&SendRecord{},
		&SendRecordExtend{},
	)
}
