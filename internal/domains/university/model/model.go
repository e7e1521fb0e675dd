package model

import "bms/shared/model"

const (
	TableName  = "universities"
	EntityName = "university"

	FieldID   = "id"
	FieldCode = "code"
	FieldName = "name"
)

type University struct {
	ID   string `db:"id"`
	Code string `db:"code"`
	Name string `db:"name"`
	model.Metadata
}
