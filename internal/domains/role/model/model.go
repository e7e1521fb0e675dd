package model

import "bms/shared/model"

const (
	TableName  = "roles"
	EntityName = "role"

	FieldID   = "id"
	FieldName = "name"
)

type Role struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	model.Metadata
}
