package model

import "bms/shared/model"

const (
	TableName  = "account_roles"
	EntityName = "account_role"

	FieldID        = "id"
	FieldAccountID = "account_id"
	FieldRoleID    = "role_id"
)

type AccountRole struct {
	ID        string `db:"id"`
	AccountID string `db:"account_id"`
	RoleID    string `db:"role_id"`
	model.Metadata
}
