package dto

import (
	"bms/internal/domains/accountrole/model"
	"bms/shared"
	gDto "bms/shared/dto"
	gModel "bms/shared/model"
	"bms/shared/timezone"

	"github.com/google/uuid"
)

type CreateAccountRoleRequest struct {
	AccountID string `json:"account_id" validate:"required,uuid"`
	RoleID    string `json:"role_id"    validate:"required,uuid"`
}

func (c *CreateAccountRoleRequest) ToModel(user string) model.AccountRole {
	return model.AccountRole{
		ID:        uuid.NewString(),
		AccountID: c.AccountID,
		RoleID:    c.RoleID,
		Metadata:  gModel.NewMetadata(timezone.Now(), user),
	}
}

type UpdateAccountRoleRequest struct {
	RoleID string `db:"role_id" json:"role_id" validate:"required,uuid"`
}

type AccountRoleResponse struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	RoleID    string `json:"role_id"`
	gDto.Metadata
}

func (a *AccountRoleResponse) FromModel(model model.AccountRole) {
	a.ID = model.ID
	a.AccountID = model.AccountID
	a.RoleID = model.RoleID
	a.Metadata.FromModel(model.Metadata)
}

type GetAccountRolesResponse struct {
	AccountRoles []AccountRoleResponse `json:"account_roles"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetAccountRolesResponse) FromModels(models []model.AccountRole, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.AccountRoles = make([]AccountRoleResponse, len(models))
	for i, mod := range models {
		r.AccountRoles[i].FromModel(mod)
	}
}
