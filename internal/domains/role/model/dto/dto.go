package dto

import (
	"strings"

	"bms/internal/domains/role/model"
	"bms/shared"
	gDto "bms/shared/dto"
	gModel "bms/shared/model"
	"bms/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoleRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

func (c *CreateRoleRequest) ToModel(user string) model.Role {
	return model.Role{
		ID:       uuid.NewString(),
		Name:     strings.ToLower(strings.TrimSpace(c.Name)),
		Metadata: gModel.NewMetadata(timezone.Now(), user),
	}
}

type UpdateRoleRequest struct {
	Name string `db:"name" json:"name" validate:"omitempty,max=50"`
}

type RoleResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	gDto.Metadata
}

func (r *RoleResponse) FromModel(model model.Role) {
	r.ID = model.ID
	r.Name = model.Name
	r.Metadata.FromModel(model.Metadata)
}

type GetRolesResponse struct {
	Roles     []RoleResponse `json:"roles"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRolesResponse) FromModels(models []model.Role, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Roles = make([]RoleResponse, len(models))
	for i, mod := range models {
		r.Roles[i].FromModel(mod)
	}
}
