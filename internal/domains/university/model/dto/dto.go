package dto

import (
	"strings"

	"bms/internal/domains/university/model"
	"bms/shared"
	gDto "bms/shared/dto"
	gModel "bms/shared/model"
	"bms/shared/timezone"

	"github.com/google/uuid"
)

type CreateUniversityRequest struct {
	Code string `json:"code" validate:"required,max=20"`
	Name string `json:"name" validate:"required,max=100"`
}

// ToModel normalises the code to upper case so lookups by code are exact.
func (c *CreateUniversityRequest) ToModel(user string) model.University {
	return model.University{
		ID:       uuid.NewString(),
		Code:     strings.ToUpper(strings.TrimSpace(c.Code)),
		Name:     c.Name,
		Metadata: gModel.NewMetadata(timezone.Now(), user),
	}
}

type UpdateUniversityRequest struct {
	Code string `db:"code" json:"code" validate:"omitempty,max=20"`
	Name string `db:"name" json:"name" validate:"omitempty,max=100"`
}

type UniversityResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
	gDto.Metadata
}

func (u *UniversityResponse) FromModel(model model.University) {
	u.ID = model.ID
	u.Code = model.Code
	u.Name = model.Name
	u.Metadata.FromModel(model.Metadata)
}

type GetUniversitiesResponse struct {
	Universities []UniversityResponse `json:"universities"`
	TotalPage    int                  `json:"total_page"`
	TotalData    int                  `json:"total_data"`
}

func (r *GetUniversitiesResponse) FromModels(models []model.University, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Universities = make([]UniversityResponse, len(models))
	for i, mod := range models {
		r.Universities[i].FromModel(mod)
	}
}
