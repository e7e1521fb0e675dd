package dto

import (
	"bms/internal/domains/education/model"
	"bms/shared"
	gDto "bms/shared/dto"
	gModel "bms/shared/model"
	"bms/shared/timezone"
)

type CreateEducationRequest struct {
	EmployeeID   string  `json:"employee_id"   validate:"required,uuid"`
	Major        string  `json:"major"         validate:"required,max=100"`
	Degree       string  `json:"degree"        validate:"required,max=20"`
	GPA          float64 `json:"gpa"           validate:"gte=0,lte=4"`
	UniversityID string  `json:"university_id" validate:"required,uuid"`
}

func (c *CreateEducationRequest) ToModel(user string) model.Education {
	return model.Education{
		ID:           c.EmployeeID,
		Major:        c.Major,
		Degree:       c.Degree,
		GPA:          c.GPA,
		UniversityID: c.UniversityID,
		Metadata:     gModel.NewMetadata(timezone.Now(), user),
	}
}

type UpdateEducationRequest struct {
	Major        string   `db:"major"         json:"major"         validate:"omitempty,max=100"`
	Degree       string   `db:"degree"        json:"degree"        validate:"omitempty,max=20"`
	GPA          *float64 `db:"gpa"           json:"gpa"           validate:"omitempty,gte=0,lte=4"`
	UniversityID string   `db:"university_id" json:"university_id" validate:"omitempty,uuid"`
}

type EducationResponse struct {
	ID           string  `json:"id"`
	Major        string  `json:"major"`
	Degree       string  `json:"degree"`
	GPA          float64 `json:"gpa"`
	UniversityID string  `json:"university_id"`
	gDto.Metadata
}

func (e *EducationResponse) FromModel(model model.Education) {
	e.ID = model.ID
	e.Major = model.Major
	e.Degree = model.Degree
	e.GPA = model.GPA
	e.UniversityID = model.UniversityID
	e.Metadata.FromModel(model.Metadata)
}

type GetEducationsResponse struct {
	Educations []EducationResponse `json:"educations"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (r *GetEducationsResponse) FromModels(models []model.Education, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Educations = make([]EducationResponse, len(models))
	for i, mod := range models {
		r.Educations[i].FromModel(mod)
	}
}
