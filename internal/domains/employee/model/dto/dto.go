package dto

import (
	"time"

	"bms/internal/domains/employee/model"
	"bms/shared"
	"bms/shared/constant"
	gDto "bms/shared/dto"
	gModel "bms/shared/model"
	"bms/shared/timezone"

	"github.com/google/uuid"
)

type CreateEmployeeRequest struct {
	FirstName   string    `json:"first_name"   validate:"required,max=50"`
	LastName    string    `json:"last_name"    validate:"omitempty,max=50"`
	BirthDate   time.Time `json:"birth_date"   validate:"required,adult"`
	Gender      string    `json:"gender"       validate:"required,oneof=female male"`
	HiringDate  time.Time `json:"hiring_date"  validate:"required"`
	Email       string    `json:"email"        validate:"required,email,max=100"`
	PhoneNumber string    `json:"phone_number" validate:"required,numeric,min=10,max=15"`
}

func (c *CreateEmployeeRequest) ToModel(user, nik string) model.Employee {
	return model.Employee{
		ID:          uuid.NewString(),
		NIK:         nik,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		BirthDate:   c.BirthDate,
		Gender:      c.Gender,
		HiringDate:  c.HiringDate,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Metadata:    gModel.NewMetadata(timezone.Now(), user),
	}
}

type UpdateEmployeeRequest struct {
	FirstName   string     `db:"first_name"   json:"first_name"   validate:"omitempty,max=50"`
	LastName    *string    `db:"last_name"    json:"last_name"    validate:"omitempty,max=50"`
	BirthDate   *time.Time `db:"birth_date"   json:"birth_date"   validate:"omitempty"`
	Gender      string     `db:"gender"       json:"gender"       validate:"omitempty,oneof=female male"`
	HiringDate  *time.Time `db:"hiring_date"  json:"hiring_date"  validate:"omitempty"`
	Email       string     `db:"email"        json:"email"        validate:"omitempty,email,max=100"`
	PhoneNumber string     `db:"phone_number" json:"phone_number" validate:"omitempty,numeric,min=10,max=15"`
}

type EmployeeResponse struct {
	ID          string `json:"id"`
	NIK         string `json:"nik"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name,omitempty"`
	FullName    string `json:"full_name"`
	BirthDate   string `json:"birth_date"`
	Gender      string `json:"gender"`
	HiringDate  string `json:"hiring_date"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	gDto.Metadata
}

func (e *EmployeeResponse) FromModel(model model.Employee) {
	e.ID = model.ID
	e.NIK = model.NIK
	e.FirstName = model.FirstName
	e.LastName = model.LastName
	e.FullName = model.FullName()
	e.BirthDate = timezone.FormatNaive(model.BirthDate, constant.DateOnlyFormat)
	e.Gender = model.Gender
	e.HiringDate = timezone.FormatNaive(model.HiringDate, constant.DateOnlyFormat)
	e.Email = model.Email
	e.PhoneNumber = model.PhoneNumber
	e.Metadata.FromModel(model.Metadata)
}

type GetEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetEmployeesResponse) FromModels(models []model.Employee, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Employees = make([]EmployeeResponse, len(models))
	for i, mod := range models {
		r.Employees[i].FromModel(mod)
	}
}
