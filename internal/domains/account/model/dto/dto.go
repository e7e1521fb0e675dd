package dto

import (
	"bms/internal/domains/account/model"
	"bms/shared"
	gDto "bms/shared/dto"
	gModel "bms/shared/model"
	"bms/shared/timezone"
)

type CreateAccountRequest struct {
	EmployeeID      string `json:"employee_id"      validate:"required,uuid"`
	Password        string `json:"password"         validate:"required,min=8,max=20,password"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// ToModel builds an account with no live OTP.
func (c *CreateAccountRequest) ToModel(user, hashedPassword string) model.Account {
	now := timezone.Now()

	return model.Account{
		ID:          c.EmployeeID,
		Password:    hashedPassword,
		IsUsed:      true,
		ExpiredTime: now,
		Metadata:    gModel.NewMetadata(now, user),
	}
}

type UpdateAccountRequest struct {
	Password        string `db:"password" json:"password"         validate:"required,min=8,max=20,password"`
	ConfirmPassword string `db:"-"        json:"confirm_password" validate:"required,eqfield=Password"`
}

// AccountResponse never carries the password hash or the OTP.
type AccountResponse struct {
	ID string `json:"id"`
	gDto.Metadata
}

func (a *AccountResponse) FromModel(model model.Account) {
	a.ID = model.ID
	a.Metadata.FromModel(model.Metadata)
}

type GetAccountsResponse struct {
	Accounts  []AccountResponse `json:"accounts"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetAccountsResponse) FromModels(models []model.Account, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Accounts = make([]AccountResponse, len(models))
	for i, mod := range models {
		r.Accounts[i].FromModel(mod)
	}
}
