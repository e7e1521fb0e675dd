package model

import (
	"time"

	"bms/shared/model"
)

const (
	TableName  = "accounts"
	EntityName = "account"

	FieldID          = "id"
	FieldPassword    = "password"
	FieldOTP         = "otp"
	FieldIsUsed      = "is_used"
	FieldExpiredTime = "expired_time"
)

// Account shares its id with the employee it belongs to. The OTP fields hold the
// single live password reset code, if any.
type Account struct {
	ID          string    `db:"id"`
	Password    string    `db:"password"`
	OTP         int       `db:"otp"`
	IsUsed      bool      `db:"is_used"`
	ExpiredTime time.Time `db:"expired_time"`
	model.Metadata
}
