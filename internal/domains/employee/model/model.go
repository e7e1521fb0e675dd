package model

import (
	"strconv"
	"time"

	"bms/shared/model"
)

const (
	TableName  = "employees"
	EntityName = "employee"

	FieldID          = "id"
	FieldNIK         = "nik"
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldBirthDate   = "birth_date"
	FieldGender      = "gender"
	FieldHiringDate  = "hiring_date"
	FieldEmail       = "email"
	FieldPhoneNumber = "phone_number"

	GenderFemale = "female"
	GenderMale   = "male"

	FirstNIK = "111111"
)

type Employee struct {
	ID          string    `db:"id"`
	NIK         string    `db:"nik"`
	FirstName   string    `db:"first_name"`
	LastName    string    `db:"last_name"`
	BirthDate   time.Time `db:"birth_date"`
	Gender      string    `db:"gender"`
	HiringDate  time.Time `db:"hiring_date"`
	Email       string    `db:"email"`
	PhoneNumber string    `db:"phone_number"`
	model.Metadata
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}

	return e.FirstName + " " + e.LastName
}

// NextNIK returns the NIK following last, or FirstNIK when nothing was issued yet.
func NextNIK(last string) string {
	if last == "" {
		return FirstNIK
	}

	n, err := strconv.ParseInt(last, 10, 64)
	if err != nil {
		return FirstNIK
	}

	return strconv.FormatInt(n+1, 10)
}
