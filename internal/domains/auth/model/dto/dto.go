package dto

import (
	"time"

	"bms/infras/jwt"
	accountModel "bms/internal/domains/account/model"
	accountRoleModel "bms/internal/domains/accountrole/model"
	educationModel "bms/internal/domains/education/model"
	employeeModel "bms/internal/domains/employee/model"
	universityModel "bms/internal/domains/university/model"
	"bms/shared/constant"
	gModel "bms/shared/model"
	"bms/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	FirstName       string    `json:"first_name"       validate:"required,max=50"`
	LastName        string    `json:"last_name"        validate:"omitempty,max=50"`
	BirthDate       time.Time `json:"birth_date"       validate:"required,adult"`
	Gender          string    `json:"gender"           validate:"required,oneof=female male"`
	HiringDate      time.Time `json:"hiring_date"      validate:"required"`
	Email           string    `json:"email"            validate:"required,email,max=100"`
	PhoneNumber     string    `json:"phone_number"     validate:"required,numeric,min=10,max=15"`
	Major           string    `json:"major"            validate:"required,max=100"`
	Degree          string    `json:"degree"           validate:"required,max=20"`
	GPA             float64   `json:"gpa"              validate:"gte=0,lte=4"`
	UniversityCode  string    `json:"university_code"  validate:"required,max=20"`
	UniversityName  string    `json:"university_name"  validate:"required,max=100"`
	Password        string    `json:"password"         validate:"required,min=8,max=20,password"`
	ConfirmPassword string    `json:"confirm_password" validate:"required,eqfield=Password"`
}

// Registration holds every row written by a single register request.
type Registration struct {
	Employee      employeeModel.Employee
	University    universityModel.University
	NewUniversity bool
	Education     educationModel.Education
	Account       accountModel.Account
	AccountRole   accountRoleModel.AccountRole
}

// ToRegistration builds the rows of a registration. university is reused when it already
// exists, otherwise a new one is created from the request.
func (r *RegisterRequest) ToRegistration(nik, hashedPassword, roleID string, university universityModel.University) Registration {
	now := timezone.Now()
	user := constant.ContextGuest
	employeeID := uuid.NewString()

	res := Registration{
		Employee: employeeModel.Employee{
			ID:          employeeID,
			NIK:         nik,
			FirstName:   r.FirstName,
			LastName:    r.LastName,
			BirthDate:   r.BirthDate,
			Gender:      r.Gender,
			HiringDate:  r.HiringDate,
			Email:       r.Email,
			PhoneNumber: r.PhoneNumber,
			Metadata:    gModel.NewMetadata(now, user),
		},
		University: university,
		Account: accountModel.Account{
			ID:          employeeID,
			Password:    hashedPassword,
			IsUsed:      true,
			ExpiredTime: now,
			Metadata:    gModel.NewMetadata(now, user),
		},
		AccountRole: accountRoleModel.AccountRole{
			ID:        uuid.NewString(),
			AccountID: employeeID,
			RoleID:    roleID,
			Metadata:  gModel.NewMetadata(now, user),
		},
	}

	if res.University.ID == constant.Empty {
		res.NewUniversity = true
		res.University = universityModel.University{
			ID:       uuid.NewString(),
			Code:     r.UniversityCode,
			Name:     r.UniversityName,
			Metadata: gModel.NewMetadata(now, user),
		}
	}

	res.Education = educationModel.Education{
		ID:           employeeID,
		Major:        r.Major,
		Degree:       r.Degree,
		GPA:          r.GPA,
		UniversityID: res.University.ID,
		Metadata:     gModel.NewMetadata(now, user),
	}

	return res
}

type RegisterResponse struct {
	ID  string `json:"id"`
	NIK string `json:"nik"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPasswordResponse tells the caller until when the emailed code is valid.
type ForgotPasswordResponse struct {
	ExpiredTime string `json:"expired_time"`
}

type ChangePasswordRequest struct {
	Email           string `json:"email"            validate:"required,email"`
	OTP             int    `json:"otp"              validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=20,password"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}
