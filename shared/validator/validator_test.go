package validator_test

import (
	"strings"
	"testing"
	"time"

	"bms/shared/failure"
	"bms/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerRequest struct {
	Email           string    `json:"email"            validate:"required,email"`
	Password        string    `json:"password"         validate:"required,min=8,password"`
	ConfirmPassword string    `json:"confirm_password" validate:"required,eqfield=Password"`
	BirthDate       time.Time `json:"birth_date"       validate:"required,adult"`
	Gender          string    `json:"gender"           validate:"oneof=male female"`
}

func validRegister() registerRequest {
	return registerRequest{
		Email:           "dina@example.com",
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
		BirthDate:       time.Now().AddDate(-30, 0, 0),
		Gender:          "female",
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *registerRequest)
		wantErr string
	}{
		{
			name:   "valid request",
			mutate: func(*registerRequest) {},
		},
		{
			name:    "missing email",
			mutate:  func(r *registerRequest) { r.Email = "" },
			wantErr: "Email is required",
		},
		{
			name:    "invalid email",
			mutate:  func(r *registerRequest) { r.Email = "dina" },
			wantErr: "Email must be a valid email address",
		},
		{
			name: "password without digit",
			mutate: func(r *registerRequest) {
				r.Password = "SecretPass"
				r.ConfirmPassword = "SecretPass"
			},
			wantErr: "Password must contain an upper case letter, a lower case letter and a digit",
		},
		{
			name: "password without upper case",
			mutate: func(r *registerRequest) {
				r.Password = "secret123"
				r.ConfirmPassword = "secret123"
			},
			wantErr: "Password must contain an upper case letter, a lower case letter and a digit",
		},
		{
			name:    "confirmation mismatch",
			mutate:  func(r *registerRequest) { r.ConfirmPassword = "Secret124" },
			wantErr: "ConfirmPassword must match Password",
		},
		{
			name:    "underage",
			mutate:  func(r *registerRequest) { r.BirthDate = time.Now().AddDate(-17, 0, 0) },
			wantErr: "BirthDate must be at least 18 years ago",
		},
		{
			name:    "unknown gender",
			mutate:  func(r *registerRequest) { r.Gender = "other" },
			wantErr: "Gender must be one of male female",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegister()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.Equal(t, 400, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{name: "valid uuid", field: "4d3c2b1a-0000-4000-8000-000000000001", tag: "uuid", expectError: false},
		{name: "invalid uuid", field: "room-1", tag: "uuid", expectError: true},
		{name: "six digit otp", field: "123456", tag: "len=6,numeric", expectError: false},
		{name: "short otp", field: "12345", tag: "len=6,numeric", expectError: true},
		{name: "strong password", field: "Abcdefg1", tag: "password", expectError: false},
		{name: "weak password", field: "abcdefgh", tag: "password", expectError: true},
		{name: "valid oneof", field: "admin", tag: "oneof=user admin superadmin", expectError: false},
		{name: "invalid oneof", field: "guest", tag: "oneof=user admin superadmin", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	birth := time.Now().AddDate(-25, 0, 0).UTC().Format(time.RFC3339)

	tests := []struct {
		name        string
		body        string
		expectError bool
	}{
		{
			name: "valid json",
			body: `{"email":"dina@example.com","password":"Secret123","confirm_password":"Secret123",` +
				`"birth_date":"` + birth + `","gender":"male"}`,
			expectError: false,
		},
		{
			name:        "malformed json",
			body:        `{"email":}`,
			expectError: true,
		},
		{
			name:        "empty json",
			body:        `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req registerRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, 400, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "dina@example.com", req.Email)
			}
		})
	}
}

func TestRegisterEnum(t *testing.T) {
	validator.RegisterEnum("shift", "morning", "night")

	type shiftRequest struct {
		Shift string `validate:"omitempty,shift"`
	}

	assert.NoError(t, validator.ValidateStruct(&shiftRequest{Shift: "night"}))
	assert.NoError(t, validator.ValidateStruct(&shiftRequest{}))

	err := validator.ValidateStruct(&shiftRequest{Shift: "noon"})
	require.Error(t, err)
	assert.Equal(t, "Shift must be one of morning night", err.Error())
}
