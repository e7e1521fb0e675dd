package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"bms/config"
	"bms/infras/jwt"
	jwtMocks "bms/infras/jwt/mocks"
	otelMocks "bms/infras/otel/mocks"
	postgresMocks "bms/infras/postgres/mocks"
	accountMocks "bms/internal/domains/account/mocks"
	accountModel "bms/internal/domains/account/model"
	accountRoleMocks "bms/internal/domains/accountrole/mocks"
	"bms/internal/domains/auth/model/dto"
	"bms/internal/domains/auth/otp"
	"bms/internal/domains/auth/service"
	educationMocks "bms/internal/domains/education/mocks"
	employeeMocks "bms/internal/domains/employee/mocks"
	employeeModel "bms/internal/domains/employee/model"
	notificationMocks "bms/internal/domains/notification/mocks"
	roleMocks "bms/internal/domains/role/mocks"
	roleModel "bms/internal/domains/role/model"
	universityMocks "bms/internal/domains/university/mocks"
	universityModel "bms/internal/domains/university/model"
	"bms/shared/constant"
	"bms/shared/failure"
	"bms/shared/password"
	"bms/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const fixedOtp = 654321

type fixture struct {
	account      *accountMocks.MockAccount
	accountRole  *accountRoleMocks.MockAccountRole
	employee     *employeeMocks.MockEmployee
	education    *educationMocks.MockEducation
	university   *universityMocks.MockUniversity
	role         *roleMocks.MockRole
	transactor   *postgresMocks.MockTransactor
	notification *notificationMocks.MockNotification
	jwt          *jwtMocks.MockJWT
	svc          service.Auth
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		account:      accountMocks.NewMockAccount(ctrl),
		accountRole:  accountRoleMocks.NewMockAccountRole(ctrl),
		employee:     employeeMocks.NewMockEmployee(ctrl),
		education:    educationMocks.NewMockEducation(ctrl),
		university:   universityMocks.NewMockUniversity(ctrl),
		role:         roleMocks.NewMockRole(ctrl),
		transactor:   postgresMocks.NewMockTransactor(ctrl),
		notification: notificationMocks.NewMockNotification(ctrl),
		jwt:          jwtMocks.NewMockJWT(ctrl),
	}

	cfg := &config.Config{}
	cfg.OTP.ExpireMin = 5

	f.svc = service.New(
		service.Repositories{
			Account:     f.account,
			AccountRole: f.accountRole,
			Employee:    f.employee,
			Education:   f.education,
			University:  f.university,
			Role:        f.role,
		},
		f.transactor,
		f.notification,
		otp.New(1, fixedOtp, fixedOtp),
		cfg,
		otelMocks.NewOtel(),
		f.jwt,
	)

	return f
}

func (f *fixture) runTx() {
	f.transactor.EXPECT().
		WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
			return fn(nil)
		})
}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		FirstName:       "Jane",
		LastName:        "Doe",
		BirthDate:       time.Date(1995, 3, 1, 0, 0, 0, 0, time.UTC),
		Gender:          employeeModel.GenderFemale,
		HiringDate:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Email:           "jane@example.com",
		PhoneNumber:     "081234567890",
		Major:           "Informatics",
		Degree:          "S1",
		GPA:             3.5,
		UniversityCode:  " ui ",
		UniversityName:  "Universitas Indonesia",
		Password:        "Secret123!",
		ConfirmPassword: "Secret123!",
	}
}

func TestAuthService_Register(t *testing.T) {
	userRole := roleModel.Role{ID: "role-user", Name: constant.RoleUser}
	existingUniversity := universityModel.University{ID: "univ-1", Code: "UI", Name: "Universitas Indonesia"}

	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantNIK   string
		wantCode  int
	}{
		{
			name: "creates every row and reuses the university",
			setupMock: func(f *fixture) {
				f.university.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingUniversity, nil)
				f.role.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userRole, nil)
				f.employee.EXPECT().LastNIK(gomock.Any()).Return("111115", nil)
				f.runTx()
				f.employee.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, e employeeModel.Employee) error {
						assert.Equal(t, "111116", e.NIK)
						assert.Equal(t, "jane@example.com", e.Email)

						return nil
					})
				f.education.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.account.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, a accountModel.Account) error {
						assert.NoError(t, password.Verify("Secret123!", a.Password))

						return nil
					})
				f.accountRole.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantNIK: "111116",
		},
		{
			name: "first registration creates the university",
			setupMock: func(f *fixture) {
				f.university.EXPECT().Get(gomock.Any(), gomock.Any()).Return(universityModel.University{}, nil)
				f.role.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userRole, nil)
				f.employee.EXPECT().LastNIK(gomock.Any()).Return("", nil)
				f.runTx()
				f.employee.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.university.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, u universityModel.University) error {
						assert.Equal(t, "UI", u.Code)

						return nil
					})
				f.education.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.account.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.accountRole.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantNIK: employeeModel.FirstNIK,
		},
		{
			name: "duplicate email rolls back with conflict",
			setupMock: func(f *fixture) {
				f.university.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingUniversity, nil)
				f.role.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userRole, nil)
				f.employee.EXPECT().LastNIK(gomock.Any()).Return("111111", nil)
				f.runTx()
				f.employee.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "missing default role",
			setupMock: func(f *fixture) {
				f.university.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingUniversity, nil)
				f.role.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roleModel.Role{}, nil)
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "nik lookup failure",
			setupMock: func(f *fixture) {
				f.university.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingUniversity, nil)
				f.role.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userRole, nil)
				f.employee.EXPECT().LastNIK(gomock.Any()).Return("", errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Register(context.Background(), registerRequest())
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantNIK, res.NIK)
			assert.NotEmpty(t, res.ID)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.Hash("Secret123!")
	require.NoError(t, err)

	account := accountModel.Account{ID: "acc-1", Password: hash}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(f *fixture)
		wantErr   error
		wantCode  int
	}{
		{
			name: "success",
			req:  dto.LoginRequest{Email: "jane@example.com", Password: "Secret123!"},
			setupMock: func(f *fixture) {
				f.account.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(account, nil)
				f.accountRole.EXPECT().GetRoleNames(gomock.Any(), "acc-1").Return([]string{"user", "admin"}, nil)
				f.jwt.EXPECT().GenerateTokenPair("acc-1", "jane@example.com", []string{"user", "admin"}).
					Return(&jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil)
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "ghost@example.com", Password: "Secret123!"},
			setupMock: func(f *fixture) {
				f.account.EXPECT().GetByEmail(gomock.Any(), "ghost@example.com").Return(accountModel.Account{}, nil)
			},
			wantErr:  service.ErrInvalidCredentials,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "jane@example.com", Password: "Wrong123!"},
			setupMock: func(f *fixture) {
				f.account.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(account, nil)
			},
			wantErr:  service.ErrInvalidCredentials,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "role lookup failure",
			req:  dto.LoginRequest{Email: "jane@example.com", Password: "Secret123!"},
			setupMock: func(f *fixture) {
				f.account.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(account, nil)
				f.accountRole.EXPECT().GetRoleNames(gomock.Any(), "acc-1").Return(nil, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Login(context.Background(), tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access", res.AccessToken)
			assert.Equal(t, "refresh", res.RefreshToken)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.jwt.EXPECT().RefreshTokens("refresh").
			Return(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

		res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})
		require.NoError(t, err)
		assert.Equal(t, "new-access", res.AccessToken)
	})

	t.Run("invalid token", func(t *testing.T) {
		f := newFixture(t)
		f.jwt.EXPECT().RefreshTokens("bad").Return(nil, errors.New("expired"))

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bad"})
		assert.ErrorIs(t, err, service.ErrInvalidRefresh)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_ForgotPassword(t *testing.T) {
	t.Run("stores a fresh otp and mails it", func(t *testing.T) {
		f := newFixture(t)
		sent := make(chan string, 1)

		f.account.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").
			Return(accountModel.Account{ID: "acc-1", IsUsed: true}, nil)
		f.account.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, fixedOtp, fields[accountModel.FieldOTP])
				assert.Equal(t, false, fields[accountModel.FieldIsUsed])

				expired, ok := fields[accountModel.FieldExpiredTime].(time.Time)
				require.True(t, ok)
				assert.WithinDuration(t, timezone.Now().Add(5*time.Minute), expired, time.Minute)

				return nil
			})
		f.notification.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), "jane@example.com").
			DoAndReturn(func(_ context.Context, _, body, _ string) error {
				sent <- body

				return nil
			})

		res, err := f.svc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "jane@example.com"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.ExpiredTime)

		select {
		case body := <-sent:
			assert.Contains(t, body, "654321")
		case <-time.After(2 * time.Second):
			t.Fatal("notification was not sent")
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newFixture(t)
		f.account.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(accountModel.Account{}, nil)

		_, err := f.svc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "ghost@example.com"})
		assert.ErrorIs(t, err, service.ErrAccountNotFound)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t)
		f.account.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(accountModel.Account{ID: "acc-1"}, nil)
		f.account.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := f.svc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "jane@example.com"})
		assert.Error(t, err)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	live := accountModel.Account{
		ID:          "acc-1",
		OTP:         fixedOtp,
		IsUsed:      false,
		ExpiredTime: timezone.Now().Add(3 * time.Minute),
	}

	valid := dto.ChangePasswordRequest{
		Email:           "jane@example.com",
		OTP:             fixedOtp,
		NewPassword:     "NewSecret1!",
		ConfirmPassword: "NewSecret1!",
	}

	tests := []struct {
		name      string
		req       func() dto.ChangePasswordRequest
		account   accountModel.Account
		setupMock func(f *fixture)
		wantErr   error
	}{
		{
			name:    "success",
			req:     func() dto.ChangePasswordRequest { return valid },
			account: live,
			setupMock: func(f *fixture) {
				f.account.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						hashed, ok := fields[accountModel.FieldPassword].(string)
						require.True(t, ok)
						assert.NoError(t, password.Verify("NewSecret1!", hashed))
						assert.Equal(t, true, fields[accountModel.FieldIsUsed])

						return nil
					})
			},
		},
		{
			name:    "unknown email",
			req:     func() dto.ChangePasswordRequest { return valid },
			wantErr: service.ErrAccountNotFound,
		},
		{
			name: "confirmation mismatch",
			req: func() dto.ChangePasswordRequest {
				r := valid
				r.ConfirmPassword = "Different1!"

				return r
			},
			account: live,
			wantErr: service.ErrPasswordMismatch,
		},
		{
			name: "wrong otp",
			req: func() dto.ChangePasswordRequest {
				r := valid
				r.OTP = 111111

				return r
			},
			account: live,
			wantErr: service.ErrOtpIncorrect,
		},
		{
			name: "otp already used",
			req:  func() dto.ChangePasswordRequest { return valid },
			account: func() accountModel.Account {
				a := live
				a.IsUsed = true

				return a
			}(),
			wantErr: service.ErrOtpAlreadyUsed,
		},
		{
			name: "otp expired",
			req:  func() dto.ChangePasswordRequest { return valid },
			account: func() accountModel.Account {
				a := live
				a.ExpiredTime = timezone.Now().Add(-time.Minute)

				return a
			}(),
			wantErr: service.ErrOtpExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.account.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(tt.account, nil)

			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			err := f.svc.ChangePassword(context.Background(), tt.req())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestAuthService_ChangePassword_OtpConsumedOnce(t *testing.T) {
	f := newFixture(t)

	// the account row the repository mock reads from and writes to
	stored := accountModel.Account{
		ID:          "acc-1",
		Password:    "old-hash",
		OTP:         fixedOtp,
		IsUsed:      false,
		ExpiredTime: timezone.Now().Add(3 * time.Minute),
	}

	f.account.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").
		DoAndReturn(func(context.Context, string) (accountModel.Account, error) {
			return stored, nil
		}).
		Times(2)

	f.account.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
			if hashed, ok := fields[accountModel.FieldPassword].(string); ok {
				stored.Password = hashed
			}

			if used, ok := fields[accountModel.FieldIsUsed].(bool); ok {
				stored.IsUsed = used
			}

			return nil
		}).
		Times(1)

	req := dto.ChangePasswordRequest{
		Email:           "jane@example.com",
		OTP:             fixedOtp,
		NewPassword:     "NewSecret1!",
		ConfirmPassword: "NewSecret1!",
	}

	require.NoError(t, f.svc.ChangePassword(context.Background(), req))
	assert.True(t, stored.IsUsed)
	assert.NoError(t, password.Verify("NewSecret1!", stored.Password))

	err := f.svc.ChangePassword(context.Background(), req)
	assert.ErrorIs(t, err, service.ErrOtpAlreadyUsed)
	assert.NoError(t, password.Verify("NewSecret1!", stored.Password))
}
