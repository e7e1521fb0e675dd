package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"bms/config"
	"bms/infras/otel/mocks"
	accountMocks "bms/internal/domains/account/mocks"
	"bms/internal/domains/account/model"
	"bms/internal/domains/account/model/dto"
	"bms/internal/domains/account/service"
	employeeMocks "bms/internal/domains/employee/mocks"
	cacheMocks "bms/shared/cache/mocks"
	gDto "bms/shared/dto"
	"bms/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo     *accountMocks.MockAccount
	employee *employeeMocks.MockEmployee
	svc      service.Account
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	redis := cacheMocks.NewMockRedisCache(ctrl)
	redis.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).AnyTimes()

	f := fixture{
		repo:     accountMocks.NewMockAccount(ctrl),
		employee: employeeMocks.NewMockEmployee(ctrl),
	}
	f.svc = service.New(f.repo, f.employee, &config.Config{}, redis, mocks.NewOtel())

	return f
}

func TestAccountService_Create(t *testing.T) {
	f := newFixture(t)

	req := dto.CreateAccountRequest{
		EmployeeID:      "0b8f5d8e-2c1f-4f0e-8d6c-56a2d0a0c4f2",
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   error
	}{
		{
			name: "stores a bcrypt hash and no live otp",
			setupMock: func() {
				f.employee.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, account model.Account) error {
						assert.Equal(t, req.EmployeeID, account.ID)
						assert.NotEqual(t, req.Password, account.Password)
						assert.NoError(t, password.Verify(req.Password, account.Password))
						assert.True(t, account.IsUsed)

						return nil
					})
			},
		},
		{
			name: "employee not found",
			setupMock: func() {
				f.employee.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: service.ErrEmployeeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Create(context.Background(), req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAccountService_Update_HashesPassword(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			hash, _ := fields[model.FieldPassword].(string)
			assert.NoError(t, password.Verify("NewSecret1", hash))
			assert.NotContains(t, fields, "confirm_password")

			return nil
		})

	err := f.svc.Update(context.Background(), dto.UpdateAccountRequest{Password: "NewSecret1", ConfirmPassword: "NewSecret1"}, "a-1")
	assert.NoError(t, err)
}

func TestAccountService_Get_OmitsSecrets(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Account{ID: "a-1", Password: "hash", OTP: 123456}, nil)

	res, err := f.svc.Get(context.Background(), "a-1")
	require.NoError(t, err)

	body, err := json.Marshal(res)
	require.NoError(t, err)

	assert.NotContains(t, string(body), "hash")
	assert.NotContains(t, string(body), "123456")
	assert.NotContains(t, string(body), "otp")
}
