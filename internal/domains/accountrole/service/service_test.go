package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"bms/config"
	"bms/infras/otel/mocks"
	accountMocks "bms/internal/domains/account/mocks"
	accountRoleMocks "bms/internal/domains/accountrole/mocks"
	"bms/internal/domains/accountrole/model/dto"
	"bms/internal/domains/accountrole/service"
	roleMocks "bms/internal/domains/role/mocks"
	cacheMocks "bms/shared/cache/mocks"
	"bms/shared/constant"
	"bms/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestAccountRoleService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := accountRoleMocks.NewMockAccountRole(ctrl)
	account := accountMocks.NewMockAccount(ctrl)
	role := roleMocks.NewMockRole(ctrl)
	redis := cacheMocks.NewMockRedisCache(ctrl)

	redis.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(repo, account, role, &config.Config{}, redis, mocks.NewOtel())

	req := dto.CreateAccountRoleRequest{
		AccountID: "0b8f5d8e-2c1f-4f0e-8d6c-56a2d0a0c4f2",
		RoleID:    "7d3f0c2e-8a55-4b7e-9a39-1f1e3c0c9b11",
	}

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
	}{
		{
			name: "assigns role",
			setupMock: func() {
				account.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				role.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "unknown account",
			setupMock: func() {
				account.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "unknown role",
			setupMock: func() {
				account.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				role.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "already assigned",
			setupMock: func() {
				account.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				role.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "account lookup error",
			setupMock: func() {
				account.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Create(context.Background(), req)

			if tt.wantCode == 0 {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}
