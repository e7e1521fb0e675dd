package service_test

import (
	"context"
	"errors"
	"testing"

	"bms/config"
	"bms/infras/otel/mocks"
	roleMocks "bms/internal/domains/role/mocks"
	"bms/internal/domains/role/model"
	"bms/internal/domains/role/model/dto"
	"bms/internal/domains/role/service"
	cacheMocks "bms/shared/cache/mocks"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (*roleMocks.MockRole, service.Role) {
	ctrl := gomock.NewController(t)

	repo := roleMocks.NewMockRole(ctrl)
	redis := cacheMocks.NewMockRedisCache(ctrl)

	redis.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).AnyTimes()

	return repo, service.New(repo, &config.Config{}, redis, mocks.NewOtel())
}

func TestRoleService_Create(t *testing.T) {
	repo, svc := newService(t)

	repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, role model.Role) error {
			assert.Equal(t, "auditor", role.Name)

			return nil
		})

	assert.NoError(t, svc.Create(context.Background(), dto.CreateRoleRequest{Name: " Auditor"}))
}

func TestRoleService_Delete(t *testing.T) {
	repo, svc := newService(t)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   error
	}{
		{
			name: "custom role",
			setupMock: func() {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Role{ID: "r-9", Name: "auditor"}, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "built-in role",
			setupMock: func() {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Role{ID: "r-1", Name: "user"}, nil)
			},
			wantErr: service.ErrBuiltinRole,
		},
		{
			name: "missing role",
			setupMock: func() {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Role{}, nil)
			},
			wantErr: service.ErrRoleNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), "r-1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
