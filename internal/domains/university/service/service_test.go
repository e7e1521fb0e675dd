package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"bms/config"
	"bms/infras/otel/mocks"
	universityMocks "bms/internal/domains/university/mocks"
	"bms/internal/domains/university/model"
	"bms/internal/domains/university/model/dto"
	"bms/internal/domains/university/service"
	cacheMocks "bms/shared/cache/mocks"
	"bms/shared/constant"
	gDto "bms/shared/dto"
	"bms/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestUniversityService(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := universityMocks.NewMockUniversity(ctrl)
	redis := cacheMocks.NewMockRedisCache(ctrl)

	redis.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).AnyTimes()

	svc := service.New(repo, &config.Config{}, redis, mocks.NewOtel())
	ctx := context.Background()

	tests := []struct {
		name      string
		setupMock func()
		run       func() error
		wantCode  int
	}{
		{
			name: "create normalises the code",
			setupMock: func() {
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, university model.University) error {
						assert.Equal(t, "UGM", university.Code)

						return nil
					})
			},
			run: func() error {
				return svc.Create(ctx, dto.CreateUniversityRequest{Code: " ugm ", Name: "Universitas Gadjah Mada"})
			},
		},
		{
			name: "create duplicate code",
			setupMock: func() {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			run: func() error {
				return svc.Create(ctx, dto.CreateUniversityRequest{Code: "UI", Name: "Universitas Indonesia"})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "get missing",
			setupMock: func() {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.University{}, nil)
			},
			run: func() error {
				_, err := svc.Get(ctx, "u-1")

				return err
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "list",
			setupMock: func() {
				repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
				repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.University{{ID: "u-1"}}, nil)
			},
			run: func() error {
				res, err := svc.GetAll(ctx, gDto.QueryParams{Page: 2, Limit: 10}, gDto.FilterGroup{})
				assert.Equal(t, 2, res.TotalPage)

				return err
			},
		},
		{
			name: "delete still referenced",
			setupMock: func() {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})
			},
			run: func() error {
				return svc.Delete(ctx, "u-1")
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "update missing",
			setupMock: func() {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			run: func() error {
				return svc.Update(ctx, dto.UpdateUniversityRequest{Name: "x"}, "u-1")
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := tt.run()

			if tt.wantCode == 0 {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}
