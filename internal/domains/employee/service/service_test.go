package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"bms/config"
	"bms/infras/otel/mocks"
	employeeMocks "bms/internal/domains/employee/mocks"
	"bms/internal/domains/employee/model"
	"bms/internal/domains/employee/model/dto"
	"bms/internal/domains/employee/service"
	cacheMocks "bms/shared/cache/mocks"
	"bms/shared/constant"
	"bms/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*employeeMocks.MockEmployee, service.Employee) {
	ctrl := gomock.NewController(t)

	repo := employeeMocks.NewMockEmployee(ctrl)
	redis := cacheMocks.NewMockRedisCache(ctrl)

	redis.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).AnyTimes()

	return repo, service.New(repo, &config.Config{}, redis, mocks.NewOtel())
}

func TestEmployeeService_Create(t *testing.T) {
	repo, svc := setup(t)

	req := dto.CreateEmployeeRequest{
		FirstName:   "Siti",
		BirthDate:   time.Date(1995, time.March, 4, 0, 0, 0, 0, time.UTC),
		Gender:      model.GenderFemale,
		HiringDate:  time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC),
		Email:       "siti@example.com",
		PhoneNumber: "081234567890",
	}

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
	}{
		{
			name: "first employee gets the first nik",
			setupMock: func() {
				repo.EXPECT().LastNIK(gomock.Any()).Return("", nil)
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, employee model.Employee) error {
						assert.Equal(t, "111111", employee.NIK)

						return nil
					})
			},
		},
		{
			name: "next nik follows the last one",
			setupMock: func() {
				repo.EXPECT().LastNIK(gomock.Any()).Return("111115", nil)
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, employee model.Employee) error {
						assert.Equal(t, "111116", employee.NIK)

						return nil
					})
			},
		},
		{
			name: "duplicate email",
			setupMock: func() {
				repo.EXPECT().LastNIK(gomock.Any()).Return("111115", nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "last nik error",
			setupMock: func() {
				repo.EXPECT().LastNIK(gomock.Any()).Return("", errors.New("db down"))
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

func TestEmployeeService_Get(t *testing.T) {
	repo, svc := setup(t)

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Employee{ID: "e-1", FirstName: "Siti", LastName: "Aminah"}, nil)

	res, err := svc.Get(context.Background(), "e-1")
	assert.NoError(t, err)
	assert.Equal(t, "Siti Aminah", res.FullName)

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Employee{}, nil)

	_, err = svc.Get(context.Background(), "e-2")
	assert.ErrorIs(t, err, service.ErrEmployeeNotFound)
}

func TestEmployeeService_Update(t *testing.T) {
	repo, svc := setup(t)

	lastName := "Aminah"

	repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
			assert.Equal(t, "Aminah", fields[model.FieldLastName])
			assert.NotContains(t, fields, model.FieldEmail)

			return nil
		})

	assert.NoError(t, svc.Update(context.Background(), dto.UpdateEmployeeRequest{LastName: &lastName}, "e-1"))

	repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	assert.ErrorIs(t, svc.Update(context.Background(), dto.UpdateEmployeeRequest{}, "e-2"), service.ErrEmployeeNotFound)
}

func TestEmployeeService_Delete(t *testing.T) {
	repo, svc := setup(t)

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
	}{
		{
			name: "successful delete",
			setupMock: func() {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "not found",
			setupMock: func() {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "still referenced",
			setupMock: func() {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), "e-1")

			if tt.wantCode == 0 {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}
