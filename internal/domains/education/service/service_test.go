package service_test

import (
	"context"
	"errors"
	"testing"

	"bms/config"
	"bms/infras/otel/mocks"
	educationMocks "bms/internal/domains/education/mocks"
	"bms/internal/domains/education/model"
	"bms/internal/domains/education/model/dto"
	"bms/internal/domains/education/service"
	employeeMocks "bms/internal/domains/employee/mocks"
	universityMocks "bms/internal/domains/university/mocks"
	cacheMocks "bms/shared/cache/mocks"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestEducationService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := educationMocks.NewMockEducation(ctrl)
	employee := employeeMocks.NewMockEmployee(ctrl)
	university := universityMocks.NewMockUniversity(ctrl)
	redis := cacheMocks.NewMockRedisCache(ctrl)

	redis.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(repo, employee, university, &config.Config{}, redis, mocks.NewOtel())

	req := dto.CreateEducationRequest{
		EmployeeID:   "0b8f5d8e-2c1f-4f0e-8d6c-56a2d0a0c4f2",
		Major:        "Informatics",
		Degree:       "S1",
		GPA:          3.6,
		UniversityID: "7d3f0c2e-8a55-4b7e-9a39-1f1e3c0c9b11",
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   error
		wantAny   bool
	}{
		{
			name: "successful creation keyed by employee",
			setupMock: func() {
				employee.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				university.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, education model.Education) error {
						assert.Equal(t, req.EmployeeID, education.ID)

						return nil
					})
			},
		},
		{
			name: "employee not found",
			setupMock: func() {
				employee.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: service.ErrEmployeeNotFound,
		},
		{
			name: "university not found",
			setupMock: func() {
				employee.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				university.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: service.ErrUniversityNotFound,
		},
		{
			name: "insert error",
			setupMock: func() {
				employee.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				university.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantAny: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Create(context.Background(), req)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantAny:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}
