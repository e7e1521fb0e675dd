package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"bms/config"
	"bms/infras/otel/mocks"
	bookingMocks "bms/internal/domains/booking/mocks"
	"bms/internal/domains/booking/model"
	"bms/internal/domains/booking/model/dto"
	"bms/internal/domains/booking/service"
	employeeMocks "bms/internal/domains/employee/mocks"
	roomMocks "bms/internal/domains/room/mocks"
	roomModel "bms/internal/domains/room/model"
	cacheMocks "bms/shared/cache/mocks"
	"bms/shared/constant"
	gDto "bms/shared/dto"
	"bms/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo     *bookingMocks.MockBooking
	room     *roomMocks.MockRoom
	employee *employeeMocks.MockEmployee
	cache    *cacheMocks.MockRedisCache
	svc      service.Booking
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:     bookingMocks.NewMockBooking(ctrl),
		room:     roomMocks.NewMockRoom(ctrl),
		employee: employeeMocks.NewMockEmployee(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.room, f.employee, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func createRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		StartDate:  date(2024, time.January, 1, 9, 0),
		EndDate:    date(2024, time.January, 1, 11, 0),
		Remarks:    "weekly sync",
		RoomID:     "7d3f0c2e-8a55-4b7e-9a39-1f1e3c0c9b11",
		EmployeeID: "0b8f5d8e-2c1f-4f0e-8d6c-56a2d0a0c4f2",
	}
}

func TestBookingService_Create(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   error
		wantCode  int
	}{
		{
			name: "successful creation defaults to requested",
			setupMock: func() {
				f.room.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.employee.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.NotEmpty(t, booking.ID)
						assert.Equal(t, model.StatusRequested, booking.Status)
						assert.Equal(t, "test-user-id", booking.CreatedBy)

						return nil
					})
			},
		},
		{
			name: "room not found",
			setupMock: func() {
				f.room.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: service.ErrRoomNotFound,
		},
		{
			name: "employee not found",
			setupMock: func() {
				f.room.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.employee.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: service.ErrEmployeeNotFound,
		},
		{
			name: "overlapping booking",
			setupMock: func() {
				f.room.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.employee.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr: service.ErrBookingOverlap,
		},
		{
			name: "concurrent insert hits exclusion constraint",
			setupMock: func() {
				f.room.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.employee.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeExclusionViolation})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "room lookup error",
			setupMock: func() {
				f.room.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := f.svc.Create(ctx, createRequest())

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantCode != 0:
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Create_CanceledSkipsOverlap(t *testing.T) {
	f := newFixture(t)

	f.room.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.employee.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	req := createRequest()
	req.Status = "canceled"

	assert.NoError(t, f.svc.Create(context.Background(), req))
}

func TestBookingService_Get(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   error
	}{
		{
			name: "found",
			setupMock: func() {
				f.cache.EXPECT().Get(gomock.Any(), "booking:get:b-1", gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b-1", Status: model.StatusApproved}, nil)
			},
		},
		{
			name: "not found",
			setupMock: func() {
				f.cache.EXPECT().Get(gomock.Any(), "booking:get:b-1", gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantErr: service.ErrBookingNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Get(context.Background(), "b-1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "approved", res.Status)
			}
		})
	}
}

func TestBookingService_Update(t *testing.T) {
	f := newFixture(t)

	current := model.Booking{
		ID:         "b-1",
		StartDate:  date(2024, time.January, 1, 9, 0),
		EndDate:    date(2024, time.January, 1, 11, 0),
		Status:     model.StatusRequested,
		RoomID:     "r-1",
		EmployeeID: "e-1",
	}

	earlier := date(2024, time.January, 1, 8, 0)
	later := date(2024, time.January, 1, 15, 0)

	tests := []struct {
		name      string
		req       dto.UpdateBookingRequest
		setupMock func()
		wantErr   error
	}{
		{
			name: "approve and extend",
			req:  dto.UpdateBookingRequest{EndDate: &later, Status: "approved"},
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, int(model.StatusApproved), fields[model.FieldStatus])
						assert.Equal(t, later, fields[model.FieldEndDate])
						assert.NotContains(t, fields, model.FieldStartDate)

						return nil
					})
			},
		},
		{
			name: "not found",
			req:  dto.UpdateBookingRequest{Remarks: "x"},
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantErr: service.ErrBookingNotFound,
		},
		{
			name: "end moved before start",
			req:  dto.UpdateBookingRequest{EndDate: &earlier},
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
			},
			wantErr: service.ErrInvalidWindow,
		},
		{
			name: "moved to an unknown room",
			req:  dto.UpdateBookingRequest{RoomID: "r-404"},
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
				f.room.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: service.ErrRoomNotFound,
		},
		{
			name: "overlaps another booking",
			req:  dto.UpdateBookingRequest{StartDate: &earlier},
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr: service.ErrBookingOverlap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Update(context.Background(), tt.req, "b-1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Delete(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   error
	}{
		{
			name: "successful delete",
			setupMock: func() {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "not found",
			setupMock: func() {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: service.ErrBookingNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Delete(context.Background(), "b-1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Durations(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantLen   int
	}{
		{
			name: "computes from repositories",
			setupMock: func() {
				f.cache.EXPECT().Get(gomock.Any(), "booking:durations", gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{
					{RoomID: "r-2", StartDate: date(2024, time.January, 1, 0, 0), EndDate: date(2024, time.January, 1, 2, 0)},
				}, nil)
				f.room.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomModel.Room{
					{ID: "r-1", Name: "Lotus"},
					{ID: "r-2", Name: "Orchid"},
				}, nil)
			},
			wantLen: 1,
		},
		{
			name: "booking repository error",
			setupMock: func() {
				f.cache.EXPECT().Get(gomock.Any(), "booking:durations", gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantErr: true,
		},
		{
			name: "room repository error",
			setupMock: func() {
				f.cache.EXPECT().Get(gomock.Any(), "booking:durations", gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.room.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Durations(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, res)
				assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
			} else {
				require.NoError(t, err)
				require.Len(t, res, tt.wantLen)
				assert.Equal(t, "Orchid", res[0].RoomName)
				assert.Equal(t, "0 Day 3 Hour", res[0].BookingLength)
			}
		})
	}
}

func TestOverlapFilter(t *testing.T) {
	booking := model.Booking{
		RoomID:    "r-1",
		StartDate: date(2024, time.January, 1, 9, 0),
		EndDate:   date(2024, time.January, 1, 11, 0),
	}

	filter := service.OverlapFilter(booking, "b-1")
	where, args := filter.GetWhereClause()

	assert.True(t, strings.Contains(where, "bookings.start_date < :window_end"))
	assert.True(t, strings.Contains(where, "bookings.end_date > :window_start"))
	assert.True(t, strings.Contains(where, "bookings.status IN (:active_status_0, :active_status_1)"))
	assert.True(t, strings.Contains(where, "bookings.id != :self_id"))
	assert.Equal(t, "r-1", args[model.FieldRoomID])
	assert.Equal(t, booking.EndDate, args["window_end"])
	assert.Equal(t, 0, args["active_status_0"])
	assert.Equal(t, 1, args["active_status_1"])

	noSelf := service.OverlapFilter(booking, constant.Empty)
	where, _ = noSelf.GetWhereClause()
	assert.NotContains(t, where, "self_id")
}
