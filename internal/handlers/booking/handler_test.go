package booking_test

import (
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	otelMocks "bms/infras/otel/mocks"
	"bms/internal/domains/booking/model"
	"bms/internal/domains/booking/model/dto"
	serviceMocks "bms/internal/domains/booking/service/mocks"
	"bms/internal/handlers/booking"
	"bms/shared/constant"
	gDto "bms/shared/dto"
	"bms/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*serviceMocks.MockBooking, chi.Router) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := serviceMocks.NewMockBooking(ctrl)

	handler := booking.New(svc, otelMocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func TestHandler_ExportBookingDurations(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Durations(gomock.Any()).Return([]dto.BookingDurationResponse{
		{RoomID: "room-1", RoomName: "Borneo", WorkingHours: 27, BookingLength: "1 Day 3 Hour"},
		{RoomID: "room-2", RoomName: "Java, East", WorkingHours: 3, BookingLength: "0 Day 3 Hour"},
	}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/durations/export", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, constant.ContentTypeCSV, rec.Header().Get(constant.RequestHeaderContentType))
	assert.Contains(t, rec.Header().Get(constant.RequestHeaderContentDisposition), "booking-durations.csv")

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		dto.DurationCSVHeader,
		{"room-1", "Borneo", "27", "1 Day 3 Hour"},
		{"room-2", "Java, East", "3", "0 Day 3 Hour"},
	}, records)
}

func TestHandler_GetBookingDurations(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(svc *serviceMocks.MockBooking)
		wantCode  int
		wantBody  string
	}{
		{
			name: "empty report is an empty list",
			setupMock: func(svc *serviceMocks.MockBooking) {
				svc.EXPECT().Durations(gomock.Any()).Return([]dto.BookingDurationResponse{}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `{"data":[]}`,
		},
		{
			name: "service failure",
			setupMock: func(svc *serviceMocks.MockBooking) {
				svc.EXPECT().Durations(gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)
			tt.setupMock(svc)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/durations", nil))

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestHandler_CreateBooking(t *testing.T) {
	validBody := `{
		"start_date": "2024-01-01T09:00:00Z",
		"end_date": "2024-01-01T11:00:00Z",
		"remarks": "sprint planning",
		"room_id": "0b0e8a36-5f0b-4b8e-9d4f-1a2b3c4d5e6f",
		"employee_id": "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	}`

	tests := []struct {
		name      string
		body      string
		setupMock func(svc *serviceMocks.MockBooking)
		wantCode  int
	}{
		{
			name: "created",
			body: validBody,
			setupMock: func(svc *serviceMocks.MockBooking) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req dto.CreateBookingRequest) error {
						assert.Equal(t, "sprint planning", req.Remarks)

						return nil
					})
			},
			wantCode: http.StatusCreated,
		},
		{
			name:     "end before start",
			body:     strings.Replace(validBody, "11:00:00Z", "08:00:00Z", 1),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown status",
			body:     strings.Replace(validBody, `"remarks"`, `"status": "pending", "remarks"`, 1),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed json",
			body:     `{"start_date":`,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "overlap",
			body: validBody,
			setupMock: func(svc *serviceMocks.MockBooking) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(failure.Conflict("room is already booked for that time"))
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandler_GetBookings(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
			assert.Equal(t, 2, params.Page)
			assert.Equal(t, model.FieldStartDate, params.SortBy)

			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "bookings.room_id")
			assert.Contains(t, where, "bookings.status")
			assert.Equal(t, int(model.StatusApproved), args[model.FieldStatus])

			return dto.GetBookingsResponse{Bookings: []dto.BookingResponse{}, TotalPage: 1}, nil
		})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings?page=2&sort_by=start_date&room_id=room-1&status=approved", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_GetMyBookings(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, "employee-1", args[model.FieldEmployeeID])

			return dto.GetBookingsResponse{}, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/bookings/mine", nil)
	req = req.WithContext(context.WithValue(req.Context(), constant.ContextKeyUserID, "employee-1"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
