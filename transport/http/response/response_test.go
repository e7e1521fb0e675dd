package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bms/shared/failure"
	"bms/transport/http/response"

	"github.com/stretchr/testify/assert"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "failure",
			err:      failure.NotFound("room not found"),
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"room not found"}`,
		},
		{
			name:     "wrapped failure keeps its message",
			err:      fmt.Errorf("failed to create booking: %w", failure.Conflict("room is already booked")),
			wantCode: http.StatusConflict,
			wantBody: `{"error":"room is already booked"}`,
		},
		{
			name:     "plain error",
			err:      errors.New("connection refused"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"connection refused"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestWithJSONAndMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithJSON(rec, http.StatusOK, map[string]int{"total": 2})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"total":2}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	response.WithMessage(rec, http.StatusCreated, "Room created successfully")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"Room created successfully"}`, rec.Body.String())
}

func TestWithCSV(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithCSV(rec, "durations.csv", []string{"room_id", "room_name"}, [][]string{{"r-1", "Lotus, 2F"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="durations.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "room_id,room_name\nr-1,\"Lotus, 2F\"\n", rec.Body.String())
}
