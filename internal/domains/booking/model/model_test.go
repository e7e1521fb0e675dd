package model_test

import (
	"encoding/json"
	"testing"

	"bms/internal/domains/booking/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, "requested", model.StatusRequested.String())
	assert.Equal(t, "deleted", model.StatusDeleted.String())
	assert.Equal(t, "status(9)", model.Status(9).String())

	assert.True(t, model.StatusRequested.Active())
	assert.True(t, model.StatusApproved.Active())
	assert.False(t, model.StatusCanceled.Active())

	status, err := model.ParseStatus("completed")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, status)

	_, err = model.ParseStatus("pending")
	assert.Error(t, err)
}

func TestStatusJSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		Status model.Status `json:"status"`
	}{model.StatusApproved})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"approved"}`, string(raw))

	var decoded struct {
		Status model.Status `json:"status"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"status":"rejected"}`), &decoded))
	assert.Equal(t, model.StatusRejected, decoded.Status)

	assert.Error(t, json.Unmarshal([]byte(`{"status":2}`), &decoded))
	assert.Error(t, json.Unmarshal([]byte(`{"status":"lost"}`), &decoded))
}
