package dto_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/taskdesk/internal/domain"
	"github.com/mtlprog/taskdesk/internal/handler/dto"
)

func TestDecodeTaskPatch(t *testing.T) {
	patch, err := dto.DecodeTaskPatch(strings.NewReader(`{"status":"resolved","remarks":"done"}`))
	require.NoError(t, err)
	require.NotNil(t, patch.Status)
	assert.Equal(t, domain.TaskStatusResolved, *patch.Status)
	assert.True(t, patch.Remarks.Set)
	require.NotNil(t, patch.Remarks.Value)
	assert.Equal(t, "done", *patch.Remarks.Value)
	assert.Nil(t, patch.ComplaintNumber)
	assert.Nil(t, patch.CreatedBy)
}

func TestDecodeTaskPatch_NullRemarksClears(t *testing.T) {
	patch, err := dto.DecodeTaskPatch(strings.NewReader(`{"remarks":null}`))
	require.NoError(t, err)
	assert.True(t, patch.Remarks.Set)
	assert.Nil(t, patch.Remarks.Value)
	assert.False(t, patch.IsEmpty())
}

func TestDecodeTaskPatch_EmptyObject(t *testing.T) {
	patch, err := dto.DecodeTaskPatch(strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.True(t, patch.IsEmpty())
}

func TestDecodeTaskPatch_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"unknown key", `{"priority":"high"}`, domain.ErrValidation},
		{"id is not mutable", `{"id":7}`, domain.ErrValidation},
		{"null required field", `{"created_by":null}`, domain.ErrValidation},
		{"wrong type", `{"status":3}`, domain.ErrValidation},
		{"remarks wrong type", `{"remarks":true}`, domain.ErrValidation},
		{"malformed", `{"status":`, dto.ErrInvalidJSON},
		{"array", `["status"]`, dto.ErrInvalidJSON},
		{"null body", `null`, dto.ErrInvalidJSON},
		{"empty body", ``, dto.ErrInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dto.DecodeTaskPatch(strings.NewReader(tt.body))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeCreateTask(t *testing.T) {
	req, err := dto.DecodeCreateTask(strings.NewReader(`{"complaint_number":"TASK001","created_by":"alice"}`))
	require.NoError(t, err)
	assert.Equal(t, "TASK001", req.ComplaintNumber)
	assert.Equal(t, "alice", req.CreatedBy)
	assert.Nil(t, req.Status)
	assert.Nil(t, req.Remarks)

	_, err = dto.DecodeCreateTask(strings.NewReader(`{"complaint_number":"T","created_by":"a","owner":"x"}`))
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "owner", verr.Field)

	_, err = dto.DecodeCreateTask(strings.NewReader(`not json`))
	assert.ErrorIs(t, err, dto.ErrInvalidJSON)
}

func TestMapDomainError(t *testing.T) {
	status, body := dto.MapDomainError(domain.NewValidationError("limit", "must be between 1 and 500"))
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "limit", body.Error.Field)

	status, body = dto.MapDomainError(domain.ErrTaskNotFound)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "TASK_NOT_FOUND", body.Error.Code)

	status, body = dto.MapDomainError(errors.Join(domain.ErrPersistence, errors.New("dial tcp: refused")))
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "PERSISTENCE_ERROR", body.Error.Code)

	status, body = dto.MapDomainError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
}
