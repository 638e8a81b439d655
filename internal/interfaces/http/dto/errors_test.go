package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(ErrCodeValidation))
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(ErrCodeNotFound))
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(ErrCodeAlreadyExists))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(ErrCodeInvalidState))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("SOMETHING_NEW"))
}

func TestResponseMeta(t *testing.T) {
	t.Run("rounds total pages up", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta(nil, 101, 1, 100)
		assert.Equal(t, 2, resp.Meta.TotalPages)
	})

	t.Run("exact division", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta(nil, 200, 2, 100)
		assert.Equal(t, 2, resp.Meta.TotalPages)
	})

	t.Run("error response carries no data", func(t *testing.T) {
		resp := NewErrorResponse(ErrCodeNotFound, "missing")
		assert.False(t, resp.Success)
		assert.Equal(t, "missing", resp.Error)
		assert.Nil(t, resp.Data)
	})
}
