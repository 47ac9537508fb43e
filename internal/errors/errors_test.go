package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation error",
			err:        &ValidationError{Message: "invalid food item", Fields: map[string]string{"name": "is required"}},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "wrapped not found",
			err:        fmt.Errorf("get item: %w", ErrFoodItemNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   "FOOD_ITEM_NOT_FOUND",
		},
		{
			name:       "persistence error",
			err:        &PersistenceError{Op: "create", Err: errors.New("Error 1048: Column 'name' cannot be null")},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_HidesPersistenceDetail(t *testing.T) {
	err := &PersistenceError{Op: "update", ID: 7, Err: errors.New("dial tcp 10.0.0.3:3306: connection refused")}

	resp := MapErrorToHTTP(err).ToErrorResponse()

	assert.Equal(t, "internal server error", resp.Error)
	assert.NotContains(t, resp.Error, "10.0.0.3")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Message: "invalid food item",
		Fields:  map[string]string{"quantity": "must not be negative", "name": "is required"},
	}

	assert.Equal(t, "invalid food item: name is required, quantity must not be negative", err.Error())
	assert.Equal(t, "no fields to update", NewValidationError("no fields to update").Error())
}

func TestPersistenceError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &PersistenceError{Op: "delete", ID: 3, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "delete food item 3: boom", err.Error())
	assert.Equal(t, "list food items: boom", (&PersistenceError{Op: "list", Err: cause}).Error())
}
