package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/escrow-api/internal/service"
	"github.com/MKhiriev/escrow-api/internal/store"
	"github.com/MKhiriev/escrow-api/internal/validators"
)

func TestStatusAndMessageFromError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"validation", validators.NewValidationError("email", "Invalid email address"), http.StatusBadRequest, "Invalid Request"},
		{"bad json", fmt.Errorf("%w: unexpected EOF", ErrInvalidJSON), http.StatusBadRequest, "Invalid JSON was passed"},
		{"email taken", service.ErrEmailTaken, http.StatusBadRequest, "User with this email already exists"},
		{"credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
		{"expired token", service.ErrTokenExpired, http.StatusUnauthorized, "Invalid or expired token"},
		{"update forbidden", service.ErrNotAuthorizedToUpdateJob, http.StatusForbidden, "Not authorized to update this job"},
		{"delete forbidden", fmt.Errorf("wrapped: %w", service.ErrNotAuthorizedToDeleteJob), http.StatusForbidden, "Not authorized to delete this job"},
		{"plain forbidden", service.ErrForbidden, http.StatusForbidden, "Access denied"},
		{"job not found", service.ErrJobNotFound, http.StatusNotFound, "Job not found"},
		{"user not found", service.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"already applied", service.ErrAlreadyApplied, http.StatusBadRequest, "You have already applied to this job"},
		{"store failure", fmt.Errorf("%w: timeout", store.ErrExecutingQuery), http.StatusInternalServerError, "Internal Server Error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, statusFromError(tt.err))
			assert.Equal(t, tt.wantMessage, messageFromError(tt.err))
		})
	}
}

func TestWriteError_Validation(t *testing.T) {
	var errs validators.FieldErrors
	errs.Add("title", "Title must be at least 5 characters long")
	errs.Add("budget", "Budget must be a positive number")

	rr := httptest.NewRecorder()
	writeError(rr, httptest.NewRequest(http.MethodPost, "/api/jobs", nil), fmt.Errorf("create: %w", errs.Err()))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	resp := errorBody(t, rr)
	assert.Equal(t, "Invalid Request", resp.Message)
	require.Len(t, resp.Errors, 2)
	assert.Equal(t, "title", resp.Errors[0].Field)
	assert.Equal(t, "budget", resp.Errors[1].Field)
}

func TestWriteError_HidesInternalCause(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, httptest.NewRequest(http.MethodGet, "/api/jobs", nil),
		fmt.Errorf("%w: password authentication failed for user postgres", store.ErrExecutingQuery))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"message":"Internal Server Error"}`, rr.Body.String())
}
