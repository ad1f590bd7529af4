package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/escrow-api/internal/logger"
	"github.com/MKhiriev/escrow-api/internal/service"
	"github.com/MKhiriev/escrow-api/internal/store"
	"github.com/MKhiriev/escrow-api/internal/utils"
	"github.com/MKhiriev/escrow-api/internal/validators"
	"github.com/MKhiriev/escrow-api/models"
)

const (
	msgInvalidRequest      = "Invalid Request"
	msgInternalServerError = "Internal Server Error"
	msgAccessTokenRequired = "Access token required"
	msgInvalidToken        = "Invalid or expired token"
	msgUserNotFound        = "User not found"
	msgRouteNotFound       = "Route not found"
)

var errorStatusMap = map[error]int{
	validators.ErrValidation: http.StatusBadRequest,
	ErrInvalidJSON:           http.StatusBadRequest,

	service.ErrEmailTaken:     http.StatusBadRequest,
	service.ErrJobNotOpen:     http.StatusBadRequest,
	service.ErrAlreadyApplied: http.StatusBadRequest,

	service.ErrInvalidCredentials: http.StatusUnauthorized,
	service.ErrUnauthenticated:    http.StatusUnauthorized,

	service.ErrForbidden: http.StatusForbidden,

	service.ErrUserNotFound:       http.StatusNotFound,
	service.ErrFreelancerNotFound: http.StatusNotFound,
	service.ErrJobNotFound:        http.StatusNotFound,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

// errorMessages is ordered: the specific forbidden variants come before
// service.ErrForbidden which they wrap.
var errorMessages = []struct {
	target  error
	message string
}{
	{validators.ErrValidation, msgInvalidRequest},
	{ErrInvalidJSON, "Invalid JSON was passed"},
	{service.ErrEmailTaken, "User with this email already exists"},
	{service.ErrInvalidCredentials, "Invalid email or password"},
	{service.ErrNotAuthorizedToUpdateJob, "Not authorized to update this job"},
	{service.ErrNotAuthorizedToDeleteJob, "Not authorized to delete this job"},
	{service.ErrNotAuthorizedToViewJob, "Not authorized to view proposals of this job"},
	{service.ErrForbidden, "Access denied"},
	{service.ErrJobNotOpen, "Job is not open for proposals"},
	{service.ErrAlreadyApplied, "You have already applied to this job"},
	{service.ErrUserNotFound, msgUserNotFound},
	{service.ErrFreelancerNotFound, "Freelancer not found"},
	{service.ErrJobNotFound, "Job not found"},
	{service.ErrUnauthenticated, msgInvalidToken},
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func messageFromError(err error) string {
	for _, m := range errorMessages {
		if errors.Is(err, m.target) {
			return m.message
		}
	}
	return msgInternalServerError
}

// writeError renders err as the JSON error body. Causes of 5xx responses are
// logged and never leave the process.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	resp := models.ErrorResponse{Message: messageFromError(err)}

	var validationErr *validators.ValidationError
	switch {
	case status >= http.StatusInternalServerError:
		log.Err(err).Msg("request failed")
		resp.Message = msgInternalServerError
	case errors.As(err, &validationErr):
		log.Debug().Err(err).Msg("request rejected by validation")
		resp.Message = msgInvalidRequest
		resp.Errors = validationErr.Fields
	default:
		log.Debug().Err(err).Int("status", status).Send()
	}

	writeJSON(w, r, resp, status)
}

func writeMessage(w http.ResponseWriter, r *http.Request, message string, status int) {
	writeJSON(w, r, models.MessageResponse{Message: message}, status)
}

func writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}
