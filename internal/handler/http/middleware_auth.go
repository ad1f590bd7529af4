package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/escrow-api/internal/logger"
	"github.com/MKhiriev/escrow-api/internal/service"
	"github.com/MKhiriev/escrow-api/internal/utils"
	"github.com/MKhiriev/escrow-api/models"
	"github.com/rs/zerolog"
)

// auth is an HTTP middleware that enforces bearer token authentication.
//
// It extracts the token from the "Authorization" header, resolves it into
// the caller's identity via [service.AuthService.Authenticate] and stores
// the identity in the request context under [utils.IdentityCtxKey].
//
// Requests are rejected with 401 Unauthorized when:
//   - the header is absent or not of the "Bearer <token>" form;
//   - the token is malformed, expired or signed with another key;
//   - the token subject no longer exists.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := getTokenFromAuthHeader(r.Header.Get("Authorization"))
		if err != nil {
			log.Debug().Err(err).Msg("request without usable token")
			writeMessage(w, r, msgAccessTokenRequired, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		identity, err := h.services.AuthService.Authenticate(ctx, tokenString)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUserNotFound):
				log.Debug().Err(err).Msg("token subject does not exist")
				writeMessage(w, r, msgUserNotFound, http.StatusUnauthorized)
			case errors.Is(err, service.ErrUnauthenticated):
				log.Debug().Err(err).Msg("token rejected")
				writeMessage(w, r, msgInvalidToken, http.StatusUnauthorized)
			default:
				writeError(w, r, fmt.Errorf("authentication failed: %w", err))
			}
			return
		}

		l := log.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Int64("user_id", identity.ID)
		})
		ctx = l.WithContext(utils.WithIdentity(ctx, identity))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// updateUserStatus marks the authenticated caller online before the route
// runs, so a handler that changes presence itself (logout) writes last.
// A failed update is logged and never changes the response.
func (h *Handler) updateUserStatus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
			if err := h.services.UserService.TouchPresence(r.Context(), userID); err != nil {
				logger.FromRequest(r).Warn().Err(err).Int64("user_id", userID).Msg("presence update failed")
			}
		}

		next.ServeHTTP(w, r)
	})
}

// requireUserType admits only callers whose role equals userType.
// It must run after auth.
func (h *Handler) requireUserType(userType models.UserType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := utils.GetIdentityFromContext(r.Context())
			if !ok {
				writeMessage(w, r, msgAccessTokenRequired, http.StatusUnauthorized)
				return
			}

			if identity.UserType != userType {
				logger.FromRequest(r).Debug().
					Str("user_type", string(identity.UserType)).
					Str("required", string(userType)).
					Msg("role check failed")
				writeMessage(w, r, fmt.Sprintf("Access denied. %s role required.", userType), http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getTokenFromAuthHeader extracts the token from a raw "Authorization"
// header value of the form "Bearer <token>".
func getTokenFromAuthHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrEmptyAuthorizationHeader
	}

	tokenString, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAuthorizationHeader, err)
	}

	return tokenString, nil
}
