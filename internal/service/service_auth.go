package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/escrow-api/internal/config"
	"github.com/MKhiriev/escrow-api/internal/logger"
	"github.com/MKhiriev/escrow-api/internal/store"
	"github.com/MKhiriev/escrow-api/internal/validators"
	"github.com/MKhiriev/escrow-api/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It handles signup, signin and logout using a UserRepository for
// persistence, bcrypt for password hashing and a TokenService for bearer
// tokens.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	tokens    TokenService
	validator validators.Validator

	// bcryptCost is the work factor of new password hashes.
	bcryptCost int

	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and TokenService.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, tokens TokenService, validator validators.Validator, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokens:         tokens,
		validator:      validator,
		bcryptCost:     cfg.BcryptCost,
		now:            time.Now,
		logger:         logger,
	}
}

// Signup creates a new account and issues its first token.
//
// Returns:
//   - a *validators.ValidationError when the request shape is invalid.
//   - ErrEmailTaken if the email is registered, either found by the explicit
//     lookup or rejected by the unique index on insert.
func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, models.Token{}, err
	}

	_, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	switch {
	case err == nil:
		log.Info().Str("email", req.Email).Msg("signup with registered email")
		return models.User{}, models.Token{}, ErrEmailTaken
	case !errors.Is(err, store.ErrNoUserWasFound):
		return models.User{}, models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, models.Token{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
		UserType:     models.UserType(req.UserType),
		Avatar:       req.Avatar,
		Bio:          req.Bio,
		Location:     req.Location,
		Skills:       models.StringList(req.Skills).Normalize(true),
		HourlyRate:   req.HourlyRate,
	})
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		return models.User{}, models.Token{}, ErrEmailTaken
	}
	if err != nil {
		log.Err(err).Msg("user creation ended with error")
		return models.User{}, models.Token{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	token, err := a.tokens.Issue(ctx, user.ID)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	log.Info().Int64("user_id", user.ID).Str("user_type", string(user.UserType)).Msg("user signed up")
	return user, token, nil
}

// Signin authenticates an existing user. An unknown email and a wrong
// password both yield ErrInvalidCredentials.
func (a *authService) Signin(ctx context.Context, req models.SigninRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, models.Token{}, err
	}

	user, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Msg("signin with unknown email")
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Info().Int64("user_id", user.ID).Msg("signin with wrong password")
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}

	now := a.now()
	if err = a.userRepository.SetPresence(ctx, user.ID, true, now); err != nil {
		log.Err(err).Int64("user_id", user.ID).Msg("could not mark user online")
	} else {
		user.IsOnline = true
		user.LastSeen = &now
	}

	token, err := a.tokens.Issue(ctx, user.ID)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

// Logout marks the user offline. The token itself stays valid until expiry.
func (a *authService) Logout(ctx context.Context, userID int64) error {
	if err := a.userRepository.SetPresence(ctx, userID, false, a.now()); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}

// Authenticate verifies tokenString and re-checks that its user still
// exists.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.Identity, error) {
	userID, err := a.tokens.Verify(ctx, tokenString)
	if err != nil {
		return models.Identity{}, err
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.Identity{}, ErrUserNotFound
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user.Identity(), nil
}
