package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/escrow-api/internal/logger"
	"github.com/MKhiriev/escrow-api/internal/mock"
	"github.com/MKhiriev/escrow-api/internal/store"
	"github.com/MKhiriev/escrow-api/internal/validators"
	"github.com/MKhiriev/escrow-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (*authService, *mock.MockUserRepository, *mock.MockTokenService) {
	t.Helper()
	users := mock.NewMockUserRepository(ctrl)
	tokens := mock.NewMockTokenService(ctrl)

	svc := NewAuthService(users, tokens, validators.NewRequestValidator(), testAppConfig(), logger.Nop()).(*authService)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	return svc, users, tokens
}

func validSignup() models.SignupRequest {
	return models.SignupRequest{
		Email:    "a@b.com",
		Password: "secret1",
		Name:     "Ann",
		UserType: "client",
	}
}

func TestAuthService_Signup_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, tokens := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		users.EXPECT().FindUserByEmail(ctx, "a@b.com").Return(models.User{}, store.ErrNoUserWasFound),
		users.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.User) (models.User, error) {
				assert.NotEqual(t, "secret1", u.PasswordHash, "plaintext must never be stored")
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")))
				assert.Equal(t, models.UserTypeClient, u.UserType)
				u.ID = 1
				return u, nil
			},
		),
		tokens.EXPECT().Issue(ctx, int64(1)).Return(models.Token{SignedString: "tok", UserID: 1}, nil),
	)

	user, token, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, "tok", token.SignedString)
}

func TestAuthService_Signup_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestAuthSvc(t, ctrl)

	req := validSignup()
	req.Email = "not-an-email"
	req.Password = "123"

	_, _, err := svc.Signup(context.Background(), req)
	require.ErrorIs(t, err, validators.ErrValidation)

	var vErr *validators.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Len(t, vErr.Fields, 2)
}

func TestAuthService_Signup_EmailTaken(t *testing.T) {
	t.Run("found by lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, users, _ := newTestAuthSvc(t, ctrl)

		users.EXPECT().FindUserByEmail(gomock.Any(), "a@b.com").Return(models.User{ID: 3}, nil)

		_, _, err := svc.Signup(context.Background(), validSignup())
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("rejected by unique index", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, users, _ := newTestAuthSvc(t, ctrl)

		users.EXPECT().FindUserByEmail(gomock.Any(), "a@b.com").Return(models.User{}, store.ErrNoUserWasFound)
		users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrEmailAlreadyExists)

		_, _, err := svc.Signup(context.Background(), validSignup())
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestAuthService_Signup_LookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _ := newTestAuthSvc(t, ctrl)

	dbErr := errors.New("connection refused")
	users.EXPECT().FindUserByEmail(gomock.Any(), gomock.Any()).Return(models.User{}, dbErr)

	_, _, err := svc.Signup(context.Background(), validSignup())
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Signin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := models.User{ID: 5, Email: "a@b.com", PasswordHash: string(hash), UserType: models.UserTypeFreelancer}

	t.Run("success marks user online", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, users, tokens := newTestAuthSvc(t, ctrl)

		users.EXPECT().FindUserByEmail(gomock.Any(), "a@b.com").Return(stored, nil)
		users.EXPECT().SetPresence(gomock.Any(), int64(5), true, svc.now()).Return(nil)
		tokens.EXPECT().Issue(gomock.Any(), int64(5)).Return(models.Token{SignedString: "tok"}, nil)

		user, token, err := svc.Signin(context.Background(), models.SigninRequest{Email: "a@b.com", Password: "secret1"})
		require.NoError(t, err)
		assert.True(t, user.IsOnline)
		require.NotNil(t, user.LastSeen)
		assert.Equal(t, svc.now(), *user.LastSeen)
		assert.Equal(t, "tok", token.SignedString)
	})

	t.Run("presence failure does not block signin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, users, tokens := newTestAuthSvc(t, ctrl)

		users.EXPECT().FindUserByEmail(gomock.Any(), "a@b.com").Return(stored, nil)
		users.EXPECT().SetPresence(gomock.Any(), int64(5), true, gomock.Any()).Return(errors.New("boom"))
		tokens.EXPECT().Issue(gomock.Any(), int64(5)).Return(models.Token{SignedString: "tok"}, nil)

		_, _, err := svc.Signin(context.Background(), models.SigninRequest{Email: "a@b.com", Password: "secret1"})
		assert.NoError(t, err)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, users, _ := newTestAuthSvc(t, ctrl)

		users.EXPECT().FindUserByEmail(gomock.Any(), "nobody@b.com").Return(models.User{}, store.ErrNoUserWasFound)
		users.EXPECT().FindUserByEmail(gomock.Any(), "a@b.com").Return(stored, nil)

		_, _, errUnknown := svc.Signin(context.Background(), models.SigninRequest{Email: "nobody@b.com", Password: "secret1"})
		_, _, errWrong := svc.Signin(context.Background(), models.SigninRequest{Email: "a@b.com", Password: "secret2"})

		assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _ := newTestAuthSvc(t, ctrl)

	users.EXPECT().SetPresence(gomock.Any(), int64(5), false, svc.now()).Return(nil)

	assert.NoError(t, svc.Logout(context.Background(), 5))
}

func TestAuthService_Authenticate(t *testing.T) {
	t.Run("identity never carries the hash", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, users, tokens := newTestAuthSvc(t, ctrl)

		tokens.EXPECT().Verify(gomock.Any(), "tok").Return(int64(5), nil)
		users.EXPECT().FindUserByID(gomock.Any(), int64(5)).
			Return(models.User{ID: 5, Email: "a@b.com", PasswordHash: "hash", UserType: models.UserTypeClient}, nil)

		id, err := svc.Authenticate(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, int64(5), id.ID)
		assert.Equal(t, models.UserTypeClient, id.UserType)
	})

	t.Run("token failure is passed through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, _, tokens := newTestAuthSvc(t, ctrl)

		tokens.EXPECT().Verify(gomock.Any(), "tok").Return(int64(0), ErrTokenExpired)

		_, err := svc.Authenticate(context.Background(), "tok")
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("deleted user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, users, tokens := newTestAuthSvc(t, ctrl)

		tokens.EXPECT().Verify(gomock.Any(), "tok").Return(int64(5), nil)
		users.EXPECT().FindUserByID(gomock.Any(), int64(5)).Return(models.User{}, store.ErrNoUserWasFound)

		_, err := svc.Authenticate(context.Background(), "tok")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
