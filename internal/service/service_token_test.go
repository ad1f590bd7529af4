package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/escrow-api/internal/config"
	"github.com/MKhiriev/escrow-api/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const week = 7 * 24 * time.Hour

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "escrow-api",
		TokenDuration: week,
		BcryptCost:    4,
		Version:       "test",
	}
}

// fakeClock is a settable time source.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func TestTokenService_IssueVerify(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	svc := newTokenService(testAppConfig(), clock.Now, logger.Nop())
	ctx := context.Background()

	token, err := svc.Issue(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)
	assert.Equal(t, "42", token.Subject)
	assert.True(t, clock.t.Add(week).Equal(token.ExpiresAt.Time))

	userID, err := svc.Verify(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenService_LifetimeBoundary(t *testing.T) {
	issuedAt := time.Unix(1_700_000_000, 0)

	tests := []struct {
		name    string
		elapsed time.Duration
		wantErr error
	}{
		{name: "fresh", elapsed: 0},
		{name: "one second before expiry", elapsed: week - time.Second},
		{name: "exactly at expiry", elapsed: week, wantErr: ErrTokenExpired},
		{name: "after expiry", elapsed: week + time.Hour, wantErr: ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{t: issuedAt}
			svc := newTokenService(testAppConfig(), clock.Now, logger.Nop())

			token, err := svc.Issue(context.Background(), 7)
			require.NoError(t, err)

			clock.t = issuedAt.Add(tt.elapsed)
			_, err = svc.Verify(context.Background(), token.SignedString)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrUnauthenticated)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTokenService_VerifyFailures(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTokenService(testAppConfig(), clock.Now, logger.Nop())

	otherKey := testAppConfig()
	otherKey.TokenSignKey = "another-key"
	forged, err := newTokenService(otherKey, clock.Now, logger.Nop()).Issue(context.Background(), 1)
	require.NoError(t, err)

	otherIssuer := testAppConfig()
	otherIssuer.TokenIssuer = "someone-else"
	foreign, err := newTokenService(otherIssuer, clock.Now, logger.Nop()).Issue(context.Background(), 1)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "garbage", token: "not-a-token", wantErr: ErrTokenMalformed},
		{name: "empty", token: "", wantErr: ErrTokenMalformed},
		{name: "wrong key", token: forged.SignedString, wantErr: ErrTokenSignatureMismatch},
		{name: "wrong issuer", token: foreign.SignedString, wantErr: ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(context.Background(), tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTokenService_IssueWithoutKeyFails(t *testing.T) {
	cfg := testAppConfig()
	cfg.TokenSignKey = ""

	_, err := NewTokenService(cfg, logger.Nop()).Issue(context.Background(), 1)
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}
