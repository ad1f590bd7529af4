// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/escrow-api/models"
)

func TestContextKeyString(t *testing.T) {
	if IdentityCtxKey.String() != "identity" {
		t.Errorf("expected 'identity', got '%s'", IdentityCtxKey.String())
	}
}

func TestIdentityRoundTrip(t *testing.T) {
	ctx := WithIdentity(context.Background(), models.Identity{ID: 42, UserType: models.UserTypeClient})

	id, ok := GetIdentityFromContext(ctx)
	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if id.ID != 42 || id.UserType != models.UserTypeClient {
		t.Errorf("unexpected identity %+v", id)
	}

	userID, ok := GetUserIDFromContext(ctx)
	if !ok || userID != 42 {
		t.Errorf("expected 42, got %d (ok=%v)", userID, ok)
	}
}

func TestGetIdentityFromContext_Missing(t *testing.T) {
	if _, ok := GetIdentityFromContext(context.Background()); ok {
		t.Error("expected ok=false for empty context")
	}
	if _, ok := GetUserIDFromContext(context.Background()); ok {
		t.Error("expected ok=false for empty context")
	}
}

func TestGetIdentityFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), IdentityCtxKey, "not-an-identity")
	if _, ok := GetIdentityFromContext(ctx); ok {
		t.Error("expected ok=false for wrong type")
	}
}
