package redis

import (
	"context"
	"testing"
	"time"
)

func TestTokenStore_CreateAndValidate(t *testing.T) {
	cache, _ := newTestCache(t)
	store := NewTokenStore(cache)
	ctx := context.Background()

	token, err := store.Create(ctx, "acc_1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	accountID, ok, err := store.Validate(ctx, token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !ok || accountID != "acc_1" {
		t.Fatalf("expected acc_1, got %q ok=%v", accountID, ok)
	}

	// Each issuance mints a distinct token.
	second, err := store.Create(ctx, "acc_1")
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}
	if second == token {
		t.Fatalf("token reused across issuance calls")
	}
}

func TestTokenStore_Invalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	store := NewTokenStore(cache)
	ctx := context.Background()

	token, err := store.Create(ctx, "acc_1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Invalidate(ctx, token); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	if _, ok, err := store.Validate(ctx, token); err != nil || ok {
		t.Fatalf("expected token gone, got ok=%v err=%v", ok, err)
	}
}

func TestTokenStore_RefreshExtendsWithoutRotating(t *testing.T) {
	cache, mr := newTestCache(t)
	store := NewTokenStore(cache)
	ctx := context.Background()

	token, err := store.Create(ctx, "acc_1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	mr.FastForward(tokenTTL - time.Hour)
	if err := store.Refresh(ctx, token); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	mr.FastForward(tokenTTL - time.Hour)

	accountID, ok, err := store.Validate(ctx, token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !ok || accountID != "acc_1" {
		t.Fatalf("expected refreshed token to resolve, got ok=%v id=%q", ok, accountID)
	}
}

func TestTokenStore_Expires(t *testing.T) {
	cache, mr := newTestCache(t)
	store := NewTokenStore(cache)
	ctx := context.Background()

	token, err := store.Create(ctx, "acc_1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	mr.FastForward(tokenTTL + time.Second)

	if _, ok, err := store.Validate(ctx, token); err != nil || ok {
		t.Fatalf("expected expired token, got ok=%v err=%v", ok, err)
	}
}
