package leasestore_test

import (
	"errors"
	"testing"
	"time"

	leasestore "github.com/syncboard/syncboard/internal/app/store/lease"
	"github.com/syncboard/syncboard/internal/testutil"
)

func TestStore_Acquire_ThenRelease(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := leasestore.New(db, time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Acquire(ctx, "run-1"); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if err := store.Release(ctx, "run-1"); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	// Released lease is immediately available again.
	if err := store.Acquire(ctx, "run-2"); err != nil {
		t.Fatalf("Acquire after release failed: %v", err)
	}
}

func TestStore_Acquire_HeldByOther(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := leasestore.New(db, time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Acquire(ctx, "run-1"); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	err := store.Acquire(ctx, "run-2")
	if !errors.Is(err, leasestore.ErrHeld) {
		t.Errorf("expected ErrHeld while lease is live, got %v", err)
	}
}

func TestStore_Acquire_StealsExpiredLease(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := leasestore.New(db, 10*time.Millisecond)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Acquire(ctx, "crashed-run"); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	// Wait past expiry; the abandoned lease must not block forever.
	time.Sleep(50 * time.Millisecond)

	if err := store.Acquire(ctx, "run-2"); err != nil {
		t.Fatalf("Acquire of expired lease failed: %v", err)
	}
}

func TestStore_Release_ByNonOwnerIsNoOp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := leasestore.New(db, time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Acquire(ctx, "run-1"); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if err := store.Release(ctx, "stale-run"); err != nil {
		t.Fatalf("Release by non-owner failed: %v", err)
	}

	// run-1 still holds the lease.
	err := store.Acquire(ctx, "run-2")
	if !errors.Is(err, leasestore.ErrHeld) {
		t.Errorf("expected ErrHeld after non-owner release, got %v", err)
	}
}
