package redis

import (
	"context"
	"testing"
	"time"
)

func TestConfirmationStore_RoundTrip(t *testing.T) {
	client, _ := newStoreClient(t)

	store := NewConfirmationStore(client)
	ctx := context.Background()

	if err := store.Put(ctx, "club-1:alice", []byte(`{"operation":"deposit"}`), time.Minute); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	payload, err := store.Get(ctx, "club-1:alice")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(payload) != `{"operation":"deposit"}` {
		t.Fatalf("unexpected payload: %s", payload)
	}

	if err := store.Delete(ctx, "club-1:alice"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	payload, err = store.Get(ctx, "club-1:alice")
	if err != nil {
		t.Fatalf("Get after delete failed: %v", err)
	}
	if payload != nil {
		t.Fatalf("expected nil payload after delete, got %s", payload)
	}
}

func TestConfirmationStore_Expiry(t *testing.T) {
	client, mr := newStoreClient(t)

	store := NewConfirmationStore(client)
	ctx := context.Background()

	if err := store.Put(ctx, "club-1:bob", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	payload, err := store.Get(ctx, "club-1:bob")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if payload != nil {
		t.Fatalf("expected expired entry to be gone, got %s", payload)
	}
}
