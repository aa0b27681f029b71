package storage

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

func newTestStorage(t *testing.T) *storageImpl {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	s := New(db)
	if err := s.InitSchema(context.Background()); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return s
}

func TestUpsertLastWriteWins(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	t1 := time.Unix(1000, 0).UTC()
	t2 := time.Unix(2000, 0).UTC()

	if err := s.UpsertSubscription(ctx, 7, t1); err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertSubscription(ctx, 7, t2); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetExpiry(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || !got.Equal(t2) {
		t.Errorf("GetExpiry = %v, want %v (last write wins, not cumulative)", got, t2)
	}
}

func TestGetExpiryAbsent(t *testing.T) {
	s := newTestStorage(t)

	got, err := s.GetExpiry(context.Background(), 999)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("GetExpiry for unknown user = %v, want nil", got)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	if err := s.UpsertSubscription(ctx, 7, time.Unix(1000, 0)); err != nil {
		t.Fatal(err)
	}
	if err := s.RemoveSubscription(ctx, 7); err != nil {
		t.Fatal(err)
	}
	// Removing an absent record is a no-op, not an error.
	if err := s.RemoveSubscription(ctx, 7); err != nil {
		t.Errorf("second RemoveSubscription = %v, want nil", err)
	}

	got, err := s.GetExpiry(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("GetExpiry after remove = %v, want nil", got)
	}
}

func TestListExpired(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	now := time.Unix(5000, 0).UTC()
	fixtures := map[int64]time.Time{
		1: now.Add(-time.Hour), // expired
		2: now,                 // boundary: expires_at <= now counts as expired
		3: now.Add(time.Hour),  // still active
	}
	for id, exp := range fixtures {
		if err := s.UpsertSubscription(ctx, id, exp); err != nil {
			t.Fatal(err)
		}
	}

	expired, err := s.ListExpired(ctx, now)
	if err != nil {
		t.Fatal(err)
	}

	got := map[int64]bool{}
	for _, id := range expired {
		got[id] = true
	}
	if !got[1] || !got[2] || got[3] || len(expired) != 2 {
		t.Errorf("ListExpired = %v, want exactly {1, 2}", expired)
	}
}

func TestListExpiredMonotonicInNow(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	base := time.Unix(5000, 0).UTC()
	for i := int64(1); i <= 5; i++ {
		if err := s.UpsertSubscription(ctx, i, base.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatal(err)
		}
	}

	earlier, err := s.ListExpired(ctx, base.Add(2*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	later, err := s.ListExpired(ctx, base.Add(4*time.Hour))
	if err != nil {
		t.Fatal(err)
	}

	laterSet := map[int64]bool{}
	for _, id := range later {
		laterSet[id] = true
	}
	for _, id := range earlier {
		if !laterSet[id] {
			t.Errorf("user %d expired at the earlier instant but not the later one", id)
		}
	}
}

func TestListSubscriptionsOrderedByExpiry(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	base := time.Unix(5000, 0).UTC()
	if err := s.UpsertSubscription(ctx, 1, base.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertSubscription(ctx, 2, base.Add(3*time.Hour)); err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertSubscription(ctx, 3, base.Add(2*time.Hour)); err != nil {
		t.Fatal(err)
	}

	list, err := s.ListSubscriptions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("ListSubscriptions count = %d, want 3", len(list))
	}

	wantOrder := []int64{2, 3, 1}
	for i, sub := range list {
		if sub.UserID != wantOrder[i] {
			t.Errorf("list[%d].UserID = %d, want %d (latest expiry first)", i, sub.UserID, wantOrder[i])
		}
	}
}
