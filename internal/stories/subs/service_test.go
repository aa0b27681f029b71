package subs

import (
	"context"
	"errors"
	"testing"
	"time"

	"gatebot/internal/apperrors"
)

type memStorage struct {
	records map[int64]time.Time
	failAll bool
}

func newMemStorage() *memStorage {
	return &memStorage{records: make(map[int64]time.Time)}
}

func (m *memStorage) UpsertSubscription(_ context.Context, userID int64, expiresAt time.Time) error {
	if m.failAll {
		return errors.New("disk full")
	}
	m.records[userID] = expiresAt
	return nil
}

func (m *memStorage) RemoveSubscription(_ context.Context, userID int64) error {
	if m.failAll {
		return errors.New("disk full")
	}
	delete(m.records, userID)
	return nil
}

func (m *memStorage) GetExpiry(_ context.Context, userID int64) (*time.Time, error) {
	if m.failAll {
		return nil, errors.New("disk full")
	}
	exp, ok := m.records[userID]
	if !ok {
		return nil, nil
	}
	return &exp, nil
}

func (m *memStorage) ListSubscriptions(context.Context) ([]Subscription, error) {
	var out []Subscription
	for id, exp := range m.records {
		out = append(out, Subscription{UserID: id, ExpiresAt: exp})
	}
	return out, nil
}

func (m *memStorage) ListExpired(_ context.Context, now time.Time) ([]int64, error) {
	var out []int64
	for id, exp := range m.records {
		if !exp.After(now) {
			out = append(out, id)
		}
	}
	return out, nil
}

func newTestService(storage Storage, now time.Time) *Service {
	s := NewService(storage)
	s.now = func() time.Time { return now }
	return s
}

func TestGrantComputesThirtyDayMonths(t *testing.T) {
	store := newMemStorage()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(store, now)

	expiresAt, err := svc.Grant(context.Background(), 555, 2)
	if err != nil {
		t.Fatal(err)
	}

	want := now.Add(60 * 24 * time.Hour)
	if !expiresAt.Equal(want) {
		t.Errorf("Grant expiry = %v, want %v", expiresAt, want)
	}
	if got := store.records[555]; !got.Equal(want) {
		t.Errorf("stored expiry = %v, want %v", got, want)
	}
}

func TestGrantResetsNotExtends(t *testing.T) {
	store := newMemStorage()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(store, now)

	ctx := context.Background()
	if _, err := svc.Grant(ctx, 7, 3); err != nil {
		t.Fatal(err)
	}
	expiresAt, err := svc.Grant(ctx, 7, 1)
	if err != nil {
		t.Fatal(err)
	}

	want := now.Add(30 * 24 * time.Hour)
	if !expiresAt.Equal(want) {
		t.Errorf("second Grant expiry = %v, want %v (reset, not extended)", expiresAt, want)
	}
}

func TestGrantRejectsNonPositiveMonths(t *testing.T) {
	svc := newTestService(newMemStorage(), time.Now())

	for _, months := range []int{0, -2} {
		_, err := svc.Grant(context.Background(), 7, months)
		if !apperrors.IsKind(err, apperrors.KindValidation) {
			t.Errorf("Grant(months=%d) error = %v, want validation error", months, err)
		}
	}
}

func TestGrantStoreFailure(t *testing.T) {
	store := newMemStorage()
	store.failAll = true
	svc := newTestService(store, time.Now())

	_, err := svc.Grant(context.Background(), 7, 1)
	if !apperrors.IsKind(err, apperrors.KindStore) {
		t.Errorf("Grant with failing store = %v, want store error", err)
	}
}

func TestStatusAbsent(t *testing.T) {
	svc := newTestService(newMemStorage(), time.Now())

	expiry, err := svc.Status(context.Background(), 123)
	if err != nil {
		t.Fatal(err)
	}
	if expiry != nil {
		t.Errorf("Status of unknown user = %v, want nil", expiry)
	}
}
