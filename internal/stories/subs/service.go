package subs

import (
	"context"
	"time"

	"gatebot/internal/apperrors"
	"gatebot/internal/stories/plans"
)

// Service owns membership validity. Nothing else caches expiry state across
// calls; every read goes back to the store.
type Service struct {
	storage Storage
	now     func() time.Time
}

func NewService(storage Storage) *Service {
	return &Service{
		storage: storage,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Grant records membership for months*30 days from now, replacing any
// existing record. A repeated grant resets the expiry; it never adds to it.
func (s *Service) Grant(ctx context.Context, userID int64, months int) (time.Time, error) {
	if months <= 0 {
		return time.Time{}, apperrors.E(apperrors.KindValidation, "months must be positive, got %d", months)
	}

	expiresAt := s.now().Add(time.Duration(months) * plans.MonthDuration)
	if err := s.storage.UpsertSubscription(ctx, userID, expiresAt); err != nil {
		return time.Time{}, apperrors.Wrap(apperrors.KindStore, err, "upsert subscription")
	}
	return expiresAt, nil
}

// Revoke drops the membership record. Absent records are fine.
func (s *Service) Revoke(ctx context.Context, userID int64) error {
	if err := s.storage.RemoveSubscription(ctx, userID); err != nil {
		return apperrors.Wrap(apperrors.KindStore, err, "remove subscription")
	}
	return nil
}

// Status returns the user's expiry, or nil for non-members.
func (s *Service) Status(ctx context.Context, userID int64) (*time.Time, error) {
	expiry, err := s.storage.GetExpiry(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindStore, err, "get expiry")
	}
	return expiry, nil
}

// List returns the full membership snapshot ordered by expiry.
func (s *Service) List(ctx context.Context) ([]Subscription, error) {
	list, err := s.storage.ListSubscriptions(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindStore, err, "list subscriptions")
	}
	return list, nil
}

// ExpiredAsOf returns every member whose expiry is at or before now.
func (s *Service) ExpiredAsOf(ctx context.Context, now time.Time) ([]int64, error) {
	ids, err := s.storage.ListExpired(ctx, now)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindStore, err, "list expired")
	}
	return ids, nil
}

// Now reports the service clock. The sweeper schedules against the same
// clock grants are computed with.
func (s *Service) Now() time.Time {
	return s.now()
}
