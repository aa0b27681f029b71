package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gatebot/internal/stories/subs"

	sq "github.com/Masterminds/squirrel"
	"github.com/samber/lo"
)

const subscriptionsTable = "subscriptions"

var subscriptionRowFields = fields(subscriptionRow{})

// Expiry instants are stored as epoch seconds.
type subscriptionRow struct {
	UserID    int64 `db:"user_id"`
	ExpiresAt int64 `db:"expires_at"`
}

func (r subscriptionRow) ToModel() subs.Subscription {
	return subs.Subscription{
		UserID:    r.UserID,
		ExpiresAt: time.Unix(r.ExpiresAt, 0).UTC(),
	}
}

// UpsertSubscription inserts or replaces the record for a user. REPLACE
// semantics: a repeated approval resets the expiry, it never extends it.
func (s *storageImpl) UpsertSubscription(ctx context.Context, userID int64, expiresAt time.Time) error {
	q, args, err := s.stmpBuilder().
		Replace(subscriptionsTable).
		Columns("user_id", "expires_at").
		Values(userID, expiresAt.Unix()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build sql query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("db.ExecContext: %w", err)
	}
	return nil
}

// RemoveSubscription deletes the record if present; removing an absent user
// is a no-op.
func (s *storageImpl) RemoveSubscription(ctx context.Context, userID int64) error {
	q, args, err := s.stmpBuilder().
		Delete(subscriptionsTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build sql query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("db.ExecContext: %w", err)
	}
	return nil
}

// GetExpiry returns the current expiry, or nil when the user has never
// subscribed or was already swept.
func (s *storageImpl) GetExpiry(ctx context.Context, userID int64) (*time.Time, error) {
	q, args, err := s.stmpBuilder().
		Select(subscriptionRowFields).
		From(subscriptionsTable).
		Where(sq.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var row subscriptionRow
	err = s.db.GetContext(ctx, &row, q, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db.GetContext: %w", err)
	}

	expiry := row.ToModel().ExpiresAt
	return &expiry, nil
}

// ListSubscriptions returns a full snapshot ordered by expiry, latest first.
func (s *storageImpl) ListSubscriptions(ctx context.Context) ([]subs.Subscription, error) {
	q, args, err := s.stmpBuilder().
		Select(subscriptionRowFields).
		From(subscriptionsTable).
		OrderBy("expires_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var rows []subscriptionRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext: %w", err)
	}

	return lo.Map(rows, func(r subscriptionRow, _ int) subs.Subscription {
		return r.ToModel()
	}), nil
}

// ListExpired returns the ids of every user whose expiry is at or before now.
func (s *storageImpl) ListExpired(ctx context.Context, now time.Time) ([]int64, error) {
	q, args, err := s.stmpBuilder().
		Select("user_id").
		From(subscriptionsTable).
		Where(sq.LtOrEq{"expires_at": now.Unix()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var ids []int64
	if err := s.db.SelectContext(ctx, &ids, q, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext: %w", err)
	}
	return ids, nil
}
