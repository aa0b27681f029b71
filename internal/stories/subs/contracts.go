package subs

import (
	"context"
	"time"
)

type Storage interface {
	UpsertSubscription(ctx context.Context, userID int64, expiresAt time.Time) error
	RemoveSubscription(ctx context.Context, userID int64) error
	GetExpiry(ctx context.Context, userID int64) (*time.Time, error)
	ListSubscriptions(ctx context.Context) ([]Subscription, error)
	ListExpired(ctx context.Context, now time.Time) ([]int64, error)
}
