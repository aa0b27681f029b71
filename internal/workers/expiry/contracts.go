package expiry

import (
	"context"
	"time"
)

type Memberships interface {
	ExpiredAsOf(ctx context.Context, now time.Time) ([]int64, error)
	Revoke(ctx context.Context, userID int64) error
}

type ChannelGate interface {
	RevokeMembership(ctx context.Context, channelID, userID int64) error
}

type Notifier interface {
	SendText(chatID int64, text string) error
}

type Localizer interface {
	Bilingual(key string, params map[string]any) string
}
