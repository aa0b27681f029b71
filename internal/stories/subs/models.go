package subs

import "time"

// Subscription is the one persisted fact in the system: who is a member and
// until when. Absence means never subscribed or fully expired and swept.
type Subscription struct {
	UserID    int64
	ExpiresAt time.Time
}

func (s Subscription) ExpiredAt(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
