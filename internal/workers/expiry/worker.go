// Package expiry removes members whose paid time ran out: a scheduled sweep
// that kicks them from the channel, forgets their subscription and tells
// them how to come back.
package expiry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

type Worker struct {
	members   Memberships
	gate      ChannelGate
	notifier  Notifier
	localizer Localizer
	channelID int64
	schedule  string
	logger    *slog.Logger

	cron *cron.Cron
	// runMu keeps sweeps from overlapping if the schedule is shortened.
	runMu sync.Mutex
}

func NewWorker(
	members Memberships,
	gate ChannelGate,
	notifier Notifier,
	localizer Localizer,
	channelID int64,
	schedule string,
	logger *slog.Logger,
) *Worker {
	return &Worker{
		members:   members,
		gate:      gate,
		notifier:  notifier,
		localizer: localizer,
		channelID: channelID,
		schedule:  schedule,
		logger:    logger,
		cron:      cron.New(),
	}
}

func (w *Worker) Name() string {
	return "expiry"
}

func (w *Worker) Start() error {
	if _, err := w.cron.AddFunc(w.schedule, w.sweep); err != nil {
		return fmt.Errorf("schedule expiry sweep: %w", err)
	}

	w.cron.Start()
	w.logger.Info("Expiry sweeper scheduled", slog.String("schedule", w.schedule))
	return nil
}

// sweep is the scheduled entry point. A tick that fires while the previous
// run is still going is skipped, not queued.
func (w *Worker) sweep() {
	if !w.runMu.TryLock() {
		w.logger.Warn("Skipping expiry sweep, previous run still in progress")
		return
	}
	defer w.runMu.Unlock()

	if err := w.RunOnce(context.Background(), time.Now()); err != nil {
		w.logger.Error("Expiry sweep failed", slog.Any("error", err))
	}
}

func (w *Worker) Stop() {
	<-w.cron.Stop().Done()
}

// RunOnce sweeps everyone expired as of now. One member failing never stops
// the rest. A member is forgotten only after the channel kick succeeds, so a
// failed kick is retried by the next sweep.
func (w *Worker) RunOnce(ctx context.Context, now time.Time) error {
	expired, err := w.members.ExpiredAsOf(ctx, now)
	if err != nil {
		return fmt.Errorf("list expired memberships: %w", err)
	}
	if len(expired) == 0 {
		sweepsTotal.Inc()
		return nil
	}

	w.logger.Info("Sweeping expired memberships", slog.Int("count", len(expired)))

	for _, userID := range expired {
		if err := w.gate.RevokeMembership(ctx, w.channelID, userID); err != nil {
			sweepFailuresTotal.Inc()
			w.logger.Error("Failed to revoke channel membership",
				slog.Int64("user_id", userID),
				slog.Any("error", err))
			continue
		}

		if err := w.members.Revoke(ctx, userID); err != nil {
			sweepFailuresTotal.Inc()
			w.logger.Error("Failed to remove expired subscription",
				slog.Int64("user_id", userID),
				slog.Any("error", err))
			continue
		}
		revokedTotal.Inc()

		// Best effort: the user may have blocked the bot.
		notice := w.localizer.Bilingual("expiry.notice", nil)
		if err := w.notifier.SendText(userID, notice); err != nil {
			w.logger.Warn("Failed to notify user of expiry",
				slog.Int64("user_id", userID),
				slog.Any("error", err))
		}

		w.logger.Info("Membership revoked", slog.Int64("user_id", userID))
	}

	sweepsTotal.Inc()
	return nil
}
