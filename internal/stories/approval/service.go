// Package approval bridges human proof review to membership state changes:
// proof fan-out to approvers, the approve/decline decision path, and manual
// grants.
package approval

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gatebot/internal/apperrors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// fanOutLimit bounds concurrent deliveries to approvers.
const fanOutLimit = 4

type Service struct {
	approvers ApproverSet
	members   Memberships
	gate      ChannelGate
	notifier  Notifier
	localizer Localizer
	channelID int64
	logger    *slog.Logger
}

func NewService(
	approvers ApproverSet,
	members Memberships,
	gate ChannelGate,
	notifier Notifier,
	localizer Localizer,
	channelID int64,
	logger *slog.Logger,
) *Service {
	return &Service{
		approvers: approvers,
		members:   members,
		gate:      gate,
		notifier:  notifier,
		localizer: localizer,
		channelID: channelID,
		logger:    logger,
	}
}

// SubmitProof forwards a payment screenshot to every approver with
// approve/decline buttons. Failing to reach one approver never blocks the
// others and never fails the submission; the submitter is acked regardless.
func (s *Service) SubmitProof(ctx context.Context, sub Submission) error {
	submissionID := uuid.NewString()

	username := sub.Username
	if username == "" {
		username = "N/A"
	}
	caption := fmt.Sprintf(
		"💳 New payment screenshot\n"+
			"From: %s\n"+
			"User ID: %d\n"+
			"Username: @%s\n"+
			"Plan: %d month(s) – %d Birr",
		sub.FirstName, sub.UserID, username, sub.Months, sub.PriceBirr,
	)

	approve := Decision{Action: ActionApprove, UserID: sub.UserID, Months: sub.Months}
	decline := Decision{Action: ActionDecline, UserID: sub.UserID}
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("✅ Approve (%d months)", sub.Months), approve.CallbackData()),
			tgbotapi.NewInlineKeyboardButtonData("❌ Decline", decline.CallbackData()),
		),
	)

	approvers := s.approvers.All()
	if len(approvers) == 0 {
		s.logger.Warn("No approvers configured, proof goes nowhere",
			slog.String("submission_id", submissionID),
			slog.Int64("user_id", sub.UserID))
	}

	results := make([]error, len(approvers))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)
	for i, approverID := range approvers {
		i, approverID := i, approverID
		g.Go(func() error {
			results[i] = s.notifier.SendImage(approverID, sub.ProofFileID, caption, &keyboard)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors, results carry them

	delivered := 0
	for i, err := range results {
		if err != nil {
			s.logger.Error("Failed to deliver proof to approver",
				slog.String("submission_id", submissionID),
				slog.Int64("approver_id", approvers[i]),
				slog.Any("error", err))
			continue
		}
		delivered++
	}

	submissionsTotal.Inc()
	s.logger.Info("Proof submitted for review",
		slog.String("submission_id", submissionID),
		slog.Int64("user_id", sub.UserID),
		slog.Int("months", sub.Months),
		slog.Int("delivered", delivered),
		slog.Int("approvers", len(approvers)))

	return nil
}

// Decide processes an approver's button press. Repeated decisions for the
// same submission are not deduplicated: a second approve re-grants and
// issues a fresh link, a late decline just updates the pressing approver's
// view.
func (s *Service) Decide(ctx context.Context, actor Actor, d Decision) error {
	if !s.approvers.IsApprover(actor.UserID) {
		_ = s.notifier.EditText(actor.ChatID, actor.MessageID, "⛔ Unauthorized.")
		return apperrors.E(apperrors.KindAuthorization, "user %d is not an approver", actor.UserID)
	}

	switch d.Action {
	case ActionDecline:
		decisionsTotal.WithLabelValues("decline").Inc()
		s.logger.Info("Subscription declined",
			slog.Int64("user_id", d.UserID),
			slog.Int64("approver_id", actor.UserID))
		return s.editOrLog(actor, fmt.Sprintf("❌ Declined user %d.", d.UserID))

	case ActionApprove:
		decisionsTotal.WithLabelValues("approve").Inc()
		return s.approve(ctx, actor.UserID, d.UserID, d.Months, func(text string) {
			_ = s.editOrLog(actor, text)
		})

	default:
		return apperrors.E(apperrors.KindValidation, "unknown decision action: %q", d.Action)
	}
}

// ManualGrant is the /approve command path: same contract as an approve
// button press, without a prior submission.
func (s *Service) ManualGrant(ctx context.Context, approverID, chatID, userID int64, months int) error {
	if !s.approvers.IsApprover(approverID) {
		_ = s.notifier.SendText(chatID, "⛔ Unauthorized.")
		return apperrors.E(apperrors.KindAuthorization, "user %d is not an approver", approverID)
	}

	decisionsTotal.WithLabelValues("manual").Inc()
	return s.approve(ctx, approverID, userID, months, func(text string) {
		if err := s.notifier.SendText(chatID, text); err != nil {
			s.logger.Error("Failed to report grant outcome", slog.Any("error", err))
		}
	})
}

// approve runs the grant/issue/notify sequence. The store mutation is never
// rolled back on later failures: recorded beats delivered.
func (s *Service) approve(ctx context.Context, approverID, userID int64, months int, respond func(text string)) error {
	expiresAt, err := s.members.Grant(ctx, userID, months)
	if err != nil {
		respond(fmt.Sprintf("❌ Approval did not complete for user %d: the subscription could not be recorded. Please try again.", userID))
		return fmt.Errorf("grant membership: %w", err)
	}

	link, err := s.gate.IssueSingleUseInvite(ctx, s.channelID, expiresAt)
	if err != nil {
		// Subscription stays recorded; the approver retries delivery by hand.
		respond(fmt.Sprintf("⚠️ Subscription for user %d is recorded until %s, but issuing the invite failed. Retry with /approve %d %d.",
			userID, expiresAt.Format("2006-01-02"), userID, months))
		return apperrors.Wrap(apperrors.KindCollaborator, err, "issue invite")
	}
	invitesIssuedTotal.Inc()

	text := s.localizer.Bilingual("approval.granted", map[string]any{
		"months": months,
		"link":   link,
	})
	if err := s.notifier.SendText(userID, text); err != nil {
		s.logger.Error("Failed to deliver invite to user",
			slog.Int64("user_id", userID),
			slog.Any("error", err))
		respond(fmt.Sprintf("⚠️ Approved user %d for %d month(s), but the invite could not be delivered. Send it manually:\n%s", userID, months, link))
		return apperrors.Wrap(apperrors.KindCollaborator, err, "notify user")
	}

	s.logger.Info("Subscription approved",
		slog.Int64("user_id", userID),
		slog.Int64("approver_id", approverID),
		slog.Int("months", months),
		slog.Time("expires_at", expiresAt))

	respond(fmt.Sprintf("✅ Approved user %d for %d month(s).\n\nInvite link sent.", userID, months))
	return nil
}

// RequestRenewal fans a renewal notice out to every approver.
func (s *Service) RequestRenewal(ctx context.Context, userID int64, firstName string, expiry *time.Time) error {
	expiryText := "not subscribed"
	if expiry != nil {
		expiryText = expiry.Format("2006-01-02 15:04:05")
	}
	msg := fmt.Sprintf(
		"🔔 Renewal request from %s (%d)\n"+
			"Current expiry: %s\n"+
			"Use /approve %d <months> to grant additional time.",
		firstName, userID, expiryText, userID,
	)

	approvers := s.approvers.All()
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)
	for _, approverID := range approvers {
		approverID := approverID
		g.Go(func() error {
			if err := s.notifier.SendText(approverID, msg); err != nil {
				s.logger.Error("Failed to notify approver of renewal request",
					slog.Int64("approver_id", approverID),
					slog.Any("error", err))
			}
			return nil
		})
	}
	_ = g.Wait()

	s.logger.Info("Renewal request forwarded", slog.Int64("user_id", userID))
	return nil
}

func (s *Service) editOrLog(actor Actor, text string) error {
	if err := s.notifier.EditText(actor.ChatID, actor.MessageID, text); err != nil {
		s.logger.Error("Failed to update approver view",
			slog.Int64("approver_id", actor.UserID),
			slog.Any("error", err))
		return apperrors.Wrap(apperrors.KindCollaborator, err, "edit approver message")
	}
	return nil
}
