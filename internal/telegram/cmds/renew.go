package cmds

import (
	"context"
	"fmt"
	"time"

	"gatebot/internal/telegram/messages"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type RenewCommand struct {
	bot       botApi
	members   StatusReader
	renewals  RenewalRequester
	localizer localizer
}

type RenewalRequester interface {
	RequestRenewal(ctx context.Context, userID int64, firstName string, expiry *time.Time) error
}

func NewRenewCommand(bot botApi, members StatusReader, renewals RenewalRequester, localizer localizer) *RenewCommand {
	return &RenewCommand{bot: bot, members: members, renewals: renewals, localizer: localizer}
}

// Execute forwards a renewal request to the approvers along with the user's
// current expiry, so they can judge how much time to add.
func (c *RenewCommand) Execute(ctx context.Context, user *tgbotapi.User, chatID int64) error {
	expiry, err := c.members.Status(ctx, user.ID)
	if err != nil {
		msg := tgbotapi.NewMessage(chatID, messages.Error)
		_, _ = c.bot.Send(msg)
		return fmt.Errorf("read subscription status: %w", err)
	}

	if err := c.renewals.RequestRenewal(ctx, user.ID, user.FirstName, expiry); err != nil {
		msg := tgbotapi.NewMessage(chatID, messages.Error)
		_, _ = c.bot.Send(msg)
		return fmt.Errorf("request renewal: %w", err)
	}

	_, err = c.bot.Send(tgbotapi.NewMessage(chatID, c.localizer.Bilingual("renew.ack", nil)))
	return err
}
