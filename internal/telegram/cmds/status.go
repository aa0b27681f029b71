package cmds

import (
	"context"
	"fmt"
	"time"

	"gatebot/internal/telegram/messages"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type StatusCommand struct {
	bot       botApi
	members   StatusReader
	localizer localizer
}

type StatusReader interface {
	Status(ctx context.Context, userID int64) (*time.Time, error)
}

func NewStatusCommand(bot botApi, members StatusReader, localizer localizer) *StatusCommand {
	return &StatusCommand{bot: bot, members: members, localizer: localizer}
}

func (c *StatusCommand) Execute(ctx context.Context, userID, chatID int64) error {
	expiry, err := c.members.Status(ctx, userID)
	if err != nil {
		msg := tgbotapi.NewMessage(chatID, messages.Error)
		_, _ = c.bot.Send(msg)
		return fmt.Errorf("read subscription status: %w", err)
	}

	var text string
	if expiry == nil {
		text = c.localizer.Bilingual("status.none", nil)
	} else {
		text = c.localizer.Bilingual("status.active", map[string]any{
			"expiry": expiry.Format(expiryFormat),
		})
	}

	_, err = c.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
