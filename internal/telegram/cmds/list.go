package cmds

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gatebot/internal/stories/subs"
	"gatebot/internal/telegram/messages"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"
)

// listChunkSize keeps each message comfortably under Telegram's 4096-char
// cap even with maximal ids and timestamps.
const listChunkSize = 50

type ListCommand struct {
	bot     botApi
	members SubscriptionLister
}

type SubscriptionLister interface {
	List(ctx context.Context) ([]subs.Subscription, error)
	Now() time.Time
}

func NewListCommand(bot botApi, members SubscriptionLister) *ListCommand {
	return &ListCommand{bot: bot, members: members}
}

// Execute dumps every known subscriber with their expiry, newest expiry
// first, split across messages when the roster is long.
func (c *ListCommand) Execute(ctx context.Context, chatID int64) error {
	all, err := c.members.List(ctx)
	if err != nil {
		msg := tgbotapi.NewMessage(chatID, messages.Error)
		_, _ = c.bot.Send(msg)
		return fmt.Errorf("list subscriptions: %w", err)
	}

	if len(all) == 0 {
		_, err = c.bot.Send(tgbotapi.NewMessage(chatID, messages.ListEmpty))
		return err
	}

	now := c.members.Now()
	lines := lo.Map(all, func(sub subs.Subscription, _ int) string {
		line := fmt.Sprintf("`%d` – %s", sub.UserID, sub.ExpiresAt.Format(expiryFormat))
		if sub.ExpiredAt(now) {
			line += " (expired)"
		}
		return line
	})

	for _, chunk := range lo.Chunk(lines, listChunkSize) {
		msg := tgbotapi.NewMessage(chatID, "📋 Subscribers:\n"+strings.Join(chunk, "\n"))
		msg.ParseMode = "Markdown"
		if _, err := c.bot.Send(msg); err != nil {
			return fmt.Errorf("send subscriber list: %w", err)
		}
	}
	return nil
}
