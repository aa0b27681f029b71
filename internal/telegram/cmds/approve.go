package cmds

import (
	"context"
	"strconv"
	"strings"

	"gatebot/internal/apperrors"
	"gatebot/internal/telegram/messages"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type ApproveCommand struct {
	bot       botApi
	approvals ManualGranter
}

type ManualGranter interface {
	ManualGrant(ctx context.Context, approverID, chatID, userID int64, months int) error
}

func NewApproveCommand(bot botApi, approvals ManualGranter) *ApproveCommand {
	return &ApproveCommand{bot: bot, approvals: approvals}
}

// Execute grants a subscription by hand, covering proofs that arrived
// outside the bot. Months defaults to 1 when omitted.
func (c *ApproveCommand) Execute(ctx context.Context, approverID, chatID int64, args string) error {
	userID, months, err := parseApproveArgs(args)
	if err != nil {
		_, _ = c.bot.Send(tgbotapi.NewMessage(chatID, messages.ApproveUsage))
		return err
	}

	return c.approvals.ManualGrant(ctx, approverID, chatID, userID, months)
}

func parseApproveArgs(args string) (userID int64, months int, err error) {
	fields := strings.Fields(args)
	if len(fields) < 1 || len(fields) > 2 {
		return 0, 0, apperrors.E(apperrors.KindValidation, "expected 1 or 2 arguments, got %d", len(fields))
	}

	userID, err = strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, 0, apperrors.E(apperrors.KindValidation, "bad user id %q", fields[0])
	}

	months = 1
	if len(fields) == 2 {
		months, err = strconv.Atoi(fields[1])
		if err != nil || months <= 0 {
			return 0, 0, apperrors.E(apperrors.KindValidation, "bad month count %q", fields[1])
		}
	}
	return userID, months, nil
}
