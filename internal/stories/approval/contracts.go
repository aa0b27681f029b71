package approval

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type (
	// Memberships records granted access in the subscription store.
	Memberships interface {
		Grant(ctx context.Context, userID int64, months int) (time.Time, error)
	}

	// ChannelGate issues single-use entry credentials for the gated channel.
	ChannelGate interface {
		IssueSingleUseInvite(ctx context.Context, channelID int64, expiresAt time.Time) (string, error)
	}

	// Notifier delivers outcome messages. Failures are collaborator errors,
	// never fatal.
	Notifier interface {
		SendText(chatID int64, text string) error
		SendImage(chatID int64, fileID, caption string, keyboard *tgbotapi.InlineKeyboardMarkup) error
		EditText(chatID int64, messageID int, text string) error
	}

	// ApproverSet is the fixed set of privileged reviewers.
	ApproverSet interface {
		IsApprover(userID int64) bool
		All() []int64
	}

	// Localizer renders subject-facing texts in every supported language.
	Localizer interface {
		Bilingual(key string, params map[string]any) string
	}
)
