package join

import (
	"context"

	"gatebot/internal/stories/approval"
	"gatebot/internal/stories/plans"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type botApi interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type proofSubmitter interface {
	SubmitProof(ctx context.Context, sub approval.Submission) error
}

type planSessions interface {
	Select(userID int64, plan plans.Plan)
	Consume(userID int64) (plans.Plan, bool)
}

type localizer interface {
	Bilingual(key string, params map[string]any) string
}
