package join

import (
	"context"

	"gatebot/internal/stories/approval"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MockBotApi records everything sent through it.
type MockBotApi struct {
	SentMessages []tgbotapi.Chattable
	SendErr      error
}

func (m *MockBotApi) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if m.SendErr != nil {
		return tgbotapi.Message{}, m.SendErr
	}
	m.SentMessages = append(m.SentMessages, c)
	return tgbotapi.Message{MessageID: len(m.SentMessages)}, nil
}

func (m *MockBotApi) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// MockProofSubmitter captures submissions instead of fanning them out.
type MockProofSubmitter struct {
	Submissions []approval.Submission
	Err         error
}

func (m *MockProofSubmitter) SubmitProof(_ context.Context, sub approval.Submission) error {
	if m.Err != nil {
		return m.Err
	}
	m.Submissions = append(m.Submissions, sub)
	return nil
}

// MockLocalizer returns the key itself, enough for tests to assert which
// catalog entry was used.
type MockLocalizer struct{}

func (MockLocalizer) Bilingual(key string, params map[string]any) string {
	return key
}
