// Package join drives a new subscriber from /start to a submitted payment
// proof: welcome, plan choice, payment instructions, screenshot hand-off.
package join

import (
	"context"
	"fmt"
	"log/slog"

	"gatebot/internal/stories/approval"
	"gatebot/internal/stories/plans"
	"gatebot/internal/telegram/messages"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Handler struct {
	bot            botApi
	sessions       planSessions
	approvals      proofSubmitter
	localizer      localizer
	paymentAccount string
	logger         *slog.Logger
}

func NewHandler(
	bot botApi,
	sessions planSessions,
	approvals proofSubmitter,
	localizer localizer,
	paymentAccount string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		bot:            bot,
		sessions:       sessions,
		approvals:      approvals,
		localizer:      localizer,
		paymentAccount: paymentAccount,
		logger:         logger,
	}
}

// Start greets the user and offers the proceed button.
func (h *Handler) Start(chatID int64) error {
	text := h.localizer.Bilingual("welcome.title", nil) + "\n\n" +
		h.localizer.Bilingual("welcome.body", nil)

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = proceedKeyboard()
	_, err := h.bot.Send(msg)
	return err
}

// HandleProceed swaps the welcome message for the plan keyboard.
func (h *Handler) HandleProceed(chatID int64, messageID int) error {
	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID, messageID,
		h.localizer.Bilingual("plan.choose", nil),
		planKeyboard(),
	)
	_, err := h.bot.Send(edit)
	return err
}

// HandlePlan records the chosen plan and shows payment instructions. The
// choice lives only in memory until a screenshot arrives; picking again
// simply overwrites it.
func (h *Handler) HandlePlan(userID, chatID int64, messageID, months int) error {
	plan, err := plans.ByMonths(months)
	if err != nil {
		return err
	}
	h.sessions.Select(userID, plan)

	text := h.localizer.Bilingual("plan.instructions", map[string]any{
		"months":  plan.Months,
		"price":   plan.PriceBirr,
		"account": h.paymentAccount,
	})
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	_, sendErr := h.bot.Send(edit)
	return sendErr
}

// HandlePhoto consumes the pending plan choice and forwards the screenshot
// for review. A photo with no pending choice restarts the flow instead.
func (h *Handler) HandlePhoto(ctx context.Context, user *tgbotapi.User, chatID int64, proofFileID string) error {
	plan, ok := h.sessions.Consume(user.ID)
	if !ok {
		msg := tgbotapi.NewMessage(chatID, h.localizer.Bilingual("proof.missing_plan", nil))
		_, err := h.bot.Send(msg)
		return err
	}

	err := h.approvals.SubmitProof(ctx, approval.Submission{
		UserID:      user.ID,
		FirstName:   user.FirstName,
		Username:    user.UserName,
		Months:      plan.Months,
		PriceBirr:   plan.PriceBirr,
		ProofFileID: proofFileID,
	})
	if err != nil {
		h.logger.Error("proof submission failed", "user_id", user.ID, "error", err)
		msg := tgbotapi.NewMessage(chatID, messages.Error)
		_, _ = h.bot.Send(msg)
		return err
	}

	msg := tgbotapi.NewMessage(chatID, h.localizer.Bilingual("proof.received", nil))
	_, sendErr := h.bot.Send(msg)
	return sendErr
}

func proceedKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(messages.ButtonProceed, "proceed"),
		),
	)
}

func planKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, plan := range plans.All() {
		label := fmt.Sprintf("%d %s – %d Birr", plan.Months, monthWord(plan.Months), plan.PriceBirr)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("plan:%d", plan.Months)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func monthWord(months int) string {
	if months == 1 {
		return "Month"
	}
	return "Months"
}
