package telegram

import (
	"context"
	"log/slog"

	"gatebot/internal/apperrors"
	"gatebot/internal/stories/approval"
	"gatebot/internal/telegram/cmds"
	"gatebot/internal/telegram/flows/join"
	"gatebot/internal/telegram/messages"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Router struct {
	bot       botApi
	approvers approverChecker
	localizer localizer

	joinHandler *join.Handler
	decisions   decisionService

	statusCommand  *cmds.StatusCommand
	renewCommand   *cmds.RenewCommand
	approveCommand *cmds.ApproveCommand
	listCommand    *cmds.ListCommand

	logger *slog.Logger
}

type botApi interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type approverChecker interface {
	IsApprover(userID int64) bool
}

type decisionService interface {
	Decide(ctx context.Context, actor approval.Actor, d approval.Decision) error
}

type localizer interface {
	Bilingual(key string, params map[string]any) string
}

func NewRouter(
	bot botApi,
	approvers approverChecker,
	localizer localizer,
	joinHandler *join.Handler,
	decisions decisionService,
	statusCommand *cmds.StatusCommand,
	renewCommand *cmds.RenewCommand,
	approveCommand *cmds.ApproveCommand,
	listCommand *cmds.ListCommand,
	logger *slog.Logger,
) *Router {
	return &Router{
		bot:            bot,
		approvers:      approvers,
		localizer:      localizer,
		joinHandler:    joinHandler,
		decisions:      decisions,
		statusCommand:  statusCommand,
		renewCommand:   renewCommand,
		approveCommand: approveCommand,
		listCommand:    listCommand,
		logger:         logger,
	}
}

// Route dispatches a single update. The bot is open to everyone; only the
// decision callbacks and admin commands are gated on the approver list.
func (r *Router) Route(update *tgbotapi.Update) error {
	ctx := context.Background()

	if update.CallbackQuery != nil {
		return r.routeCallback(ctx, update.CallbackQuery)
	}

	if update.Message == nil || update.Message.From == nil {
		return nil
	}

	msg := update.Message
	if msg.IsCommand() {
		return r.routeCommand(ctx, msg)
	}

	// The only non-command content the bot accepts is the payment screenshot.
	if len(msg.Photo) > 0 {
		// Telegram sends multiple sizes; the last is the largest.
		fileID := msg.Photo[len(msg.Photo)-1].FileID
		return r.joinHandler.HandlePhoto(ctx, msg.From, msg.Chat.ID, fileID)
	}

	return r.sendHelp(msg.From.ID, msg.Chat.ID)
}

func (r *Router) routeCommand(ctx context.Context, msg *tgbotapi.Message) error {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		return r.joinHandler.Start(chatID)
	case "status":
		return r.statusCommand.Execute(ctx, userID, chatID)
	case "renew":
		return r.renewCommand.Execute(ctx, msg.From, chatID)
	case "help":
		return r.sendHelp(userID, chatID)
	case "approve":
		if !r.approvers.IsApprover(userID) {
			_, _ = r.bot.Send(tgbotapi.NewMessage(chatID, messages.Unauthorized))
			return nil
		}
		return r.approveCommand.Execute(ctx, userID, chatID, msg.CommandArguments())
	case "list":
		if !r.approvers.IsApprover(userID) {
			_, _ = r.bot.Send(tgbotapi.NewMessage(chatID, messages.Unauthorized))
			return nil
		}
		return r.listCommand.Execute(ctx, chatID)
	default:
		return r.sendHelp(userID, chatID)
	}
}

func (r *Router) routeCallback(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	// Acknowledge first so the button stops spinning whatever happens next.
	_, _ = r.bot.Request(tgbotapi.NewCallback(query.ID, ""))

	if query.Message == nil || query.From == nil {
		return nil
	}
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	parsed, err := ParseCallback(query.Data)
	if err != nil {
		r.logger.Warn("Dropping unparseable callback",
			slog.String("data", query.Data),
			slog.Any("error", err))
		return nil
	}

	switch cb := parsed.(type) {
	case ProceedCallback:
		return r.joinHandler.HandleProceed(chatID, messageID)

	case PlanCallback:
		err := r.joinHandler.HandlePlan(query.From.ID, chatID, messageID, cb.Months)
		if apperrors.IsKind(err, apperrors.KindValidation) {
			// Stale keyboard from before a catalog change.
			r.logger.Warn("Plan callback for unknown tier", slog.Int("months", cb.Months))
			return nil
		}
		return err

	case DecisionCallback:
		actor := approval.Actor{
			UserID:    query.From.ID,
			ChatID:    chatID,
			MessageID: messageID,
		}
		err := r.decisions.Decide(ctx, actor, cb.Decision)
		if apperrors.IsKind(err, apperrors.KindAuthorization) {
			// Already reported to the presser; nothing to escalate.
			return nil
		}
		return err

	default:
		return nil
	}
}

func (r *Router) sendHelp(userID, chatID int64) error {
	text := r.localizer.Bilingual("help.body", nil)
	if r.approvers.IsApprover(userID) {
		text += "\n\n" + messages.ApproverHelp
	}
	_, err := r.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// SetupBotCommands publishes the command menu shown in the Telegram UI.
// Admin commands are left out of the public menu on purpose.
func (r *Router) SetupBotCommands() error {
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Choose a membership plan"},
		{Command: "status", Description: "Check your subscription expiry"},
		{Command: "renew", Description: "Request a renewal"},
		{Command: "help", Description: "Show available commands"},
	}
	_, err := r.bot.Request(tgbotapi.NewSetMyCommands(commands...))
	return err
}
