package environment

import (
	"context"
	"log/slog"

	"gatebot/internal/config"
	"gatebot/internal/localization"
	"gatebot/internal/storage"
	"gatebot/internal/stories/approval"
	"gatebot/internal/stories/selection"
	"gatebot/internal/stories/subs"
	"gatebot/internal/telegram"
	"gatebot/internal/telegram/cmds"
	"gatebot/internal/telegram/flows/join"
	"gatebot/internal/workers"
	"gatebot/internal/workers/expiry"

	"github.com/pkg/errors"
)

type Services struct {
	TelegramRouter *telegram.Router
	Workers        *workers.Manager
}

func newServices(ctx context.Context, clients *Clients, cfg *config.Config, logger *slog.Logger) (*Services, error) {
	storageImpl := storage.New(clients.SQLiteDB.DB)
	if err := storageImpl.InitSchema(ctx); err != nil {
		return nil, errors.Wrap(err, "init schema")
	}

	localizer, err := localization.NewService()
	if err != nil {
		return nil, errors.Wrap(err, "load translations")
	}

	subsService := subs.NewService(storageImpl)
	approverChecker := telegram.NewApproverChecker(&cfg.Telegram)

	approvalService := approval.NewService(
		approverChecker,
		subsService,
		clients.TelegramBot,
		clients.TelegramBot,
		localizer,
		cfg.Telegram.ChannelID,
		logger,
	)

	joinHandler := join.NewHandler(
		clients.TelegramBot,
		selection.NewManager(),
		approvalService,
		localizer,
		cfg.Payment.Account,
		logger,
	)

	router := telegram.NewRouter(
		clients.TelegramBot,
		approverChecker,
		localizer,
		joinHandler,
		approvalService,
		cmds.NewStatusCommand(clients.TelegramBot, subsService, localizer),
		cmds.NewRenewCommand(clients.TelegramBot, subsService, approvalService, localizer),
		cmds.NewApproveCommand(clients.TelegramBot, approvalService),
		cmds.NewListCommand(clients.TelegramBot, subsService),
		logger,
	)

	sweeper := expiry.NewWorker(
		subsService,
		clients.TelegramBot,
		clients.TelegramBot,
		localizer,
		cfg.Telegram.ChannelID,
		cfg.Sweep.Schedule,
		logger,
	)

	return &Services{
		TelegramRouter: router,
		Workers:        workers.NewManager(logger, sweeper),
	}, nil
}
