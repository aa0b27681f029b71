package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// webhookPath is where the transport delivers serialized updates.
const webhookPath = "/webhook"

type Client struct {
	api     *tgbotapi.BotAPI
	logger  *slog.Logger
	limiter *rate.Limiter
	updates chan tgbotapi.Update
	polled  tgbotapi.UpdatesChannel
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewClient(token string, logger *slog.Logger) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	// Telegram allows roughly 30 messages per second.
	limiter := rate.NewLimiter(30, 1)

	return &Client{
		api:     bot,
		logger:  logger,
		limiter: limiter,
	}, nil
}

// StartPolling begins receiving updates over long polling.
func (c *Client) StartPolling(ctx context.Context) error {
	c.ctx, c.cancel = context.WithCancel(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	c.polled = c.api.GetUpdatesChan(u)

	c.logger.Info("Telegram bot started (long polling)")
	return nil
}

// StartWebhook registers the webhook under publicURL and switches update
// delivery to the HTTP handler. Any previously set webhook is replaced.
func (c *Client) StartWebhook(ctx context.Context, publicURL string) error {
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.updates = make(chan tgbotapi.Update, 100)

	if err := c.RegisterWebhook(publicURL); err != nil {
		return err
	}

	c.logger.Info("Telegram bot started (webhook)", slog.String("url", publicURL+webhookPath))
	return nil
}

// RegisterWebhook (re)registers the webhook with Telegram.
func (c *Client) RegisterWebhook(publicURL string) error {
	wh, err := tgbotapi.NewWebhook(publicURL + webhookPath)
	if err != nil {
		return fmt.Errorf("build webhook config: %w", err)
	}
	if _, err := c.api.Request(wh); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	return nil
}

// WebhookHandler decodes an inbound update and feeds it to the update
// channel. It always answers 200: the transport retries on non-200 and a
// malformed payload will not get better on retry.
func (c *Client) WebhookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		update, err := c.api.HandleUpdate(r)
		if err != nil {
			c.logger.Error("Dropping malformed webhook payload", slog.Any("error", err))
			w.WriteHeader(http.StatusOK)
			return
		}

		select {
		case c.updates <- *update:
		default:
			c.logger.Error("Update channel full, dropping update",
				slog.Int("update_id", update.UpdateID))
		}
		w.WriteHeader(http.StatusOK)
	}
}

// Stop ends update delivery.
func (c *Client) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	if c.polled != nil {
		c.api.StopReceivingUpdates()
	}
	c.logger.Info("Telegram bot stopped")
}

// GetUpdates returns the update stream for whichever mode was started.
func (c *Client) GetUpdates() <-chan tgbotapi.Update {
	if c.polled != nil {
		return c.polled
	}
	return c.updates
}

// SendText sends a plain message with rate limiting.
func (c *Client) SendText(chatID int64, text string) error {
	if err := c.limiter.Wait(c.ctx); err != nil {
		return fmt.Errorf("rate limiting: %w", err)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := c.api.Send(msg); err != nil {
		c.logger.Error("Failed to send message",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()))
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// SendImage forwards an image by its platform file id, with an optional
// caption and inline keyboard.
func (c *Client) SendImage(chatID int64, fileID, caption string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	if err := c.limiter.Wait(c.ctx); err != nil {
		return fmt.Errorf("rate limiting: %w", err)
	}

	msg := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(fileID))
	msg.Caption = caption
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}

	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("send photo: %w", err)
	}
	return nil
}

// EditText replaces the text of an existing message, dropping its keyboard.
func (c *Client) EditText(chatID int64, messageID int, text string) error {
	if err := c.limiter.Wait(c.ctx); err != nil {
		return fmt.Errorf("rate limiting: %w", err)
	}

	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if _, err := c.api.Send(edit); err != nil {
		return fmt.Errorf("edit message: %w", err)
	}
	return nil
}

// IssueSingleUseInvite creates a one-redemption invite link to the channel
// that stops working at expiresAt.
func (c *Client) IssueSingleUseInvite(ctx context.Context, channelID int64, expiresAt time.Time) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiting: %w", err)
	}

	cfg := tgbotapi.CreateChatInviteLinkConfig{
		ChatConfig:  tgbotapi.ChatConfig{ChatID: channelID},
		MemberLimit: 1,
		ExpireDate:  int(expiresAt.Unix()),
	}

	resp, err := c.api.Request(cfg)
	if err != nil {
		return "", fmt.Errorf("create invite link: %w", err)
	}

	var link tgbotapi.ChatInviteLink
	if err := json.Unmarshal(resp.Result, &link); err != nil {
		return "", fmt.Errorf("decode invite link response: %w", err)
	}
	return link.InviteLink, nil
}

// RevokeMembership kicks a user out of the channel. The immediate unban
// lets them rejoin later through a fresh invite after re-approval.
func (c *Client) RevokeMembership(ctx context.Context, channelID, userID int64) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiting: %w", err)
	}

	ban := tgbotapi.BanChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{
			ChatID: channelID,
			UserID: userID,
		},
	}
	if _, err := c.api.Request(ban); err != nil {
		return fmt.Errorf("ban chat member: %w", err)
	}

	unban := tgbotapi.UnbanChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{
			ChatID: channelID,
			UserID: userID,
		},
		OnlyIfBanned: true,
	}
	if _, err := c.api.Request(unban); err != nil {
		return fmt.Errorf("unban chat member: %w", err)
	}
	return nil
}

// Send sends any chattable with rate limiting (for the botApi interface).
func (c *Client) Send(chattable tgbotapi.Chattable) (tgbotapi.Message, error) {
	if err := c.limiter.Wait(c.ctx); err != nil {
		return tgbotapi.Message{}, fmt.Errorf("rate limiting: %w", err)
	}

	message, err := c.api.Send(chattable)
	if err != nil {
		c.logger.Error("Failed to send", slog.Any("error", err))
		return tgbotapi.Message{}, fmt.Errorf("send: %w", err)
	}
	return message, nil
}

// Request performs a raw API request with rate limiting.
func (c *Client) Request(chattable tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	if err := c.limiter.Wait(c.ctx); err != nil {
		return nil, fmt.Errorf("rate limiting: %w", err)
	}

	resp, err := c.api.Request(chattable)
	if err != nil {
		c.logger.Error("API request failed", slog.Any("error", err))
		return nil, fmt.Errorf("api request: %w", err)
	}
	return resp, nil
}

// GetBotAPI exposes the underlying BotAPI object.
func (c *Client) GetBotAPI() *tgbotapi.BotAPI {
	return c.api
}
