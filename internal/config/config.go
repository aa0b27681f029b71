package config

import (
	"fmt"
	"time"
)

type Config struct {
	Env              string                  `env:"ENV,default=local"`
	Logger           LoggerConfig            `env:",prefix=LOGGER_"`
	Observability    ObservabilityHTTPConfig `env:",prefix=OBSERVABILITY_"`
	API              APIHTTPConfig           `env:",prefix=API_"`
	ShutdownDuration time.Duration           `env:"SHUTDOWN_DURATION,default=30s"`
	DB               SQLiteConfig            `env:",prefix=DB_"`
	Telegram         TelegramConfig          `env:",prefix=TELEGRAM_"`
	Payment          PaymentConfig           `env:",prefix=PAYMENT_"`
	Sweep            SweepConfig             `env:",prefix=SWEEP_"`
}

type TelegramConfig struct {
	BotToken string        `env:"BOT_TOKEN,required"`
	Timeout  time.Duration `env:"TIMEOUT,default=30s"`

	// ChannelID is the gated private channel the bot issues invites for.
	ChannelID int64 `env:"CHANNEL_ID,required"`

	// ApproverIDs is the fixed set of privileged user ids, immutable after
	// startup. Comma-separated in the environment.
	ApproverIDs []int64 `env:"APPROVER_IDS"`

	// PublicURL switches the bot from long polling to webhook mode and is
	// the base URL the webhook gets registered under.
	PublicURL string `env:"PUBLIC_URL"`
}

// PaymentConfig describes the manual payment rail shown to users. The bot
// never talks to it; proof review is human.
type PaymentConfig struct {
	Account string `env:"ACCOUNT,default=0987973732"`
}

type SweepConfig struct {
	// Schedule is a cron expression; the default runs once a day shortly
	// after midnight.
	Schedule string `env:"SCHEDULE,default=10 0 * * *"`
}

type LoggerConfig struct {
	Level string `env:"LEVEL,default=debug"`
}

type ObservabilityHTTPConfig struct {
	Host         string        `env:"HOST,default=127.0.0.1"`
	Port         uint16        `env:"PORT,default=8383"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT,default=30s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT,default=30s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT,default=1m"`
}

func (a ObservabilityHTTPConfig) ADDR() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// APIHTTPConfig is the public-facing server carrying the webhook and health
// endpoints. Only started in webhook mode.
type APIHTTPConfig struct {
	Host         string        `env:"HOST,default=0.0.0.0"`
	Port         uint16        `env:"PORT,default=8080"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT,default=30s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT,default=30s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT,default=1m"`
}

func (a APIHTTPConfig) ADDR() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

type SQLiteConfig struct {
	Path         string `env:"PATH,default=./data/subscriptions.db"`
	MaxOpenConns int    `env:"MAX_OPEN_CONNS,default=25"`
	MaxIdleConns int    `env:"MAX_IDLE_CONNS,default=5"`
	MaxLifetime  string `env:"MAX_LIFETIME,default=5m"`
}
