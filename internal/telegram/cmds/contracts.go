// Package cmds holds one handler per bot command. Each handler declares the
// narrow interface it needs from the services it calls.
package cmds

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type botApi interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type localizer interface {
	Bilingual(key string, params map[string]any) string
}

// expiryFormat is how timestamps are shown to humans in command output.
const expiryFormat = "2006-01-02 15:04:05"
