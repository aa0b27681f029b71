package environment

import (
	"net/http"

	"gatebot/internal/config"
)

type Servers struct {
	HTTP struct {
		Observability *http.Server
		API           *http.Server
	}
}

// newServers builds both HTTP surfaces. The API server carries the webhook
// and is only started when webhook mode is on; observability always runs.
func newServers(cfg config.Config, clients *Clients) *Servers {
	var servers Servers

	mux := http.NewServeMux()
	mux.Handle("/webhook", clients.TelegramBot.WebhookHandler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	// Manual re-registration, for when Telegram loses the webhook.
	mux.HandleFunc("/set_webhook", func(w http.ResponseWriter, _ *http.Request) {
		if err := clients.TelegramBot.RegisterWebhook(cfg.Telegram.PublicURL); err != nil {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(err.Error()))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Webhook set"))
	})

	servers.HTTP.API = &http.Server{
		Handler:           mux,
		Addr:              cfg.API.ADDR(),
		ReadTimeout:       cfg.API.ReadTimeout,
		WriteTimeout:      cfg.API.WriteTimeout,
		IdleTimeout:       cfg.API.IdleTimeout,
		ReadHeaderTimeout: cfg.API.ReadTimeout,
	}
	servers.HTTP.Observability = initObservability(cfg, clients)

	return &servers
}
