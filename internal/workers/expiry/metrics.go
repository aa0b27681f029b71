package expiry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sweepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gatebot_expiry_sweeps_total",
		Help: "Expiry sweep runs completed.",
	})

	revokedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gatebot_memberships_revoked_total",
		Help: "Expired memberships revoked from the channel.",
	})

	sweepFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gatebot_expiry_sweep_failures_total",
		Help: "Members a sweep failed to revoke or clean up.",
	})
)
