package approval

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	submissionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gatebot_proof_submissions_total",
		Help: "Payment proofs forwarded to approvers.",
	})

	decisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gatebot_decisions_total",
		Help: "Approver decisions processed, by action.",
	}, []string{"action"})

	invitesIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gatebot_invites_issued_total",
		Help: "Single-use invite links issued.",
	})
)
