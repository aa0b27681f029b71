package telegram

import (
	"slices"

	"gatebot/internal/config"
)

// ApproverChecker answers whether a user may review payments. The set is
// fixed at startup.
type ApproverChecker struct {
	approverIDs []int64
}

func NewApproverChecker(cfg *config.TelegramConfig) *ApproverChecker {
	ids := make([]int64, len(cfg.ApproverIDs))
	copy(ids, cfg.ApproverIDs)
	return &ApproverChecker{approverIDs: ids}
}

func (a *ApproverChecker) IsApprover(userID int64) bool {
	return slices.Contains(a.approverIDs, userID)
}

func (a *ApproverChecker) All() []int64 {
	out := make([]int64, len(a.approverIDs))
	copy(out, a.approverIDs)
	return out
}
