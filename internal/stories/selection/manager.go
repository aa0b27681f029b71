// Package selection tracks in-progress plan choices. A selection lives in
// memory only: once the proof is forwarded to approvers the decision payload
// is self-describing and nothing here is needed anymore.
package selection

import (
	"sync"

	"gatebot/internal/stories/plans"
)

// Manager keeps at most one pending plan selection per user.
type Manager struct {
	mu       sync.Mutex
	selected map[int64]plans.Plan
}

func NewManager() *Manager {
	return &Manager{
		selected: make(map[int64]plans.Plan),
	}
}

// Select records the chosen plan, silently discarding any earlier
// unsubmitted choice (last select wins).
func (m *Manager) Select(userID int64, plan plans.Plan) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.selected[userID] = plan
}

// Consume atomically reads and clears the selection. The second return is
// false when no selection exists, which means the user has to start over.
func (m *Manager) Consume(userID int64) (plans.Plan, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	plan, ok := m.selected[userID]
	if ok {
		delete(m.selected, userID)
	}
	return plan, ok
}
