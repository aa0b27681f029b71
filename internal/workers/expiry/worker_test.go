package expiry

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMembers struct {
	expired   map[int64]time.Time
	revokeErr map[int64]error
	listCalls int
}

func newFakeMembers() *fakeMembers {
	return &fakeMembers{
		expired:   map[int64]time.Time{},
		revokeErr: map[int64]error{},
	}
}

func (f *fakeMembers) ExpiredAsOf(_ context.Context, now time.Time) ([]int64, error) {
	f.listCalls++
	var ids []int64
	for userID, expiresAt := range f.expired {
		if !expiresAt.After(now) {
			ids = append(ids, userID)
		}
	}
	return ids, nil
}

func (f *fakeMembers) Revoke(_ context.Context, userID int64) error {
	if err := f.revokeErr[userID]; err != nil {
		return err
	}
	delete(f.expired, userID)
	return nil
}

type fakeGate struct {
	kicked  []int64
	kickErr map[int64]error
}

func (f *fakeGate) RevokeMembership(_ context.Context, _ int64, userID int64) error {
	if err := f.kickErr[userID]; err != nil {
		return err
	}
	f.kicked = append(f.kicked, userID)
	return nil
}

type fakeNotifier struct {
	texts map[int64][]string
	fail  map[int64]error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{texts: map[int64][]string{}, fail: map[int64]error{}}
}

func (f *fakeNotifier) SendText(chatID int64, text string) error {
	if err := f.fail[chatID]; err != nil {
		return err
	}
	f.texts[chatID] = append(f.texts[chatID], text)
	return nil
}

type fakeLocalizer struct{}

func (fakeLocalizer) Bilingual(key string, _ map[string]any) string { return key }

func newTestWorker(members *fakeMembers, gate *fakeGate, notifier *fakeNotifier) *Worker {
	return NewWorker(members, gate, notifier, fakeLocalizer{}, -100123, "10 0 * * *", slog.Default())
}

func TestSweepRevokesOnlyExpired(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 10, 0, 0, time.UTC)
	members := newFakeMembers()
	members.expired[1] = now.Add(-time.Second)
	members.expired[2] = now.Add(time.Second)
	gate := &fakeGate{}
	notifier := newFakeNotifier()

	w := newTestWorker(members, gate, notifier)
	require.NoError(t, w.RunOnce(context.Background(), now))

	assert.Equal(t, []int64{1}, gate.kicked)
	assert.NotContains(t, members.expired, int64(1))
	assert.Contains(t, members.expired, int64(2))
	assert.Equal(t, []string{"expiry.notice"}, notifier.texts[1])
	assert.Empty(t, notifier.texts[2])
}

func TestExpiryExactlyAtSweepTimeIsRevoked(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 10, 0, 0, time.UTC)
	members := newFakeMembers()
	members.expired[7] = now
	gate := &fakeGate{}

	w := newTestWorker(members, gate, newFakeNotifier())
	require.NoError(t, w.RunOnce(context.Background(), now))

	assert.Equal(t, []int64{7}, gate.kicked)
}

func TestFailedKickKeepsSubscriptionForRetry(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 10, 0, 0, time.UTC)
	members := newFakeMembers()
	members.expired[1] = now.Add(-time.Hour)
	members.expired[2] = now.Add(-time.Hour)
	gate := &fakeGate{kickErr: map[int64]error{1: assert.AnError}}
	notifier := newFakeNotifier()

	w := newTestWorker(members, gate, notifier)
	require.NoError(t, w.RunOnce(context.Background(), now))

	// User 1 stays recorded and unnotified; user 2 is fully swept.
	assert.Contains(t, members.expired, int64(1))
	assert.Empty(t, notifier.texts[1])
	assert.Equal(t, []int64{2}, gate.kicked)
	assert.NotContains(t, members.expired, int64(2))
}

func TestNotifyFailureDoesNotUndoRevocation(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 10, 0, 0, time.UTC)
	members := newFakeMembers()
	members.expired[1] = now.Add(-time.Hour)
	gate := &fakeGate{}
	notifier := newFakeNotifier()
	notifier.fail[1] = assert.AnError

	w := newTestWorker(members, gate, notifier)
	require.NoError(t, w.RunOnce(context.Background(), now))

	assert.Equal(t, []int64{1}, gate.kicked)
	assert.NotContains(t, members.expired, int64(1))
}

func TestSweepSkipsWhilePreviousRunHoldsTheLock(t *testing.T) {
	members := newFakeMembers()
	w := newTestWorker(members, &fakeGate{}, newFakeNotifier())

	w.runMu.Lock()
	w.sweep()
	assert.Zero(t, members.listCalls, "an overlapping tick must not start a second sweep")

	w.runMu.Unlock()
	w.sweep()
	assert.Equal(t, 1, members.listCalls)
}

func TestEmptySweepIsANoop(t *testing.T) {
	members := newFakeMembers()
	gate := &fakeGate{}
	notifier := newFakeNotifier()

	w := newTestWorker(members, gate, notifier)
	require.NoError(t, w.RunOnce(context.Background(), time.Now()))

	assert.Empty(t, gate.kicked)
	assert.Empty(t, notifier.texts)
}
