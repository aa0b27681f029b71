package cmds

import (
	"context"
	"testing"
	"time"

	"gatebot/internal/telegram/messages"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatusReader struct {
	expiry *time.Time
	err    error
}

func (f *fakeStatusReader) Status(context.Context, int64) (*time.Time, error) {
	return f.expiry, f.err
}

type renewalCall struct {
	userID    int64
	firstName string
	expiry    *time.Time
}

type fakeRenewals struct {
	calls []renewalCall
	err   error
}

func (f *fakeRenewals) RequestRenewal(_ context.Context, userID int64, firstName string, expiry *time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, renewalCall{userID: userID, firstName: firstName, expiry: expiry})
	return nil
}

type keyLocalizer struct{}

func (keyLocalizer) Bilingual(key string, _ map[string]any) string { return key }

func TestRenewForwardsCurrentExpiryAndAcks(t *testing.T) {
	expiry := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	bot := &fakeBot{}
	renewals := &fakeRenewals{}
	cmd := NewRenewCommand(bot, &fakeStatusReader{expiry: &expiry}, renewals, keyLocalizer{})

	user := &tgbotapi.User{ID: 7, FirstName: "Abel"}
	require.NoError(t, cmd.Execute(context.Background(), user, 7))

	require.Len(t, renewals.calls, 1)
	assert.Equal(t, renewalCall{userID: 7, firstName: "Abel", expiry: &expiry}, renewals.calls[0])
	assert.Equal(t, "renew.ack", bot.lastText(t))
}

func TestRenewWithoutSubscriptionStillForwards(t *testing.T) {
	bot := &fakeBot{}
	renewals := &fakeRenewals{}
	cmd := NewRenewCommand(bot, &fakeStatusReader{}, renewals, keyLocalizer{})

	user := &tgbotapi.User{ID: 7, FirstName: "Abel"}
	require.NoError(t, cmd.Execute(context.Background(), user, 7))

	require.Len(t, renewals.calls, 1)
	assert.Nil(t, renewals.calls[0].expiry)
	assert.Equal(t, "renew.ack", bot.lastText(t))
}

func TestRenewStatusFailureTellsUser(t *testing.T) {
	bot := &fakeBot{}
	renewals := &fakeRenewals{}
	cmd := NewRenewCommand(bot, &fakeStatusReader{err: assert.AnError}, renewals, keyLocalizer{})

	err := cmd.Execute(context.Background(), &tgbotapi.User{ID: 7}, 7)
	require.Error(t, err)
	assert.Empty(t, renewals.calls)
	assert.Equal(t, messages.Error, bot.lastText(t))
}

func TestRenewRequestFailureTellsUser(t *testing.T) {
	bot := &fakeBot{}
	cmd := NewRenewCommand(bot, &fakeStatusReader{}, &fakeRenewals{err: assert.AnError}, keyLocalizer{})

	err := cmd.Execute(context.Background(), &tgbotapi.User{ID: 7}, 7)
	require.Error(t, err)
	assert.Equal(t, messages.Error, bot.lastText(t))
}
