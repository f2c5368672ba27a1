package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatekeeper/internal/messaging"
	"gatekeeper/pkg/platform/circuit"
)

type fakeAPI struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	result   json.RawMessage
	err      error
	updates  chan tgbotapi.Update
	stopped  bool
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	return tgbotapi.Message{MessageID: 9, Chat: &tgbotapi.Chat{ID: 42}}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	if f.err != nil {
		return nil, f.err
	}
	return &tgbotapi.APIResponse{Ok: true, Result: f.result}, nil
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeAPI) StopReceivingUpdates() {
	f.stopped = true
}

func TestSendText(t *testing.T) {
	api := &fakeAPI{}
	c := newWithAPI(api)

	kb := messaging.Keyboard{messaging.Row(
		messaging.Button{Label: "Approve", Data: "approve_42"},
		messaging.Button{Label: "Reject", Data: "reject_42"},
	)}
	ref, err := c.SendText(context.Background(), 42, "hello", kb)
	require.NoError(t, err)
	assert.Equal(t, messaging.MessageRef{ChatID: 42, MessageID: 9}, ref)

	require.Len(t, api.sent, 1)
	msg, ok := api.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, "hello", msg.Text)
	markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, markup.InlineKeyboard, 1)
	require.Len(t, markup.InlineKeyboard[0], 2)
	assert.Equal(t, "reject_42", *markup.InlineKeyboard[0][1].CallbackData)

	t.Run("no keyboard sends no markup", func(t *testing.T) {
		_, err := c.SendText(context.Background(), 42, "plain", nil)
		require.NoError(t, err)
		msg := api.sent[1].(tgbotapi.MessageConfig)
		assert.Nil(t, msg.ReplyMarkup)
	})
}

func TestTransportErrors(t *testing.T) {
	c := newWithAPI(&fakeAPI{err: errors.New("bad gateway")})
	ctx := context.Background()

	_, err := c.SendText(ctx, 1, "x", nil)
	assert.ErrorIs(t, err, messaging.ErrTransport)
	_, err = c.SendImage(ctx, 1, []byte("png"), "caption")
	assert.ErrorIs(t, err, messaging.ErrTransport)
	assert.ErrorIs(t, c.EditMessage(ctx, messaging.MessageRef{ChatID: 1, MessageID: 2}, "x", nil), messaging.ErrTransport)
	assert.ErrorIs(t, c.AnswerInteraction(ctx, "cb"), messaging.ErrTransport)
	_, err = c.CreateSingleUseLink(ctx, -100)
	assert.ErrorIs(t, err, messaging.ErrIssuance)
}

func TestCreateSingleUseLink(t *testing.T) {
	api := &fakeAPI{result: json.RawMessage(`{"invite_link":"https://t.me/+abc","member_limit":1}`)}
	c := newWithAPI(api)

	link, err := c.CreateSingleUseLink(context.Background(), -1001)
	require.NoError(t, err)
	assert.Equal(t, "https://t.me/+abc", link)

	cfg, ok := api.requests[0].(tgbotapi.CreateChatInviteLinkConfig)
	require.True(t, ok)
	assert.Equal(t, int64(-1001), cfg.ChatID)
	assert.Equal(t, 1, cfg.MemberLimit)

	t.Run("empty link is an issuance failure", func(t *testing.T) {
		api.result = json.RawMessage(`{}`)
		_, err := c.CreateSingleUseLink(context.Background(), -1001)
		assert.ErrorIs(t, err, messaging.ErrIssuance)
	})
}

func TestIssuanceBreaker(t *testing.T) {
	api := &fakeAPI{err: errors.New("chat not found")}
	c := newWithAPI(api, WithIssuanceBreaker(circuit.New("invite", circuit.WithFailureThreshold(2), circuit.WithSuccessThreshold(1))))
	ctx := context.Background()

	assert.True(t, c.IssuanceHealthy())
	for range 2 {
		_, err := c.CreateSingleUseLink(ctx, -1)
		require.Error(t, err)
	}
	assert.False(t, c.IssuanceHealthy())

	api.err = nil
	api.result = json.RawMessage(`{"invite_link":"https://t.me/+ok"}`)
	_, err := c.CreateSingleUseLink(ctx, -1)
	require.NoError(t, err)
	assert.True(t, c.IssuanceHealthy())
}

func TestConvert(t *testing.T) {
	private := &tgbotapi.Chat{ID: 42, Type: "private"}
	from := &tgbotapi.User{ID: 42, UserName: "alice", FirstName: "Alice"}

	t.Run("command", func(t *testing.T) {
		upd, ok := convert(tgbotapi.Update{Message: &tgbotapi.Message{
			MessageID: 3,
			From:      from,
			Chat:      private,
			Text:      "/add_codes A B",
			Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 10}},
		}})
		require.True(t, ok)
		assert.Equal(t, messaging.UpdateCommand, upd.Kind)
		assert.Equal(t, "add_codes", upd.Command)
		assert.Equal(t, "A B", upd.Args)
		assert.True(t, upd.Private)
		assert.Equal(t, messaging.Identity{ID: 42, Username: "alice", FirstName: "Alice"}, upd.From)
	})

	t.Run("text", func(t *testing.T) {
		upd, ok := convert(tgbotapi.Update{Message: &tgbotapi.Message{From: from, Chat: private, Text: "7391"}})
		require.True(t, ok)
		assert.Equal(t, messaging.UpdateText, upd.Kind)
		assert.Equal(t, "7391", upd.Text)
		assert.Equal(t, int64(42), upd.ChatID)
	})

	t.Run("callback", func(t *testing.T) {
		upd, ok := convert(tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "cb-1",
			From:    from,
			Data:    "approve_77",
			Message: &tgbotapi.Message{MessageID: 5, Chat: &tgbotapi.Chat{ID: 1, Type: "private"}},
		}})
		require.True(t, ok)
		assert.Equal(t, messaging.UpdateInteraction, upd.Kind)
		assert.Equal(t, "cb-1", upd.InteractionID)
		assert.Equal(t, "approve_77", upd.Data)
		assert.Equal(t, messaging.MessageRef{ChatID: 1, MessageID: 5}, upd.Message)
	})

	t.Run("photos and joins are dropped", func(t *testing.T) {
		_, ok := convert(tgbotapi.Update{Message: &tgbotapi.Message{From: from, Chat: private}})
		assert.False(t, ok)
		_, ok = convert(tgbotapi.Update{})
		assert.False(t, ok)
	})
}

func TestUpdatesStopsOnCancel(t *testing.T) {
	api := &fakeAPI{updates: make(chan tgbotapi.Update, 1)}
	c := newWithAPI(api)
	ctx, cancel := context.WithCancel(context.Background())

	api.updates <- tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: 7}, Chat: &tgbotapi.Chat{ID: 7, Type: "private"}, Text: "hi",
	}}
	out := c.Updates(ctx)
	upd := <-out
	assert.Equal(t, "hi", upd.Text)

	cancel()
	for range out {
	}
	assert.True(t, api.stopped)
}
