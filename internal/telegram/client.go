// Package telegram adapts the Telegram Bot API to the messaging contracts.
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"gatekeeper/internal/messaging"
	"gatekeeper/pkg/platform/circuit"
)

// botAPI is the subset of *tgbotapi.BotAPI the adapter uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Client implements messaging.Messenger and messaging.InviteIssuer.
type Client struct {
	api         botAPI
	logger      *slog.Logger
	pollTimeout int
	issuance    *circuit.Breaker
}

type Option func(*Client)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithPollTimeout sets the long-poll timeout in seconds.
func WithPollTimeout(seconds int) Option {
	return func(c *Client) {
		if seconds > 0 {
			c.pollTimeout = seconds
		}
	}
}

// WithIssuanceBreaker tracks invite link failures on b.
func WithIssuanceBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		c.issuance = b
	}
}

// New authenticates with token and returns a ready client.
func New(token string, opts ...Option) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect to bot api: %w", err)
	}
	c := newWithAPI(api, opts...)
	c.logger.Info("telegram bot authorized", "username", api.Self.UserName)
	return c, nil
}

func newWithAPI(api botAPI, opts ...Option) *Client {
	c := &Client{api: api, logger: slog.Default(), pollTimeout: 60}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SendText(_ context.Context, chatID int64, text string, keyboard messaging.Keyboard) (messaging.MessageRef, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup := inlineMarkup(keyboard); markup != nil {
		msg.ReplyMarkup = *markup
	}
	sent, err := c.api.Send(msg)
	if err != nil {
		return messaging.MessageRef{}, fmt.Errorf("%w: send message: %v", messaging.ErrTransport, err)
	}
	return refOf(sent), nil
}

func (c *Client) SendImage(_ context.Context, chatID int64, image []byte, caption string) (messaging.MessageRef, error) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "captcha.png", Bytes: image})
	photo.Caption = caption
	sent, err := c.api.Send(photo)
	if err != nil {
		return messaging.MessageRef{}, fmt.Errorf("%w: send photo: %v", messaging.ErrTransport, err)
	}
	return refOf(sent), nil
}

// EditMessage replaces the text of ref. A nil keyboard removes the buttons.
func (c *Client) EditMessage(_ context.Context, ref messaging.MessageRef, text string, keyboard messaging.Keyboard) error {
	edit := tgbotapi.NewEditMessageText(ref.ChatID, ref.MessageID, text)
	edit.ReplyMarkup = inlineMarkup(keyboard)
	if _, err := c.api.Request(edit); err != nil {
		return fmt.Errorf("%w: edit message: %v", messaging.ErrTransport, err)
	}
	return nil
}

func (c *Client) AnswerInteraction(_ context.Context, interactionID string) error {
	if _, err := c.api.Request(tgbotapi.NewCallback(interactionID, "")); err != nil {
		return fmt.Errorf("%w: answer callback: %v", messaging.ErrTransport, err)
	}
	return nil
}

// CreateSingleUseLink asks the group for an invite link limited to one member.
func (c *Client) CreateSingleUseLink(ctx context.Context, groupID int64) (string, error) {
	link, err := c.createLink(groupID)
	c.recordIssuance(ctx, err)
	return link, err
}

// IssuanceHealthy is false while invite creation keeps failing.
func (c *Client) IssuanceHealthy() bool {
	return c.issuance == nil || !c.issuance.IsOpen()
}

func (c *Client) recordIssuance(ctx context.Context, err error) {
	if c.issuance == nil {
		return
	}
	if err != nil {
		if _, change := c.issuance.RecordFailure(); change.Opened {
			c.logger.WarnContext(ctx, "invite issuance circuit opened", "breaker", c.issuance.Name(), "error", err)
		}
		return
	}
	if _, change := c.issuance.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "invite issuance circuit closed", "breaker", c.issuance.Name())
	}
}

func (c *Client) createLink(groupID int64) (string, error) {
	resp, err := c.api.Request(tgbotapi.CreateChatInviteLinkConfig{
		ChatConfig:  tgbotapi.ChatConfig{ChatID: groupID},
		MemberLimit: 1,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", messaging.ErrIssuance, err)
	}
	var link tgbotapi.ChatInviteLink
	if err := json.Unmarshal(resp.Result, &link); err != nil {
		return "", fmt.Errorf("%w: decode invite link: %v", messaging.ErrIssuance, err)
	}
	if link.InviteLink == "" {
		return "", fmt.Errorf("%w: empty invite link", messaging.ErrIssuance)
	}
	return link.InviteLink, nil
}

// Updates long-polls the bot API until ctx is done. The returned channel is
// closed once polling has stopped.
func (c *Client) Updates(ctx context.Context) <-chan messaging.Update {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = c.pollTimeout
	in := c.api.GetUpdatesChan(cfg)

	out := make(chan messaging.Update)
	go func() {
		defer close(out)
		defer c.api.StopReceivingUpdates()
		for {
			select {
			case <-ctx.Done():
				return
			case raw, ok := <-in:
				if !ok {
					return
				}
				upd, ok := convert(raw)
				if !ok {
					continue
				}
				select {
				case out <- upd:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// convert maps the update kinds the bot reacts to; everything else is dropped.
func convert(raw tgbotapi.Update) (messaging.Update, bool) {
	switch {
	case raw.CallbackQuery != nil:
		q := raw.CallbackQuery
		upd := messaging.Update{
			Kind:          messaging.UpdateInteraction,
			From:          identityOf(q.From),
			InteractionID: q.ID,
			Data:          q.Data,
		}
		if q.Message != nil {
			upd.Message = refOf(*q.Message)
			upd.ChatID = q.Message.Chat.ID
			upd.Private = q.Message.Chat.IsPrivate()
		}
		return upd, true

	case raw.Message != nil && raw.Message.From != nil:
		m := raw.Message
		upd := messaging.Update{
			From:    identityOf(m.From),
			Private: m.Chat != nil && m.Chat.IsPrivate(),
			Message: refOf(*m),
		}
		if m.Chat != nil {
			upd.ChatID = m.Chat.ID
		}
		if m.IsCommand() {
			upd.Kind = messaging.UpdateCommand
			upd.Command = m.Command()
			upd.Args = m.CommandArguments()
			return upd, true
		}
		if m.Text == "" {
			return messaging.Update{}, false
		}
		upd.Kind = messaging.UpdateText
		upd.Text = m.Text
		return upd, true
	}
	return messaging.Update{}, false
}

func identityOf(u *tgbotapi.User) messaging.Identity {
	if u == nil {
		return messaging.Identity{}
	}
	return messaging.Identity{ID: u.ID, Username: u.UserName, FirstName: u.FirstName}
}

func refOf(m tgbotapi.Message) messaging.MessageRef {
	ref := messaging.MessageRef{MessageID: m.MessageID}
	if m.Chat != nil {
		ref.ChatID = m.Chat.ID
	}
	return ref
}

func inlineMarkup(keyboard messaging.Keyboard) *tgbotapi.InlineKeyboardMarkup {
	if len(keyboard) == 0 {
		return nil
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(keyboard))
	for _, row := range keyboard {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons...))
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}
