// Package bot turns chat updates into verification, token and review calls.
// Updates are handled one at a time in arrival order.
package bot

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"gatekeeper/internal/messaging"
	reviewmodels "gatekeeper/internal/review/models"
	reviewsvc "gatekeeper/internal/review/service"
	verifymodels "gatekeeper/internal/verification/models"
	verifysvc "gatekeeper/internal/verification/service"
	dErrors "gatekeeper/pkg/domain-errors"
	pstrings "gatekeeper/pkg/platform/strings"
	"gatekeeper/pkg/requestcontext"
)

//go:generate mockgen -source=bot.go -destination=mocks/mocks.go -package=mocks Verifier,TokenAdmin,ReviewAdmin

type Verifier interface {
	Begin(ctx context.Context, identity messaging.Identity) (verifymodels.State, error)
	Reply(ctx context.Context, identity messaging.Identity, text string) (verifymodels.State, error)
	Cancel(ctx context.Context, identity messaging.Identity) verifymodels.State
}

type TokenAdmin interface {
	Add(ctx context.Context, actor int64, tokens []string) ([]string, error)
	List(ctx context.Context, actor int64) ([]string, error)
}

type ReviewAdmin interface {
	ListPending(ctx context.Context, actor int64) ([]reviewmodels.PendingEntry, error)
	ExportTokens(ctx context.Context, actor int64) ([]string, error)
	Decide(ctx context.Context, actor int64, d reviewmodels.Decision) (bool, error)
	ResolveByTokens(ctx context.Context, actor int64, tokens []string) (reviewmodels.BulkResult, error)
}

// Bot dispatches updates.
type Bot struct {
	verifier  Verifier
	tokens    TokenAdmin
	reviews   ReviewAdmin
	messenger messaging.Messenger
	admins    messaging.AdminChecker
	logger    *slog.Logger
}

type Option func(*Bot)

func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) {
		b.logger = logger
	}
}

func New(verifier Verifier, tokens TokenAdmin, reviews ReviewAdmin, messenger messaging.Messenger, admins messaging.AdminChecker, opts ...Option) (*Bot, error) {
	if verifier == nil {
		return nil, errors.New("verifier is required")
	}
	if tokens == nil {
		return nil, errors.New("token admin is required")
	}
	if reviews == nil {
		return nil, errors.New("review admin is required")
	}
	if messenger == nil {
		return nil, errors.New("messenger is required")
	}
	if admins == nil {
		return nil, errors.New("admin checker is required")
	}
	b := &Bot{
		verifier:  verifier,
		tokens:    tokens,
		reviews:   reviews,
		messenger: messenger,
		admins:    admins,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Run handles updates until the channel closes or ctx is done.
func (b *Bot) Run(ctx context.Context, updates <-chan messaging.Update) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			b.Handle(ctx, upd)
		}
	}
}

// Handle processes one update. Failures are logged and, where the user can act
// on them, reported back in the chat.
func (b *Bot) Handle(ctx context.Context, upd messaging.Update) {
	ctx = requestcontext.WithRequestID(ctx, uuid.NewString())
	ctx = requestcontext.WithTime(ctx, requestcontext.Now(ctx))
	ctx = requestcontext.WithActorID(ctx, upd.From.ID)

	var err error
	switch upd.Kind {
	case messaging.UpdateCommand:
		err = b.command(ctx, upd)
	case messaging.UpdateInteraction:
		err = b.interaction(ctx, upd)
	case messaging.UpdateText:
		if upd.Private {
			_, err = b.verifier.Reply(ctx, upd.From, upd.Text)
		}
	}
	if err != nil {
		b.fail(ctx, upd, err)
	}
}

func (b *Bot) command(ctx context.Context, upd messaging.Update) error {
	actor := upd.From.ID
	switch upd.Command {
	case "start":
		if !upd.Private {
			return nil
		}
		return b.reply(ctx, upd, verifysvc.WelcomeText, verifysvc.WelcomeKeyboard())

	case "help":
		return b.reply(ctx, upd, helpText(b.admins.IsAdministrator(actor)), nil)

	case "cancel":
		b.verifier.Cancel(ctx, upd.From)
		return nil

	case "pending":
		entries, err := b.reviews.ListPending(ctx, actor)
		if err != nil {
			return err
		}
		var kb messaging.Keyboard
		if len(entries) > 0 {
			kb = exportKeyboard()
		}
		return b.reply(ctx, upd, reviewsvc.FormatPending(entries), kb)

	case "add_codes":
		added, err := b.tokens.Add(ctx, actor, pstrings.SplitTokens(upd.Args))
		if dErrors.HasCode(err, dErrors.CodeValidation) {
			return b.reply(ctx, upd, textAddUsage, nil)
		}
		if err != nil {
			return err
		}
		return b.reply(ctx, upd, addedText(added), nil)

	case "list_codes":
		tokens, err := b.tokens.List(ctx, actor)
		if err != nil {
			return err
		}
		return b.reply(ctx, upd, tokenListText(tokens), nil)

	case "approve_codes":
		result, err := b.reviews.ResolveByTokens(ctx, actor, pstrings.SplitTokens(upd.Args))
		if dErrors.HasCode(err, dErrors.CodeValidation) {
			return b.reply(ctx, upd, textApproveUsage, nil)
		}
		if err != nil {
			return err
		}
		return b.reply(ctx, upd, reviewsvc.FormatBulkResult(result), nil)
	}
	return nil
}

func (b *Bot) interaction(ctx context.Context, upd messaging.Update) error {
	if err := b.messenger.AnswerInteraction(ctx, upd.InteractionID); err != nil {
		b.logger.DebugContext(ctx, "failed to answer interaction", "error", err)
	}
	actor := upd.From.ID

	switch upd.Data {
	case verifysvc.CallbackBegin:
		_, err := b.verifier.Begin(ctx, upd.From)
		return err

	case verifysvc.CallbackHelp:
		return b.messenger.EditMessage(ctx, upd.Message, helpText(b.admins.IsAdministrator(actor)), backKeyboard())

	case callbackBack:
		return b.messenger.EditMessage(ctx, upd.Message, verifysvc.WelcomeText, verifysvc.WelcomeKeyboard())

	case callbackExport:
		tokens, err := b.reviews.ExportTokens(ctx, actor)
		if err != nil {
			return err
		}
		return b.reply(ctx, upd, reviewsvc.FormatTokenExport(tokens), nil)
	}

	decision, ok := reviewsvc.ParseDecision(upd.Data)
	if !ok {
		b.logger.DebugContext(ctx, "unknown interaction", "data", upd.Data)
		return nil
	}
	resolved, err := b.reviews.Decide(ctx, actor, decision)
	if err != nil {
		return err
	}
	if !resolved {
		return b.reply(ctx, upd, textAlreadyHandled, nil)
	}
	return nil
}

func (b *Bot) reply(ctx context.Context, upd messaging.Update, text string, keyboard messaging.Keyboard) error {
	_, err := b.messenger.SendText(ctx, b.chatOf(upd), text, keyboard)
	return err
}

func (b *Bot) chatOf(upd messaging.Update) int64 {
	if upd.ChatID != 0 {
		return upd.ChatID
	}
	return upd.From.ID
}

// fail logs err and tells the user what they can do about it.
func (b *Bot) fail(ctx context.Context, upd messaging.Update, err error) {
	if errors.Is(err, messaging.ErrTransport) {
		b.logger.WarnContext(ctx, "chat delivery failed", "identity", upd.From.ID, "error", err)
		return
	}

	var text string
	switch dErrors.CodeOf(err) {
	case dErrors.CodeForbidden:
		text = textForbidden
	case dErrors.CodeUnavailable:
		text = textIssuanceRetry
		b.logger.WarnContext(ctx, "update handling degraded", "identity", upd.From.ID, "error", err)
	default:
		text = textInternal
		b.logger.ErrorContext(ctx, "update handling failed", "identity", upd.From.ID, "error", err)
	}
	if _, sendErr := b.messenger.SendText(ctx, b.chatOf(upd), text, nil); sendErr != nil {
		b.logger.WarnContext(ctx, "failed to report error", "identity", upd.From.ID, "error", sendErr)
	}
}
