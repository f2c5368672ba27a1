// Package messaging defines what the gatekeeper needs from the chat platform:
// a way to talk to people and a way to mint single-use group invite links.
package messaging

import (
	"context"
	"errors"
	"strconv"
)

//go:generate mockgen -source=messaging.go -destination=mocks/mocks.go -package=mocks Messenger,InviteIssuer,AdminChecker

var (
	// ErrTransport marks a failed send, edit or callback answer.
	ErrTransport = errors.New("messaging transport error")
	// ErrIssuance marks a failure to mint an invite link.
	ErrIssuance = errors.New("invite link issuance failed")
)

// Identity is a chat principal as reported by the transport on each update.
type Identity struct {
	ID        int64
	Username  string
	FirstName string
}

// DisplayName prefers the @handle and falls back to the first name, then the id.
func (i Identity) DisplayName() string {
	switch {
	case i.Username != "":
		return "@" + i.Username
	case i.FirstName != "":
		return i.FirstName
	default:
		return strconv.FormatInt(i.ID, 10)
	}
}

// Button is an inline affordance; Data comes back verbatim when pressed.
type Button struct {
	Label string
	Data  string
}

// Keyboard is rows of buttons. A nil Keyboard sends no affordances.
type Keyboard [][]Button

// Row builds a one-row keyboard fragment.
func Row(buttons ...Button) []Button {
	return buttons
}

// MessageRef addresses a message that was already sent.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

func (r MessageRef) IsZero() bool {
	return r.ChatID == 0 && r.MessageID == 0
}

// Messenger sends and edits chat messages. Every method fails with an error
// wrapping ErrTransport.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string, keyboard Keyboard) (MessageRef, error)
	SendImage(ctx context.Context, chatID int64, image []byte, caption string) (MessageRef, error)
	EditMessage(ctx context.Context, ref MessageRef, text string, keyboard Keyboard) error
	AnswerInteraction(ctx context.Context, interactionID string) error
}

// InviteIssuer mints a join link good for exactly one member. Failures wrap
// ErrIssuance.
type InviteIssuer interface {
	CreateSingleUseLink(ctx context.Context, groupID int64) (string, error)
}

// AdminChecker is consulted by every administrative operation.
type AdminChecker interface {
	IsAdministrator(identity int64) bool
}

// AdminCheck compares against the single configured administrator.
type AdminCheck struct {
	AdminID int64
}

func (a AdminCheck) IsAdministrator(identity int64) bool {
	return a.AdminID != 0 && identity == a.AdminID
}
