package messaging

// UpdateKind tags what arrived from the chat platform.
type UpdateKind int

const (
	UpdateText UpdateKind = iota + 1
	UpdateCommand
	UpdateInteraction
)

// Update is one inbound event, already stripped of transport details.
type Update struct {
	Kind UpdateKind
	From Identity
	// ChatID is where replies go; for private chats it equals From.ID.
	ChatID  int64
	Private bool

	// Text holds the raw message text for UpdateText.
	Text string
	// Command and Args are set for UpdateCommand, without the leading slash.
	Command string
	Args    string

	// InteractionID, Data and Message describe a pressed button.
	InteractionID string
	Data          string
	Message       MessageRef
}
