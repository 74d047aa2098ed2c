package gateway

import (
	"context"
	"errors"
)

// ErrStale is returned when the target message no longer exists on the chat
// platform, for example when the user deleted the conversation. Callers treat
// it as a signal to stop touching that message, not as a failure.
var ErrStale = errors.New("message no longer exists")

// Button is one inline keyboard button. Data is the callback payload sent
// back when the button is pressed; URL makes the button an external link
// instead. Exactly one of the two should be set.
type Button struct {
	Label string
	Data  string
	URL   string
}

// Message is an outbound chat message with an optional inline keyboard.
// Buttons are laid out row by row.
type Message struct {
	ChatID  int64
	Text    string
	Buttons [][]Button
}

// Sent identifies a delivered message so it can later be edited or deleted.
type Sent struct {
	MessageID int64
}

// Gateway delivers messages to the chat platform. Implementations must map
// platform-level "message is gone" conditions to ErrStale.
type Gateway interface {
	Send(ctx context.Context, m Message) (Sent, error)
	Edit(ctx context.Context, chatID, messageID int64, m Message) error
	Delete(ctx context.Context, chatID, messageID int64) error
}
