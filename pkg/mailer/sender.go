package mailer

import "context"

// Sender is the transport an assembled Email is handed to.
type Sender interface {
	// Send delivers an email message. Implementations read the body through
	// Email.Text and Email.HTML.
	Send(ctx context.Context, email *Email) error
}
