package mailtpl

import (
	"context"

	"github.com/dmitrymomot/mailtpl/pkg/mailer"
)

// Type aliases - public API
type (
	// Mailer renders mail templates into Email values.
	Mailer = mailer.Mailer

	// Email is an assembled message.
	Email = mailer.Email

	// Context is the data passed to mail templates.
	Context = mailer.Context

	// Renderer renders one template file for a language.
	Renderer = mailer.Renderer

	// Sender delivers assembled emails.
	Sender = mailer.Sender

	// Address is the built-in recipient type.
	Address = mailer.Address

	// Option configures a Mailer.
	Option = mailer.Option

	// EmailOption sets transport fields on an Email.
	EmailOption = mailer.EmailOption

	// BuilderOption configures the builders.
	BuilderOption = mailer.BuilderOption

	// Builder assembles one Email for a recipient list.
	Builder = mailer.Builder

	// GroupingBuilder assembles one Email per recipient language.
	GroupingBuilder = mailer.GroupingBuilder
)

// New creates a Mailer rendering templates with r.
//
// Example:
//
//	m := mailtpl.New(
//	    mailer.NewRenderer(os.DirFS("templates")),
//	    mailer.WithSender(sender),
//	    mailer.WithDefaultLanguage("en"),
//	)
func New(r Renderer, opts ...Option) *Mailer {
	return mailer.New(r, opts...)
}

// MakeEmail assembles mail name in one call. A nil data defaults to
// Context{"to": to}. Message fields are set with mailer.WithEmailOptions:
//
//	email, err := mailtpl.MakeEmail(ctx, renderer, "welcome", to, nil,
//	    mailer.WithEmailOptions(mailer.WithFrom("team@example.com"), mailer.WithPriority(mailer.PriorityHigh)),
//	)
func MakeEmail(ctx context.Context, r Renderer, name string, to []string, data Context, opts ...Option) (*Email, error) {
	if data == nil {
		data = Context{"to": to}
	}
	return mailer.New(r, opts...).Make(ctx, name, to, data)
}

// NewBuilder creates a Builder producing a single message per call.
func NewBuilder(r Renderer, opts ...Option) *Builder {
	return mailer.NewBuilder(mailer.New(r, opts...))
}

// NewGroupingMailer creates a GroupingBuilder with CSS inlining enabled.
//
// Example:
//
//	welcome := mailtpl.NewGroupingMailer(renderer).Template("welcome")
//	emails, err := welcome(ctx, users, mailtpl.Context{"name": "Alice"})
func NewGroupingMailer(r Renderer, opts ...Option) *GroupingBuilder {
	return mailer.NewGroupingBuilder(mailer.New(r, opts...))
}
