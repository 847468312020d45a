package mailer

import "errors"

var (
	// ErrTemplateNotFound indicates a template file does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrEmptyBody indicates neither a text nor an HTML body could be rendered.
	ErrEmptyBody = errors.New("email body must not be empty")

	// ErrMissingAddress indicates a recipient without a usable email address.
	ErrMissingAddress = errors.New("unable to retrieve email address from recipient")

	// ErrInvalidPrototype indicates a template name prototype with unknown placeholders.
	ErrInvalidPrototype = errors.New("invalid template name prototype")

	// ErrRenderFailed indicates template execution or HTML post-processing failed.
	ErrRenderFailed = errors.New("failed to render template")

	// ErrLayoutNotFound indicates the layout named in frontmatter was not found.
	ErrLayoutNotFound = errors.New("layout not found")

	// ErrInvalidFrontmatter indicates invalid YAML frontmatter.
	ErrInvalidFrontmatter = errors.New("invalid frontmatter")

	// ErrNoSender indicates Send was called on a mailer without a Sender.
	ErrNoSender = errors.New("mailer has no sender configured")

	// ErrSendFailed indicates the transport failed to deliver the email.
	ErrSendFailed = errors.New("failed to send email")

	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrNoSubject indicates no subject was provided.
	ErrNoSubject = errors.New("email must have a subject")

	// ErrNoContent indicates an email with neither text nor HTML content.
	ErrNoContent = errors.New("email must have text or HTML content")
)
