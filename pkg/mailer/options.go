package mailer

import (
	"log/slog"
	"maps"

	"github.com/dmitrymomot/mailtpl/pkg/i18n"
)

// Option configures a Mailer.
type Option func(*Mailer)

// WithSender sets the transport used by Send and SendEmail.
func WithSender(s Sender) Option {
	return func(m *Mailer) {
		m.sender = s
	}
}

// WithNaming sets the template file naming convention.
func WithNaming(n Naming) Option {
	return func(m *Mailer) {
		m.naming = n.withDefaults()
	}
}

// WithDefaultLanguage sets the language used when the context has no "lang".
func WithDefaultLanguage(lang string) Option {
	return func(m *Mailer) {
		if lang = i18n.Normalize(lang); lang != "" {
			m.defaultLang = lang
		}
	}
}

// WithHTMLProcessors appends post-processors run, in order, on non-empty
// HTML bodies.
func WithHTMLProcessors(p ...HTMLProcessor) Option {
	return func(m *Mailer) {
		m.processors = append(m.processors, p...)
	}
}

// WithInlineCSS turns InlineCSS on or off. When on, it runs before the
// processors given to WithHTMLProcessors.
func WithInlineCSS(enabled bool) Option {
	return func(m *Mailer) {
		m.inlineCSS = enabled
	}
}

// WithEmailOptions sets EmailOptions applied to every assembled Email before
// the ones passed to Make.
func WithEmailOptions(opts ...EmailOption) Option {
	return func(m *Mailer) {
		m.emailOpts = append(m.emailOpts, opts...)
	}
}

// WithLocale activates the mail language on l while templates render.
func WithLocale(l *i18n.Locale) Option {
	return func(m *Mailer) {
		m.locale = l
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mailer) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithConfig applies naming, default language and CSS inlining from cfg.
func WithConfig(cfg Config) Option {
	return func(m *Mailer) {
		WithNaming(cfg.Naming())(m)
		WithDefaultLanguage(cfg.DefaultLanguage)(m)
		if cfg.InlineCSS {
			m.inlineCSS = true
		}
	}
}

// EmailOption sets transport fields on an assembled Email.
type EmailOption func(*Email)

// WithPriority sets the message priority (PriorityStandard by default).
func WithPriority(p Priority) EmailOption {
	return func(e *Email) { e.Priority = p }
}

// WithFrom overrides the transport's default sender.
func WithFrom(from string) EmailOption {
	return func(e *Email) { e.From = from }
}

// WithReplyTo sets the Reply-To address.
func WithReplyTo(addr string) EmailOption {
	return func(e *Email) { e.ReplyTo = addr }
}

// WithCC adds carbon copy recipients.
func WithCC(addrs ...string) EmailOption {
	return func(e *Email) { e.CC = append(e.CC, addrs...) }
}

// WithBCC adds blind carbon copy recipients.
func WithBCC(addrs ...string) EmailOption {
	return func(e *Email) { e.BCC = append(e.BCC, addrs...) }
}

// WithHeaders adds custom headers.
func WithHeaders(h map[string]string) EmailOption {
	return func(e *Email) {
		if e.Headers == nil {
			e.Headers = make(map[string]string, len(h))
		}
		maps.Copy(e.Headers, h)
	}
}

// WithTags adds provider tags.
func WithTags(t Tags) EmailOption {
	return func(e *Email) {
		if e.Tags == nil {
			e.Tags = make(Tags, len(t))
		}
		maps.Copy(e.Tags, t)
	}
}

// WithAttachments adds file attachments.
func WithAttachments(a ...Attachment) EmailOption {
	return func(e *Email) { e.Attachments = append(e.Attachments, a...) }
}
