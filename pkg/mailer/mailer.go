package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mailtpl/pkg/i18n"
	"github.com/dmitrymomot/mailtpl/pkg/logger"
)

// Mailer renders mail templates into Email values and optionally hands them
// to a Sender. It is safe for concurrent use.
type Mailer struct {
	renderer    Renderer
	sender      Sender
	locale      *i18n.Locale
	logger      *slog.Logger
	naming      Naming
	defaultLang string
	inlineCSS   bool
	processors  []HTMLProcessor
	emailOpts   []EmailOption
}

// New creates a Mailer rendering templates with r.
func New(r Renderer, opts ...Option) *Mailer {
	m := &Mailer{
		renderer:    r,
		naming:      DefaultNaming(),
		defaultLang: i18n.DefaultLang,
		logger:      logger.NewNope(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// With returns a copy of m with opts applied on top of its settings.
func (m *Mailer) With(opts ...Option) *Mailer {
	c := *m
	c.processors = slices.Clone(m.processors)
	c.emailOpts = slices.Clone(m.emailOpts)
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

// DefaultLanguage returns the language used when the context has none.
func (m *Mailer) DefaultLanguage() string {
	return m.defaultLang
}

// Make renders mail name for the given recipients and assembles an Email.
//
// The language is data["lang"] when set, otherwise the default language. The
// subject template is mandatory; the text and HTML bodies are optional but at
// least one of them must render to non-blank output:
//
//	text + html -> plain Body with an HTML alternative
//	html only   -> HTML Body
//	text only   -> plain Body
//
// data is not modified.
func (m *Mailer) Make(ctx context.Context, name string, to []string, data Context, opts ...EmailOption) (*Email, error) {
	lang := m.languageOf(data)
	ctx = i18n.ContextWithLanguage(ctx, lang)

	tmplData := data.clone()
	tmplData[LangKey] = lang

	var subject, html, text string
	render := func() error {
		var err error
		if subject, err = m.renderSubject(ctx, name, lang, tmplData); err != nil {
			return err
		}
		if html, err = m.renderHTML(ctx, name, lang, tmplData); err != nil {
			return err
		}
		text, err = m.renderBody(ctx, name, TemplateText, lang, tmplData)
		return err
	}

	var err error
	if m.locale != nil {
		err = m.locale.Do(lang, render)
	} else {
		err = render()
	}
	if err != nil {
		return nil, err
	}

	hasText := strings.TrimSpace(text) != ""
	hasHTML := strings.TrimSpace(html) != ""
	if !hasText && !hasHTML {
		return nil, fmt.Errorf("%w: %w: mail %q has no text or html body", ErrEmptyBody, ErrTemplateNotFound, name)
	}

	email := &Email{
		ID:       uuid.NewString(),
		Subject:  subject,
		To:       slices.Clone(to),
		Language: lang,
		Priority: PriorityStandard,
	}

	switch {
	case hasText && hasHTML:
		email.Body = text
		email.ContentSubtype = SubtypePlain
		email.AttachAlternative(html, MIMETypeHTML)
	case hasHTML:
		email.Body = html
		email.ContentSubtype = SubtypeHTML
	default:
		email.Body = text
		email.ContentSubtype = SubtypePlain
	}

	for _, opt := range slices.Concat(m.emailOpts, opts) {
		opt(email)
	}

	m.logger.DebugContext(ctx, "email assembled",
		slog.String("id", email.ID),
		slog.String("template", name),
		slog.String("kind", email.Kind().String()),
		slog.Int("recipients", len(email.To)),
	)

	return email, nil
}

// Send assembles mail name and delivers it through the configured Sender.
func (m *Mailer) Send(ctx context.Context, name string, to []string, data Context, opts ...EmailOption) error {
	if m.sender == nil {
		return ErrNoSender
	}

	email, err := m.Make(ctx, name, to, data, opts...)
	if err != nil {
		return err
	}
	return m.deliver(ctx, email)
}

// SendEmail delivers an already assembled Email.
func (m *Mailer) SendEmail(ctx context.Context, email *Email) error {
	if m.sender == nil {
		return ErrNoSender
	}
	if len(email.To) == 0 {
		return ErrNoRecipient
	}
	if email.Subject == "" {
		return ErrNoSubject
	}
	if email.HTML() == "" && email.Text() == "" {
		return ErrNoContent
	}
	return m.deliver(ctx, email)
}

func (m *Mailer) deliver(ctx context.Context, email *Email) error {
	if err := m.sender.Send(ctx, email); err != nil {
		m.logger.ErrorContext(ctx, "email delivery failed",
			slog.String("id", email.ID),
			slog.String("error", err.Error()),
		)
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

func (m *Mailer) languageOf(data Context) string {
	if lang, ok := data[LangKey].(string); ok {
		if lang = i18n.Normalize(lang); lang != "" {
			return lang
		}
	}
	return m.defaultLang
}

func (m *Mailer) renderSubject(ctx context.Context, name, lang string, data Context) (string, error) {
	file, err := m.naming.SubjectTemplateName(name)
	if err != nil {
		return "", err
	}
	subject, err := m.renderer.Render(ctx, file, TemplateSubject, lang, data)
	if err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(subject), " "), nil
}

func (m *Mailer) renderHTML(ctx context.Context, name, lang string, data Context) (string, error) {
	html, err := m.renderBody(ctx, name, TemplateHTML, lang, data)
	if err != nil || strings.TrimSpace(html) == "" {
		return html, err
	}
	processors := m.processors
	if m.inlineCSS {
		processors = append([]HTMLProcessor{InlineCSS}, processors...)
	}
	for _, process := range processors {
		if html, err = process(html); err != nil {
			if !errors.Is(err, ErrRenderFailed) {
				err = errors.Join(ErrRenderFailed, err)
			}
			return "", err
		}
	}
	return html, nil
}

// renderBody renders an optional body template. A missing file is logged and
// reported as an empty body.
func (m *Mailer) renderBody(ctx context.Context, name string, kind TemplateKind, lang string, data Context) (string, error) {
	file, err := m.naming.BodyTemplateName(name, kind)
	if err != nil {
		return "", err
	}
	body, err := m.renderer.Render(ctx, file, kind, lang, data)
	if errors.Is(err, ErrTemplateNotFound) {
		m.logger.WarnContext(ctx, "email template does not exist",
			slog.String("template", file),
			slog.String("kind", kind.String()),
		)
		return "", nil
	}
	return body, err
}
