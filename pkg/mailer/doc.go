// Package mailer renders localized mail templates and assembles them into
// provider-agnostic Email values.
//
// # Templates
//
// A mail is a set of up to three templates found through Naming. With the
// default prototypes, mail "welcome" uses:
//
//	emails/welcome-subject.html    subject, mandatory
//	emails/welcome-body-html.html  HTML body, optional
//	emails/welcome-body-text.html  text body, optional
//
// The shape of the message follows from which bodies render to non-blank
// output: both give a multipart/alternative message (text body, HTML
// alternative), one of them gives a single-part message, none is an
// ErrEmptyBody error. A missing subject template is an ErrTemplateNotFound
// error.
//
// FSRenderer reads templates from any fs.FS. HTML bodies use html/template,
// the rest text/template. Markdown bodies (".md") are converted with goldmark
// and support a [!button|Label](url) call-to-action syntax. Body templates
// may carry YAML frontmatter; "layout: base.html" wraps the HTML output in
// layouts/base.html.
//
// # Usage
//
//	tr, _ := i18n.New(i18n.WithYAMLDir(translationsFS))
//	sender, _ := resend.New(resendCfg)
//	r := mailer.NewRendererWithConfig(templatesFS, mailer.RendererConfig{I18n: tr})
//	m := mailer.New(r,
//		mailer.WithSender(sender),
//		mailer.WithInlineCSS(true),
//		mailer.WithHTMLProcessors(sanitizer.EmailHTML),
//	)
//
//	err := m.Send(ctx, "welcome", []string{"ann@example.com"}, mailer.Context{
//		"lang": "fr",
//		"Name": "Ann",
//	})
//
// # Languages
//
// The render language is Context["lang"] or the mailer default. It is passed
// explicitly to the Renderer, stored on the context for logging
// (i18n.ContextWithLanguage) and, with WithLocale, activated on a shared
// i18n.Locale for the duration of the render.
//
// # Builders
//
// Builder and GroupingBuilder accept recipients as plain addresses or as
// objects exposing email and language attributes (Address, structs, maps).
// Builder produces one Email in one language. GroupingBuilder produces one
// Email per recipient language and inlines CSS by default:
//
//	b := mailer.NewGroupingBuilder(m)
//	emails, err := b.Build(ctx, "welcome", []any{
//		mailer.Address{Email: "a@x.io", Lang: "fr"},
//		"b@x.io",
//	}, mailer.Context{"lang": "en"})
//	// emails["fr"].To == [a@x.io], emails["en"].To == [b@x.io]
//
// # Errors
//
//   - ErrTemplateNotFound: subject template (or every body) missing
//   - ErrEmptyBody: neither text nor HTML body rendered
//   - ErrMissingAddress: recipient without address, names the index
//   - ErrInvalidPrototype: unknown placeholder in a naming prototype
//   - ErrRenderFailed: template execution or HTML processing failed
//   - ErrNoSender, ErrSendFailed: delivery problems
package mailer
