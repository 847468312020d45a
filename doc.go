// Package mailtpl renders localized email templates into messages.
//
// For every mail name a subject template and optional text and HTML body
// templates are looked up. The subject is mandatory. Depending on which bodies
// render to non-blank output the message is plain text, HTML, or plain text
// with an HTML alternative (multipart/alternative). At least one body is
// required.
//
// # Quick Start
//
//	renderer := mailer.NewRenderer(os.DirFS("templates"))
//
//	email, err := mailtpl.MakeEmail(ctx, renderer, "welcome",
//	    []string{"alice@example.com"},
//	    mailtpl.Context{"name": "Alice", "lang": "fr"},
//	)
//
// With the default naming the call above reads
//
//	emails/welcome-subject.html
//	emails/welcome-body-text.html
//	emails/welcome-body-html.html
//
// # Languages
//
// The "lang" key of the context selects the render language. It is passed
// explicitly to the renderer, where templates reach translations through
// {{ t "key" }} and the language through {{ lang }}.
//
// A GroupingBuilder splits a recipient list by the recipients' own languages
// and renders one message per language:
//
//	emails, err := mailtpl.NewGroupingMailer(renderer).Build(ctx, "welcome",
//	    []any{mailtpl.Address{Email: "a@example.com", Lang: "fr"}, "b@example.com"},
//	    mailtpl.Context{"lang": "en"},
//	)
//	// emails["fr"] goes to a@example.com, emails["en"] to b@example.com
//
// # Packages
//
//   - pkg/mailer: naming, rendering, assembly, builders, CSS inlining
//   - pkg/mailer/resend: Sender backed by the Resend API
//   - pkg/i18n: translations and language helpers
//   - pkg/sanitizer: HTML sanitizing for outgoing mail
//   - pkg/logger: slog setup
//   - pkg/config: environment configuration
package mailtpl
