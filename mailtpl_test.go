package mailtpl_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtpl"
	"github.com/dmitrymomot/mailtpl/pkg/mailer"
)

func testRenderer() mailtpl.Renderer {
	return mailer.NewRenderer(fstest.MapFS{
		"emails/hello-subject.html":   &fstest.MapFile{Data: []byte(`Hello {{ index .to 0 }}`)},
		"emails/hello-body-text.html": &fstest.MapFile{Data: []byte(`Hi {{ index .to 0 }} ({{ lang }})`)},
		"emails/hello-body-html.html": &fstest.MapFile{
			Data: []byte(`<html><head><style>p { color: green; }</style></head><body><p>Hi</p></body></html>`),
		},
	})
}

func TestMakeEmail_DefaultsDataToRecipients(t *testing.T) {
	t.Parallel()

	email, err := mailtpl.MakeEmail(context.Background(), testRenderer(), "hello", []string{"alice@example.com"}, nil)
	require.NoError(t, err)
	require.Equal(t, "Hello alice@example.com", email.Subject)
	require.Equal(t, "Hi alice@example.com (en)", email.Text())
	require.Equal(t, mailer.MessageMultipart, email.Kind())
}

func TestMakeEmail_Options(t *testing.T) {
	t.Parallel()

	email, err := mailtpl.MakeEmail(context.Background(), testRenderer(), "hello",
		[]string{"alice@example.com"},
		mailtpl.Context{"to": []string{"someone"}},
		mailer.WithDefaultLanguage("es"),
	)
	require.NoError(t, err)
	require.Equal(t, "Hello someone", email.Subject)
	require.Equal(t, "es", email.Language)
}

func TestMakeEmail_EmailOptions(t *testing.T) {
	t.Parallel()

	email, err := mailtpl.MakeEmail(context.Background(), testRenderer(), "hello",
		[]string{"alice@example.com"}, nil,
		mailer.WithEmailOptions(
			mailer.WithFrom("team@example.com"),
			mailer.WithCC("boss@example.com"),
			mailer.WithPriority(mailer.PriorityHigh),
		),
	)
	require.NoError(t, err)
	require.Equal(t, "team@example.com", email.From)
	require.Equal(t, []string{"boss@example.com"}, email.CC)
	require.Equal(t, mailer.PriorityHigh, email.Priority)
}

func TestNewBuilder(t *testing.T) {
	t.Parallel()

	email, err := mailtpl.NewBuilder(testRenderer()).Build(context.Background(), "hello",
		mailtpl.Address{Email: "bob@example.com", Lang: "de"},
		mailtpl.Context{"to": []string{"bob@example.com"}},
	)
	require.NoError(t, err)
	require.Equal(t, "de", email.Language)
	require.Contains(t, email.HTML(), "p { color: green; }")
}

func TestNewGroupingMailer(t *testing.T) {
	t.Parallel()

	emails, err := mailtpl.NewGroupingMailer(testRenderer()).Build(context.Background(), "hello",
		[]any{mailtpl.Address{Email: "a@example.com", Lang: "fr"}, "b@example.com"},
		mailtpl.Context{"to": []string{"group"}, "lang": "en"},
	)
	require.NoError(t, err)
	require.Len(t, emails, 2)
	require.Equal(t, []string{"a@example.com"}, emails["fr"].To)
	require.Equal(t, []string{"b@example.com"}, emails["en"].To)
	require.Equal(t, "Hi group (fr)", emails["fr"].Text())
	require.Contains(t, emails["en"].HTML(), `<p style="color: green;">Hi</p>`)
}
