package mailer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtpl/pkg/i18n"
)

func newTestI18n(t *testing.T) *i18n.I18n {
	t.Helper()

	tr, err := i18n.New(
		i18n.WithTranslations("en", "emails", map[string]any{
			"welcome": map[string]any{
				"subject": "Welcome, {{name}}",
				"intro":   "Thanks for joining",
			},
		}),
		i18n.WithTranslations("fr", "emails", map[string]any{
			"welcome": map[string]any{
				"subject": "Bienvenue, {{name}}",
				"intro":   "Merci de nous rejoindre",
			},
		}),
	)
	require.NoError(t, err)
	return tr
}

func TestFSRenderer_TranslatesInRequestedLanguage(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"emails/welcome-subject.html": &fstest.MapFile{
			Data: []byte(`{{ t "welcome.subject" (dict "name" .name) }}`),
		},
	}
	r := NewRendererWithConfig(fsys, RendererConfig{I18n: newTestI18n(t)})
	data := Context{"name": "Alice"}

	fr, err := r.Render(context.Background(), "emails/welcome-subject.html", TemplateSubject, "fr", data)
	require.NoError(t, err)
	require.Equal(t, "Bienvenue, Alice", fr)

	en, err := r.Render(context.Background(), "emails/welcome-subject.html", TemplateSubject, "en", data)
	require.NoError(t, err)
	require.Equal(t, "Welcome, Alice", en)
}

func TestFSRenderer_LangFunc(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"emails/welcome-body-text.html": &fstest.MapFile{Data: []byte(`lang={{ lang }}`)},
	}
	r := NewRenderer(fsys)

	out, err := r.Render(context.Background(), "emails/welcome-body-text.html", TemplateText, "pt_BR", nil)
	require.NoError(t, err)
	require.Equal(t, "lang=pt-BR", out)
}

func TestFSRenderer_EscapesOnlyHTML(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"emails/note-body-html.html": &fstest.MapFile{Data: []byte(`<p>{{ .name }}</p>`)},
		"emails/note-body-text.html": &fstest.MapFile{Data: []byte(`{{ .name }}`)},
	}
	r := NewRenderer(fsys)
	data := Context{"name": "<b>Bob</b>"}

	html, err := r.Render(context.Background(), "emails/note-body-html.html", TemplateHTML, "en", data)
	require.NoError(t, err)
	require.Equal(t, "<p>&lt;b&gt;Bob&lt;/b&gt;</p>", html)

	text, err := r.Render(context.Background(), "emails/note-body-text.html", TemplateText, "en", data)
	require.NoError(t, err)
	require.Equal(t, "<b>Bob</b>", text)
}

func TestFSRenderer_MarkdownWithLayout(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`<html lang="{{ .Lang }}"><title>{{ .Meta.title }}</title><body>{{ .Content }}</body></html>`),
		},
		"emails/promo.md": &fstest.MapFile{
			Data: []byte(`---
layout: base.html
title: Spring sale
---
Hello **{{ .name }}**

[!button|Shop now](https://example.com/shop)
`),
		},
	}
	r := NewRendererWithConfig(fsys, RendererConfig{ButtonClass: "cta"})

	html, err := r.Render(context.Background(), "emails/promo.md", TemplateHTML, "de", Context{"name": "Alice"})
	require.NoError(t, err)
	require.Contains(t, html, `<html lang="de">`)
	require.Contains(t, html, `<title>Spring sale</title>`)
	require.Contains(t, html, "<strong>Alice</strong>")
	require.Contains(t, html, `<a href="https://example.com/shop" class="cta">Shop now</a>`)

	text, err := r.Render(context.Background(), "emails/promo.md", TemplateText, "de", Context{"name": "Alice"})
	require.NoError(t, err)
	require.Contains(t, text, "Hello **Alice**")
	require.NotContains(t, text, "<strong>")
	require.NotContains(t, text, "layout:")
}

func TestFSRenderer_SubjectKeepsLeadingDashes(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"emails/alert-subject.html": &fstest.MapFile{Data: []byte(`--- Alert ---`)},
	}
	r := NewRenderer(fsys)

	out, err := r.Render(context.Background(), "emails/alert-subject.html", TemplateSubject, "en", nil)
	require.NoError(t, err)
	require.Equal(t, "--- Alert ---", out)
}

func TestFSRenderer_Errors(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"emails/broken-body-html.html": &fstest.MapFile{Data: []byte(`<p>{{ .name </p>`)},
		"emails/nolayout-body-html.html": &fstest.MapFile{
			Data: []byte("---\nlayout: missing.html\n---\n<p>hi</p>"),
		},
		"emails/badfront-body-html.html": &fstest.MapFile{Data: []byte("---\nlayout: x\n")},
		"emails/exec-body-text.html":     &fstest.MapFile{Data: []byte(`{{ .name.first }}`)},
	}
	r := NewRenderer(fsys)
	ctx := context.Background()

	_, err := r.Render(ctx, "emails/absent-body-html.html", TemplateHTML, "en", nil)
	require.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = r.Render(ctx, "emails/broken-body-html.html", TemplateHTML, "en", nil)
	require.ErrorIs(t, err, ErrRenderFailed)

	_, err = r.Render(ctx, "emails/nolayout-body-html.html", TemplateHTML, "en", nil)
	require.ErrorIs(t, err, ErrLayoutNotFound)

	_, err = r.Render(ctx, "emails/badfront-body-html.html", TemplateHTML, "en", nil)
	require.ErrorIs(t, err, ErrInvalidFrontmatter)

	_, err = r.Render(ctx, "emails/exec-body-text.html", TemplateText, "en", Context{"name": "Alice"})
	require.ErrorIs(t, err, ErrRenderFailed)
}

func TestFSRenderer_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRenderer(fstest.MapFS{}).Render(ctx, "x", TemplateText, "en", nil)
	require.ErrorIs(t, err, context.Canceled)
}

// countingFS wraps MapFS and counts ReadFile calls.
type countingFS struct {
	fstest.MapFS
	reads *atomic.Int32
}

func (c *countingFS) ReadFile(name string) ([]byte, error) {
	c.reads.Add(1)
	return c.MapFS.ReadFile(name)
}

func TestFSRenderer_CachesParsedTemplates(t *testing.T) {
	t.Parallel()

	var reads atomic.Int32
	fsys := &countingFS{
		MapFS: fstest.MapFS{
			"layouts/base.html":           &fstest.MapFile{Data: []byte(`<div>{{ .Content }}</div>`)},
			"emails/hello-body-html.html": &fstest.MapFile{Data: []byte("---\nlayout: base.html\n---\n<p>{{ .name }}</p>")},
		},
		reads: &reads,
	}
	r := NewRenderer(fsys)

	first, err := r.Render(context.Background(), "emails/hello-body-html.html", TemplateHTML, "en", Context{"name": "Alice"})
	require.NoError(t, err)
	require.Equal(t, "<div><p>Alice</p></div>", first)
	require.Equal(t, int32(2), reads.Load(), "template and layout read once")

	second, err := r.Render(context.Background(), "emails/hello-body-html.html", TemplateHTML, "en", Context{"name": "Bob"})
	require.NoError(t, err)
	require.Equal(t, "<div><p>Bob</p></div>", second, "output is not cached")
	require.Equal(t, int32(2), reads.Load())
}

func TestFSRenderer_ConcurrentLanguages(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"emails/welcome-body-text.html": &fstest.MapFile{Data: []byte(`{{ t "welcome.intro" }}`)},
	}
	r := NewRendererWithConfig(fsys, RendererConfig{I18n: newTestI18n(t)})

	want := map[string]string{
		"en": "Thanks for joining",
		"fr": "Merci de nous rejoindre",
	}

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := range 50 {
		lang := "en"
		if i%2 == 1 {
			lang = "fr"
		}
		wg.Go(func() {
			out, err := r.Render(context.Background(), "emails/welcome-body-text.html", TemplateText, lang, nil)
			if err != nil {
				errs <- err
				return
			}
			if out != want[lang] {
				errs <- fmt.Errorf("lang %s: got %q", lang, out)
			}
		})
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}
