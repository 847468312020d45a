package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTemplate_WithFrontmatter(t *testing.T) {
	t.Parallel()

	content := []byte(`---
layout: base.html
preheader: Confirm your address
---
<p>Hello {{ .name }}</p>
`)

	tmpl, err := ParseTemplate(content)
	require.NoError(t, err)
	require.Equal(t, "base.html", tmpl.Layout())
	require.Equal(t, "Confirm your address", tmpl.Meta["preheader"])
	require.Equal(t, "<p>Hello {{ .name }}</p>\n", tmpl.Body)
}

func TestParseTemplate_WithoutFrontmatter(t *testing.T) {
	t.Parallel()

	content := []byte("Hello {{ .name }}")

	tmpl, err := ParseTemplate(content)
	require.NoError(t, err)
	require.Empty(t, tmpl.Meta)
	require.Empty(t, tmpl.Layout())
	require.Equal(t, string(content), tmpl.Body)
}

func TestParseTemplate_EmptyFrontmatter(t *testing.T) {
	t.Parallel()

	tmpl, err := ParseTemplate([]byte("---\n---\nBody"))
	require.NoError(t, err)
	require.Empty(t, tmpl.Meta)
	require.Equal(t, "Body", tmpl.Body)
}

func TestParseTemplate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "nothing after opening delimiter", content: "---\n"},
		{name: "missing closing delimiter", content: "---\nlayout: base.html\nbody"},
		{name: "invalid yaml", content: "---\nlayout: [unclosed\n---\nbody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseTemplate([]byte(tt.content))
			require.ErrorIs(t, err, ErrInvalidFrontmatter)
		})
	}
}
