package sanitizer_test

import (
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtpl/pkg/sanitizer"
)

func TestEmailHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		contains    []string
		notContains []string
	}{
		{
			name:        "strips scripts",
			input:       `<p>Hello</p><script>alert('xss')</script>`,
			contains:    []string{"<p>Hello</p>"},
			notContains: []string{"<script", "alert("},
		},
		{
			name:        "strips event handlers",
			input:       `<p onclick="steal()">Hi</p>`,
			contains:    []string{"<p>Hi</p>"},
			notContains: []string{"onclick", "steal"},
		},
		{
			name:        "strips javascript URLs",
			input:       `<a href="javascript:alert('xss')">click</a>`,
			contains:    []string{"click"},
			notContains: []string{"javascript:"},
		},
		{
			name:     "keeps inline styles and classes",
			input:    `<p class="title" style="color: red;">Hi</p>`,
			contains: []string{`class="title"`, `style="color: red;"`},
		},
		{
			name:     "keeps table layout attributes",
			input:    `<table width="600" cellpadding="0"><tr><td align="center">x</td></tr></table>`,
			contains: []string{`width="600"`, `cellpadding="0"`, `align="center"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := sanitizer.EmailHTML(tt.input)
			require.NoError(t, err)
			for _, s := range tt.contains {
				require.Contains(t, out, s)
			}
			for _, s := range tt.notContains {
				require.NotContains(t, out, s)
			}
		})
	}
}

func TestWithPolicy(t *testing.T) {
	t.Parallel()

	out, err := sanitizer.WithPolicy(bluemonday.StrictPolicy())(`<b>bold</b>`)
	require.NoError(t, err)
	require.Equal(t, "bold", out)

	out, err = sanitizer.WithPolicy(nil)(`<b>bold</b>`)
	require.NoError(t, err)
	require.Equal(t, "<b>bold</b>", out)
}
