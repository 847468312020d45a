package i18n_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtpl/pkg/i18n"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "  ", want: ""},
		{in: "en", want: "en"},
		{in: "EN", want: "en"},
		{in: "en_us", want: "en-US"},
		{in: "pt-br", want: "pt-BR"},
		{in: " fr ", want: "fr"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, i18n.Normalize(tt.in))
		})
	}
}

func TestBaseLanguage(t *testing.T) {
	t.Parallel()

	require.Equal(t, "pt", i18n.BaseLanguage("pt-BR"))
	require.Equal(t, "fr", i18n.BaseLanguage("fr"))
	require.Equal(t, "zh", i18n.BaseLanguage("zh-Hant-TW"))
}

func TestLanguageContext(t *testing.T) {
	t.Parallel()

	_, ok := i18n.LanguageFromContext(context.Background())
	require.False(t, ok)

	ctx := i18n.ContextWithLanguage(context.Background(), "fr")
	lang, ok := i18n.LanguageFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, "fr", lang)

	_, ok = i18n.LanguageFromContext(i18n.ContextWithLanguage(ctx, ""))
	require.False(t, ok)
}
