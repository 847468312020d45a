package i18n

import (
	"context"
	"strings"

	"golang.org/x/text/language"
)

// Normalize canonicalizes a language tag ("EN_us" -> "en-US").
// Tags x/text cannot parse are lowercased and returned as is.
func Normalize(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(lang, "_", "-"))
	if err != nil {
		return strings.ToLower(lang)
	}
	return tag.String()
}

// BaseLanguage strips script and region subtags ("pt-BR" -> "pt").
func BaseLanguage(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		if i := strings.IndexAny(lang, "-_"); i > 0 {
			return lang[:i]
		}
		return lang
	}
	base, _ := tag.Base()
	return base.String()
}

type languageKey struct{}

// ContextWithLanguage returns a copy of ctx carrying lang.
func ContextWithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, languageKey{}, lang)
}

// LanguageFromContext returns the language stored by ContextWithLanguage.
func LanguageFromContext(ctx context.Context) (string, bool) {
	lang, ok := ctx.Value(languageKey{}).(string)
	return lang, ok && lang != ""
}
