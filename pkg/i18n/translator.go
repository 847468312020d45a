package i18n

import "text/template"

// Translator binds an I18n instance to one language and namespace.
// A nil I18n is allowed: T then returns the key unchanged.
type Translator struct {
	i18n      *I18n
	language  string
	namespace string
}

// NewTranslator creates a Translator. An empty language falls back to the
// I18n default language (or DefaultLang when i18n is nil).
func NewTranslator(i18n *I18n, language, namespace string) *Translator {
	language = Normalize(language)
	if language == "" {
		language = DefaultLang
		if i18n != nil {
			language = i18n.DefaultLanguage()
		}
	}
	return &Translator{
		i18n:      i18n,
		language:  language,
		namespace: namespace,
	}
}

// T translates key in the translator's language and namespace.
func (t *Translator) T(key string, placeholders ...M) string {
	if t.i18n == nil {
		return ReplacePlaceholders(key, mergePlaceholders(placeholders))
	}
	return t.i18n.T(t.language, t.namespace, key, placeholders...)
}

// Language returns the translator's language.
func (t *Translator) Language() string {
	return t.language
}

// Namespace returns the translator's namespace.
func (t *Translator) Namespace() string {
	return t.namespace
}

// FuncMap exposes the translator to text/template and html/template:
//
//	{{ t "greeting" }}
//	{{ t "welcome" (dict "name" .Name) }}
//	{{ lang }}
func (t *Translator) FuncMap() template.FuncMap {
	return template.FuncMap{
		"t":    t.T,
		"lang": t.Language,
		"dict": dict,
	}
}

// dict builds a placeholder map from alternating key/value arguments.
// A trailing key without a value is ignored.
func dict(pairs ...any) M {
	m := make(M, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if key, ok := pairs[i].(string); ok {
			m[key] = pairs[i+1]
		}
	}
	return m
}
