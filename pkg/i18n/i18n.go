package i18n

import (
	"fmt"
	"maps"
	"slices"
)

// DefaultLang is the language used when nothing else is configured.
const DefaultLang = "en"

// M is a placeholder map passed to T.
type M map[string]any

// I18n stores translations for mail templates.
// It is immutable after New returns and safe for concurrent use.
type I18n struct {
	// Flattened "lang:namespace:key.path" -> message.
	messages map[string]string

	missingKeyHandler func(lang, namespace, key string)

	defaultLang string
	languages   []string
}

// Option configures an I18n instance during construction.
type Option func(*I18n) error

// New builds an I18n instance from the given options.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		messages:    make(map[string]string),
		defaultLang: DefaultLang,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if i.defaultLang == "" {
		return nil, ErrEmptyLanguage
	}

	i.languages = i.collectLanguages()

	return i, nil
}

// WithDefaultLanguage sets the fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		lang = Normalize(lang)
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.defaultLang = lang
		return nil
	}
}

// WithTranslations registers a (possibly nested) message tree for a language
// and namespace. Nested keys are joined with dots.
func WithTranslations(lang, namespace string, messages map[string]any) Option {
	return func(i *I18n) error {
		lang = Normalize(lang)
		if lang == "" {
			return ErrEmptyLanguage
		}
		if namespace == "" {
			return ErrEmptyNamespace
		}
		i.store(lang, namespace, messages)
		return nil
	}
}

// WithMissingKeyHandler registers a callback fired when a key is missing in
// the requested, base and default languages.
func WithMissingKeyHandler(handler func(lang, namespace, key string)) Option {
	return func(i *I18n) error {
		i.missingKeyHandler = handler
		return nil
	}
}

// T looks up key for lang in namespace and substitutes {{placeholders}}.
// Lookup order: exact tag, base language ("pt-BR" -> "pt"), default language.
// The key itself is returned when nothing matches.
func (i *I18n) T(lang, namespace, key string, placeholders ...M) string {
	lang = Normalize(lang)
	for _, candidate := range i.candidates(lang) {
		if msg, ok := i.messages[messageKey(candidate, namespace, key)]; ok {
			return ReplacePlaceholders(msg, mergePlaceholders(placeholders))
		}
	}

	if i.missingKeyHandler != nil {
		i.missingKeyHandler(lang, namespace, key)
	}
	return key
}

// Has reports whether any translation is registered for lang.
func (i *I18n) Has(lang string) bool {
	return slices.Contains(i.languages, Normalize(lang))
}

// Languages returns the languages with registered translations, default first.
func (i *I18n) Languages() []string {
	return slices.Clone(i.languages)
}

// DefaultLanguage returns the fallback language.
func (i *I18n) DefaultLanguage() string {
	return i.defaultLang
}

func (i *I18n) candidates(lang string) []string {
	out := make([]string, 0, 3)
	if lang != "" {
		out = append(out, lang)
		if base := BaseLanguage(lang); base != lang {
			out = append(out, base)
		}
	}
	if !slices.Contains(out, i.defaultLang) {
		out = append(out, i.defaultLang)
	}
	return out
}

func (i *I18n) store(lang, namespace string, tree map[string]any) {
	for key, msg := range flatten(tree, "") {
		i.messages[messageKey(lang, namespace, key)] = msg
	}
	if !slices.Contains(i.languages, lang) {
		i.languages = append(i.languages, lang)
	}
}

// collectLanguages puts the default language first and sorts the rest.
func (i *I18n) collectLanguages() []string {
	others := slices.DeleteFunc(slices.Clone(i.languages), func(l string) bool {
		return l == i.defaultLang
	})
	slices.Sort(others)
	return append([]string{i.defaultLang}, others...)
}

func messageKey(lang, namespace, key string) string {
	return lang + ":" + namespace + ":" + key
}

func flatten(tree map[string]any, prefix string) map[string]string {
	out := make(map[string]string, len(tree))
	for key, value := range tree {
		if prefix != "" {
			key = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[key] = v
		case map[string]any:
			maps.Copy(out, flatten(v, key))
		case map[string]string:
			for sub, s := range v {
				out[key+"."+sub] = s
			}
		default:
			out[key] = fmt.Sprint(v)
		}
	}
	return out
}

func mergePlaceholders(placeholders []M) M {
	switch len(placeholders) {
	case 0:
		return nil
	case 1:
		return placeholders[0]
	}
	merged := make(M)
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}
	return merged
}
