// Package i18n holds the translations and language helpers used while
// rendering mail templates.
//
// Translations are registered at construction time and the resulting I18n is
// immutable:
//
//	tr, err := i18n.New(
//		i18n.WithDefaultLanguage("en"),
//		i18n.WithYAMLDir(os.DirFS("translations")), // en/emails.yaml, fr/emails.yaml
//	)
//
//	tr.T("fr-CA", "emails", "welcome.title", i18n.M{"name": "Zoé"})
//
// Lookup falls back from the exact tag to its base language and then to the
// default language. Tags are canonicalized with golang.org/x/text/language, so
// "fr_ca", "FR-ca" and "fr-CA" are the same key.
//
// # Templates
//
// Translator binds an I18n to a language and namespace and exposes a FuncMap
// ("t", "lang", "dict") for text/template and html/template.
//
// # Active language
//
// Locale is a small save/restore holder for code that reads an active
// language instead of receiving it as an argument:
//
//	err := locale.Do("fr", func() error {
//		return render()
//	}) // the previous language is active again here, even after a panic
package i18n
