package mailer

// Config holds mailer configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	BodyTemplatePrototype    string `env:"MAILER_BODY_TEMPLATE_PROTOTYPE" envDefault:"emails/{name}-body-{type}.{ext}"`
	SubjectTemplatePrototype string `env:"MAILER_SUBJECT_TEMPLATE_PROTOTYPE" envDefault:"emails/{name}-subject.{ext}"`
	TemplateExtension        string `env:"MAILER_TEMPLATE_EXTENSION" envDefault:"html"`
	DefaultLanguage          string `env:"MAILER_DEFAULT_LANGUAGE" envDefault:"en"`
	I18nNamespace            string `env:"MAILER_I18N_NAMESPACE" envDefault:"emails"`
	LayoutDir                string `env:"MAILER_LAYOUT_DIR" envDefault:"layouts"`
	InlineCSS                bool   `env:"MAILER_INLINE_CSS" envDefault:"false"`
}

// Naming returns the template naming convention described by c.
func (c Config) Naming() Naming {
	return Naming{
		BodyPrototype:    c.BodyTemplatePrototype,
		SubjectPrototype: c.SubjectTemplatePrototype,
		Extension:        c.TemplateExtension,
	}.withDefaults()
}

// RendererConfig returns the FSRenderer settings described by c.
func (c Config) RendererConfig() RendererConfig {
	return RendererConfig{
		Namespace: c.I18nNamespace,
		LayoutDir: c.LayoutDir,
	}
}
