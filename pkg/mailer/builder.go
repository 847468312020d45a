package mailer

import (
	"context"

	"github.com/dmitrymomot/mailtpl/pkg/i18n"
)

type builderOptions struct {
	emailAttr     string
	langAttr      string
	namePrototype string
	defaultLang   string
	inlineCSS     *bool
}

// BuilderOption configures Builder and GroupingBuilder.
type BuilderOption func(*builderOptions)

// WithEmailAttr sets the recipient attribute holding the address ("Email").
func WithEmailAttr(name string) BuilderOption {
	return func(o *builderOptions) { o.emailAttr = name }
}

// WithLangAttr sets the recipient attribute holding the language ("Lang").
func WithLangAttr(name string) BuilderOption {
	return func(o *builderOptions) { o.langAttr = name }
}

// WithNamePrototype maps the name passed to Build to a mail name, e.g.
// "accounts/{name}". Only {name} is available.
func WithNamePrototype(proto string) BuilderOption {
	return func(o *builderOptions) { o.namePrototype = proto }
}

// WithGroupDefaultLanguage sets the language of recipients that have none
// when the context has no "lang" either. The mailer default applies otherwise.
func WithGroupDefaultLanguage(lang string) BuilderOption {
	return func(o *builderOptions) { o.defaultLang = i18n.Normalize(lang) }
}

// WithCSSInlining turns InlineCSS on or off for the builder's mails.
// GroupingBuilder inlines by default. Builder keeps the mailer's setting.
func WithCSSInlining(enabled bool) BuilderOption {
	return func(o *builderOptions) { o.inlineCSS = &enabled }
}

func newBuilderOptions(opts []BuilderOption) builderOptions {
	o := builderOptions{
		emailAttr:     DefaultEmailAttr,
		langAttr:      DefaultLangAttr,
		namePrototype: DefaultNamePrototype,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o builderOptions) mailer(m *Mailer) *Mailer {
	if o.inlineCSS == nil {
		return m
	}
	return m.With(WithInlineCSS(*o.inlineCSS))
}

func (o builderOptions) mailName(name string) (string, error) {
	return formatPrototype(o.namePrototype, map[string]string{"name": name})
}

// BuildFunc builds one Email for a fixed mail name.
type BuildFunc func(ctx context.Context, to any, data Context, opts ...EmailOption) (*Email, error)

// Builder assembles a single Email per call.
//
// Recipients may be addresses or objects exposing the configured email and
// language attributes. All recipients share one message and one language:
// the last recipient language found overrides data["lang"]. Use
// GroupingBuilder to split recipients by language.
type Builder struct {
	mailer *Mailer
	opts   builderOptions
}

// NewBuilder creates a Builder on top of m.
func NewBuilder(m *Mailer, opts ...BuilderOption) *Builder {
	o := newBuilderOptions(opts)
	return &Builder{mailer: o.mailer(m), opts: o}
}

// Build assembles mail name for to, which is a recipient or a slice of them.
func (b *Builder) Build(ctx context.Context, name string, to any, data Context, opts ...EmailOption) (*Email, error) {
	mailName, err := b.opts.mailName(name)
	if err != nil {
		return nil, err
	}

	recipients := recipientList(to)
	addrs := make([]string, 0, len(recipients))
	var lang string
	for i, r := range recipients {
		addr, l, err := b.opts.extract(i, r)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, addr)
		if l != "" {
			lang = l
		}
	}

	if lang != "" {
		data = data.clone()
		data[LangKey] = lang
	}
	return b.mailer.Make(ctx, mailName, addrs, data, opts...)
}

// Template returns Build bound to mail name.
func (b *Builder) Template(name string) BuildFunc {
	return func(ctx context.Context, to any, data Context, opts ...EmailOption) (*Email, error) {
		return b.Build(ctx, name, to, data, opts...)
	}
}

// GroupBuildFunc builds one Email per language for a fixed mail name.
type GroupBuildFunc func(ctx context.Context, to any, data Context, opts ...EmailOption) (map[string]*Email, error)

// GroupingBuilder splits recipients by language and assembles one Email per
// language.
//
// A recipient's language is its own language attribute, else data["lang"],
// else the builder default, else the mailer default.
type GroupingBuilder struct {
	mailer *Mailer
	opts   builderOptions
}

// NewGroupingBuilder creates a GroupingBuilder on top of m. CSS inlining is
// enabled unless WithCSSInlining(false) is given.
func NewGroupingBuilder(m *Mailer, opts ...BuilderOption) *GroupingBuilder {
	o := newBuilderOptions(append([]BuilderOption{WithCSSInlining(true)}, opts...))
	return &GroupingBuilder{mailer: o.mailer(m), opts: o}
}

// Build assembles mail name for every language found among to and returns
// the messages keyed by language.
func (b *GroupingBuilder) Build(ctx context.Context, name string, to any, data Context, opts ...EmailOption) (map[string]*Email, error) {
	mailName, err := b.opts.mailName(name)
	if err != nil {
		return nil, err
	}

	baseLang := b.baseLanguage(data)

	var order []string
	groups := make(map[string][]string)
	for i, r := range recipientList(to) {
		addr, lang, err := b.opts.extract(i, r)
		if err != nil {
			return nil, err
		}
		if lang = i18n.Normalize(lang); lang == "" {
			lang = baseLang
		}
		if _, seen := groups[lang]; !seen {
			order = append(order, lang)
		}
		groups[lang] = append(groups[lang], addr)
	}

	emails := make(map[string]*Email, len(order))
	for _, lang := range order {
		langData := data.clone()
		langData[LangKey] = lang

		email, err := b.mailer.Make(ctx, mailName, groups[lang], langData, opts...)
		if err != nil {
			return nil, err
		}
		emails[lang] = email
	}
	return emails, nil
}

// Template returns Build bound to mail name.
func (b *GroupingBuilder) Template(name string) GroupBuildFunc {
	return func(ctx context.Context, to any, data Context, opts ...EmailOption) (map[string]*Email, error) {
		return b.Build(ctx, name, to, data, opts...)
	}
}

func (b *GroupingBuilder) baseLanguage(data Context) string {
	if lang, ok := data[LangKey].(string); ok {
		if lang = i18n.Normalize(lang); lang != "" {
			return lang
		}
	}
	if b.opts.defaultLang != "" {
		return b.opts.defaultLang
	}
	return b.mailer.DefaultLanguage()
}
