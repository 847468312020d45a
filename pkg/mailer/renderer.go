package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"

	"github.com/dmitrymomot/mailtpl/pkg/i18n"
)

// Renderer renders one template file for a language.
//
// Implementations must return an error wrapping ErrTemplateNotFound when the
// file does not exist, so callers can tell an absent variant from a broken one.
type Renderer interface {
	Render(ctx context.Context, name string, kind TemplateKind, lang string, data any) (string, error)
}

// RendererConfig configures FSRenderer.
type RendererConfig struct {
	I18n        *i18n.I18n // optional, backs the "t" template func
	Namespace   string     // i18n namespace; default "emails"
	LayoutDir   string     // default "layouts"
	ButtonClass string     // class of markdown buttons; default "btn"
}

// FSRenderer renders templates stored in an fs.FS.
//
// Subject and text templates run through text/template, HTML bodies through
// html/template. Files ending in ".md" are markdown: they are executed with
// text/template and, for HTML bodies, converted with goldmark. Body templates
// may start with YAML frontmatter; a "layout" key wraps the HTML output in
// LayoutDir/<layout>.
//
// Templates can call {{ t "key" }}, {{ lang }} and {{ dict "k" v }}.
type FSRenderer struct {
	fs        fs.FS
	md        goldmark.Markdown
	i18n      *i18n.I18n
	namespace string
	layoutDir string

	// Parsed structure only; output is never cached.
	templateCache map[templateKey]*cachedTemplate
	layoutCache   map[string]*htmltemplate.Template

	mu sync.RWMutex
}

type templateKey struct {
	name string
	kind TemplateKind
}

type cachedTemplate struct {
	meta     map[string]any
	text     *texttemplate.Template // subject, text bodies and markdown
	html     *htmltemplate.Template // HTML bodies
	layout   string
	markdown bool
}

// NewRenderer creates an FSRenderer with default config.
func NewRenderer(filesystem fs.FS) *FSRenderer {
	return NewRendererWithConfig(filesystem, RendererConfig{})
}

// NewRendererWithConfig creates an FSRenderer with custom config.
func NewRendererWithConfig(filesystem fs.FS, cfg RendererConfig) *FSRenderer {
	if cfg.Namespace == "" {
		cfg.Namespace = "emails"
	}
	if cfg.LayoutDir == "" {
		cfg.LayoutDir = "layouts"
	}

	return &FSRenderer{
		fs:            filesystem,
		md:            newMarkdown(cfg.ButtonClass),
		i18n:          cfg.I18n,
		namespace:     cfg.Namespace,
		layoutDir:     cfg.LayoutDir,
		templateCache: make(map[templateKey]*cachedTemplate),
		layoutCache:   make(map[string]*htmltemplate.Template),
	}
}

// Render implements Renderer.
func (r *FSRenderer) Render(ctx context.Context, name string, kind TemplateKind, lang string, data any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cached, err := r.getTemplate(name, kind)
	if err != nil {
		return "", err
	}

	funcs := i18n.NewTranslator(r.i18n, lang, r.namespace).FuncMap()

	var out bytes.Buffer
	if cached.html != nil {
		tmpl, err := cached.html.Clone()
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
		}
		if err := tmpl.Funcs(htmltemplate.FuncMap(funcs)).Execute(&out, data); err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
		}
	} else {
		tmpl, err := cached.text.Clone()
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
		}
		if err := tmpl.Funcs(funcs).Execute(&out, data); err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
		}
	}

	if kind != TemplateHTML {
		return out.String(), nil
	}

	content := out.String()
	if cached.markdown {
		var converted bytes.Buffer
		if err := r.md.Convert(out.Bytes(), &converted); err != nil {
			return "", fmt.Errorf("%w: %s: failed to convert markdown: %v", ErrRenderFailed, name, err)
		}
		content = converted.String()
	}

	if cached.layout == "" {
		return content, nil
	}
	return r.renderLayout(cached, content, lang, funcs)
}

func (r *FSRenderer) renderLayout(cached *cachedTemplate, content, lang string, funcs texttemplate.FuncMap) (string, error) {
	layout, err := r.getLayout(cached.layout)
	if err != nil {
		return "", err
	}

	tmpl, err := layout.Clone()
	if err != nil {
		return "", fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, cached.layout, err)
	}

	var out bytes.Buffer
	err = tmpl.Funcs(htmltemplate.FuncMap(funcs)).Execute(&out, map[string]any{
		"Content": htmltemplate.HTML(content),
		"Meta":    cached.meta,
		"Lang":    lang,
	})
	if err != nil {
		return "", fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, cached.layout, err)
	}
	return out.String(), nil
}

// getTemplate returns a cached template or parses and caches it.
func (r *FSRenderer) getTemplate(name string, kind TemplateKind) (*cachedTemplate, error) {
	key := templateKey{name: name, kind: kind}

	r.mu.RLock()
	if cached, ok := r.templateCache[key]; ok {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if cached, ok := r.templateCache[key]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fs, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	cached, err := parseCached(name, kind, content)
	if err != nil {
		return nil, err
	}

	r.templateCache[key] = cached
	return cached, nil
}

func parseCached(name string, kind TemplateKind, content []byte) (*cachedTemplate, error) {
	src := &Template{Meta: map[string]any{}, Body: string(content)}
	if kind != TemplateSubject {
		parsed, err := ParseTemplate(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		src = parsed
	}

	cached := &cachedTemplate{
		meta:     src.Meta,
		layout:   src.Layout(),
		markdown: strings.EqualFold(path.Ext(name), ".md"),
	}

	// Parse-time stand-ins; the language-bound versions are set per render.
	funcs := i18n.NewTranslator(nil, "", "").FuncMap()

	var err error
	if kind == TemplateHTML && !cached.markdown {
		cached.html, err = htmltemplate.New(name).Funcs(htmltemplate.FuncMap(funcs)).Parse(src.Body)
	} else {
		cached.text, err = texttemplate.New(name).Funcs(funcs).Parse(src.Body)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}
	return cached, nil
}

// getLayout returns a cached layout template or parses and caches it.
func (r *FSRenderer) getLayout(name string) (*htmltemplate.Template, error) {
	r.mu.RLock()
	if cached, ok := r.layoutCache[name]; ok {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.layoutCache[name]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.layoutDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}

	funcs := i18n.NewTranslator(nil, "", "").FuncMap()
	layout, err := htmltemplate.New(name).Funcs(htmltemplate.FuncMap(funcs)).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse layout %s: %v", ErrRenderFailed, name, err)
	}

	r.layoutCache[name] = layout
	return layout, nil
}
