package mailer

import (
	"fmt"
	"strings"
)

const (
	DefaultBodyPrototype    = "emails/{name}-body-{type}.{ext}"
	DefaultSubjectPrototype = "emails/{name}-subject.{ext}"
	DefaultExtension        = "html"
	DefaultNamePrototype    = "{name}"
)

// TemplateKind selects which template of a mail is rendered.
type TemplateKind int

const (
	TemplateSubject TemplateKind = iota
	TemplateText
	TemplateHTML
)

// String returns the value used for the {type} placeholder.
func (k TemplateKind) String() string {
	switch k {
	case TemplateText:
		return "text"
	case TemplateHTML:
		return "html"
	default:
		return "subject"
	}
}

// Naming turns a mail name into template file names.
//
// Prototypes may use {name}, {type} ("html" or "text") and {ext}. The subject
// prototype gets no {type}. Write {{ and }} for literal braces. Empty fields
// fall back to the defaults.
type Naming struct {
	BodyPrototype    string
	SubjectPrototype string
	Extension        string
}

// DefaultNaming returns the default file naming convention.
func DefaultNaming() Naming {
	return Naming{
		BodyPrototype:    DefaultBodyPrototype,
		SubjectPrototype: DefaultSubjectPrototype,
		Extension:        DefaultExtension,
	}
}

func (n Naming) withDefaults() Naming {
	if n.BodyPrototype == "" {
		n.BodyPrototype = DefaultBodyPrototype
	}
	if n.SubjectPrototype == "" {
		n.SubjectPrototype = DefaultSubjectPrototype
	}
	if n.Extension == "" {
		n.Extension = DefaultExtension
	}
	n.Extension = strings.TrimPrefix(n.Extension, ".")
	return n
}

// TemplateName resolves the file of the given kind for mail name.
func (n Naming) TemplateName(name string, kind TemplateKind) (string, error) {
	n = n.withDefaults()
	if kind == TemplateSubject {
		return formatPrototype(n.SubjectPrototype, map[string]string{
			"name": name,
			"ext":  n.Extension,
		})
	}
	return formatPrototype(n.BodyPrototype, map[string]string{
		"name": name,
		"type": kind.String(),
		"ext":  n.Extension,
	})
}

// SubjectTemplateName resolves the subject template of mail name.
func (n Naming) SubjectTemplateName(name string) (string, error) {
	return n.TemplateName(name, TemplateSubject)
}

// BodyTemplateName resolves the text or HTML body template of mail name.
func (n Naming) BodyTemplateName(name string, kind TemplateKind) (string, error) {
	if kind == TemplateSubject {
		return "", fmt.Errorf("%w: %s is not a body kind", ErrInvalidPrototype, kind)
	}
	return n.TemplateName(name, kind)
}

// formatPrototype substitutes {key} placeholders. "{{" and "}}" stand for
// literal braces. Values are inserted as is, so braces inside them are kept.
func formatPrototype(proto string, values map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(proto))

	for i := 0; i < len(proto); {
		c := proto[i]
		switch {
		case (c == '{' || c == '}') && i+1 < len(proto) && proto[i+1] == c:
			b.WriteByte(c)
			i += 2
		case c == '{':
			end := strings.IndexByte(proto[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: %q has an unclosed '{'", ErrInvalidPrototype, proto)
			}
			key := proto[i+1 : i+1+end]
			value, ok := values[key]
			if !ok {
				return "", fmt.Errorf("%w: %q has unknown placeholder {%s}", ErrInvalidPrototype, proto, key)
			}
			b.WriteString(value)
			i += end + 2
		case c == '}':
			return "", fmt.Errorf("%w: %q has an unmatched '}'", ErrInvalidPrototype, proto)
		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String(), nil
}
