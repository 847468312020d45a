package mailer

import (
	"fmt"
	"maps"
	"slices"
)

// Context is the data passed to mail templates.
// The LangKey entry selects the render language.
type Context map[string]any

// LangKey is the reserved Context key holding the mail language.
const LangKey = "lang"

func (c Context) clone() Context {
	out := make(Context, len(c)+1)
	maps.Copy(out, c)
	return out
}

// Priority is a delivery hint carried by the message. Transports decide
// what to do with it.
type Priority int

const (
	PriorityLow      Priority = 20
	PriorityStandard Priority = 50
	PriorityHigh     Priority = 80
)

// String returns the priority name, or priority(N) for custom values.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityStandard:
		return "standard"
	case PriorityHigh:
		return "high"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// ContentSubtype is the subtype of the main body ("text/<subtype>").
type ContentSubtype string

const (
	SubtypePlain ContentSubtype = "plain"
	SubtypeHTML  ContentSubtype = "html"
)

// MIMETypeHTML is the MIME type of HTML alternatives.
const MIMETypeHTML = "text/html"

// MessageKind is the overall shape of an assembled message.
type MessageKind int

const (
	MessagePlain MessageKind = iota
	MessageHTML
	MessageMultipart
)

// String returns the MIME shape of the message kind.
func (k MessageKind) String() string {
	switch k {
	case MessageHTML:
		return "html"
	case MessageMultipart:
		return "multipart/alternative"
	default:
		return "plain"
	}
}

// Tags represents email tags/categories that can be either presence-only
// (using struct{}{}) or key-value pairs (using string values).
type Tags map[string]any

// SimpleTags creates presence-only tags from a list of tag names.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Recipient formats a name and email into RFC 5322 address format.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Alternative is an extra representation of the body.
type Alternative struct {
	Content  string
	MIMEType string
}

// Attachment represents an email attachment.
type Attachment struct {
	Filename    string // Display name for the attachment
	ContentType string // MIME type (e.g., "application/pdf")
	ContentID   string // Optional Content-ID for inline attachments
	Content     []byte // Raw file content
}

// Email is an assembled message ready to hand to a Sender.
//
// Body holds the primary representation, typed by ContentSubtype. A
// multipart message has a plain Body and the HTML version in Alternatives.
type Email struct {
	Headers        map[string]string
	Tags           Tags
	ID             string
	Subject        string
	Body           string
	ContentSubtype ContentSubtype
	Language       string // language the templates were rendered in
	From           string
	ReplyTo        string
	To             []string
	CC             []string
	BCC            []string
	Alternatives   []Alternative
	Attachments    []Attachment
	Priority       Priority
}

// AttachAlternative adds another representation of the body.
func (e *Email) AttachAlternative(content, mimeType string) {
	e.Alternatives = append(e.Alternatives, Alternative{Content: content, MIMEType: mimeType})
}

// Kind reports whether e is plain text, HTML only or multipart/alternative.
func (e *Email) Kind() MessageKind {
	switch {
	case len(e.Alternatives) > 0:
		return MessageMultipart
	case e.ContentSubtype == SubtypeHTML:
		return MessageHTML
	default:
		return MessagePlain
	}
}

// HTML returns the HTML representation, if any.
func (e *Email) HTML() string {
	if e.ContentSubtype == SubtypeHTML {
		return e.Body
	}
	if i := slices.IndexFunc(e.Alternatives, func(a Alternative) bool {
		return a.MIMEType == MIMETypeHTML
	}); i >= 0 {
		return e.Alternatives[i].Content
	}
	return ""
}

// Text returns the plain text representation, if any.
func (e *Email) Text() string {
	if e.ContentSubtype == SubtypeHTML {
		return ""
	}
	return e.Body
}
