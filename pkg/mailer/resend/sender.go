package resend

import (
	"context"
	"fmt"
	"maps"
	"net/url"
	"strconv"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/mailtpl/pkg/mailer"
)

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	client *resend.Client
	config Config
}

// New creates a new Resend sender.
func New(cfg Config) (*Sender, error) {
	client := resend.NewClient(cfg.APIKey)
	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("resend: invalid base url: %w", err)
		}
		client.BaseURL = u
	}
	return &Sender{client: client, config: cfg}, nil
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	req := &resend.SendEmailRequest{
		From:    s.from(email),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML(),
		Text:    email.Text(),
		ReplyTo: email.ReplyTo,
		Cc:      email.CC,
		Bcc:     email.BCC,
		Headers: headers(email),
	}

	if len(email.Attachments) > 0 {
		req.Attachments = convertAttachments(email.Attachments)
	}
	if len(email.Tags) > 0 {
		req.Tags = convertTags(email.Tags)
	}

	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: failed to send email %s: %w", email.ID, err)
	}
	return nil
}

func (s *Sender) from(email *mailer.Email) string {
	switch {
	case email.From != "":
		return email.From
	case s.config.SenderName != "":
		return mailer.Recipient(s.config.SenderName, s.config.SenderEmail)
	default:
		return s.config.SenderEmail
	}
}

// headers merges custom headers with the ones derived from the message.
// Resend has no priority field, so non-standard priorities map to X-Priority
// (1 highest, 5 lowest).
func headers(email *mailer.Email) map[string]string {
	h := make(map[string]string, len(email.Headers)+2)
	maps.Copy(h, email.Headers)

	if email.Language != "" {
		h["Content-Language"] = email.Language
	}
	switch {
	case email.Priority >= mailer.PriorityHigh:
		h["X-Priority"] = "1"
	case email.Priority != 0 && email.Priority <= mailer.PriorityLow:
		h["X-Priority"] = "5"
	}

	if len(h) == 0 {
		return nil
	}
	return h
}

func convertAttachments(attachments []mailer.Attachment) []*resend.Attachment {
	result := make([]*resend.Attachment, len(attachments))
	for i, a := range attachments {
		result[i] = &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
			ContentId:   a.ContentID,
		}
	}
	return result
}

func convertTags(tags mailer.Tags) []resend.Tag {
	result := make([]resend.Tag, 0, len(tags))
	for name, value := range tags {
		result = append(result, resend.Tag{Name: name, Value: tagValue(value)})
	}
	return result
}

// tagValue converts any value to a string for Resend's tag API.
// Presence-only tags (struct{}{}) become "true".
func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
