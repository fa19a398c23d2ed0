package resend

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/resend/resend-go/v3"

	"github.com/pagefarm/pagefarm/pkg/mailer"
)

var ErrInvalidConfig = errors.New("resend: api key and sender email are required")

// Sender delivers mail through the Resend API.
type Sender struct {
	client *resend.Client
	from   string
}

// New creates a Sender.
func New(cfg Config) (*Sender, error) {
	if cfg.APIKey == "" || cfg.SenderEmail == "" {
		return nil, ErrInvalidConfig
	}
	return &Sender{
		client: resend.NewClient(cfg.APIKey),
		from:   mailer.Recipient(cfg.SenderName, cfg.SenderEmail),
	}, nil
}

func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if _, err := s.client.Emails.SendWithContext(ctx, s.request(email)); err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}
	return nil
}

func (s *Sender) request(email *mailer.Email) *resend.SendEmailRequest {
	from := email.From
	if from == "" {
		from = s.from
	}
	req := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
		Cc:      email.CC,
		Bcc:     email.BCC,
		Headers: email.Headers,
	}
	for _, a := range email.Attachments {
		req.Attachments = append(req.Attachments, &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
			ContentId:   a.ContentID,
		})
	}
	if len(email.Tags) > 0 {
		names := make([]string, 0, len(email.Tags))
		for name := range email.Tags {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			req.Tags = append(req.Tags, resend.Tag{Name: name, Value: tagValue(email.Tags[name])})
		}
	}
	return req
}

// tagValue renders a tag value; presence-only tags become "true".
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
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
