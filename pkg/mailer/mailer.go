package mailer

import (
	"bytes"
	"context"
	"errors"
	texttemplate "text/template"
)

// Mailer renders templates and hands them to a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a Mailer.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{sender: sender, renderer: renderer, config: cfg}
}

// SendParams describes one templated message.
type SendParams struct {
	Data     any
	Tags     Tags
	To       string
	Template string

	// Subject overrides the template's front matter subject.
	Subject string
	Layout  string
	ReplyTo string
}

// Send renders params.Template and delivers it.
// The subject comes from params, then front matter, then the fallback,
// and may itself use template syntax.
func (m *Mailer) Send(ctx context.Context, params SendParams) error {
	if params.To == "" {
		return ErrNoRecipient
	}

	layout := params.Layout
	if layout == "" {
		layout = m.config.DefaultLayout
	}
	result, err := m.renderer.Render(layout, params.Template, params.Data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	subject := params.Subject
	if subject == "" {
		subject, _ = result.Metadata["subject"].(string)
	}
	if subject == "" {
		subject = m.config.FallbackSubject
	}
	subject, err = executeSubject(subject, params.Data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}
	if subject == "" {
		return ErrNoSubject
	}
	if result.HTML == "" {
		return ErrNoContent
	}

	email := &Email{
		To:      []string{params.To},
		From:    m.config.From,
		Subject: subject,
		HTML:    result.HTML,
		Text:    result.Text,
		ReplyTo: params.ReplyTo,
		Tags:    params.Tags,
	}
	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

func executeSubject(subject string, data any) (string, error) {
	tmpl, err := texttemplate.New("subject").Parse(subject)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
