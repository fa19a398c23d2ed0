package mailer

import "fmt"

// Tags label a message for the provider's dashboards. Presence-only tags use struct{}{}.
type Tags map[string]any

// Recipient formats "Name <email>", or just the address when name is empty.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email is a rendered message ready for a Sender.
type Email struct {
	Headers     map[string]string
	Tags        Tags
	Subject     string
	HTML        string
	Text        string
	From        string
	ReplyTo     string
	To          []string
	CC          []string
	BCC         []string
	Attachments []Attachment
}

// Attachment is a file sent with an Email.
type Attachment struct {
	Filename    string
	ContentType string
	ContentID   string
	Content     []byte
}
