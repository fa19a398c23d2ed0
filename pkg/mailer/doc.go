// Package mailer sends transactional email rendered from Markdown templates.
//
// Templates are Markdown files with YAML front matter; the "subject" key sets
// the default subject and may use text/template syntax. The body is executed
// with the caller's data, converted to HTML with goldmark and wrapped in an
// html/template layout from layouts/. Delivery goes through a [Sender]: the
// resend subpackage for production or [LogSender] when no provider is set.
//
//	renderer, err := mailer.NewRenderer(emails)
//	if err != nil {
//		return err
//	}
//	m := mailer.New(resend.New(resendCfg), renderer, cfg)
//	err = m.Send(ctx, mailer.SendParams{
//		To:       "office@example.com",
//		Template: "lead.md",
//		Data:     lead,
//		ReplyTo:  lead.Email,
//	})
package mailer
