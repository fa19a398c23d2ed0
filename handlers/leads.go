package handlers

import (
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/pagefarm/pagefarm"
	"github.com/pagefarm/pagefarm/middlewares"
	"github.com/pagefarm/pagefarm/pkg/locations"
	"github.com/pagefarm/pagefarm/pkg/mailer"
	"github.com/pagefarm/pagefarm/pkg/sanitizer"
	"github.com/pagefarm/pagefarm/views"
)

// LeadTemplate is the email template rendered for every lead.
const LeadTemplate = "lead.md"

const maxMessageLen = 2000

// Lead is the data passed to the lead email template.
type Lead struct {
	Name    string
	Phone   string
	Email   string
	Zip     string
	Service string
	Message string
	// Place is the city or state the form was sent from, empty on the root site.
	Place string
	// Page is the public URL of the form.
	Page string
}

// submitLead validates the contact form, notifies the office and redirects
// back with ?sent=1. Invalid input re-renders the form with a 422.
func (h *Pages) submitLead(c pagefarm.Context) error {
	p := place{}
	if c.Param("id") != "" {
		var err error
		if p, err = h.locationPlace(c); err != nil {
			return err
		}
	} else if c.Param("code") != "" {
		var err error
		if p, err = h.statePlaceParam(c); err != nil {
			return err
		}
	}

	form := views.LeadForm{
		Name:    strings.TrimSpace(c.Form("name")),
		Phone:   strings.TrimSpace(c.Form("phone")),
		Email:   strings.TrimSpace(c.Form("email")),
		Zip:     strings.TrimSpace(c.Form("zip")),
		Service: strings.TrimSpace(c.Form("service")),
		Message: strings.TrimSpace(c.Form("message")),
	}
	back := c.OriginalPath()

	// Bots fill every field, including the hidden one.
	if c.Form("website") != "" {
		c.LogInfo("lead dropped by honeypot")
		return c.Redirect(http.StatusSeeOther, back+"?sent=1")
	}

	if errs := validateLead(form); len(errs) > 0 {
		return h.renderContact(c, p, form, errs, http.StatusUnprocessableEntity)
	}
	if h.Leads == nil || h.LeadRecipient == "" {
		return pagefarm.ErrServiceUnavailable("lead delivery is not configured")
	}

	lead := Lead{
		Name:    sanitizer.Text(form.Name),
		Phone:   sanitizer.Text(form.Phone),
		Email:   form.Email,
		Zip:     form.Zip,
		Service: sanitizer.Text(form.Service),
		Message: sanitizer.Text(form.Message),
		Place:   p.name(),
		Page:    h.Engine.URL(p.label(), publicPath(c, p), ""),
	}
	err := h.Leads.Send(middlewares.TimeoutContext(c), mailer.SendParams{
		To:       h.LeadRecipient,
		Template: LeadTemplate,
		Data:     lead,
		ReplyTo:  lead.Email,
		Tags:     mailer.Tags{"source": "contact", "location": p.loc.ID},
	})
	if err != nil {
		return pagefarm.ErrInternal("could not send your request, please call us", pagefarm.WithError(err))
	}

	c.LogInfo("lead received", slog.String("location", p.loc.ID), slog.String("service", lead.Service))
	return c.Redirect(http.StatusSeeOther, back+"?sent=1")
}

// validateLead returns field errors keyed by input name.
func validateLead(f views.LeadForm) map[string]string {
	errs := map[string]string{}
	if f.Name == "" {
		errs["name"] = "Please tell us your name."
	}
	if f.Phone == "" && f.Email == "" {
		errs["phone"] = "Please leave a phone number or an email address."
	}
	if f.Phone != "" && digits(f.Phone) < 7 {
		errs["phone"] = "Please enter a valid phone number."
	}
	if f.Email != "" {
		if addr, err := mail.ParseAddress(f.Email); err != nil || addr.Address != f.Email {
			errs["email"] = "Please enter a valid email address."
		}
	}
	if f.Zip != "" && !locations.ValidZip(f.Zip) {
		errs["zip"] = "Please enter a 5 digit zip code."
	}
	if utf8.RuneCountInString(f.Message) > maxMessageLen {
		errs["form"] = "Your message is too long."
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func digits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
