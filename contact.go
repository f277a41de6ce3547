package folio

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/contact"
)

func (a *App) handleContact(c echo.Context) error {
	form := ContactForm{
		Sent:      popFlash(c, flashSent),
		CSRFToken: CsrfToken(c),
	}
	return Render(c, a.Views.Contact(form))
}

// handleContactSubmit relays the contact form. On success it redirects back
// to the form (post/redirect/get); on failure it re-renders with the values
// the visitor typed.
func (a *App) handleContactSubmit(c echo.Context) error {
	m := contact.Message{
		Name:    c.FormValue("name"),
		Email:   c.FormValue("email"),
		Subject: c.FormValue("subject"),
		Body:    c.FormValue("message"),
	}
	form := ContactForm{Values: m, CSRFToken: CsrfToken(c)}

	if !a.contactLimiter.Allow(c.RealIP()) {
		a.logRelay(c, OutcomeLimited)
		form.Error = msgLimited
		return RenderStatus(c, http.StatusTooManyRequests, a.Views.Contact(form))
	}

	if errs := contact.Validate(m); len(errs) > 0 {
		a.logRelay(c, OutcomeRejected)
		form.Errors = errs
		return Render(c, a.Views.Contact(form))
	}

	if err := a.Relay.Submit(c.Request().Context(), m); err != nil {
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			a.logRelay(c, OutcomeRejected)
			form.Error = contact.MsgRequired
		} else {
			a.logRelay(c, OutcomeFailed)
			form.Error = contact.MsgFailed
		}
		return Render(c, a.Views.Contact(form))
	}

	a.logRelay(c, OutcomeSent)
	if err := addFlash(c, flashSent); err != nil {
		c.Logger().Errorf("contact flash: %v", err)
	}
	return c.Redirect(http.StatusSeeOther, "/contact/")
}
