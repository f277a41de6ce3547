package folio

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/catalog"
	"github.com/eringen/folio/contact"
)

type contactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type apiError struct {
	Error string `json:"error"`
}

const msgLimited = "Too many messages. Please try again later."

func (a *App) handleAPISearch(c echo.Context) error {
	return c.JSON(http.StatusOK, a.runSearch(c))
}

func (a *App) handleAPIProject(c echo.Context) error {
	p, err := a.Catalog.Project(c.Param("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		return c.JSON(http.StatusNotFound, apiError{Error: "project not found"})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (a *App) handleAPIPost(c echo.Context) error {
	post, err := a.Catalog.Post(c.Param("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		return c.JSON(http.StatusNotFound, apiError{Error: "post not found"})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// handleAPIContact relays a JSON submission. Only presence of the required
// fields is checked here; format rules belong to the form.
func (a *App) handleAPIContact(c echo.Context) error {
	if !a.contactLimiter.Allow(c.RealIP()) {
		a.logRelay(c, OutcomeLimited)
		return c.JSON(http.StatusTooManyRequests, contactResponse{Message: msgLimited})
	}

	var m contact.Message
	if err := c.Bind(&m); err != nil {
		a.logRelay(c, OutcomeRejected)
		return c.JSON(http.StatusBadRequest, contactResponse{Message: contact.MsgRequired})
	}

	err := a.Relay.Submit(c.Request().Context(), m)
	var verr *contact.ValidationError
	var derr *contact.DispatchError
	switch {
	case err == nil:
		a.logRelay(c, OutcomeSent)
		return c.JSON(http.StatusOK, contactResponse{Success: true, Message: contact.MsgSent})
	case errors.As(err, &verr):
		a.logRelay(c, OutcomeRejected)
		return c.JSON(http.StatusBadRequest, contactResponse{Message: contact.MsgRequired})
	case errors.As(err, &derr):
		a.logRelay(c, OutcomeFailed)
		return c.JSON(http.StatusInternalServerError, contactResponse{Message: contact.MsgFailed})
	default:
		a.logRelay(c, OutcomeFailed)
		c.Logger().Errorf("contact: %v", err)
		return c.JSON(http.StatusInternalServerError, contactResponse{Message: contact.MsgFailed})
	}
}

// logRelay records the outcome of a contact submission. Message contents are
// never stored.
func (a *App) logRelay(c echo.Context, outcome string) {
	id, err := a.Store.LogRelay(c.Request().Context(), outcome)
	if err != nil {
		c.Logger().Errorf("log relay: %v", err)
		return
	}
	c.Logger().Debugf("relay %s outcome=%s request=%s", id, outcome,
		c.Response().Header().Get(echo.HeaderXRequestID))
}
