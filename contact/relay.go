package contact

import (
	"context"
	"fmt"
	"html"
	"strings"
)

// Response messages returned to clients.
const (
	MsgSent     = "Your message has been sent successfully!"
	MsgRequired = "Please provide all required fields"
	MsgFailed   = "Failed to send message. Please try again later."
)

// Mail is one outbound HTML email.
type Mail struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	HTML    string
}

// Mailer delivers mail. Implementations must be safe for concurrent use.
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

// MailerFunc adapts a function to the Mailer interface.
type MailerFunc func(ctx context.Context, m Mail) error

// Send calls f(ctx, m).
func (f MailerFunc) Send(ctx context.Context, m Mail) error { return f(ctx, m) }

// Logger is the subset of echo.Logger the relay writes to.
type Logger interface {
	Errorf(format string, args ...interface{})
	Infof(format string, args ...interface{})
}

// ValidationError reports a submission rejected before any mail was sent.
type ValidationError struct {
	Missing []string
	Fields  FieldErrors
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return "contact: missing " + strings.Join(e.Missing, ", ")
	}
	return "contact: invalid submission"
}

// Step identifies which outbound mail failed.
type Step string

const (
	StepNotify      Step = "notify"
	StepAcknowledge Step = "acknowledge"
)

// DispatchError reports a transport failure. Err is for logs only; clients
// see MsgFailed.
type DispatchError struct {
	Step Step
	Err  error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("contact: %s mail: %v", e.Step, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

// Config addresses the relay's outbound mail.
type Config struct {
	From      string // envelope sender, usually the SMTP user
	Owner     string // recipient of notifications; defaults to From
	Signature string // closing line of the acknowledgement
}

// Relay validates submissions and dispatches the owner notification followed
// by the sender acknowledgement.
type Relay struct {
	cfg    Config
	mailer Mailer
	log    Logger
}

// NewRelay creates a Relay. log may be nil.
func NewRelay(cfg Config, mailer Mailer, log Logger) *Relay {
	if cfg.Owner == "" {
		cfg.Owner = cfg.From
	}
	return &Relay{cfg: cfg, mailer: mailer, log: log}
}

// Submit relays m. It returns nil once both mails were sent, a
// *ValidationError when a field is missing (nothing is sent), or a
// *DispatchError when the transport failed. A failed notification stops the
// relay before the acknowledgement is attempted. There is no retry.
func (r *Relay) Submit(ctx context.Context, m Message) error {
	if err := CheckRequired(m); err != nil {
		return err
	}
	m = m.Trimmed()

	if err := r.mailer.Send(ctx, r.notification(m)); err != nil {
		return r.fail(StepNotify, err)
	}
	if err := r.mailer.Send(ctx, r.acknowledgement(m)); err != nil {
		return r.fail(StepAcknowledge, err)
	}
	if r.log != nil {
		r.log.Infof("contact: relayed message from %s", m.Email)
	}
	return nil
}

func (r *Relay) fail(step Step, err error) error {
	derr := &DispatchError{Step: step, Err: err}
	if r.log != nil {
		r.log.Errorf("Email sending error: %v", derr)
	}
	return derr
}

func (r *Relay) notification(m Message) Mail {
	var b strings.Builder
	b.WriteString("<h3>New contact form submission</h3>\n")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>\n", html.EscapeString(m.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>\n", html.EscapeString(m.Email))
	fmt.Fprintf(&b, "<p><strong>Subject:</strong> %s</p>\n", html.EscapeString(m.Subject))
	b.WriteString("<p><strong>Message:</strong></p>\n")
	fmt.Fprintf(&b, "<p>%s</p>\n", BodyHTML(m.Body))
	return Mail{
		From:    r.cfg.From,
		To:      r.cfg.Owner,
		ReplyTo: m.Email,
		Subject: "Portfolio Contact: " + m.Subject,
		HTML:    b.String(),
	}
}

func (r *Relay) acknowledgement(m Message) Mail {
	var b strings.Builder
	fmt.Fprintf(&b, "<h3>Thank you for your message, %s!</h3>\n", html.EscapeString(m.Name))
	b.WriteString("<p>I have received your contact form submission and will get back to you as soon as possible.</p>\n")
	b.WriteString("<p>Here is a copy of your message:</p>\n")
	fmt.Fprintf(&b, "<p><strong>Subject:</strong> %s</p>\n", html.EscapeString(m.Subject))
	fmt.Fprintf(&b, "<p>%s</p>\n", BodyHTML(m.Body))
	b.WriteString("<p>Best regards,</p>\n")
	if r.cfg.Signature != "" {
		fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(r.cfg.Signature))
	}
	return Mail{
		From:    r.cfg.From,
		To:      m.Email,
		Subject: "Thank you for contacting me",
		HTML:    b.String(),
	}
}

// BodyHTML escapes body and turns newlines into <br> tags.
func BodyHTML(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	return strings.ReplaceAll(html.EscapeString(body), "\n", "<br>")
}
