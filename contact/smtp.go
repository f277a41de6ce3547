package contact

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
)

// SMTPConfig selects and authenticates an SMTP transport. Service names a
// well-known provider ("gmail", "outlook", ...) and fills Host and Port when
// they are unset.
type SMTPConfig struct {
	Service  string
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

type smtpPreset struct {
	host string
	port int
}

var smtpPresets = map[string]smtpPreset{
	"gmail":     {"smtp.gmail.com", 587},
	"outlook":   {"smtp-mail.outlook.com", 587},
	"hotmail":   {"smtp-mail.outlook.com", 587},
	"office365": {"smtp.office365.com", 587},
	"yahoo":     {"smtp.mail.yahoo.com", 465},
	"icloud":    {"smtp.mail.me.com", 587},
	"zoho":      {"smtp.zoho.com", 465},
	"sendgrid":  {"smtp.sendgrid.net", 587},
	"mailgun":   {"smtp.mailgun.org", 587},
	"fastmail":  {"smtp.fastmail.com", 465},
}

// Resolve fills Host, Port and Timeout from Service and defaults.
func (c SMTPConfig) Resolve() (SMTPConfig, error) {
	if c.Host == "" && c.Service != "" {
		p, ok := smtpPresets[strings.ToLower(strings.TrimSpace(c.Service))]
		if !ok {
			return c, fmt.Errorf("contact: unknown mail service %q", c.Service)
		}
		c.Host = p.host
		if c.Port == 0 {
			c.Port = p.port
		}
	}
	if c.Host == "" {
		return c, fmt.Errorf("contact: mail host or service is required")
	}
	if c.Port == 0 {
		c.Port = 587
	}
	if c.Timeout == 0 {
		c.Timeout = 15 * time.Second
	}
	return c, nil
}

// Configured reports whether enough settings exist to build an SMTPMailer.
func (c SMTPConfig) Configured() bool {
	return c.Host != "" || c.Service != ""
}

// SMTPMailer sends mail through an authenticated SMTP server.
type SMTPMailer struct {
	cfg SMTPConfig
	// Log, when set, receives headers dropped while building a message.
	Log Logger
}

// NewSMTPMailer resolves cfg and returns a mailer for it.
func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	cfg, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	return &SMTPMailer{cfg: cfg}, nil
}

// Send dials the server and delivers m. A client is created per call so
// concurrent requests never share a connection.
func (s *SMTPMailer) Send(ctx context.Context, m Mail) error {
	msg, err := buildMsg(m, s.Log)
	if err != nil {
		return err
	}
	client, err := mail.NewClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("contact: smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("contact: smtp send: %w", err)
	}
	return nil
}

func (s *SMTPMailer) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTimeout(s.cfg.Timeout),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if s.cfg.Port == 465 {
		opts = append(opts, mail.WithSSLPort(false))
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	return opts
}

// buildMsg turns m into a go-mail message. Reply-To carries the visitor's
// address and is optional: if it does not parse, the header is dropped so
// the owner still receives the message.
func buildMsg(m Mail, log Logger) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return nil, fmt.Errorf("contact: from address: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("contact: to address: %w", err)
	}
	if m.ReplyTo != "" {
		if err := msg.ReplyTo(m.ReplyTo); err != nil && log != nil {
			log.Errorf("dropping reply-to %q: %v", m.ReplyTo, err)
		}
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextHTML, m.HTML)
	return msg, nil
}

// LogMailer writes mail to a logger instead of sending it. It stands in for
// SMTP in development.
type LogMailer struct {
	Log Logger
}

// Send logs m and always succeeds.
func (l LogMailer) Send(_ context.Context, m Mail) error {
	l.Log.Infof("contact: mail (not sent) to=%s subject=%q", m.To, m.Subject)
	return nil
}
