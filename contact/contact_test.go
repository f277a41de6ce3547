package contact

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

type recordingMailer struct {
	mu    sync.Mutex
	sent  []Mail
	failN int // fail the Nth send (1-based); 0 never fails
	calls int
}

func (r *recordingMailer) Send(_ context.Context, m Mail) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.calls == r.failN {
		return errors.New("smtp: 535 authentication failed for user secret@example.com")
	}
	r.sent = append(r.sent, m)
	return nil
}

type recordingLogger struct {
	errors []string
	infos  []string
}

func (l *recordingLogger) Errorf(format string, args ...interface{}) {
	l.errors = append(l.errors, format)
}

func (l *recordingLogger) Infof(format string, args ...interface{}) {
	l.infos = append(l.infos, format)
}

func validMessage() Message {
	return Message{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Subject: "Hello",
		Body:    "Line one\nLine <two>",
	}
}

func TestValidateAccepts(t *testing.T) {
	assert.Empty(t, Validate(validMessage()))
}

func TestValidateReportsAllFields(t *testing.T) {
	errs := Validate(Message{Body: "short"})
	assert.Equal(t, FieldErrors{
		"name":    "Please enter your name",
		"email":   "Please enter your email",
		"subject": "Please enter a subject",
		"message": "Message must be at least 10 characters",
	}, errs)
}

func TestValidateLimits(t *testing.T) {
	m := validMessage()
	m.Name = strings.Repeat("n", MaxNameLen+1)
	m.Email = "not-an-email"
	m.Subject = strings.Repeat("s", MaxSubjectLen+1)
	m.Body = strings.Repeat("b", MaxBodyLen+1)
	errs := Validate(m)
	assert.Len(t, errs, 4)
	assert.Equal(t, "Please enter a valid email address", errs["email"])
	assert.Equal(t, "Message cannot exceed 1000 characters", errs["message"])

	m = validMessage()
	m.Name = strings.Repeat("n", MaxNameLen)
	m.Subject = strings.Repeat("s", MaxSubjectLen)
	m.Body = strings.Repeat("b", MinBodyLen)
	assert.Empty(t, Validate(m))
}

func TestValidateTrimsWhitespace(t *testing.T) {
	m := validMessage()
	m.Name = "   "
	errs := Validate(m)
	assert.Equal(t, "Please enter your name", errs["name"])
}

func TestValidEmail(t *testing.T) {
	for _, ok := range []string{"a@b.io", "first.last+tag@sub.example.COM", "x_y%z@host-1.org"} {
		assert.True(t, ValidEmail(ok), ok)
	}
	for _, bad := range []string{"", "a@b", "a b@c.com", "@c.com", "a@b.c"} {
		assert.False(t, ValidEmail(bad), bad)
	}
}

func TestCheckRequiredIsPresenceOnly(t *testing.T) {
	m := Message{Name: "x", Email: "not-an-email", Subject: "s", Body: "b"}
	assert.NoError(t, CheckRequired(m))

	err := CheckRequired(Message{Name: "x", Email: "a@b.io"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"subject", "message"}, verr.Missing)
}

func TestSubmitSendsTwoMails(t *testing.T) {
	mailer := &recordingMailer{}
	relay := NewRelay(Config{From: "site@example.com", Signature: "Site Owner"}, mailer, nil)

	require.NoError(t, relay.Submit(context.Background(), validMessage()))
	require.Len(t, mailer.sent, 2)

	notify := mailer.sent[0]
	assert.Equal(t, "site@example.com", notify.From)
	assert.Equal(t, "site@example.com", notify.To)
	assert.Equal(t, "ada@example.com", notify.ReplyTo)
	assert.Equal(t, "Portfolio Contact: Hello", notify.Subject)
	assert.Contains(t, notify.HTML, "<strong>Name:</strong> Ada Lovelace")
	assert.Contains(t, notify.HTML, "Line one<br>Line &lt;two&gt;")

	ack := mailer.sent[1]
	assert.Equal(t, "ada@example.com", ack.To)
	assert.Equal(t, "Thank you for contacting me", ack.Subject)
	assert.Contains(t, ack.HTML, "Thank you for your message, Ada Lovelace!")
	assert.Contains(t, ack.HTML, "<strong>Subject:</strong> Hello")
	assert.Contains(t, ack.HTML, "Line one<br>Line &lt;two&gt;")
	assert.Contains(t, ack.HTML, "<p>Site Owner</p>")
}

func TestSubmitOwnerOverride(t *testing.T) {
	mailer := &recordingMailer{}
	relay := NewRelay(Config{From: "site@example.com", Owner: "me@example.com"}, mailer, nil)
	require.NoError(t, relay.Submit(context.Background(), validMessage()))
	assert.Equal(t, "me@example.com", mailer.sent[0].To)
}

func TestSubmitMissingFieldSendsNothing(t *testing.T) {
	fields := []func(*Message){
		func(m *Message) { m.Name = "" },
		func(m *Message) { m.Email = "" },
		func(m *Message) { m.Subject = "" },
		func(m *Message) { m.Body = " " },
	}
	for _, mutate := range fields {
		mailer := &recordingMailer{}
		relay := NewRelay(Config{From: "site@example.com"}, mailer, nil)
		m := validMessage()
		mutate(&m)

		err := relay.Submit(context.Background(), m)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Zero(t, mailer.calls)
	}
}

func TestSubmitNotifyFailureSkipsAcknowledgement(t *testing.T) {
	mailer := &recordingMailer{failN: 1}
	log := &recordingLogger{}
	relay := NewRelay(Config{From: "site@example.com"}, mailer, log)

	err := relay.Submit(context.Background(), validMessage())
	var derr *DispatchError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, StepNotify, derr.Step)
	assert.Equal(t, 1, mailer.calls)
	assert.Empty(t, mailer.sent)
	assert.Len(t, log.errors, 1)
}

func TestSubmitAcknowledgementFailure(t *testing.T) {
	mailer := &recordingMailer{failN: 2}
	relay := NewRelay(Config{From: "site@example.com"}, mailer, nil)

	err := relay.Submit(context.Background(), validMessage())
	var derr *DispatchError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, StepAcknowledge, derr.Step)
	assert.Len(t, mailer.sent, 1)
}

func TestMailerFunc(t *testing.T) {
	var got Mail
	relay := NewRelay(Config{From: "a@b.io"}, MailerFunc(func(_ context.Context, m Mail) error {
		got = m
		return nil
	}), nil)
	require.NoError(t, relay.Submit(context.Background(), validMessage()))
	assert.Equal(t, "ada@example.com", got.To)
}

func TestBodyHTML(t *testing.T) {
	assert.Equal(t, "a<br>b<br>&amp;c", BodyHTML("a\r\nb\n&c"))
}

func TestSMTPConfigResolve(t *testing.T) {
	cfg, err := SMTPConfig{Service: "Gmail"}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "smtp.gmail.com", cfg.Host)
	assert.Equal(t, 587, cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.Timeout)

	cfg, err = SMTPConfig{Host: "mail.internal", Service: "gmail"}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "mail.internal", cfg.Host)
	assert.Equal(t, 587, cfg.Port)

	_, err = SMTPConfig{Service: "carrier-pigeon"}.Resolve()
	assert.Error(t, err)

	_, err = SMTPConfig{}.Resolve()
	assert.Error(t, err)
	assert.False(t, SMTPConfig{}.Configured())
}

func TestBuildMsgDropsUnparsableReplyTo(t *testing.T) {
	for _, replyTo := range []string{"not-an-email", "a..b@example.com"} {
		t.Run(replyTo, func(t *testing.T) {
			log := &recordingLogger{}
			msg, err := buildMsg(Mail{
				From:    "site@example.com",
				To:      "owner@example.com",
				ReplyTo: replyTo,
				Subject: "Portfolio Contact: Hi",
				HTML:    "<p>hello</p>",
			}, log)
			require.NoError(t, err)
			require.NotNil(t, msg)
			assert.Len(t, log.errors, 1)

			var buf bytes.Buffer
			_, err = msg.WriteTo(&buf)
			require.NoError(t, err)
			out := buf.String()
			assert.Contains(t, out, "owner@example.com")
			assert.Contains(t, out, "Portfolio Contact: Hi")
			assert.NotContains(t, out, "Reply-To:")
			assert.Empty(t, msg.GetGenHeader(mail.HeaderReplyTo))
		})
	}
}

func TestBuildMsgKeepsValidReplyTo(t *testing.T) {
	msg, err := buildMsg(Mail{From: "site@example.com", To: "owner@example.com", ReplyTo: "ann@example.com"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"<ann@example.com>"}, msg.GetGenHeader(mail.HeaderReplyTo))
}

func TestBuildMsgRejectsBadOwnerAddress(t *testing.T) {
	_, err := buildMsg(Mail{From: "site@example.com", To: "nobody"}, nil)
	assert.Error(t, err)
}

func TestLogMailer(t *testing.T) {
	log := &recordingLogger{}
	require.NoError(t, LogMailer{Log: log}.Send(context.Background(), Mail{To: "x@y.io"}))
	assert.Len(t, log.infos, 1)
}
