// Package contact validates contact-form submissions and relays them to the
// site owner through a mail transport, acknowledging receipt to the sender.
package contact

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field limits, in runes.
const (
	MaxNameLen    = 100
	MaxSubjectLen = 200
	MinBodyLen    = 10
	MaxBodyLen    = 1000
)

var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

// Message is a contact submission. It lives only for the duration of one
// relay attempt and is never stored.
type Message struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Body    string `json:"message" form:"message"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (m Message) Trimmed() Message {
	return Message{
		Name:    strings.TrimSpace(m.Name),
		Email:   strings.TrimSpace(m.Email),
		Subject: strings.TrimSpace(m.Subject),
		Body:    strings.TrimSpace(m.Body),
	}
}

// FieldErrors maps a form field name ("name", "email", "subject", "message")
// to a human-readable problem. An empty map means the message is valid.
type FieldErrors map[string]string

// Validate applies the full form rules to every field and reports all
// problems at once rather than stopping at the first.
func Validate(m Message) FieldErrors {
	m = m.Trimmed()
	errs := FieldErrors{}

	switch {
	case m.Name == "":
		errs["name"] = "Please enter your name"
	case utf8.RuneCountInString(m.Name) > MaxNameLen:
		errs["name"] = "Name cannot exceed 100 characters"
	}

	switch {
	case m.Email == "":
		errs["email"] = "Please enter your email"
	case !ValidEmail(m.Email):
		errs["email"] = "Please enter a valid email address"
	}

	switch {
	case m.Subject == "":
		errs["subject"] = "Please enter a subject"
	case utf8.RuneCountInString(m.Subject) > MaxSubjectLen:
		errs["subject"] = "Subject cannot exceed 200 characters"
	}

	switch n := utf8.RuneCountInString(m.Body); {
	case m.Body == "":
		errs["message"] = "Please enter your message"
	case n < MinBodyLen:
		errs["message"] = "Message must be at least 10 characters"
	case n > MaxBodyLen:
		errs["message"] = "Message cannot exceed 1000 characters"
	}

	return errs
}

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// CheckRequired is the relay's own check: every field must be present.
// Length and pattern rules are left to Validate.
func CheckRequired(m Message) error {
	m = m.Trimmed()
	var missing []string
	if m.Name == "" {
		missing = append(missing, "name")
	}
	if m.Email == "" {
		missing = append(missing, "email")
	}
	if m.Subject == "" {
		missing = append(missing, "subject")
	}
	if m.Body == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
