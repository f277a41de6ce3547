package folio

import (
	"io/fs"
	"time"

	"github.com/eringen/folio/contact"
)

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string // Site name (default "Portfolio")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Owner name for JSON-LD and mail signatures

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path for the search and relay log (default "data/folio.db")
	ContentDir   string // Directory holding projects.json and posts/; empty uses the embedded content
	StaticDir    string // User-owned static assets served under /public and /assets (default "public")

	AdminPassword string // Enables /admin/ when set
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	AllowOrigins []string // CORS origins for /api/ (default "*")

	SearchCacheSize int // Cached search result sets (default 256)

	ContactLimit  int           // Contact submissions per IP per window (default 5)
	ContactWindow time.Duration // default 10min

	LogLevel     string        // debug, info, warn, error (default "info")
	LogRetention time.Duration // Age after which search and relay log rows are pruned (default 180 days)

	// Mail addresses and transport for the contact relay. When no transport is
	// configured messages are logged instead of sent.
	MailFrom  string // envelope sender, usually the SMTP user
	OwnerMail string // notification recipient, defaults to MailFrom
	SMTP      contact.SMTPConfig
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/folio.db"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if len(c.AllowOrigins) == 0 {
		c.AllowOrigins = []string{"*"}
	}
	if c.SearchCacheSize <= 0 {
		c.SearchCacheSize = 256
	}
	if c.ContactLimit <= 0 {
		c.ContactLimit = 5
	}
	if c.ContactWindow == 0 {
		c.ContactWindow = 10 * time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogRetention == 0 {
		c.LogRetention = 180 * 24 * time.Hour
	}
	if c.MailFrom == "" {
		c.MailFrom = c.SMTP.Username
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithContent serves the catalog from fsys instead of ContentDir or the
// embedded content.
func WithContent(fsys fs.FS) Option {
	return func(a *App) {
		a.content = fsys
	}
}

// WithMailer replaces the mail transport built from SiteConfig.SMTP.
func WithMailer(m contact.Mailer) Option {
	return func(a *App) {
		a.mailer = m
	}
}
