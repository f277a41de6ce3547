// Package folio is a portfolio site engine built with Go, Echo, and templ.
// It serves a project gallery, a blog, site search and a contact form whose
// submissions are relayed to the site owner by email.
//
// Content is a read-only catalog loaded once at start. Users provide their
// own templ components via the ViewFuncs struct; folio handles the handler
// logic, middleware, search, mail relay and bookkeeping.
package folio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	glog "github.com/labstack/gommon/log"

	"github.com/eringen/folio/catalog"
	"github.com/eringen/folio/contact"
)

// App is the central folio application. It wires together the catalog,
// search cache, store, relay, handlers, middleware, and user-provided views.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Catalog *catalog.Catalog
	Search  *SearchCache
	Store   *Store
	Relay   *contact.Relay
	Views   ViewFuncs

	loginLimiter   *Limiter
	contactLimiter *Limiter
	mailer         contact.Mailer
	content        fs.FS
	customRoutes   []func(*App)
	stopPrune      func()
	ready          bool
}

// New creates a new folio App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  views,
	}
	a.Echo.HideBanner = true
	a.Echo.Logger.SetLevel(parseLevel(cfg.LogLevel))

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup loads the catalog, opens the store, builds the relay and registers
// middleware and routes. Start calls it; tests call it directly.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("folio: SessionSecret is required")
	}

	content, err := a.contentFS()
	if err != nil {
		return fmt.Errorf("folio: content: %w", err)
	}
	cat, err := catalog.Load(content)
	if err != nil {
		return fmt.Errorf("folio: load catalog: %w", err)
	}
	a.Catalog = cat
	a.Echo.Logger.Infof("catalog loaded: %d projects, %d posts", len(cat.Projects()), len(cat.Posts()))

	a.Search, err = NewSearchCache(cat.Index(), a.Config.SearchCacheSize)
	if err != nil {
		return fmt.Errorf("folio: search cache: %w", err)
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("folio: init store: %w", err)
	}
	a.Store = store
	a.stopPrune = a.startPruning(a.Config.LogRetention, 24*time.Hour)

	mailer, err := a.buildMailer()
	if err != nil {
		a.Close()
		return fmt.Errorf("folio: mailer: %w", err)
	}
	a.Relay = contact.NewRelay(contact.Config{
		From:      a.Config.MailFrom,
		Owner:     a.Config.OwnerMail,
		Signature: a.Config.Author,
	}, mailer, a.Echo.Logger)

	a.loginLimiter = NewLimiter(5, time.Minute)
	a.contactLimiter = NewLimiter(a.Config.ContactLimit, a.Config.ContactWindow)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.ready = true
	return nil
}

// Start sets the app up if needed and starts the server.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server and releases resources.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	a.Close()
	return err
}

func (a *App) contentFS() (fs.FS, error) {
	if a.content != nil {
		return a.content, nil
	}
	if a.Config.ContentDir != "" {
		if _, err := os.Stat(a.Config.ContentDir); err != nil {
			return nil, err
		}
		return os.DirFS(a.Config.ContentDir), nil
	}
	return fs.Sub(EmbeddedContent, "content")
}

func (a *App) buildMailer() (contact.Mailer, error) {
	if a.mailer != nil {
		return a.mailer, nil
	}
	if !a.Config.SMTP.Configured() {
		a.Echo.Logger.Warn("no mail transport configured; contact messages will be logged, not sent")
		return contact.LogMailer{Log: a.Echo.Logger}, nil
	}
	if a.Config.MailFrom == "" {
		return nil, fmt.Errorf("MailFrom or SMTP username is required to send mail")
	}
	m, err := contact.NewSMTPMailer(a.Config.SMTP)
	if err != nil {
		return nil, err
	}
	m.Log = a.Echo.Logger
	return m, nil
}

// startPruning deletes log rows older than retention once per interval.
func (a *App) startPruning(retention, interval time.Duration) func() {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := a.Store.PruneBefore(context.Background(), time.Now().Add(-retention)); err != nil {
					a.Echo.Logger.Errorf("prune logs: %v", err)
				}
			}
		}
	}()
	return func() { close(done) }
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework assets are served under /public/ ahead of the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/folio.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.Config.StaticDir)
	e.Static("/assets", a.Config.StaticDir+"/assets")
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/projects/", a.handleProjects)
	e.GET("/projects/:id/", a.handleProject)
	e.GET("/blog/", a.handleBlog)
	e.GET("/blog/:id/", a.handlePost)
	e.GET("/about/", a.handleAbout)
	e.GET("/search/", a.handleSearch)
	e.GET("/contact/", a.handleContact)
	e.POST("/contact/", a.handleContactSubmit)

	api := e.Group("/api", a.corsMiddleware())
	api.GET("/search", a.handleAPISearch)
	api.GET("/projects/:id", a.handleAPIProject)
	api.GET("/posts/:id", a.handleAPIPost)
	api.POST("/contact", a.handleAPIContact)

	if a.Config.AdminPassword != "" {
		e.GET("/admin/", a.handleAdmin)
		e.POST("/admin/login/", a.handleAdminLogin)
		e.POST("/admin/logout/", handleAdminLogout)
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.stopPrune != nil {
		a.stopPrune()
		a.stopPrune = nil
	}
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.contactLimiter != nil {
		a.contactLimiter.Stop()
	}
	if a.Store != nil {
		err := a.Store.Close()
		a.Store = nil
		return err
	}
	return nil
}

func parseLevel(s string) glog.Lvl {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return glog.DEBUG
	case "warn", "warning":
		return glog.WARN
	case "error":
		return glog.ERROR
	case "off":
		return glog.OFF
	default:
		return glog.INFO
	}
}
