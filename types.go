package folio

import (
	"github.com/a-h/templ"

	"github.com/eringen/folio/catalog"
	"github.com/eringen/folio/contact"
	"github.com/eringen/folio/search"
)

// ViewFuncs holds user-provided templ components that the framework calls
// when rendering pages. This is the inversion-of-control mechanism that
// lets users own and customize all templates.
type ViewFuncs struct {
	Home           func(featured []catalog.Project, recent []catalog.Post) templ.Component
	Projects       func(projects []catalog.Project, categories []string, active string) templ.Component
	ProjectGrid    func(projects []catalog.Project) templ.Component
	Project        func(project catalog.Project) templ.Component
	Blog           func(posts []catalog.Post) templ.Component
	Post           func(post catalog.Post, related []catalog.Post) templ.Component
	About          func() templ.Component
	Search         func(results search.Results) templ.Component
	SearchResults  func(results search.Results) templ.Component
	Contact        func(form ContactForm) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(stats DashboardStats, csrfToken string) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// ContactForm is the state of the contact page. Values are echoed back on
// failure so the visitor can correct them.
type ContactForm struct {
	Values    contact.Message
	Errors    contact.FieldErrors
	Error     string // relay or rate-limit failure shown above the form
	Sent      bool   // a message was just relayed
	CSRFToken string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}
