// Package views provides the default folio page components. Sites that want
// their own look pass a different folio.ViewFuncs to folio.New.
package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/folio"
	"github.com/eringen/folio/catalog"
	"github.com/eringen/folio/contact"
	"github.com/eringen/folio/markdown"
	"github.com/eringen/folio/search"
)

type site struct {
	cfg folio.SiteConfig
}

// Funcs returns the default components for cfg.
func Funcs(cfg folio.SiteConfig) folio.ViewFuncs {
	s := site{cfg: cfg}
	return folio.ViewFuncs{
		Home:           s.home,
		Projects:       s.projects,
		ProjectGrid:    projectGrid,
		Project:        s.project,
		Blog:           s.blog,
		Post:           s.post,
		About:          s.about,
		Search:         s.search,
		SearchResults:  searchResults,
		Contact:        s.contact,
		AdminLogin:     s.adminLogin,
		AdminDashboard: s.adminDashboard,
		NotFound:       s.notFound,
		ServerError:    s.serverError,
	}
}

type bodyFunc func(ctx context.Context, h *htmlWriter)

var navItems = []struct{ path, label string }{
	{"/", "Home"},
	{"/projects/", "Projects"},
	{"/blog/", "Blog"},
	{"/about/", "About"},
	{"/contact/", "Contact"},
}

// layout wraps body in the page shell: head metadata, navigation and footer.
func (s site) layout(meta folio.PageMeta, jsonLD string, body bodyFunc) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		title := s.cfg.Name
		if meta.Title != "" {
			title = meta.Title + " | " + s.cfg.Name
		}
		desc := meta.Description
		if desc == "" {
			desc = s.cfg.Description
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}
		url := meta.URL
		if url == "" {
			url = folio.BuildURL(s.cfg.URL)
		}

		h.raw("<!doctype html>\n<html lang=\"en\">\n<head>\n")
		h.raw("<meta charset=\"utf-8\">\n<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
		h.f("<title>%s</title>\n", title)
		h.f("<meta name=\"description\" content=\"%s\">\n", desc)
		h.f("<link rel=\"canonical\" href=\"%s\">\n", url)
		h.f("<meta property=\"og:title\" content=\"%s\">\n", title)
		h.f("<meta property=\"og:description\" content=\"%s\">\n", desc)
		h.f("<meta property=\"og:type\" content=\"%s\">\n", ogType)
		h.f("<meta property=\"og:url\" content=\"%s\">\n", url)
		h.f("<link rel=\"alternate\" type=\"application/rss+xml\" title=\"%s\" href=\"/feed.xml\">\n", s.cfg.Name)
		h.raw("<link rel=\"icon\" href=\"/favicon.svg\" type=\"image/svg+xml\">\n")
		h.raw("<link rel=\"stylesheet\" href=\"/public/styles.css\">\n")
		h.raw("<script src=\"/public/htmx.min.js\" defer></script>\n")
		h.raw("<script src=\"/public/folio.js\" defer></script>\n")
		if jsonLD != "" {
			h.raw("<script type=\"application/ld+json\">" + jsonLD + "</script>\n")
		}
		h.raw("</head>\n<body class=\"min-h-screen bg-stone-50 text-ink\">\n")

		h.raw("<header class=\"mx-auto flex max-w-5xl items-center justify-between gap-4 p-6\">\n")
		h.f("<a href=\"/\" class=\"text-lg font-bold\">%s</a>\n<nav class=\"flex gap-4 text-sm\">\n", s.cfg.Name)
		for _, item := range navItems {
			h.f("<a href=\"%s\" class=\"%s\">%s</a>\n", item.path, navClass(meta.URL == folio.BuildURL(s.cfg.URL, item.path)), item.label)
		}
		h.raw("</nav>\n<form action=\"/search/\" method=\"get\" role=\"search\">\n")
		h.raw("<input type=\"search\" name=\"q\" placeholder=\"Search...\" aria-label=\"Search\" class=\"rounded border px-2 py-1 text-sm\">\n")
		h.raw("</form>\n</header>\n<main class=\"mx-auto max-w-5xl px-6 pb-16\">\n")

		body(ctx, h)

		h.raw("</main>\n<footer class=\"mx-auto max-w-5xl border-t px-6 py-8 text-sm text-stone-500\">\n")
		h.f("<p>%s</p>\n", s.cfg.Name)
		if s.cfg.Author != "" {
			h.f("<p>Built by %s. <a href=\"/feed.xml\">RSS</a></p>\n", s.cfg.Author)
		}
		h.raw("</footer>\n</body>\n</html>\n")
		return h.err
	})
}

func (s site) meta(title, desc string, segments ...string) folio.PageMeta {
	return folio.PageMeta{
		Title:       title,
		Description: desc,
		URL:         folio.BuildURL(s.cfg.URL, segments...),
		OGType:      "website",
	}
}

func writeTags(h *htmlWriter, tags []string) {
	if len(tags) == 0 {
		return
	}
	h.raw("<ul class=\"flex flex-wrap gap-2\">")
	for _, t := range tags {
		h.f("<li class=\"%s\">%s</li>", TagClass(false), t)
	}
	h.raw("</ul>\n")
}

func writeProjectCard(h *htmlWriter, p catalog.Project) {
	h.raw("<article class=\"rounded border bg-white p-4\">\n")
	h.f("<a href=\"%s\"><img src=\"%s\" alt=\"%s\" loading=\"lazy\" class=\"mb-3 w-full rounded\"></a>\n", p.Link(), p.ImageURL(), p.Title)
	h.f("<h3 class=\"text-lg font-semibold\"><a href=\"%s\">%s</a></h3>\n", p.Link(), p.Title)
	h.f("<p class=\"my-2 text-sm\">%s</p>\n", p.Description)
	writeTags(h, p.Technologies)
	h.raw("</article>\n")
}

func writePostCard(h *htmlWriter, p catalog.Post) {
	h.raw("<article class=\"border-b py-4\">\n")
	h.f("<h3 class=\"text-lg font-semibold\"><a href=\"%s\">%s</a></h3>\n", p.Link(), p.Title)
	h.f("<time datetime=\"%s\" class=\"text-xs text-stone-500\">%s</time>\n", p.Date(), p.PublishDate.Format("January 2, 2006"))
	h.f("<p class=\"my-2 text-sm\">%s</p>\n", p.Excerpt)
	writeTags(h, p.Categories)
	h.raw("</article>\n")
}

func (s site) home(featured []catalog.Project, recent []catalog.Post) templ.Component {
	return s.layout(s.meta("", s.cfg.Description), folio.PersonJsonLD(s.cfg), func(ctx context.Context, h *htmlWriter) {
		h.raw("<section class=\"py-12\">\n")
		if s.cfg.Author != "" {
			h.f("<h1 class=\"text-4xl font-bold\">Hi, I'm %s</h1>\n", s.cfg.Author)
		} else {
			h.f("<h1 class=\"text-4xl font-bold\">%s</h1>\n", s.cfg.Name)
		}
		h.f("<p class=\"mt-4 text-lg\">%s</p>\n", s.cfg.Description)
		h.raw("<p class=\"mt-6 flex gap-4\"><a href=\"/projects/\">View projects</a><a href=\"/contact/\">Get in touch</a></p>\n</section>\n")

		h.raw("<section>\n<h2 class=\"mb-4 text-2xl font-semibold\">Featured projects</h2>\n<div class=\"grid gap-6 md:grid-cols-3\">\n")
		for _, p := range featured {
			writeProjectCard(h, p)
		}
		h.raw("</div>\n</section>\n")

		if len(recent) > 0 {
			h.raw("<section class=\"mt-12\">\n<h2 class=\"mb-4 text-2xl font-semibold\">Recent posts</h2>\n")
			for _, p := range recent {
				writePostCard(h, p)
			}
			h.raw("<p class=\"mt-4\"><a href=\"/blog/\">All posts</a></p>\n</section>\n")
		}
	})
}

func (s site) projects(projects []catalog.Project, categories []string, active string) templ.Component {
	return s.layout(s.meta("Projects", "Things I have built.", "projects"), "", func(ctx context.Context, h *htmlWriter) {
		h.raw("<h1 class=\"my-8 text-3xl font-bold\">Projects</h1>\n<nav class=\"mb-6 flex flex-wrap gap-2\" aria-label=\"Categories\">\n")
		all := append([]string{"all"}, categories...)
		for _, c := range all {
			isActive := strings.EqualFold(c, active) || (c == "all" && active == "")
			q := "?category=" + folio.PathEscape(c)
			h.f("<a href=\"/projects/%s\" hx-get=\"/projects/%s&amp;partial=projects\" hx-target=\"#project-grid\" hx-push-url=\"/projects/%s\" class=\"%s\">%s</a>\n",
				q, q, q, TagClass(isActive), c)
		}
		h.raw("</nav>\n")
		h.component(ctx, projectGrid(projects))
	})
}

func projectGrid(projects []catalog.Project) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<div id=\"project-grid\" class=\"grid gap-6 md:grid-cols-3\">\n")
		if len(projects) == 0 {
			h.raw("<p class=\"text-stone-500\">No projects found in this category.</p>\n")
		}
		for _, p := range projects {
			writeProjectCard(h, p)
		}
		h.raw("</div>\n")
		return h.err
	})
}

func (s site) project(p catalog.Project) templ.Component {
	meta := s.meta(p.Title, p.Description, "projects", p.ID)
	meta.OGType = "article"
	return s.layout(meta, folio.CreativeWorkJsonLD(p, s.cfg), func(ctx context.Context, h *htmlWriter) {
		h.raw("<article class=\"py-8\">\n<p><a href=\"/projects/\">&larr; All projects</a></p>\n")
		h.f("<h1 class=\"my-4 text-3xl font-bold\">%s</h1>\n", p.Title)
		h.f("<img src=\"%s\" alt=\"%s\" class=\"w-full rounded\">\n", p.ImageURL(), p.Title)
		desc := p.LongDescription
		if desc == "" {
			desc = p.Description
		}
		h.f("<p class=\"my-6 text-lg\">%s</p>\n", desc)
		h.raw("<h2 class=\"font-semibold\">Technologies</h2>\n")
		writeTags(h, p.Technologies)
		h.f("<p class=\"mt-4 text-sm text-stone-500\">%s</p>\n", folio.JoinTags(p.Categories))
		if p.GithubURL != "" || p.LiveURL != "" {
			h.raw("<p class=\"mt-6 flex gap-4\">")
			if p.GithubURL != "" {
				h.f("<a href=\"%s\" target=\"_blank\" rel=\"noopener noreferrer\">Source code</a>", p.GithubURL)
			}
			if p.LiveURL != "" {
				h.f("<a href=\"%s\" target=\"_blank\" rel=\"noopener noreferrer\">Live demo</a>", p.LiveURL)
			}
			h.raw("</p>\n")
		}
		if len(p.Images) > 0 {
			h.raw("<div class=\"mt-8 grid gap-4 md:grid-cols-2\">\n")
			for _, img := range p.Images {
				h.f("<img src=\"%s\" alt=\"%s\" loading=\"lazy\" class=\"rounded\">\n", catalog.ProjectImageDir+img, p.Title)
			}
			h.raw("</div>\n")
		}
		h.raw("</article>\n")
	})
}

func (s site) blog(posts []catalog.Post) templ.Component {
	return s.layout(s.meta("Blog", "Notes and articles.", "blog"), "", func(ctx context.Context, h *htmlWriter) {
		h.raw("<h1 class=\"my-8 text-3xl font-bold\">Blog</h1>\n")
		if len(posts) == 0 {
			h.raw("<p>No posts yet.</p>\n")
		}
		for _, p := range posts {
			writePostCard(h, p)
		}
	})
}

func (s site) post(p catalog.Post, related []catalog.Post) templ.Component {
	meta := s.meta(p.Title, p.Excerpt, "blog", p.ID)
	meta.OGType = "article"
	return s.layout(meta, folio.BlogPostingJsonLD(p, s.cfg), func(ctx context.Context, h *htmlWriter) {
		h.raw("<article class=\"prose py-8\">\n<p><a href=\"/blog/\">&larr; All posts</a></p>\n")
		h.f("<h1>%s</h1>\n", p.Title)
		h.f("<p class=\"text-sm text-stone-500\"><time datetime=\"%s\">%s</time>", p.Date(), p.PublishDate.Format("January 2, 2006"))
		if p.Author != "" {
			h.f(" by %s", p.Author)
		}
		h.raw("</p>\n")
		writeTags(h, p.Categories)
		if img := p.ImageURL(); img != "" {
			h.f("<img src=\"%s\" alt=\"%s\" class=\"my-6 w-full rounded\">\n", img, p.Title)
		}
		h.component(ctx, markdown.Markdown(p.Content))
		h.raw("</article>\n")
		if len(related) > 0 {
			h.raw("<section class=\"mt-12\">\n<h2 class=\"mb-4 text-xl font-semibold\">Related posts</h2>\n")
			for _, r := range related {
				writePostCard(h, r)
			}
			h.raw("</section>\n")
		}
	})
}

func (s site) about() templ.Component {
	return s.layout(s.meta("About", "About "+s.cfg.Author, "about"), folio.PersonJsonLD(s.cfg), func(ctx context.Context, h *htmlWriter) {
		h.raw("<h1 class=\"my-8 text-3xl font-bold\">About</h1>\n")
		if s.cfg.Author != "" {
			h.f("<p class=\"text-lg\">I'm %s.</p>\n", s.cfg.Author)
		}
		h.f("<p class=\"mt-4\">%s</p>\n", s.cfg.Description)
		h.raw("<p class=\"mt-4\">Have a question or a project in mind? <a href=\"/contact/\">Send me a message</a>.</p>\n")
	})
}

func (s site) search(results search.Results) templ.Component {
	return s.layout(s.meta("Search", "Search projects and posts.", "search"), "", func(ctx context.Context, h *htmlWriter) {
		h.raw("<h1 class=\"my-8 text-3xl font-bold\">Search</h1>\n")
		h.raw("<form action=\"/search/\" method=\"get\" role=\"search\" class=\"mb-6\">\n")
		h.f("<input type=\"search\" name=\"q\" value=\"%s\" placeholder=\"Search projects and posts\" aria-label=\"Search\" ", results.Query)
		h.raw("hx-get=\"/search/?partial=results\" hx-trigger=\"input changed delay:300ms, search\" hx-target=\"#search-results\" class=\"w-full rounded border px-3 py-2\">\n")
		h.raw("</form>\n")
		h.component(ctx, searchResults(results))
	})
}

func searchResults(results search.Results) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<div id=\"search-results\">\n")
		switch {
		case !results.Completed:
			h.raw("<p class=\"text-stone-500\">Type a word to search projects and posts.</p>\n")
		case len(results.Items) == 0:
			h.f("<p>No results found for &quot;%s&quot;.</p>\n", results.Query)
		default:
			noun := "results"
			if len(results.Items) == 1 {
				noun = "result"
			}
			h.f("<p class=\"mb-4 text-sm text-stone-500\">%d %s for &quot;%s&quot;</p>\n<ul>\n", len(results.Items), noun, results.Query)
			for _, r := range results.Items {
				h.raw("<li class=\"border-b py-4\">\n")
				h.f("<span class=\"%s\">%s</span>\n", TagClass(r.Type == search.TypeProject), string(r.Type))
				h.f("<h3 class=\"text-lg font-semibold\"><a href=\"%s\">%s</a></h3>\n", r.URL, r.Title)
				if r.Date != "" {
					h.f("<time datetime=\"%s\" class=\"text-xs text-stone-500\">%s</time>\n", r.Date, r.Date)
				}
				h.f("<p class=\"my-2 text-sm\">%s</p>\n", r.Description)
				writeTags(h, r.Tags)
				h.raw("</li>\n")
			}
			h.raw("</ul>\n")
		}
		h.raw("</div>\n")
		return h.err
	})
}

var contactFields = []struct {
	name, label, input string
}{
	{"name", "Name", "text"},
	{"email", "Email", "email"},
	{"subject", "Subject", "text"},
	{"message", "Message", "textarea"},
}

func fieldValue(m contact.Message, name string) string {
	switch name {
	case "name":
		return m.Name
	case "email":
		return m.Email
	case "subject":
		return m.Subject
	default:
		return m.Body
	}
}

func (s site) contact(form folio.ContactForm) templ.Component {
	return s.layout(s.meta("Contact", "Get in touch.", "contact"), "", func(ctx context.Context, h *htmlWriter) {
		h.raw("<h1 class=\"my-8 text-3xl font-bold\">Contact</h1>\n")
		if form.Sent {
			h.f("<p role=\"status\" data-dismiss class=\"mb-6 rounded bg-green-100 p-4\">%s</p>\n", contact.MsgSent)
		}
		if form.Error != "" {
			h.f("<p role=\"alert\" class=\"mb-6 rounded bg-red-100 p-4\">%s</p>\n", form.Error)
		}
		h.raw("<form action=\"/contact/\" method=\"post\" data-once novalidate class=\"grid gap-4\">\n")
		h.f("<input type=\"hidden\" name=\"_csrf\" value=\"%s\">\n", form.CSRFToken)
		for _, fld := range contactFields {
			value := fieldValue(form.Values, fld.name)
			h.f("<label for=\"%s\" class=\"font-semibold\">%s</label>\n", fld.name, fld.label)
			if fld.input == "textarea" {
				h.f("<textarea id=\"%s\" name=\"%s\" rows=\"6\" maxlength=\"%d\" class=\"rounded border p-2\">%s</textarea>\n",
					fld.name, fld.name, contact.MaxBodyLen, value)
			} else {
				h.f("<input id=\"%s\" name=\"%s\" type=\"%s\" value=\"%s\" class=\"rounded border p-2\">\n", fld.name, fld.name, fld.input, value)
			}
			if msg, ok := form.Errors[fld.name]; ok {
				h.f("<p class=\"text-sm text-red-700\" data-field-error=\"%s\">%s</p>\n", fld.name, msg)
			}
		}
		h.raw("<button type=\"submit\" class=\"rounded bg-ink px-4 py-2 text-white\">Send message</button>\n</form>\n")
	})
}

func (s site) notFound() templ.Component {
	return s.layout(folio.PageMeta{Title: "Not found"}, "", func(ctx context.Context, h *htmlWriter) {
		h.raw("<h1 class=\"my-8 text-3xl font-bold\">Page not found</h1>\n")
		h.raw("<p>The page you are looking for does not exist. <a href=\"/\">Go home</a> or <a href=\"/search/\">search</a>.</p>\n")
	})
}

func (s site) serverError() templ.Component {
	return s.layout(folio.PageMeta{Title: "Error"}, "", func(ctx context.Context, h *htmlWriter) {
		h.raw("<h1 class=\"my-8 text-3xl font-bold\">Something went wrong</h1>\n")
		h.raw("<p>Please try again in a moment.</p>\n")
	})
}
