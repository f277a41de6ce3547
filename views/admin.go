package views

import (
	"context"
	"sort"

	"github.com/a-h/templ"

	"github.com/eringen/folio"
)

func (s site) adminLogin(showError bool, csrfToken string) templ.Component {
	return s.layout(folio.PageMeta{Title: "Admin"}, "", func(ctx context.Context, h *htmlWriter) {
		h.raw("<h1 class=\"my-8 text-3xl font-bold\">Admin</h1>\n")
		if showError {
			h.raw("<p role=\"alert\" class=\"mb-4 text-red-700\">Invalid password.</p>\n")
		}
		h.raw("<form action=\"/admin/login/\" method=\"post\" class=\"grid max-w-sm gap-4\">\n")
		h.f("<input type=\"hidden\" name=\"_csrf\" value=\"%s\">\n", csrfToken)
		h.raw("<label for=\"password\">Password</label>\n<input id=\"password\" name=\"password\" type=\"password\" autocomplete=\"current-password\" class=\"rounded border p-2\">\n")
		h.raw("<button type=\"submit\" class=\"rounded bg-ink px-4 py-2 text-white\">Sign in</button>\n</form>\n")
	})
}

func (s site) adminDashboard(stats folio.DashboardStats, csrfToken string) templ.Component {
	return s.layout(folio.PageMeta{Title: "Dashboard"}, "", func(ctx context.Context, h *htmlWriter) {
		h.raw("<div class=\"my-8 flex items-center justify-between\">\n<h1 class=\"text-3xl font-bold\">Dashboard</h1>\n")
		h.raw("<form action=\"/admin/logout/\" method=\"post\">")
		h.f("<input type=\"hidden\" name=\"_csrf\" value=\"%s\">", csrfToken)
		h.raw("<button type=\"submit\">Sign out</button></form>\n</div>\n")

		h.f("<p class=\"mb-6\">%d searches logged.</p>\n", stats.TotalSearches)
		writeQueryTable(h, "Top queries", stats.TopQueries)
		writeQueryTable(h, "Queries with no results", stats.ZeroResults)

		h.raw("<h2 class=\"mt-8 text-xl font-semibold\">Contact relay</h2>\n<ul class=\"my-4 flex gap-6\">\n")
		outcomes := make([]string, 0, len(stats.Outcomes))
		for o := range stats.Outcomes {
			outcomes = append(outcomes, o)
		}
		sort.Strings(outcomes)
		for _, o := range outcomes {
			h.f("<li><strong>%d</strong> %s</li>\n", stats.Outcomes[o], o)
		}
		h.raw("</ul>\n")
		if len(stats.RecentRelays) > 0 {
			h.raw("<table class=\"w-full text-sm\">\n<thead><tr><th>When</th><th>Outcome</th><th>ID</th></tr></thead>\n<tbody>\n")
			for _, ev := range stats.RecentRelays {
				h.f("<tr><td>%s</td><td>%s</td><td><code>%s</code></td></tr>\n", ev.At.Format("2006-01-02 15:04"), ev.Outcome, ev.ID)
			}
			h.raw("</tbody>\n</table>\n")
		}
	})
}

func writeQueryTable(h *htmlWriter, title string, rows []folio.QueryStat) {
	h.f("<h2 class=\"mt-8 text-xl font-semibold\">%s</h2>\n", title)
	if len(rows) == 0 {
		h.raw("<p class=\"text-stone-500\">Nothing yet.</p>\n")
		return
	}
	h.raw("<table class=\"my-4 w-full text-sm\">\n<thead><tr><th>Query</th><th>Runs</th><th>Results</th></tr></thead>\n<tbody>\n")
	for _, r := range rows {
		h.f("<tr><td>%s</td><td>%d</td><td>%d</td></tr>\n", r.Query, r.Count, r.Results)
	}
	h.raw("</tbody>\n</table>\n")
}
