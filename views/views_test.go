package views

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio"
	"github.com/eringen/folio/catalog"
	"github.com/eringen/folio/contact"
	"github.com/eringen/folio/search"
)

var testCfg = folio.SiteConfig{
	Name:        "Test Folio",
	URL:         "https://example.com",
	Description: "Portfolio of a test",
	Author:      "Sam Doe",
}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestHomeListsFeaturedAndRecent(t *testing.T) {
	v := Funcs(testCfg)
	out := render(t, v.Home(
		[]catalog.Project{{ID: "shop", Title: "Shop <Demo>", Image: "shop.jpg", Technologies: []string{"Go"}}},
		[]catalog.Post{{ID: "hello", Title: "Hello", PublishDate: time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)}},
	))
	assert.Contains(t, out, "<title>Test Folio</title>")
	assert.Contains(t, out, `href="/projects/shop/"`)
	assert.Contains(t, out, "Shop &lt;Demo&gt;")
	assert.NotContains(t, out, "Shop <Demo>")
	assert.Contains(t, out, `datetime="2025-04-15"`)
	assert.Contains(t, out, `"@type":"Person"`)
}

func TestProjectGridEmpty(t *testing.T) {
	out := render(t, Funcs(testCfg).ProjectGrid(nil))
	assert.Contains(t, out, `id="project-grid"`)
	assert.Contains(t, out, "No projects found in this category.")
}

func TestProjectsMarksActiveCategory(t *testing.T) {
	out := render(t, Funcs(testCfg).Projects(nil, []string{"Web", "Full Stack"}, "web"))
	assert.Contains(t, out, `href="/projects/?category=Full%20Stack"`)
	assert.Contains(t, out, TagClass(true)+`">Web</a>`)
}

func TestPostRendersMarkdown(t *testing.T) {
	post := catalog.Post{
		ID:          "grid",
		Title:       "Grid",
		PublishDate: time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
		Content:     "## Layouts\n\nUse **grid**.",
		Categories:  []string{"CSS"},
	}
	out := render(t, Funcs(testCfg).Post(post, []catalog.Post{{ID: "flex", Title: "Flex"}}))
	assert.Contains(t, out, `<h2 id="layouts">Layouts</h2>`)
	assert.Contains(t, out, "<strong>grid</strong>")
	assert.Contains(t, out, "Related posts")
	assert.Contains(t, out, `"@type":"BlogPosting"`)
	assert.Contains(t, out, `<meta property="og:type" content="article">`)
}

func TestSearchResultsStates(t *testing.T) {
	v := Funcs(testCfg)

	idle := render(t, v.SearchResults(search.Results{}))
	assert.Contains(t, idle, "Type a word to search")

	empty := render(t, v.SearchResults(search.Results{Query: "zzz", Completed: true}))
	assert.Contains(t, empty, "No results found for &quot;zzz&quot;.")

	found := render(t, v.SearchResults(search.Results{Query: "react", Completed: true, Items: []search.Result{
		{ID: "a", Title: "React Dashboard", Type: search.TypeProject, URL: "/projects/a/", Tags: []string{"React"}},
		{ID: "b", Title: "React Guide", Type: search.TypePost, URL: "/blog/b/", Date: "2025-04-15"},
	}}))
	assert.Contains(t, found, "2 results for &quot;react&quot;")
	assert.Contains(t, found, `href="/projects/a/"`)
	assert.Contains(t, found, `datetime="2025-04-15"`)
}

func TestContactFormKeepsValuesAndErrors(t *testing.T) {
	form := folio.ContactForm{
		Values:    contact.Message{Name: "Ann", Email: "bad", Body: "<b>hi</b>"},
		Errors:    contact.FieldErrors{"email": "Please enter a valid email address"},
		CSRFToken: "tok",
	}
	out := render(t, Funcs(testCfg).Contact(form))
	assert.Contains(t, out, `name="_csrf" value="tok"`)
	assert.Contains(t, out, `value="Ann"`)
	assert.Contains(t, out, "&lt;b&gt;hi&lt;/b&gt;</textarea>")
	assert.Contains(t, out, `data-field-error="email"`)
	assert.NotContains(t, out, contact.MsgSent)
}

func TestContactFormSent(t *testing.T) {
	out := render(t, Funcs(testCfg).Contact(folio.ContactForm{Sent: true}))
	assert.Contains(t, out, contact.MsgSent)
	assert.Contains(t, out, "data-dismiss")
}

func TestAdminDashboard(t *testing.T) {
	stats := folio.DashboardStats{
		TotalSearches: 3,
		TopQueries:    []folio.QueryStat{{Query: "react", Count: 2, Results: 4}},
		Outcomes:      map[string]int{folio.OutcomeSent: 1},
		RecentRelays:  []folio.RelayEvent{{ID: "abc", Outcome: folio.OutcomeSent, At: time.Now()}},
	}
	out := render(t, Funcs(testCfg).AdminDashboard(stats, "tok"))
	assert.Contains(t, out, "3 searches logged.")
	assert.Contains(t, out, "<td>react</td><td>2</td><td>4</td>")
	assert.Contains(t, out, "<code>abc</code>")
}
