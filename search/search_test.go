package search

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func project(id, title, desc string, tags ...string) Item {
	return Item{
		ID:          id,
		Title:       title,
		Description: desc,
		Tags:        tags,
		DisplayTags: tags,
		Type:        TypeProject,
		URL:         "/projects/" + id + "/",
	}
}

func post(id, title, excerpt, published string, tags ...string) Item {
	return Item{
		ID:          id,
		Title:       title,
		Description: excerpt,
		Tags:        tags,
		DisplayTags: tags,
		Type:        TypePost,
		URL:         "/blog/" + id + "/",
		PublishDate: date(published),
	}
}

func ids(r Results) []string {
	out := make([]string, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, it.ID)
	}
	return out
}

func fixture() ([]Item, []Item) {
	projects := []Item{
		project("p1", "React Dashboard", "Admin panel for metrics", "React", "Redux"),
		project("p2", "Portfolio Site", "Personal site", "React", "Tailwind"),
		project("p3", "Go Relay", "SMTP relay written in Go", "Go", "SMTP"),
	}
	posts := []Item{
		post("b1", "CSS Grid vs Flexbox", "Layouts compared", "2025-04-10", "CSS"),
		post("b2", "Getting Started with React", "A react guide", "2025-04-15", "React", "JavaScript"),
		post("b3", "TypeScript vs JavaScript", "Choosing a language", "2025-04-05", "TypeScript", "JavaScript"),
	}
	return projects, posts
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "react", Normalize("  ReAcT \t"))
	assert.Equal(t, "", Normalize(" \n\t "))
}

func TestSearchBlankQuery(t *testing.T) {
	projects, posts := fixture()
	for _, q := range []string{"", "   ", "\t\n"} {
		r := Search(q, projects, posts)
		assert.False(t, r.Completed, "query %q", q)
		assert.Empty(t, r.Items, "query %q", q)
	}
}

func TestSearchCompletedWithNoMatches(t *testing.T) {
	projects, posts := fixture()
	r := Search("haskell", projects, posts)
	assert.True(t, r.Completed)
	assert.Empty(t, r.Items)
}

func TestSearchTagMatchPreservesOrder(t *testing.T) {
	projects, _ := fixture()
	r := Search("react", projects[:2], nil)
	require.True(t, r.Completed)
	assert.Equal(t, []string{"p1", "p2"}, ids(r))
}

func TestSearchEveryResultContainsQuery(t *testing.T) {
	projects, posts := fixture()
	all := append(append([]Item{}, projects...), posts...)
	byID := map[string]Item{}
	for _, it := range all {
		byID[string(it.Type)+it.ID] = it
	}
	for _, q := range []string{"re", "java", "GO", "s", "vs"} {
		nq := Normalize(q)
		r := Search(q, projects, posts)
		for _, res := range r.Items {
			it := byID[string(res.Type)+res.ID]
			assert.True(t, Matches(it, nq), "query %q matched %s without containing it", q, res.ID)
		}
	}
}

func TestSearchIsDeterministic(t *testing.T) {
	projects, posts := fixture()
	first := Search("script", projects, posts)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Search("script", projects, posts))
	}
}

func TestSearchExactTitleRanksFirst(t *testing.T) {
	projects, posts := fixture()
	r := Search("css grid vs flexbox", projects, posts)
	require.NotEmpty(t, r.Items)
	assert.Equal(t, "b1", r.Items[0].ID)

	// An exact post title outranks projects matching by tag.
	posts = append(posts, post("b4", "React", "Short", "2020-01-01"))
	r = Search("React", projects, posts)
	require.NotEmpty(t, r.Items)
	assert.Equal(t, "b4", r.Items[0].ID)
	assert.Equal(t, TypePost, r.Items[0].Type)
}

func TestSearchProjectsBeforePosts(t *testing.T) {
	projects, posts := fixture()
	r := Search("react", projects, posts)
	assert.Equal(t, []string{"p1", "p2", "b2"}, ids(r))
}

func TestSearchPostsByRecency(t *testing.T) {
	_, posts := fixture()
	r := Search("javascript", nil, posts)
	assert.Equal(t, []string{"b2", "b3"}, ids(r))

	r = Search("a", nil, posts)
	assert.Equal(t, []string{"b2", "b1", "b3"}, ids(r))
}

func TestSearchPostsSameDayStable(t *testing.T) {
	posts := []Item{
		post("x", "First", "alpha", "2025-01-01"),
		post("y", "Second", "alpha", "2025-01-01"),
	}
	posts[1].PublishDate = posts[1].PublishDate.Add(5 * time.Hour)
	r := Search("alpha", nil, posts)
	assert.Equal(t, []string{"x", "y"}, ids(r))
}

func TestSearchResultShape(t *testing.T) {
	long := strings.Repeat("é", 200)
	projects := []Item{{
		ID:          "p9",
		Title:       "Long",
		Description: long,
		Tags:        []string{"a", "b", "c", "d", "match"},
		DisplayTags: []string{"a", "b", "c", "d"},
		Type:        TypeProject,
		Image:       "/assets/images/projects/long.jpg",
		URL:         "/projects/p9/",
	}}
	r := Search("match", projects, nil)
	require.Len(t, r.Items, 1)
	got := r.Items[0]
	assert.Equal(t, strings.Repeat("é", DescriptionLimit)+"...", got.Description)
	assert.Equal(t, []string{"a", "b", "c"}, got.Tags)
	assert.Equal(t, "/projects/p9/", got.URL)
	assert.Equal(t, "/assets/images/projects/long.jpg", got.Image)
	assert.Empty(t, got.Date)
}

func TestSearchResultWithoutTagsEncodesEmptyList(t *testing.T) {
	posts := []Item{{ID: "bare", Title: "Bare post", Type: TypePost, URL: "/blog/bare/", PublishDate: date("2025-01-02")}}
	r := Search("bare", nil, posts)
	require.Len(t, r.Items, 1)
	assert.NotNil(t, r.Items[0].Tags)

	out, err := json.Marshal(r.Items[0])
	require.NoError(t, err)
	assert.Contains(t, string(out), `"tags":[]`)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exactly", Truncate("exactly", 7))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
}

func TestIndexSearch(t *testing.T) {
	projects, posts := fixture()
	ix := NewIndex(projects, posts)
	r := ix.Search("  SMTP ")
	assert.Equal(t, "smtp", r.Query)
	assert.Equal(t, []string{"p3"}, ids(r))
}
