// Package search implements site search over the project and post collections:
// query normalisation, multi-field substring matching and composite ranking.
package search

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// SourceType discriminates which collection an item came from.
type SourceType string

const (
	TypeProject SourceType = "project"
	TypePost    SourceType = "post"
)

const (
	// DescriptionLimit is the number of runes kept from a result description.
	DescriptionLimit = 150
	// MaxTags is the number of leading tags carried on a result.
	MaxTags = 3
	ellipsis = "..."
)

// Item is the normalised searchable shape shared by projects and posts.
type Item struct {
	ID          string
	Title       string
	Description string
	// Tags are matched by substring. Only the first MaxTags of DisplayTags are
	// carried on results.
	Tags        []string
	DisplayTags []string
	Type        SourceType
	Image       string
	URL         string
	PublishDate time.Time // zero for projects
}

// Result is a matched item in the shape rendered by pages and the JSON API.
type Result struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        SourceType `json:"type"`
	Image       string     `json:"image"`
	URL         string     `json:"url"`
	Tags        []string   `json:"tags"`
	Date        string     `json:"date,omitempty"`

	date time.Time
}

// Results is the outcome of one search. Completed is false when the query was
// blank, which is distinct from a completed search with no matches.
type Results struct {
	Query     string   `json:"query"`
	Completed bool     `json:"completed"`
	Items     []Result `json:"results"`
}

// Normalize trims and lowercases a raw query.
func Normalize(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// Index holds the searchable items of each source collection in catalog order.
// It is immutable once built and safe for concurrent use.
type Index struct {
	projects []Item
	posts    []Item
}

// NewIndex builds an Index from the given collections.
func NewIndex(projects, posts []Item) *Index {
	return &Index{projects: projects, posts: posts}
}

// Search runs q against the index.
func (ix *Index) Search(q string) Results {
	return Search(q, ix.projects, ix.posts)
}

// Search filters projects and posts by the normalised query and returns the
// ranked union. A blank query returns an empty, not completed, result set.
func Search(q string, projects, posts []Item) Results {
	nq := Normalize(q)
	if nq == "" {
		return Results{Items: []Result{}}
	}

	items := make([]Result, 0)
	items = appendMatches(items, nq, projects)
	items = appendMatches(items, nq, posts)

	sort.SliceStable(items, func(i, j int) bool {
		return compare(items[i], items[j], nq) < 0
	})

	return Results{Query: nq, Completed: true, Items: items}
}

func appendMatches(dst []Result, nq string, items []Item) []Result {
	for _, it := range items {
		if Matches(it, nq) {
			dst = append(dst, toResult(it))
		}
	}
	return dst
}

// Matches reports whether the already-normalised query occurs in the item's
// title, description or any tag.
func Matches(it Item, nq string) bool {
	if strings.Contains(strings.ToLower(it.Title), nq) ||
		strings.Contains(strings.ToLower(it.Description), nq) {
		return true
	}
	for _, t := range it.Tags {
		if strings.Contains(strings.ToLower(t), nq) {
			return true
		}
	}
	return false
}

func toResult(it Item) Result {
	tags := it.DisplayTags
	if len(tags) > MaxTags {
		tags = tags[:MaxTags]
	}
	r := Result{
		ID:          it.ID,
		Title:       it.Title,
		Description: Truncate(it.Description, DescriptionLimit),
		Type:        it.Type,
		Image:       it.Image,
		URL:         it.URL,
		Tags:        append(make([]string, 0, len(tags)), tags...),
		date:        it.PublishDate,
	}
	if !it.PublishDate.IsZero() {
		r.Date = it.PublishDate.Format(time.DateOnly)
	}
	return r
}

// Truncate cuts s to limit runes, appending an ellipsis when anything was cut.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i] + ellipsis
		}
		n++
	}
	return s
}

// compare orders a before b (negative), after b (positive), or leaves them tied.
func compare(a, b Result, nq string) int {
	aExact := strings.ToLower(a.Title) == nq
	bExact := strings.ToLower(b.Title) == nq
	switch {
	case aExact && !bExact:
		return -1
	case !aExact && bExact:
		return 1
	}

	switch {
	case a.Type == TypeProject && b.Type == TypePost:
		return -1
	case a.Type == TypePost && b.Type == TypeProject:
		return 1
	}

	if a.Type == TypePost && b.Type == TypePost && !a.date.IsZero() && !b.date.IsZero() {
		ad, bd := calendarDay(a.date), calendarDay(b.date)
		switch {
		case ad.After(bd):
			return -1
		case ad.Before(bd):
			return 1
		}
	}
	return 0
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
