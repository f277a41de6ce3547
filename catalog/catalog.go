// Package catalog holds the read-only content of a folio site: the project
// collection and the blog post collection. A Catalog is loaded once at start
// and never mutated, so it is safe to share between requests.
package catalog

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/eringen/folio/search"
)

// ErrNotFound is returned by lookups for an unknown id.
var ErrNotFound = errors.New("catalog: not found")

// Image paths are relative to the site's static root.
const (
	ProjectImageDir = "/assets/images/projects/"
	PostImageDir    = "/assets/images/blog/"
)

// Project is a single portfolio entry.
type Project struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription,omitempty"`
	Technologies    []string `json:"technologies"`
	Categories      []string `json:"categories"`
	Image           string   `json:"image"`
	Images          []string `json:"images,omitempty"`
	GithubURL       string   `json:"githubUrl,omitempty"`
	LiveURL         string   `json:"liveUrl,omitempty"`
	Featured        bool     `json:"featured,omitempty"`
}

// Link returns the site-relative page URL of the project.
func (p Project) Link() string { return "/projects/" + p.ID + "/" }

// ImageURL returns the site-relative URL of the project's cover image.
func (p Project) ImageURL() string { return ProjectImageDir + p.Image }

// Post is a blog article. Content is markdown.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	PublishDate time.Time `json:"publishDate"`
	Author      string    `json:"author,omitempty"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content,omitempty"`
	Categories  []string  `json:"categories"`
	CoverImage  string    `json:"coverImage,omitempty"`
}

// Link returns the site-relative page URL of the post.
func (p Post) Link() string { return "/blog/" + p.ID + "/" }

// ImageURL returns the site-relative URL of the post's cover image, or "".
func (p Post) ImageURL() string {
	if p.CoverImage == "" {
		return ""
	}
	return PostImageDir + p.CoverImage
}

// Date formats the publish date as YYYY-MM-DD.
func (p Post) Date() string { return p.PublishDate.Format(time.DateOnly) }

// Catalog is the immutable set of projects and posts.
type Catalog struct {
	projects []Project
	posts    []Post
	index    *search.Index
}

// New builds a Catalog from already validated records. Posts are ordered by
// publish date, newest first; projects keep their given order.
func New(projects []Project, posts []Post) *Catalog {
	posts = append([]Post(nil), posts...)
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishDate.After(posts[j].PublishDate)
	})
	c := &Catalog{
		projects: append([]Project(nil), projects...),
		posts:    posts,
	}
	c.index = search.NewIndex(projectItems(c.projects), postItems(c.posts))
	return c
}

// Projects returns all projects in catalog order.
func (c *Catalog) Projects() []Project { return c.projects }

// Posts returns all posts, newest first.
func (c *Catalog) Posts() []Post { return c.posts }

// Index returns the search index over both collections.
func (c *Catalog) Index() *search.Index { return c.index }

// Project looks up a project by id.
func (c *Catalog) Project(id string) (Project, error) {
	for _, p := range c.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return Project{}, ErrNotFound
}

// Post looks up a post by id.
func (c *Catalog) Post(id string) (Post, error) {
	for _, p := range c.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

// Featured returns projects flagged as featured, or the first n projects
// when none are flagged.
func (c *Catalog) Featured(n int) []Project {
	var out []Project
	for _, p := range c.projects {
		if p.Featured {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		out = c.projects
	}
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Recent returns the n newest posts.
func (c *Catalog) Recent(n int) []Post {
	if n <= 0 || n >= len(c.posts) {
		return c.posts
	}
	return c.posts[:n]
}

// Categories returns the distinct project categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range c.projects {
		for _, cat := range p.Categories {
			key := normalize(cat)
			if _, ok := seen[key]; ok || key == "" {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, cat)
		}
	}
	return out
}

// ProjectsByCategory filters projects by category. An empty category or
// "all" returns every project.
func (c *Catalog) ProjectsByCategory(category string) []Project {
	want := normalize(category)
	if want == "" || want == "all" {
		return c.projects
	}
	var out []Project
	for _, p := range c.projects {
		for _, cat := range p.Categories {
			if normalize(cat) == want {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// RelatedPosts returns other posts sharing at least one category with current.
func (c *Catalog) RelatedPosts(current Post) []Post {
	set := make(map[string]struct{})
	for _, cat := range current.Categories {
		if k := normalize(cat); k != "" {
			set[k] = struct{}{}
		}
	}
	var related []Post
	for _, p := range c.posts {
		if p.ID == current.ID {
			continue
		}
		for _, cat := range p.Categories {
			if _, ok := set[normalize(cat)]; ok {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func projectItems(projects []Project) []search.Item {
	items := make([]search.Item, 0, len(projects))
	for _, p := range projects {
		tags := make([]string, 0, len(p.Technologies)+len(p.Categories))
		tags = append(tags, p.Technologies...)
		tags = append(tags, p.Categories...)
		items = append(items, search.Item{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Tags:        tags,
			DisplayTags: p.Technologies,
			Type:        search.TypeProject,
			Image:       p.ImageURL(),
			URL:         p.Link(),
		})
	}
	return items
}

func postItems(posts []Post) []search.Item {
	items := make([]search.Item, 0, len(posts))
	for _, p := range posts {
		items = append(items, search.Item{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Excerpt,
			Tags:        p.Categories,
			DisplayTags: p.Categories,
			Type:        search.TypePost,
			Image:       p.ImageURL(),
			URL:         p.Link(),
			PublishDate: p.PublishDate,
		})
	}
	return items
}
