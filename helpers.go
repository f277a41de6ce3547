package folio

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/eringen/folio/catalog"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// JoinTags joins tags with ", ".
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// PathEscape escapes a string for use in a URL path.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

func marshalLD(data map[string]interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func person(cfg SiteConfig) map[string]string {
	return map[string]string{"@type": "Person", "name": cfg.Author}
}

// PersonJsonLD returns a JSON-LD string describing the site owner.
func PersonJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "Person",
		"name":        cfg.Author,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
	}
	return marshalLD(data)
}

// CreativeWorkJsonLD returns a JSON-LD string for a project page.
func CreativeWorkJsonLD(p catalog.Project, cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "CreativeWork",
		"name":        p.Title,
		"description": p.Description,
		"url":         BuildURL(cfg.URL, "projects", p.ID),
		"image":       strings.TrimSuffix(BuildURL(cfg.URL), "/") + p.ImageURL(),
	}
	if len(p.Technologies) > 0 {
		data["keywords"] = JoinTags(p.Technologies)
	}
	if cfg.Author != "" {
		data["creator"] = person(cfg)
	}
	return marshalLD(data)
}

// BlogPostingJsonLD returns a JSON-LD string for a BlogPosting schema.
func BlogPostingJsonLD(post catalog.Post, cfg SiteConfig) string {
	postURL := BuildURL(cfg.URL, "blog", post.ID)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Excerpt,
		"datePublished": post.Date(),
		"url":           postURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	switch {
	case post.Author != "":
		data["author"] = map[string]string{"@type": "Person", "name": post.Author}
	case cfg.Author != "":
		data["author"] = person(cfg)
	}
	if cfg.Name != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		}
	}
	if len(post.Categories) > 0 {
		data["keywords"] = JoinTags(post.Categories)
	}
	return marshalLD(data)
}
