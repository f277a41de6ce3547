package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/xeipuuv/gojsonschema"
)

// Layout of a content directory.
const (
	ProjectsFile = "projects.json"
	PostsGlob    = "posts/*.md"
)

//go:embed schema/*.json
var schemaFS embed.FS

var (
	projectsSchema = mustSchema("schema/project.schema.json")
	postSchema     = mustSchema("schema/post.schema.json")
)

func mustSchema(name string) *gojsonschema.Schema {
	b, err := schemaFS.ReadFile(name)
	if err != nil {
		panic(err)
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(b))
	if err != nil {
		panic(fmt.Sprintf("catalog: compile %s: %v", name, err))
	}
	return s
}

// postMeta is the YAML front matter of a post file.
type postMeta struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	PublishDate string   `yaml:"publishDate"`
	Author      string   `yaml:"author"`
	Excerpt     string   `yaml:"excerpt"`
	Categories  []string `yaml:"categories"`
	CoverImage  string   `yaml:"coverImage"`
}

// Load reads projects.json and posts/*.md from fsys, validates every record
// against its schema and returns the resulting Catalog. A missing posts
// directory yields an empty post collection; a missing projects.json is an
// error.
func Load(fsys fs.FS) (*Catalog, error) {
	projects, err := loadProjects(fsys)
	if err != nil {
		return nil, err
	}
	posts, err := loadPosts(fsys)
	if err != nil {
		return nil, err
	}
	return New(projects, posts), nil
}

func loadProjects(fsys fs.FS) ([]Project, error) {
	b, err := fs.ReadFile(fsys, ProjectsFile)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", ProjectsFile, err)
	}
	if err := validate(projectsSchema, gojsonschema.NewBytesLoader(b)); err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", ProjectsFile, err)
	}
	var projects []Project
	dec := json.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&projects); err != nil {
		return nil, fmt.Errorf("catalog: decode %s: %w", ProjectsFile, err)
	}
	seen := make(map[string]struct{}, len(projects))
	for _, p := range projects {
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("catalog: %s: duplicate project id %q", ProjectsFile, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return projects, nil
}

func loadPosts(fsys fs.FS) ([]Post, error) {
	names, err := fs.Glob(fsys, PostsGlob)
	if err != nil {
		return nil, fmt.Errorf("catalog: list posts: %w", err)
	}
	posts := make([]Post, 0, len(names))
	seen := make(map[string]string, len(names))
	for _, name := range names {
		p, err := loadPost(fsys, name)
		if err != nil {
			return nil, err
		}
		if other, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate post id %q in %s and %s", p.ID, other, name)
		}
		seen[p.ID] = name
		posts = append(posts, p)
	}
	return posts, nil
}

func loadPost(fsys fs.FS, name string) (Post, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return Post{}, fmt.Errorf("catalog: open %s: %w", name, err)
	}
	defer f.Close()

	var meta postMeta
	body, err := frontmatter.Parse(f, &meta)
	if err != nil {
		return Post{}, fmt.Errorf("catalog: front matter %s: %w", name, err)
	}
	if meta.ID == "" {
		meta.ID = strings.TrimSuffix(path.Base(name), path.Ext(name))
	}

	if err := validate(postSchema, gojsonschema.NewGoLoader(meta.document())); err != nil {
		return Post{}, fmt.Errorf("catalog: %s: %w", name, err)
	}
	published, err := time.Parse(time.DateOnly, meta.PublishDate)
	if err != nil {
		return Post{}, fmt.Errorf("catalog: %s: publishDate: %w", name, err)
	}

	return Post{
		ID:          meta.ID,
		Title:       meta.Title,
		PublishDate: published,
		Author:      meta.Author,
		Excerpt:     meta.Excerpt,
		Content:     strings.TrimSpace(string(body)),
		Categories:  meta.Categories,
		CoverImage:  meta.CoverImage,
	}, nil
}

// document returns the JSON shape validated by post.schema.json. Unset
// optional fields are left out so required checks see them as absent.
func (m postMeta) document() map[string]interface{} {
	doc := map[string]interface{}{}
	set := func(k, v string) {
		if v != "" {
			doc[k] = v
		}
	}
	set("id", m.ID)
	set("title", m.Title)
	set("publishDate", m.PublishDate)
	set("author", m.Author)
	set("excerpt", m.Excerpt)
	set("coverImage", m.CoverImage)
	if m.Categories != nil {
		doc["categories"] = m.Categories
	}
	return doc
}

func validate(schema *gojsonschema.Schema, doc gojsonschema.JSONLoader) error {
	res, err := schema.Validate(doc)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}
