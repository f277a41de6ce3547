package folio

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/catalog"
	"github.com/eringen/folio/search"
)

const (
	homeFeatured = 3
	homeRecent   = 3
)

func (a *App) handleHome(c echo.Context) error {
	return Render(c, a.Views.Home(a.Catalog.Featured(homeFeatured), a.Catalog.Recent(homeRecent)))
}

func (a *App) handleProjects(c echo.Context) error {
	category := c.QueryParam("category")
	projects := a.Catalog.ProjectsByCategory(category)
	if isPartial(c, "projects") {
		return Render(c, a.Views.ProjectGrid(projects))
	}
	return Render(c, a.Views.Projects(projects, a.Catalog.Categories(), category))
}

func (a *App) handleProject(c echo.Context) error {
	p, err := a.Catalog.Project(c.Param("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	if err != nil {
		return err
	}
	return Render(c, a.Views.Project(p))
}

func (a *App) handleBlog(c echo.Context) error {
	return Render(c, a.Views.Blog(a.Catalog.Posts()))
}

func (a *App) handlePost(c echo.Context) error {
	post, err := a.Catalog.Post(c.Param("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	if err != nil {
		return err
	}
	return Render(c, a.Views.Post(post, a.Catalog.RelatedPosts(post)))
}

func (a *App) handleAbout(c echo.Context) error {
	return Render(c, a.Views.About())
}

func (a *App) handleSearch(c echo.Context) error {
	results := a.runSearch(c)
	if isPartial(c, "results") {
		return Render(c, a.Views.SearchResults(results))
	}
	return Render(c, a.Views.Search(results))
}

// runSearch answers the request's q parameter and logs completed searches
// made by people.
func (a *App) runSearch(c echo.Context) search.Results {
	results := a.Search.Search(c.QueryParam("q"))
	if results.Completed && !isBot(c.Request().UserAgent()) {
		if err := a.Store.LogSearch(c.Request().Context(), results.Query, len(results.Items)); err != nil {
			c.Logger().Errorf("log search: %v", err)
		}
	}
	return results
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c)
}

func (a *App) handleFeed(c echo.Context) error {
	return a.renderRSS(c, a.Catalog.Posts())
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.Config.StaticDir + "/favicon.svg")
}

// handleRobots generates robots.txt from the site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\nDisallow: /api/\n\nSitemap: %s\n",
		BuildURL(a.Config.URL)+"sitemap.xml")
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
	}
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		a.Echo.DefaultHTTPErrorHandler(err, c)
		return
	}
	switch {
	case code == http.StatusNotFound:
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	case code >= 500:
		_ = RenderStatus(c, code, a.Views.ServerError())
	default:
		a.Echo.DefaultHTTPErrorHandler(err, c)
	}
}
