package skateshare

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/skateshare/pagination"
	"github.com/eringen/skateshare/views"
)

// handleHome serves the listing page. ?compose=1 opens the editor dialog and
// ?partial=list returns only the pager and post cards.
func (a *App) handleHome(c echo.Context) error {
	page, limit := pagination.Parse(c.QueryParam("page"), c.QueryParam("limit"), a.Config.DefaultPageLimit)
	state := EditorState{Open: c.QueryParam("compose") != ""}
	return a.renderHome(c, http.StatusOK, page, limit, state)
}

func (a *App) renderHome(c echo.Context, code, page, limit int, state EditorState) error {
	pp, err := a.Posts.ListPosts(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	site := a.site(c)
	model := views.HomePage{
		Site: site,
		Meta: views.PageMeta{
			Description: a.Config.Description,
			URL:         BuildURL(a.Config.URL),
			OGType:      "website",
		},
		Intro:      views.IntroWords(),
		Posts:      postCards(pp.Posts),
		Pager:      buildPager("/", page, limit, pp.Total, pp.TotalPages),
		Editor:     state.view(limit, ListURL("/", page, limit, false), site.CSRFToken),
		ComposeURL: ListURL("/", page, limit, true),
	}
	if c.QueryParam("partial") == "list" {
		return RenderStatus(c, code, a.Views.PostList(model))
	}
	return RenderStatus(c, code, a.Views.Home(model))
}

// handlePost serves a single post.
func (a *App) handlePost(c echo.Context) error {
	post, err := a.Posts.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.errorPage(c)))
		}
		return err
	}
	card := postCard(post)
	return Render(c, a.Views.Post(views.PostPage{
		Site: a.site(c),
		Meta: views.PageMeta{
			Title:       post.Title,
			Description: Summarize(post.Content, 160),
			URL:         BuildURL(a.Config.URL, "post", post.ID),
			OGType:      "article",
		},
		Post:    card,
		BackURL: "/",
	}))
}

// handleMedia serves the stored image of a post.
func (a *App) handleMedia(c echo.Context) error {
	img, err := a.Posts.GetPostImage(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	return c.Blob(http.StatusOK, img.MimeType, img.Data)
}

func (a *App) handleSitemap(c echo.Context) error {
	pp, err := a.Posts.ListPosts(c.Request().Context(), 1, pagination.MaxLimit)
	if err != nil {
		return err
	}
	return a.renderSitemap(c, pp.Posts)
}

func (a *App) handleFeed(c echo.Context) error {
	pp, err := a.Posts.ListPosts(c.Request().Context(), 1, feedSize)
	if err != nil {
		return err
	}
	return a.renderRSS(c, pp.Posts)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

// handleRobots generates robots.txt using the configured site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) errorPage(c echo.Context) views.ErrorPage {
	return views.ErrorPage{Site: a.site(c), Meta: views.PageMeta{Title: "Not found"}}
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.errorPage(c)))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		page := a.errorPage(c)
		page.Meta.Title = "Error"
		_ = RenderStatus(c, code, a.Views.ServerError(page))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
