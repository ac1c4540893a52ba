package skateshare

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/skateshare/pagination"
	"github.com/eringen/skateshare/views"
)

const adminPageLimit = 20

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(a.adminLoginPage(c, false)))
	}
	return a.renderAdminDashboard(c, http.StatusOK, c.QueryParam("msg"))
}

func (a *App) adminLoginPage(c echo.Context, showError bool) views.AdminLoginPage {
	return views.AdminLoginPage{
		Site:      a.site(c),
		Meta:      views.PageMeta{Title: "Admin"},
		ShowError: showError,
	}
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	return RenderStatus(c, http.StatusUnauthorized, a.Views.AdminLogin(a.adminLoginPage(c, true)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// handleAdminDelete removes a post. DELETE requests get the refreshed
// dashboard back; the POST form fallback is redirected.
func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	id := c.Param("id")
	if err := a.Posts.DeletePost(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	c.Logger().Infof("post %s deleted", id)
	if c.Request().Method == http.MethodDelete {
		return a.renderAdminDashboard(c, http.StatusOK, "deleted")
	}
	return c.Redirect(http.StatusSeeOther, "/admin/?msg=deleted")
}

func (a *App) renderAdminDashboard(c echo.Context, code int, msg string) error {
	page, limit := pagination.Parse(c.QueryParam("page"), c.QueryParam("limit"), adminPageLimit)
	pp, err := a.Posts.ListPosts(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return RenderStatus(c, code, a.Views.AdminDashboard(views.AdminDashboardPage{
		Site:    a.site(c),
		Meta:    views.PageMeta{Title: "Admin"},
		Posts:   postCards(pp.Posts),
		Pager:   buildPager("/admin/", page, limit, pp.Total, pp.TotalPages),
		Message: msg,
	}))
}
