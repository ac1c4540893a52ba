// Package views renders the skateshare pages. Templates are embedded
// html/template files exposed as templ components so handlers can render
// them the same way as any other templ.Component.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(
	template.New("pages").Funcs(template.FuncMap{
		"websiteJsonLD": WebsiteJsonLD,
		"postingJsonLD": BlogPostingJsonLD,
		"pageClass":     PageClass,
		"navClass":      NavClass,
	}).ParseFS(templateFS, "templates/*.html"),
)

func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return pages.ExecuteTemplate(w, name, data)
	})
}

// Home renders the full listing page, including the editor dialog.
func Home(p HomePage) templ.Component { return component("home", p) }

// PostList renders only the pager and post cards of the listing page.
func PostList(p HomePage) templ.Component { return component("post-list", p) }

// Post renders a single post page.
func Post(p PostPage) templ.Component { return component("post", p) }

// Preview renders the editor's image preview fragment.
func Preview(p ImagePreview) templ.Component { return component("preview", p) }

// AdminLogin renders the admin login form.
func AdminLogin(p AdminLoginPage) templ.Component { return component("admin-login", p) }

// AdminDashboard renders the moderation dashboard.
func AdminDashboard(p AdminDashboardPage) templ.Component { return component("admin-dashboard", p) }

// NotFound renders the 404 page.
func NotFound(p ErrorPage) templ.Component { return component("not-found", p) }

// ServerError renders the 500 page.
func ServerError(p ErrorPage) templ.Component { return component("server-error", p) }
