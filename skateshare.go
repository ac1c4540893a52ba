// Package skateshare is a small "share your memory" blog built with Go, Echo
// and SQLite. Visitors page through shared memories, submit a new one from a
// modal editor (title, text and an optional image) and open single posts.
//
// Pages are rendered through templ components supplied by ViewFuncs; the
// views package provides the default set.
package skateshare

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/eringen/skateshare/views"
)

// ViewFuncs holds the templ components the handlers call when rendering
// pages. Replace individual entries to customize the look of the site.
type ViewFuncs struct {
	Home           func(views.HomePage) templ.Component
	PostList       func(views.HomePage) templ.Component
	Post           func(views.PostPage) templ.Component
	Preview        func(views.ImagePreview) templ.Component
	AdminLogin     func(views.AdminLoginPage) templ.Component
	AdminDashboard func(views.AdminDashboardPage) templ.Component
	NotFound       func(views.ErrorPage) templ.Component
	ServerError    func(views.ErrorPage) templ.Component
}

// DefaultViews returns the built-in page templates.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:           views.Home,
		PostList:       views.PostList,
		Post:           views.Post,
		Preview:        views.Preview,
		AdminLogin:     views.AdminLogin,
		AdminDashboard: views.AdminDashboard,
		NotFound:       views.NotFound,
		ServerError:    views.ServerError,
	}
}

// App is the central skateshare application. It wires together the post
// service, page cache, handlers, middleware and views.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	// Store is the SQLite store when no other PostService was supplied.
	Store *Store
	Posts *PageCache
	Views ViewFuncs

	service      PostService
	loginLimiter *RateLimiter
	postLimiter  *RateLimiter
	customRoutes []func(*App)
	staticDir    string
	initialized  bool
}

// New creates a new App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     DefaultViews(),
		staticDir: "public",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens the store and registers middleware and routes without
// starting the listener. Start calls it; tests call it directly.
func (a *App) Init() error {
	if a.initialized {
		return nil
	}
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("skateshare: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("skateshare: SessionSecret is required")
	}

	if a.service == nil {
		store, err := NewStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("skateshare: init store: %w", err)
		}
		a.Store = store
		a.service = store
	}

	a.Posts = NewPageCache(a.service, a.Config.PageCacheTTL)
	a.loginLimiter = NewRateLimiter(5, time.Minute)
	a.postLimiter = NewRateLimiter(a.Config.PostRateLimit, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.initialized = true
	return nil
}

// Start initializes the app and serves HTTP until the server is shut down.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	a.Echo.Logger.Infof("skateshare listening on %s", a.Config.Addr)
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework assets are served from the embedded FS under /assets/.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	assets := http.StripPrefix("/assets/", http.FileServer(http.FS(embeddedFS)))
	e.GET("/assets/site.css", echo.WrapHandler(assets))
	e.GET("/assets/editor.js", echo.WrapHandler(assets))

	// User's static assets (banner image, favicon)
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/post/:id/", a.handlePost)
	e.GET("/media/:id", a.handleMedia)

	uploadLimit := fmt.Sprintf("%dK", (a.Config.MaxUploadBytes+(1<<20))/1024)
	e.POST("/posts/", a.handleCreatePost, middleware.BodyLimit(uploadLimit))
	e.POST("/posts/preview/", a.handlePreview, middleware.BodyLimit(uploadLimit))

	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.DELETE("/admin/post/:id/", a.handleAdminDelete)
	e.POST("/admin/post/:id/delete/", a.handleAdminDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.postLimiter != nil {
		a.postLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
