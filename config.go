package skateshare

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/eringen/skateshare/pagination"
)

// SiteConfig holds all configuration for a skateshare site.
type SiteConfig struct {
	Name        string // Site name (default "Skating Trip Share")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/skateshare.db")

	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	PageCacheTTL     time.Duration // Listing cache TTL (default 1min)
	DefaultPageLimit int           // Posts per page when ?limit is absent (default 5)
	MaxUploadBytes   int64         // Largest accepted image upload (default 10MB)
	PostRateLimit    int           // New posts per IP per minute (default 10)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Skating Trip Share"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/skateshare.db"
	}
	if c.PageCacheTTL == 0 {
		c.PageCacheTTL = time.Minute
	}
	if c.DefaultPageLimit <= 0 {
		c.DefaultPageLimit = pagination.DefaultLimit
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if c.PostRateLimit <= 0 {
		c.PostRateLimit = 10
	}
}

// LoadConfig builds a SiteConfig from the environment. Values from .env.local
// and .env are loaded first when present; variables already set win.
func LoadConfig() SiteConfig {
	for _, f := range []string{".env.local", ".env"} {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}
	cfg := SiteConfig{
		Name:             os.Getenv("SITE_NAME"),
		URL:              os.Getenv("SITE_URL"),
		Description:      os.Getenv("SITE_DESCRIPTION"),
		Addr:             os.Getenv("ADDR"),
		DatabasePath:     os.Getenv("DATABASE_PATH"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		SessionSecret:    os.Getenv("ADMIN_SESSION_SECRET"),
		CookieSecure:     strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true"),
		PageCacheTTL:     envDuration("PAGE_CACHE_TTL"),
		DefaultPageLimit: envInt("DEFAULT_PAGE_LIMIT"),
		MaxUploadBytes:   int64(envInt("MAX_UPLOAD_BYTES")),
		PostRateLimit:    envInt("POST_RATE_LIMIT"),
	}
	cfg.setDefaults()
	return cfg
}

func envInt(key string) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return n
}

func envDuration(key string) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return 0
	}
	return d
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithPostService replaces the SQLite store with another PostService.
func WithPostService(svc PostService) Option {
	return func(a *App) {
		a.service = svc
	}
}

// WithViews overrides the built-in page templates.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}
