package skateshare

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSetDefaults(t *testing.T) {
	var cfg SiteConfig
	cfg.setDefaults()

	if cfg.Name != "Skating Trip Share" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.DefaultPageLimit != 5 {
		t.Errorf("DefaultPageLimit = %d, want 5", cfg.DefaultPageLimit)
	}
	if cfg.PageCacheTTL != time.Minute {
		t.Errorf("PageCacheTTL = %v", cfg.PageCacheTTL)
	}
	if cfg.MaxUploadBytes != DefaultMaxUploadBytes {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SITE_NAME", "Pond Stories")
	t.Setenv("SITE_URL", "https://example.com/")
	t.Setenv("DEFAULT_PAGE_LIMIT", "10")
	t.Setenv("PAGE_CACHE_TTL", "30s")
	t.Setenv("COOKIE_SECURE", "TRUE")

	cfg := LoadConfig()
	if cfg.Name != "Pond Stories" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.URL != "https://example.com" {
		t.Errorf("URL = %q, want trailing slash trimmed", cfg.URL)
	}
	if cfg.DefaultPageLimit != 10 {
		t.Errorf("DefaultPageLimit = %d", cfg.DefaultPageLimit)
	}
	if cfg.PageCacheTTL != 30*time.Second {
		t.Errorf("PageCacheTTL = %v", cfg.PageCacheTTL)
	}
	if !cfg.CookieSecure {
		t.Error("CookieSecure should be true")
	}
}

func TestLoadConfigReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SITE_DESCRIPTION=from dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	// Register the variable so it is restored, then clear it so godotenv
	// is allowed to set it.
	t.Setenv("SITE_DESCRIPTION", "")
	os.Unsetenv("SITE_DESCRIPTION")

	cfg := LoadConfig()
	if cfg.Description != "from dotenv" {
		t.Errorf("Description = %q, want %q", cfg.Description, "from dotenv")
	}
}
