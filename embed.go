package skateshare

import "embed"

// EmbeddedAssets contains static assets shipped with the application:
// site.css and editor.js
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
