package views

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/url"
	"path"
	"strings"
)

var introLines = [][]string{
	strings.Fields("A cozy place to share the moments that made your skating journey sparkle — " +
		"the quiet mornings, the soft snow, the laughter, and the stories that linger in the cold air."),
	strings.Fields("Write freely, drift gently, and let every memory glide with ease."),
}

// IntroWords returns the banner text split into words, each carrying a
// staggered animation delay that continues across lines.
func IntroWords() [][]IntroWord {
	out := make([][]IntroWord, 0, len(introLines))
	i := 0
	for _, line := range introLines {
		words := make([]IntroWord, 0, len(line))
		for _, w := range line {
			words = append(words, IntroWord{Text: w, Delay: fmt.Sprintf("%.1fs", float64(i)*0.1)})
			i++
		}
		out = append(out, words)
	}
	return out
}

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// PageClass returns CSS classes for a page-number link.
func PageClass(current bool) string {
	if current {
		return "page page-current"
	}
	return "page"
}

// NavClass returns CSS classes for a prev/next control.
func NavClass(enabled bool) string {
	if enabled {
		return "nav"
	}
	return "nav nav-disabled"
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block for the site.
func WebsiteJsonLD(site Site) template.JS {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     site.Name,
		"url":      buildURL(site.URL),
	}
	if site.Description != "" {
		data["description"] = site.Description
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return template.JS(b)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(site Site, post PostCard) template.JS {
	postURL := buildURL(site.URL, "post", post.ID)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"datePublished": post.ISODate,
		"url":           postURL,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  site.Name,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if post.HasImage() {
		data["image"] = strings.TrimSuffix(site.URL, "/") + post.ImageURL
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return template.JS(b)
}
