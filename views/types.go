package views

import (
	"html/template"
	"strings"
)

// Site holds site-wide settings every page needs.
type Site struct {
	Name        string
	URL         string
	Description string
	CSRFToken   string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// PostCard is a post prepared for display.
type PostCard struct {
	ID          string
	Title       string
	Content     string
	Date        string // e.g. "Jan 2, 2006"
	ISODate     string
	Link        string
	ImageURL    string
	ImageWidth  int
	ImageHeight int
}

// HasImage reports whether the post has an embedded image.
func (p PostCard) HasImage() bool {
	return p.ImageURL != ""
}

// PageLink is one entry of the page-number strip.
type PageLink struct {
	Page     int
	URL      string
	Current  bool
	Ellipsis bool
}

// LimitOption is one choice of the page-size selector.
type LimitOption struct {
	Value    int
	URL      string
	Selected bool
}

// Pager is the pagination bar: page numbers in compact and full variants,
// prev/next controls, the item range and the page-size selector.
type Pager struct {
	Compact      []PageLink
	Full         []PageLink
	HasPrev      bool
	HasNext      bool
	PrevURL      string
	NextURL      string
	RangeValid   bool
	RangeStart   int
	RangeEnd     int
	Total        int
	Limit        int
	LimitOptions []LimitOption
	// FormAction is the path the page-size form submits to.
	FormAction string
}

// ImagePreview is the inline preview of an image chosen in the editor.
type ImagePreview struct {
	DataURL template.URL
	Width   int
	Height  int
	Error   string
}

// Editor is the state of the "share a memory" dialog.
type Editor struct {
	Open           bool
	ShowValidation bool
	Title          string
	Content        string
	TitleError     string
	ContentError   string
	ImageError     string
	FormError      string
	Limit          int
	CancelURL      string
	CSRFToken      string
	Preview        *ImagePreview
}

// CanSubmit mirrors the submit button's enabled state: both fields filled.
func (e Editor) CanSubmit() bool {
	return strings.TrimSpace(e.Title) != "" && strings.TrimSpace(e.Content) != ""
}

// IntroWord is a word of the animated banner text with its animation delay.
type IntroWord struct {
	Text  string
	Delay string
}

// HomePage is the listing page.
type HomePage struct {
	Site       Site
	Meta       PageMeta
	Intro      [][]IntroWord
	Posts      []PostCard
	Pager      Pager
	Editor     Editor
	ComposeURL string
}

// PostPage is a single post page.
type PostPage struct {
	Site    Site
	Meta    PageMeta
	Post    PostCard
	BackURL string
}

// AdminLoginPage is the admin login form.
type AdminLoginPage struct {
	Site      Site
	Meta      PageMeta
	ShowError bool
}

// AdminDashboardPage lists posts for moderation.
type AdminDashboardPage struct {
	Site    Site
	Meta    PageMeta
	Posts   []PostCard
	Pager   Pager
	Message string
}

// ErrorPage is used for 404 and 500 responses.
type ErrorPage struct {
	Site Site
	Meta PageMeta
}
