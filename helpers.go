package skateshare

import (
	"fmt"
	"html/template"
	"net/url"
	"path"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"github.com/eringen/skateshare/pagination"
	"github.com/eringen/skateshare/views"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
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

// ListURL returns the listing URL for page and limit under basePath,
// optionally with the editor dialog open.
func ListURL(basePath string, page, limit int, compose bool) string {
	u := fmt.Sprintf("%s?page=%d&limit=%d", basePath, page, limit)
	if compose {
		u += "&compose=1"
	}
	return u
}

// Summarize returns at most n runes of s on a single line, with an ellipsis
// when truncated.
func Summarize(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n])) + "…"
}

func (a *App) site(c echo.Context) views.Site {
	return views.Site{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		CSRFToken:   CsrfToken(c),
	}
}

func postCard(p Post) views.PostCard {
	card := views.PostCard{
		ID:      p.ID,
		Title:   p.Title,
		Content: p.Content,
		Date:    p.CreatedAt.Format("Jan 2, 2006"),
		ISODate: p.CreatedAt.Format("2006-01-02"),
		Link:    p.Link(),
	}
	if p.Image != nil {
		card.ImageURL = "/media/" + url.PathEscape(p.ID)
		card.ImageWidth = p.Image.Width
		card.ImageHeight = p.Image.Height
	}
	return card
}

func postCards(posts []Post) []views.PostCard {
	cards := make([]views.PostCard, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, postCard(p))
	}
	return cards
}

func pageLinks(basePath string, items []pagination.Item, current, limit int) []views.PageLink {
	links := make([]views.PageLink, 0, len(items))
	for _, it := range items {
		if it.Ellipsis {
			links = append(links, views.PageLink{Ellipsis: true})
			continue
		}
		links = append(links, views.PageLink{
			Page:    it.Page,
			URL:     ListURL(basePath, it.Page, limit, false),
			Current: it.Page == current,
		})
	}
	return links
}

// buildPager assembles the pagination bar for a listing under basePath.
func buildPager(basePath string, page, limit, total, totalPages int) views.Pager {
	nav := pagination.Nav(page, totalPages)
	rng := pagination.RangeOf(page, limit, total)

	limits := slices.Clone(pagination.LimitOptions)
	if !slices.Contains(limits, limit) {
		limits = append(limits, limit)
		slices.Sort(limits)
	}
	options := make([]views.LimitOption, 0, len(limits))
	for _, l := range limits {
		options = append(options, views.LimitOption{
			Value:    l,
			URL:      ListURL(basePath, 1, l, false),
			Selected: l == limit,
		})
	}

	return views.Pager{
		Compact:      pageLinks(basePath, pagination.Numbers(page, totalPages, true), page, limit),
		Full:         pageLinks(basePath, pagination.Numbers(page, totalPages, false), page, limit),
		HasPrev:      nav.HasPrev,
		HasNext:      nav.HasNext,
		PrevURL:      ListURL(basePath, nav.Prev, limit, false),
		NextURL:      ListURL(basePath, nav.Next, limit, false),
		RangeValid:   rng.Valid,
		RangeStart:   rng.Start,
		RangeEnd:     rng.End,
		Total:        total,
		Limit:        limit,
		LimitOptions: options,
		FormAction:   basePath,
	}
}

func imagePreview(img PostImage) *views.ImagePreview {
	return &views.ImagePreview{
		DataURL: template.URL(DataURL(img)),
		Width:   img.Width,
		Height:  img.Height,
	}
}
