package skateshare

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// PageCache is an in-memory TTL cache of listing pages in front of a PostService.
// Single posts and images are passed through.
type PageCache struct {
	pages *cache.Cache
	svc   PostService
}

// NewPageCache creates a PageCache backed by svc.
func NewPageCache(svc PostService, ttl time.Duration) *PageCache {
	return &PageCache{
		pages: cache.New(ttl, 2*ttl),
		svc:   svc,
	}
}

func pageKey(page, limit int) string {
	return fmt.Sprintf("%d:%d", page, limit)
}

// ListPosts returns a cached page if fresh, otherwise loads and caches it.
func (c *PageCache) ListPosts(ctx context.Context, page, limit int) (PostPage, error) {
	key := pageKey(page, limit)
	if v, ok := c.pages.Get(key); ok {
		return v.(PostPage), nil
	}
	p, err := c.svc.ListPosts(ctx, page, limit)
	if err != nil {
		return PostPage{}, err
	}
	c.pages.SetDefault(key, p)
	return p, nil
}

// GetPost reads through to the backing service.
func (c *PageCache) GetPost(ctx context.Context, id string) (Post, error) {
	return c.svc.GetPost(ctx, id)
}

// GetPostImage reads through to the backing service.
func (c *PageCache) GetPostImage(ctx context.Context, id string) (PostImage, error) {
	return c.svc.GetPostImage(ctx, id)
}

// CreatePost stores a post and drops every cached page.
func (c *PageCache) CreatePost(ctx context.Context, p NewPost) (Post, error) {
	created, err := c.svc.CreatePost(ctx, p)
	if err != nil {
		return Post{}, err
	}
	c.Invalidate()
	return created, nil
}

// DeletePost removes a post and drops every cached page.
func (c *PageCache) DeletePost(ctx context.Context, id string) error {
	if err := c.svc.DeletePost(ctx, id); err != nil {
		return err
	}
	c.Invalidate()
	return nil
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PageCache) Invalidate() {
	c.pages.Flush()
}
