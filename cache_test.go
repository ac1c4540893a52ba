package skateshare

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingService wraps a Store and counts listing queries.
type countingService struct {
	*Store
	lists int
}

func (s *countingService) ListPosts(ctx context.Context, page, limit int) (PostPage, error) {
	s.lists++
	return s.Store.ListPosts(ctx, page, limit)
}

func TestPageCacheServesRepeatedReads(t *testing.T) {
	svc := &countingService{Store: setupTestStore(t)}
	c := NewPageCache(svc, time.Minute)
	ctx := context.Background()

	_, err := c.ListPosts(ctx, 1, 5)
	require.NoError(t, err)
	_, err = c.ListPosts(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, svc.lists)

	_, err = c.ListPosts(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, svc.lists, "different limit is a separate key")
}

func TestPageCacheInvalidatesOnCreate(t *testing.T) {
	svc := &countingService{Store: setupTestStore(t)}
	c := NewPageCache(svc, time.Minute)
	ctx := context.Background()

	before, err := c.ListPosts(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, before.Total)

	_, err = c.CreatePost(ctx, NewPost{Title: "Night skate", Content: "Stars over the rink"})
	require.NoError(t, err)

	after, err := c.ListPosts(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, after.Total)
	assert.Equal(t, 2, svc.lists)
}

func TestPageCacheKeepsEntriesOnFailedCreate(t *testing.T) {
	svc := &countingService{Store: setupTestStore(t)}
	c := NewPageCache(svc, time.Minute)
	ctx := context.Background()

	_, err := c.ListPosts(ctx, 1, 5)
	require.NoError(t, err)

	_, err = c.CreatePost(ctx, NewPost{Title: "", Content: ""})
	assert.ErrorIs(t, err, ErrInvalidPost)

	_, err = c.ListPosts(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, svc.lists)
}

func TestPageCacheInvalidatesOnDelete(t *testing.T) {
	svc := &countingService{Store: setupTestStore(t)}
	c := NewPageCache(svc, time.Minute)
	ctx := context.Background()

	p, err := c.CreatePost(ctx, NewPost{Title: "t", Content: "c"})
	require.NoError(t, err)
	page, err := c.ListPosts(ctx, 1, 5)
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)

	require.NoError(t, c.DeletePost(ctx, p.ID))
	page, err = c.ListPosts(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
}
