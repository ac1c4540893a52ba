package skateshare

import (
	"context"
	"time"
)

// Post is a shared memory as stored in SQLite and rendered by the views.
// Image is nil when the post was submitted without one.
type Post struct {
	ID        string
	Title     string
	Content   string
	CreatedAt time.Time
	Image     *ImageMeta
}

// Link returns the canonical path of the post page.
func (p Post) Link() string {
	return "/post/" + p.ID + "/"
}

// ImageMeta describes a stored image without its bytes.
type ImageMeta struct {
	MimeType string
	Width    int
	Height   int
	Size     int
}

// Dimensions returns the pixel size of the image.
func (m ImageMeta) Dimensions() ImageDimensions {
	return ImageDimensions{Width: m.Width, Height: m.Height}
}

// ImageDimensions is the pixel size of an uploaded image.
type ImageDimensions struct {
	Width  int
	Height int
}

// PostImage is an image together with its encoded bytes.
type PostImage struct {
	ImageMeta
	Data []byte
}

// NewPost is the input for creating a post.
type NewPost struct {
	Title   string
	Content string
	Image   *PostImage
}

// PostPage is one page of the post listing.
type PostPage struct {
	Posts      []Post
	Page       int
	Limit      int
	TotalPages int
	Total      int
}

// PostService is the backend the HTTP layer reads posts from and writes posts to.
type PostService interface {
	ListPosts(ctx context.Context, page, limit int) (PostPage, error)
	GetPost(ctx context.Context, id string) (Post, error)
	GetPostImage(ctx context.Context, id string) (PostImage, error)
	CreatePost(ctx context.Context, p NewPost) (Post, error)
	DeletePost(ctx context.Context, id string) error
}
