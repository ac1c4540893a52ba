package skateshare

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/eringen/skateshare/pagination"
)

var (
	// ErrNotFound is returned when a requested post (or its image) does not exist.
	ErrNotFound = errors.New("skateshare: not found")
	// ErrInvalidPost is returned when a new post is missing its title or content.
	ErrInvalidPost = errors.New("skateshare: title and content are required")
)

// Store wraps a SQLite database and implements PostService.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ PostService = (*Store)(nil)

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets readers proceed while a post is written; the busy timeout
	// makes concurrent writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db, now: time.Now}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    image_mime TEXT,
    image_width INTEGER,
    image_height INTEGER,
    image_size INTEGER,
    image_data BLOB
);
CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at);
`)
	return err
}

const postColumns = `id, title, content, created_at, image_mime, image_width, image_height, image_size`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (Post, error) {
	var (
		p         Post
		createdAt int64
		mime      sql.NullString
		w, h, sz  sql.NullInt64
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &createdAt, &mime, &w, &h, &sz); err != nil {
		return Post{}, err
	}
	p.CreatedAt = time.UnixMilli(createdAt).UTC()
	if mime.Valid && mime.String != "" {
		p.Image = &ImageMeta{
			MimeType: mime.String,
			Width:    int(w.Int64),
			Height:   int(h.Int64),
			Size:     int(sz.Int64),
		}
	}
	return p, nil
}

// ListPosts returns one page of posts, newest first. Image bytes are not loaded.
func (s *Store) ListPosts(ctx context.Context, page, limit int) (PostPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = pagination.DefaultLimit
	}
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return PostPage{}, fmt.Errorf("skateshare: count posts: %w", err)
	}
	result := PostPage{
		Posts:      []Post{},
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: pagination.TotalPages(total, limit),
	}
	if page > result.TotalPages {
		return result, nil
	}
	offset := (page - 1) * limit

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return PostPage{}, fmt.Errorf("skateshare: list posts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return PostPage{}, err
		}
		result.Posts = append(result.Posts, p)
	}
	if err := rows.Err(); err != nil {
		return PostPage{}, err
	}
	return result, nil
}

// GetPost returns a single post by ID.
func (s *Store) GetPost(ctx context.Context, id string) (Post, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ?`, id)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Post{}, ErrNotFound
	}
	return p, err
}

// GetPostImage returns the image attached to a post, or ErrNotFound if the
// post does not exist or has no image.
func (s *Store) GetPostImage(ctx context.Context, id string) (PostImage, error) {
	var (
		mime     sql.NullString
		w, h, sz sql.NullInt64
		data     []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT image_mime, image_width, image_height, image_size, image_data FROM posts WHERE id = ?`, id).
		Scan(&mime, &w, &h, &sz, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return PostImage{}, ErrNotFound
	}
	if err != nil {
		return PostImage{}, err
	}
	if !mime.Valid || len(data) == 0 {
		return PostImage{}, ErrNotFound
	}
	return PostImage{
		ImageMeta: ImageMeta{
			MimeType: mime.String,
			Width:    int(w.Int64),
			Height:   int(h.Int64),
			Size:     int(sz.Int64),
		},
		Data: data,
	}, nil
}

// CreatePost validates and stores a new post. Title and content are trimmed
// and must both be non-empty.
func (s *Store) CreatePost(ctx context.Context, np NewPost) (Post, error) {
	title := strings.TrimSpace(np.Title)
	content := strings.TrimSpace(np.Content)
	if title == "" || content == "" {
		return Post{}, ErrInvalidPost
	}

	p := Post{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}

	var (
		mime     sql.NullString
		w, h, sz sql.NullInt64
		data     []byte
	)
	if img := np.Image; img != nil && len(img.Data) > 0 {
		mime = sql.NullString{String: img.MimeType, Valid: true}
		w = sql.NullInt64{Int64: int64(img.Width), Valid: true}
		h = sql.NullInt64{Int64: int64(img.Height), Valid: true}
		sz = sql.NullInt64{Int64: int64(len(img.Data)), Valid: true}
		data = img.Data
		p.Image = &ImageMeta{
			MimeType: img.MimeType,
			Width:    img.Width,
			Height:   img.Height,
			Size:     len(img.Data),
		}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO posts (id, title, content, created_at, image_mime, image_width, image_height, image_size, image_data)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Content, p.CreatedAt.UnixMilli(), mime, w, h, sz, data)
	if err != nil {
		return Post{}, fmt.Errorf("skateshare: insert post: %w", err)
	}
	return p, nil
}

// DeletePost removes a post by ID. Deleting a missing post returns ErrNotFound.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
