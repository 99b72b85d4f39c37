package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bunaihills/shop-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type BlogPost struct {
	ID        string         `db:"id"`
	Title     string         `db:"title"`
	Excerpt   string         `db:"excerpt"`
	Content   string         `db:"content"`
	Author    string         `db:"author"`
	Category  string         `db:"category"`
	ReadTime  string         `db:"read_time"`
	Tags      pq.StringArray `db:"tags"`
	Image     sql.NullString `db:"image"`
	ImageURL  sql.NullString `db:"image_url"`
	Published bool           `db:"published"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func BlogPostToEntity(b BlogPost) entities.BlogPost {
	return entities.BlogPost{
		ID:        b.ID,
		Title:     b.Title,
		Excerpt:   b.Excerpt,
		Content:   b.Content,
		Author:    b.Author,
		Category:  b.Category,
		ReadTime:  b.ReadTime,
		Tags:      []string(b.Tags),
		Image:     nullStringToString(b.Image),
		ImageURL:  nullStringToString(b.ImageURL),
		Published: b.Published,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

type blogRepo struct {
	base
}

func NewBlogRepo(db *sqlx.DB) *blogRepo {
	return &blogRepo{base: newBase(db)}
}

func (r *blogRepo) blogSelect() sq.SelectBuilder {
	return r.qb.Select("id", "title", "excerpt", "content", "author", "category",
		"read_time", "tags", "image", "image_url", "published", "created_at", "updated_at").
		From("blog_posts")
}

func (r *blogRepo) ListPosts(ctx context.Context) ([]entities.BlogPost, error) {
	query, args := r.blogSelect().
		Where(sq.Eq{"published": true}).
		OrderBy("created_at DESC").
		MustSql()

	var rows []BlogPost
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select blog posts: %w", err)
	}

	posts := make([]entities.BlogPost, 0, len(rows))
	for _, b := range rows {
		posts = append(posts, BlogPostToEntity(b))
	}
	return posts, nil
}

func (r *blogRepo) GetPostByID(ctx context.Context, id string) (entities.BlogPost, error) {
	query, args := r.blogSelect().Where(sq.Eq{"id": id}).MustSql()

	var row BlogPost
	err := r.getContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.BlogPost{}, entities.ErrBlogPostNotFound
	}
	if err != nil {
		return entities.BlogPost{}, fmt.Errorf("failed to get blog post: %w", err)
	}
	return BlogPostToEntity(row), nil
}

func (r *blogRepo) CreatePost(ctx context.Context, b entities.BlogPost) (entities.BlogPost, error) {
	b.ID = uuid.NewString()
	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now

	query, args := r.qb.Insert("blog_posts").
		Columns("id", "title", "excerpt", "content", "author", "category",
			"read_time", "tags", "image", "image_url", "published", "created_at", "updated_at").
		Values(b.ID, b.Title, b.Excerpt, b.Content, b.Author, b.Category,
			b.ReadTime, pq.StringArray(b.Tags), nullString(b.Image), nullString(b.ImageURL),
			b.Published, b.CreatedAt, b.UpdatedAt).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return entities.BlogPost{}, fmt.Errorf("failed to create blog post: %w", err)
	}
	return b, nil
}

func (r *blogRepo) UpdatePost(ctx context.Context, b entities.BlogPost) (entities.BlogPost, error) {
	query, args := r.qb.Update("blog_posts").
		Set("title", b.Title).
		Set("excerpt", b.Excerpt).
		Set("content", b.Content).
		Set("author", b.Author).
		Set("category", b.Category).
		Set("read_time", b.ReadTime).
		Set("tags", pq.StringArray(b.Tags)).
		Set("image", nullString(b.Image)).
		Set("image_url", nullString(b.ImageURL)).
		Set("published", b.Published).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": b.ID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return entities.BlogPost{}, fmt.Errorf("failed to update blog post: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entities.BlogPost{}, entities.ErrBlogPostNotFound
	}
	return r.GetPostByID(ctx, b.ID)
}

func (r *blogRepo) DeletePost(ctx context.Context, id string) error {
	query, args := r.qb.Delete("blog_posts").Where(sq.Eq{"id": id}).MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete blog post: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entities.ErrBlogPostNotFound
	}
	return nil
}
