package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bunaihills/shop-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type GalleryImage struct {
	ID          string         `db:"id"`
	Title       sql.NullString `db:"title"`
	Description sql.NullString `db:"description"`
	Category    sql.NullString `db:"category"`
	Image       sql.NullString `db:"image"`
	ImageURL    sql.NullString `db:"image_url"`
	CreatedAt   time.Time      `db:"created_at"`
}

func GalleryImageToEntity(g GalleryImage) entities.GalleryImage {
	return entities.GalleryImage{
		ID:          g.ID,
		Title:       nullStringToString(g.Title),
		Description: nullStringToString(g.Description),
		Category:    nullStringToString(g.Category),
		Image:       nullStringToString(g.Image),
		ImageURL:    nullStringToString(g.ImageURL),
		CreatedAt:   g.CreatedAt,
	}
}

type galleryRepo struct {
	base
}

func NewGalleryRepo(db *sqlx.DB) *galleryRepo {
	return &galleryRepo{base: newBase(db)}
}

func (r *galleryRepo) ListImages(ctx context.Context) ([]entities.GalleryImage, error) {
	query, args := r.qb.Select("id", "title", "description", "category", "image", "image_url", "created_at").
		From("gallery_images").
		OrderBy("created_at DESC").
		MustSql()

	var rows []GalleryImage
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select gallery images: %w", err)
	}

	images := make([]entities.GalleryImage, 0, len(rows))
	for _, g := range rows {
		images = append(images, GalleryImageToEntity(g))
	}
	return images, nil
}

func (r *galleryRepo) CreateImage(ctx context.Context, g entities.GalleryImage) (entities.GalleryImage, error) {
	g.ID = uuid.NewString()
	g.CreatedAt = time.Now().UTC()

	query, args := r.qb.Insert("gallery_images").
		Columns("id", "title", "description", "category", "image", "image_url", "created_at").
		Values(g.ID, nullString(g.Title), nullString(g.Description), nullString(g.Category),
			nullString(g.Image), nullString(g.ImageURL), g.CreatedAt).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return entities.GalleryImage{}, fmt.Errorf("failed to create gallery image: %w", err)
	}
	return g, nil
}

func (r *galleryRepo) DeleteImage(ctx context.Context, id string) error {
	query, args := r.qb.Delete("gallery_images").Where(sq.Eq{"id": id}).MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete gallery image: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entities.ErrGalleryNotFound
	}
	return nil
}
