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
)

type Product struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Price       float64        `db:"price"`
	Category    sql.NullString `db:"category"`
	Image       sql.NullString `db:"image"`
	ImageURL    sql.NullString `db:"image_url"`
	InStock     bool           `db:"in_stock"`
	CreatedAt   time.Time      `db:"created_at"`
}

func ProductToEntity(p Product) entities.Product {
	return entities.Product{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Category:    nullStringToString(p.Category),
		Image:       nullStringToString(p.Image),
		ImageURL:    nullStringToString(p.ImageURL),
		InStock:     p.InStock,
		CreatedAt:   p.CreatedAt,
	}
}

type productsRepo struct {
	base
}

func NewProductsRepo(db *sqlx.DB) *productsRepo {
	return &productsRepo{base: newBase(db)}
}

func (r *productsRepo) ListProducts(ctx context.Context) ([]entities.Product, error) {
	query, args := r.qb.Select("id", "title", "description", "price", "category", "image", "image_url", "in_stock", "created_at").
		From("products").
		Where(sq.Eq{"in_stock": true}).
		OrderBy("created_at DESC").
		MustSql()

	var rows []Product
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select products: %w", err)
	}

	products := make([]entities.Product, 0, len(rows))
	for _, p := range rows {
		products = append(products, ProductToEntity(p))
	}
	return products, nil
}

func (r *productsRepo) GetProductByID(ctx context.Context, id string) (entities.Product, error) {
	query, args := r.qb.Select("id", "title", "description", "price", "category", "image", "image_url", "in_stock", "created_at").
		From("products").
		Where(sq.Eq{"id": id}).
		MustSql()

	var row Product
	err := r.getContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Product{}, entities.ErrProductNotFound
	}
	if err != nil {
		return entities.Product{}, fmt.Errorf("failed to get product: %w", err)
	}
	return ProductToEntity(row), nil
}

func (r *productsRepo) CreateProduct(ctx context.Context, p entities.Product) (entities.Product, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()

	query, args := r.qb.Insert("products").
		Columns("id", "title", "description", "price", "category", "image", "image_url", "in_stock", "created_at").
		Values(p.ID, p.Title, p.Description, p.Price, nullString(p.Category),
			nullString(p.Image), nullString(p.ImageURL), p.InStock, p.CreatedAt).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return entities.Product{}, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

func (r *productsRepo) UpdateProduct(ctx context.Context, p entities.Product) (entities.Product, error) {
	query, args := r.qb.Update("products").
		Set("title", p.Title).
		Set("description", p.Description).
		Set("price", p.Price).
		Set("category", nullString(p.Category)).
		Set("image", nullString(p.Image)).
		Set("image_url", nullString(p.ImageURL)).
		Set("in_stock", p.InStock).
		Where(sq.Eq{"id": p.ID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return entities.Product{}, fmt.Errorf("failed to update product: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entities.Product{}, entities.ErrProductNotFound
	}
	return r.GetProductByID(ctx, p.ID)
}

func (r *productsRepo) DeleteProduct(ctx context.Context, id string) error {
	query, args := r.qb.Delete("products").Where(sq.Eq{"id": id}).MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entities.ErrProductNotFound
	}
	return nil
}
