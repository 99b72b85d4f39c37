package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/bunaihills/shop-service/internal/entities"
	"github.com/bunaihills/shop-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const maxUploadSize = 10 << 20 // matches the original 10mb body limit

type ProductRepo interface {
	ListProducts(ctx context.Context) ([]entities.Product, error)
	GetProductByID(ctx context.Context, id string) (entities.Product, error)
	CreateProduct(ctx context.Context, p entities.Product) (entities.Product, error)
	UpdateProduct(ctx context.Context, p entities.Product) (entities.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// Uploader is the image host collaborator. An unconfigured uploader
// skips the upload and leaves the image URL empty.
type Uploader interface {
	Configured() bool
	Upload(ctx context.Context, file io.Reader, folder string) (string, error)
}

type ProductsHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	repo     ProductRepo
	uploader Uploader
}

func NewProductsHandler(logger *slog.Logger, repo ProductRepo, uploader Uploader) *ProductsHandler {
	return &ProductsHandler{
		logger:   logger.With(slog.String("handler", "products")),
		validate: validator.New(),
		repo:     repo,
		uploader: uploader,
	}
}

func (h *ProductsHandler) Init(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/{id}", h.GetProduct)
		r.Post("/", h.CreateProduct)
		r.Put("/{id}", h.UpdateProduct)
		r.Delete("/{id}", h.DeleteProduct)
	})
}

func (h *ProductsHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.repo.ListProducts(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list products", slog.Any("error", err))
		utils.WriteError(w, "Error fetching products", http.StatusInternalServerError)
		return
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, ProductEntityToJSON(p))
	}
	utils.WriteJSON(w, out, http.StatusOK)
}

func (h *ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	product, err := h.repo.GetProductByID(ctx, id)
	if errors.Is(err, entities.ErrProductNotFound) {
		utils.WriteError(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get product", slog.Any("error", err))
		utils.WriteError(w, "Error fetching product", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, ProductEntityToJSON(product), http.StatusOK)
}

type productForm struct {
	Title       string  `validate:"required"`
	Description string  `validate:"required"`
	Price       float64 `validate:"required,gt=0"`
	Category    string
	InStock     bool
}

func (h *ProductsHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	form, file, err := h.parseProductForm(r)
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	imageURL, err := h.uploadIfPresent(ctx, file, "products")
	if err != nil {
		h.logger.ErrorContext(ctx, "product image upload failed", slog.Any("error", err))
		utils.WriteError(w, "Error creating product", http.StatusInternalServerError)
		return
	}

	product, err := h.repo.CreateProduct(ctx, entities.Product{
		Title:       form.Title,
		Description: form.Description,
		Price:       form.Price,
		Category:    form.Category,
		InStock:     form.InStock,
		ImageURL:    imageURL,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create product", slog.Any("error", err))
		utils.WriteError(w, "Error creating product", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, ProductEntityToJSON(product), http.StatusCreated)
}

func (h *ProductsHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	form, file, err := h.parseProductForm(r)
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	existing, err := h.repo.GetProductByID(ctx, id)
	if errors.Is(err, entities.ErrProductNotFound) {
		utils.WriteError(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get product", slog.Any("error", err))
		utils.WriteError(w, "Error updating product", http.StatusInternalServerError)
		return
	}

	imageURL, err := h.uploadIfPresent(ctx, file, "products")
	if err != nil {
		h.logger.ErrorContext(ctx, "product image upload failed", slog.Any("error", err))
		utils.WriteError(w, "Error updating product", http.StatusInternalServerError)
		return
	}
	if imageURL == "" {
		imageURL = existing.ImageURL
	}

	updated, err := h.repo.UpdateProduct(ctx, entities.Product{
		ID:          id,
		Title:       form.Title,
		Description: form.Description,
		Price:       form.Price,
		Category:    form.Category,
		InStock:     form.InStock,
		Image:       existing.Image,
		ImageURL:    imageURL,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update product", slog.Any("error", err))
		utils.WriteError(w, "Error updating product", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, ProductEntityToJSON(updated), http.StatusOK)
}

func (h *ProductsHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	err := h.repo.DeleteProduct(ctx, id)
	if errors.Is(err, entities.ErrProductNotFound) {
		utils.WriteError(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete product", slog.Any("error", err))
		utils.WriteError(w, "Error deleting product", http.StatusInternalServerError)
		return
	}

	utils.WriteMessage(w, "Product deleted successfully", http.StatusOK)
}

func (h *ProductsHandler) parseProductForm(r *http.Request) (productForm, multipart.File, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return productForm{}, nil, errors.New("invalid form data")
	}

	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	inStock := true
	if v := r.FormValue("inStock"); v != "" {
		inStock, _ = strconv.ParseBool(v)
	}

	form := productForm{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Price:       price,
		Category:    r.FormValue("category"),
		InStock:     inStock,
	}
	if err := h.validate.Struct(form); err != nil {
		return productForm{}, nil, errors.New("title, description and price are required")
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		// image is optional
		return form, nil, nil
	}
	return form, file, nil
}

func (h *ProductsHandler) uploadIfPresent(ctx context.Context, file multipart.File, folder string) (string, error) {
	if file == nil {
		return "", nil
	}
	defer file.Close()

	if !h.uploader.Configured() {
		return "", nil
	}
	return h.uploader.Upload(ctx, file, folder)
}
