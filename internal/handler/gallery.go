package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bunaihills/shop-service/internal/entities"
	"github.com/bunaihills/shop-service/pkg/utils"

	"github.com/go-chi/chi/v5"
)

type GalleryRepo interface {
	ListImages(ctx context.Context) ([]entities.GalleryImage, error)
	CreateImage(ctx context.Context, g entities.GalleryImage) (entities.GalleryImage, error)
	DeleteImage(ctx context.Context, id string) error
}

type GalleryHandler struct {
	logger   *slog.Logger
	repo     GalleryRepo
	uploader Uploader
}

func NewGalleryHandler(logger *slog.Logger, repo GalleryRepo, uploader Uploader) *GalleryHandler {
	return &GalleryHandler{
		logger:   logger.With(slog.String("handler", "gallery")),
		repo:     repo,
		uploader: uploader,
	}
}

func (h *GalleryHandler) Init(r chi.Router) {
	r.Route("/gallery", func(r chi.Router) {
		r.Get("/", h.ListImages)
		r.Post("/", h.CreateImage)
		r.Delete("/{id}", h.DeleteImage)
	})
}

func (h *GalleryHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	images, err := h.repo.ListImages(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list gallery images", slog.Any("error", err))
		utils.WriteError(w, "Error fetching gallery", http.StatusInternalServerError)
		return
	}

	out := make([]GalleryImage, 0, len(images))
	for _, g := range images {
		out = append(out, GalleryImageEntityToJSON(g))
	}
	utils.WriteJSON(w, out, http.StatusOK)
}

func (h *GalleryHandler) CreateImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.WriteError(w, "invalid form data", http.StatusBadRequest)
		return
	}

	image := entities.GalleryImage{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
	}

	if file, _, err := r.FormFile("image"); err == nil {
		defer file.Close()
		if h.uploader.Configured() {
			url, err := h.uploader.Upload(ctx, file, "gallery")
			if err != nil {
				h.logger.ErrorContext(ctx, "gallery image upload failed", slog.Any("error", err))
				utils.WriteError(w, "Error uploading image", http.StatusInternalServerError)
				return
			}
			image.ImageURL = url
		}
	}

	created, err := h.repo.CreateImage(ctx, image)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create gallery image", slog.Any("error", err))
		utils.WriteError(w, "Error creating gallery image", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, GalleryImageEntityToJSON(created), http.StatusCreated)
}

func (h *GalleryHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	err := h.repo.DeleteImage(ctx, id)
	if errors.Is(err, entities.ErrGalleryNotFound) {
		utils.WriteError(w, "Gallery image not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete gallery image", slog.Any("error", err))
		utils.WriteError(w, "Error deleting gallery image", http.StatusInternalServerError)
		return
	}

	utils.WriteMessage(w, "Gallery image deleted successfully", http.StatusOK)
}
