package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bunaihills/shop-service/internal/entities"
	"github.com/bunaihills/shop-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type BlogRepo interface {
	ListPosts(ctx context.Context) ([]entities.BlogPost, error)
	GetPostByID(ctx context.Context, id string) (entities.BlogPost, error)
	CreatePost(ctx context.Context, b entities.BlogPost) (entities.BlogPost, error)
	UpdatePost(ctx context.Context, b entities.BlogPost) (entities.BlogPost, error)
	DeletePost(ctx context.Context, id string) error
}

type BlogHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	repo     BlogRepo
}

func NewBlogHandler(logger *slog.Logger, repo BlogRepo) *BlogHandler {
	return &BlogHandler{
		logger:   logger.With(slog.String("handler", "blog")),
		validate: validator.New(),
		repo:     repo,
	}
}

func (h *BlogHandler) Init(r chi.Router) {
	r.Route("/blog", func(r chi.Router) {
		r.Get("/", h.ListPosts)
		r.Get("/{id}", h.GetPost)
		r.Post("/", h.CreatePost)
		r.Put("/{id}", h.UpdatePost)
		r.Delete("/{id}", h.DeletePost)
	})
}

func (h *BlogHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	posts, err := h.repo.ListPosts(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list blog posts", slog.Any("error", err))
		utils.WriteError(w, "Error fetching blog posts", http.StatusInternalServerError)
		return
	}

	out := make([]BlogPost, 0, len(posts))
	for _, b := range posts {
		out = append(out, BlogPostEntityToJSON(b))
	}
	utils.WriteJSON(w, out, http.StatusOK)
}

func (h *BlogHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	post, err := h.repo.GetPostByID(ctx, id)
	if errors.Is(err, entities.ErrBlogPostNotFound) {
		utils.WriteError(w, "Blog post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get blog post", slog.Any("error", err))
		utils.WriteError(w, "Error fetching blog post", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, BlogPostEntityToJSON(post), http.StatusOK)
}

func (h *BlogHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := h.decodePost(r)
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.repo.CreatePost(ctx, blogRequestToEntity(req, ""))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create blog post", slog.Any("error", err))
		utils.WriteError(w, "Error creating blog post", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, BlogPostEntityToJSON(created), http.StatusCreated)
}

func (h *BlogHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	req, err := h.decodePost(r)
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.repo.UpdatePost(ctx, blogRequestToEntity(req, id))
	if errors.Is(err, entities.ErrBlogPostNotFound) {
		utils.WriteError(w, "Blog post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update blog post", slog.Any("error", err))
		utils.WriteError(w, "Error updating blog post", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, BlogPostEntityToJSON(updated), http.StatusOK)
}

func (h *BlogHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	err := h.repo.DeletePost(ctx, id)
	if errors.Is(err, entities.ErrBlogPostNotFound) {
		utils.WriteError(w, "Blog post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete blog post", slog.Any("error", err))
		utils.WriteError(w, "Error deleting blog post", http.StatusInternalServerError)
		return
	}

	utils.WriteMessage(w, "Blog post deleted successfully", http.StatusOK)
}

func (h *BlogHandler) decodePost(r *http.Request) (BlogPostRequest, error) {
	var req BlogPostRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		return BlogPostRequest{}, errors.New("invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return BlogPostRequest{}, errors.New("title, excerpt, content, author, category and readTime are required")
	}
	return req, nil
}

func blogRequestToEntity(req BlogPostRequest, id string) entities.BlogPost {
	published := true
	if req.Published != nil {
		published = *req.Published
	}
	return entities.BlogPost{
		ID:        id,
		Title:     req.Title,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Author:    req.Author,
		Category:  req.Category,
		ReadTime:  req.ReadTime,
		Tags:      req.Tags,
		Image:     req.Image,
		ImageURL:  req.ImageURL,
		Published: published,
	}
}
