package handler

import (
	"net/http"

	"github.com/bunaihills/shop-service/pkg/utils"

	"github.com/go-chi/chi/v5"
)

type HealthHandler struct {
	shopName string
}

func NewHealthHandler(shopName string) *HealthHandler {
	return &HealthHandler{shopName: shopName}
}

func (h *HealthHandler) Init(r chi.Router) {
	r.Get("/", h.Health)
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteMessage(w, h.shopName+" API running", http.StatusOK)
}
