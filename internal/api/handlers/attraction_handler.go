package handlers

import (
	"context"
	"net/http"

	"github.com/voyageai/recommender-backend/internal/domain/entities"
)

// CatalogService lists the attraction catalog
type CatalogService interface {
	Catalog(ctx context.Context) ([]entities.Attraction, error)
}

// AttractionHandler handles attraction catalog HTTP requests
type AttractionHandler struct {
	service CatalogService
}

// NewAttractionHandler creates a new attraction handler
func NewAttractionHandler(service CatalogService) *AttractionHandler {
	return &AttractionHandler{
		service: service,
	}
}

// ListAttractions handles GET /api/attractions
func (h *AttractionHandler) ListAttractions(w http.ResponseWriter, r *http.Request) {
	attractions, err := h.service.Catalog(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"attractions": attractions,
		"count":       len(attractions),
	})
}
