package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/voyageai/recommender-backend/internal/domain/entities"
	apperrors "github.com/voyageai/recommender-backend/pkg/errors"
)

// RecommendationService is the application surface the HTTP layer depends on
type RecommendationService interface {
	Recommend(ctx context.Context, userID, topK int) ([]entities.Recommendation, error)
	UserStats(ctx context.Context, userID int) (*entities.UserStats, error)
	ListUsers(ctx context.Context) ([]int, error)
	Refresh(ctx context.Context) error
}

// RecommendationHandler handles user and recommendation HTTP requests
type RecommendationHandler struct {
	service     RecommendationService
	defaultTopK int
	maxTopK     int
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(service RecommendationService, defaultTopK, maxTopK int) *RecommendationHandler {
	return &RecommendationHandler{
		service:     service,
		defaultTopK: defaultTopK,
		maxTopK:     maxTopK,
	}
}

// ListUsers handles GET /api/users
func (h *RecommendationHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"count": len(users),
	})
}

// GetUserStats handles GET /api/users/{id}/stats
func (h *RecommendationHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	stats, err := h.service.UserStats(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// GetRecommendations handles GET /api/users/{id}/recommendations
func (h *RecommendationHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	topK := h.defaultTopK
	if raw := r.URL.Query().Get("top_k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondWithError(w, http.StatusBadRequest, "top_k must be a positive integer")
			return
		}
		topK = parsed
	}
	if topK > h.maxTopK {
		topK = h.maxTopK
	}

	recommendations, err := h.service.Recommend(r.Context(), userID, topK)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":         userID,
		"count":           len(recommendations),
		"recommendations": recommendations,
	})
}

// RefreshSnapshot handles POST /api/admin/snapshot/refresh
func (h *RecommendationHandler) RefreshSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Refresh(r.Context()); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status": "refreshed",
	})
}

func parseUserID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.PathValue("id")
	userID, err := strconv.Atoi(raw)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "user ID must be an integer")
		return 0, false
	}
	return userID, true
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeUnknownUser, apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeDataAccess:
			respondWithError(w, http.StatusServiceUnavailable, appErr.Message)
		case apperrors.ErrorTypeModelInference:
			respondWithError(w, http.StatusBadGateway, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
