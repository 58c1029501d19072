package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyageai/recommender-backend/internal/api/handlers"
	"github.com/voyageai/recommender-backend/internal/domain/entities"
	apperrors "github.com/voyageai/recommender-backend/pkg/errors"
)

type stubRecommendationService struct {
	recommendations []entities.Recommendation
	stats           *entities.UserStats
	users           []int
	err             error

	lastUserID int
	lastTopK   int
	refreshed  bool
}

func (s *stubRecommendationService) Recommend(ctx context.Context, userID, topK int) ([]entities.Recommendation, error) {
	s.lastUserID = userID
	s.lastTopK = topK
	if s.err != nil {
		return nil, s.err
	}
	return s.recommendations, nil
}

func (s *stubRecommendationService) UserStats(ctx context.Context, userID int) (*entities.UserStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.stats, nil
}

func (s *stubRecommendationService) ListUsers(ctx context.Context) ([]int, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users, nil
}

func (s *stubRecommendationService) Refresh(ctx context.Context) error {
	s.refreshed = true
	return s.err
}

func getRecommendations(handler *handlers.RecommendationHandler, target, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", target, nil)
	req.SetPathValue("id", userID)
	w := httptest.NewRecorder()
	handler.GetRecommendations(w, req)
	return w
}

func TestRecommendationHandler_GetRecommendations(t *testing.T) {
	service := &stubRecommendationService{
		recommendations: []entities.Recommendation{
			{AttractionID: 101, Attraction: "Bar Beach", CityName: "Lagos", Country: "Nigeria", AttractionType: "Beach", Score: 0.91},
			{AttractionID: 102, Attraction: "Orsay", CityName: "Paris", Country: "France", AttractionType: "Museum", Score: 0.42},
		},
	}
	handler := handlers.NewRecommendationHandler(service, 6, 50)

	w := getRecommendations(handler, "/api/users/7/recommendations", "7")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 7, service.lastUserID)
	assert.Equal(t, 6, service.lastTopK)

	var response struct {
		UserID          int                      `json:"user_id"`
		Count           int                      `json:"count"`
		Recommendations []entities.Recommendation `json:"recommendations"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 7, response.UserID)
	assert.Equal(t, 2, response.Count)
	require.Len(t, response.Recommendations, 2)
	assert.Equal(t, "Bar Beach", response.Recommendations[0].Attraction)
}

func TestRecommendationHandler_GetRecommendations_TopK(t *testing.T) {
	service := &stubRecommendationService{}
	handler := handlers.NewRecommendationHandler(service, 6, 50)

	w := getRecommendations(handler, "/api/users/7/recommendations?top_k=3", "7")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, service.lastTopK)

	// requests above the cap are clamped, not rejected
	w = getRecommendations(handler, "/api/users/7/recommendations?top_k=500", "7")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 50, service.lastTopK)

	w = getRecommendations(handler, "/api/users/7/recommendations?top_k=0", "7")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = getRecommendations(handler, "/api/users/7/recommendations?top_k=six", "7")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendationHandler_GetRecommendations_UnknownUser(t *testing.T) {
	service := &stubRecommendationService{err: apperrors.NewUnknownUserError(999)}
	handler := handlers.NewRecommendationHandler(service, 6, 50)

	w := getRecommendations(handler, "/api/users/999/recommendations", "999")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Contains(t, response["error"], "999")
}

func TestRecommendationHandler_GetRecommendations_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"snapshot not loaded", apperrors.NewDataAccessError("historical snapshot not loaded", nil), http.StatusServiceUnavailable},
		{"model unavailable", apperrors.NewModelInferenceError("model server unavailable", nil), http.StatusBadGateway},
		{"schema mismatch", apperrors.NewScoringInputError("feature schema is empty"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := handlers.NewRecommendationHandler(&stubRecommendationService{err: tc.err}, 6, 50)
			w := getRecommendations(handler, "/api/users/7/recommendations", "7")
			assert.Equal(t, tc.wantCode, w.Code)
		})
	}
}

func TestRecommendationHandler_GetRecommendations_BadUserID(t *testing.T) {
	handler := handlers.NewRecommendationHandler(&stubRecommendationService{}, 6, 50)

	w := getRecommendations(handler, "/api/users/abc/recommendations", "abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendationHandler_GetUserStats(t *testing.T) {
	service := &stubRecommendationService{stats: &entities.UserStats{
		UserID:       7,
		TripCount:    4,
		AvgRating:    4.25,
		FavoriteType: "Museum",
		FavoriteMode: "Family",
	}}
	handler := handlers.NewRecommendationHandler(service, 6, 50)

	req := httptest.NewRequest("GET", "/api/users/7/stats", nil)
	req.SetPathValue("id", "7")
	w := httptest.NewRecorder()
	handler.GetUserStats(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var stats entities.UserStats
	require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
	assert.Equal(t, 4, stats.TripCount)
	assert.Equal(t, "Museum", stats.FavoriteType)
}

func TestRecommendationHandler_ListUsers(t *testing.T) {
	service := &stubRecommendationService{users: []int{7, 8, 12}}
	handler := handlers.NewRecommendationHandler(service, 6, 50)

	req := httptest.NewRequest("GET", "/api/users", nil)
	w := httptest.NewRecorder()
	handler.ListUsers(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Users []int `json:"users"`
		Count int   `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, []int{7, 8, 12}, response.Users)
	assert.Equal(t, 3, response.Count)
}

func TestRecommendationHandler_RefreshSnapshot(t *testing.T) {
	service := &stubRecommendationService{}
	handler := handlers.NewRecommendationHandler(service, 6, 50)

	req := httptest.NewRequest("POST", "/api/admin/snapshot/refresh", nil)
	w := httptest.NewRecorder()
	handler.RefreshSnapshot(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, service.refreshed)
}
