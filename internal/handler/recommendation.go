package handler

import (
	"log/slog"
	"net/http"

	"github.com/ewhitley/cartkeeper/internal/model"
	"github.com/ewhitley/cartkeeper/internal/store"
)

type RecommendationHandler struct {
	recommendations *store.RecommendationStore
	logger          *slog.Logger
}

func NewRecommendationHandler(rs *store.RecommendationStore, logger *slog.Logger) *RecommendationHandler {
	return &RecommendationHandler{recommendations: rs, logger: logger}
}

// Get returns up to five co-purchase suggestions for the user. The id must
// parse as a positive integer before the store is touched.
func (h *RecommendationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := parsePathInt(r, "userId")
	if err != nil || userID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
		return
	}

	recs, err := h.recommendations.Recommend(userID)
	if err != nil {
		h.logger.Error("generate recommendations", "error", err, "user_id", userID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to generate recommendations"})
		return
	}
	if recs == nil {
		recs = []model.Recommendation{}
	}
	writeJSON(w, http.StatusOK, recs)
}
