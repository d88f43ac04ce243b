package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ewhitley/cartkeeper/internal/model"
	"github.com/ewhitley/cartkeeper/internal/store"
	ws "github.com/ewhitley/cartkeeper/internal/websocket"
)

type HistoryHandler struct {
	purchases *store.PurchaseStore
	hub       *ws.Hub
	logger    *slog.Logger
}

func NewHistoryHandler(purchases *store.PurchaseStore, hub *ws.Hub, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{purchases: purchases, hub: hub, logger: logger}
}

type recordPurchaseRequest struct {
	UserID   int64  `json:"user_id"`
	ItemName string `json:"item_name"`
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := parsePathInt(r, "userId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}

	entries, err := h.purchases.ListByUser(userID)
	if err != nil {
		h.logger.Error("list history", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Database error"})
		return
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// Record logs a quick-buy purchase straight into the history, bypassing the
// pending list entirely.
func (h *HistoryHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req recordPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.ItemName = strings.TrimSpace(req.ItemName)
	if req.UserID <= 0 || req.ItemName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_id and item_name are required"})
		return
	}

	id, err := h.purchases.Record(req.UserID, req.ItemName)
	if errors.Is(err, store.ErrAccountMissing) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("User %d does not exist", req.UserID),
		})
		return
	}
	if err != nil {
		h.logger.Error("record purchase", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Database error while recording purchase"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("purchase", "recorded", id, req.UserID))
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Purchase recorded successfully",
		"id":      id,
	})
}
