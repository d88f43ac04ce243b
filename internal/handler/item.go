package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/ewhitley/cartkeeper/internal/model"
	"github.com/ewhitley/cartkeeper/internal/store"
	ws "github.com/ewhitley/cartkeeper/internal/websocket"
)

type ItemHandler struct {
	items     *store.ItemStore
	purchases *store.PurchaseStore
	hub       *ws.Hub
	logger    *slog.Logger
}

func NewItemHandler(items *store.ItemStore, purchases *store.PurchaseStore, hub *ws.Hub, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{items: items, purchases: purchases, hub: hub, logger: logger}
}

type createItemRequest struct {
	UserID   int64  `json:"user_id"`
	ItemName string `json:"item_name"`
	Quantity string `json:"quantity"`
	Notes    string `json:"notes"`
}

// List returns the account's pending items, excluding bought rows and
// quick-buy sentinel rows.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := parsePathInt(r, "userId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}

	items, err := h.items.ListPending(userID)
	if err != nil {
		h.logger.Error("list items", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Database error"})
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.ItemName = strings.TrimSpace(req.ItemName)
	if req.UserID <= 0 || req.ItemName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_id and item_name are required"})
		return
	}

	item, err := h.items.Create(req.UserID, req.ItemName, optional(req.Quantity), optional(req.Notes))
	if err != nil {
		h.logger.Error("create item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Database error"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("item", "added", item.ID, item.UserID))
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Item added successfully",
		"id":      item.ID,
	})
}

// Delete removes a pending item scoped to its owner. A second delete of the
// same item reports not found, never silent success.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, idErr := parsePathInt(r, "id")
	userID, uidErr := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if idErr != nil || uidErr != nil || id <= 0 || userID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"ok":    false,
			"error": "Both id (param) and userId (query) are required",
		})
		return
	}

	err := h.items.Delete(id, userID)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"ok":    false,
			"error": "Item not found (wrong id or userId)",
		})
		return
	}
	if err != nil {
		h.logger.Error("delete item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"ok":    false,
			"error": "Database error while deleting item",
		})
		return
	}

	h.hub.Broadcast(ws.NewMessage("item", "deleted", id, userID))
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"message": "Item deleted successfully",
	})
}

// Complete moves a pending item into the purchase log in one atomic unit.
func (h *ItemHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, idErr := parsePathInt(r, "id")

	var req struct {
		UserID int64 `json:"user_id"`
	}
	json.NewDecoder(r.Body).Decode(&req)
	userID := req.UserID
	if userID == 0 {
		userID, _ = strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	}

	if idErr != nil || id <= 0 || userID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"ok":    false,
			"error": "Invalid or missing item id / userId",
		})
		return
	}

	itemName, err := h.purchases.Complete(id, userID)
	switch {
	case errors.Is(err, store.ErrAccountMissing):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"ok":    false,
			"error": fmt.Sprintf("User %d does not exist", userID),
		})
		return
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{
			"ok":    false,
			"error": "Item not found for this user",
		})
		return
	case errors.Is(err, store.ErrConflict):
		writeJSON(w, http.StatusConflict, map[string]any{
			"ok":    false,
			"error": "Item was completed or deleted by another request",
		})
		return
	case err != nil:
		h.logger.Error("complete item", "error", err, "item_id", id, "user_id", userID)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"ok":    false,
			"error": "Database error during item completion",
		})
		return
	}

	h.logger.Info("item completed", "item_id", id, "user_id", userID, "item_name", itemName)
	h.hub.Broadcast(ws.NewMessage("item", "completed", id, userID))
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"message": "Item completed and moved to history",
	})
}

// optional converts a trimmed form value into a nullable column value.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func parsePathInt(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(r.PathValue(key), 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
