package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ewhitley/cartkeeper/internal/handler"
	"github.com/ewhitley/cartkeeper/internal/middleware"
	"github.com/ewhitley/cartkeeper/internal/store"
	ws "github.com/ewhitley/cartkeeper/internal/websocket"
)

type Server struct {
	db          *sql.DB
	hub         *ws.Hub
	authH       *handler.AuthHandler
	itemH       *handler.ItemHandler
	historyH    *handler.HistoryHandler
	recH        *handler.RecommendationHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(db *sql.DB, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	accountStore := store.NewAccountStore(db)
	itemStore := store.NewItemStore(db)
	purchaseStore := store.NewPurchaseStore(db)
	recommendationStore := store.NewRecommendationStore(db)

	return &Server{
		db:          db,
		hub:         hub,
		authH:       handler.NewAuthHandler(accountStore, logger.With("component", "auth")),
		itemH:       handler.NewItemHandler(itemStore, purchaseStore, hub, logger.With("component", "item")),
		historyH:    handler.NewHistoryHandler(purchaseStore, hub, logger.With("component", "history")),
		recH:        handler.NewRecommendationHandler(recommendationStore, logger.With("component", "recommendation")),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/static/login.html", http.StatusFound)
	})
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /api/test-db", s.testDBHandler)

	// Credential endpoints are rate-limited by client IP
	mux.HandleFunc("POST /api/login", s.rateLimitedHandler(s.authH.Login))
	mux.HandleFunc("POST /api/register", s.rateLimitedHandler(s.authH.Register))

	mux.HandleFunc("GET /api/items/{userId}", s.itemH.List)
	mux.HandleFunc("POST /api/items", s.itemH.Create)
	mux.HandleFunc("DELETE /api/items/{id}", s.itemH.Delete)
	mux.HandleFunc("POST /api/items/{id}/complete", s.itemH.Complete)

	mux.HandleFunc("GET /api/history/{userId}", s.historyH.List)
	mux.HandleFunc("POST /api/history", s.historyH.Record)

	mux.HandleFunc("GET /api/recommendations/{userId}", s.recH.Get)

	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) testDBHandler(w http.ResponseWriter, r *http.Request) {
	var now string
	if err := s.db.QueryRow(`SELECT datetime('now')`).Scan(&now); err != nil {
		s.logger.Error("db probe", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{"connected": false, "error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"connected": true, "time": now})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}
