// Package server exposes the inbound HTTP API: order intake and the
// Telegram webhook.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"lunchbot/internal/order"
	"lunchbot/internal/webhook"
)

// OrderPlacer forwards an order to the reservation service.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, o order.Order) (int64, error)
}

// NotifyFunc triggers the notification pipeline for a placed order. The
// pipeline swallows its own failures; the function has no return value on
// purpose.
type NotifyFunc func(ctx context.Context, id int64, o order.Processed)

// UpdateHandler processes one inbound Telegram update.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, up webhook.Update)
}

type Config struct {
	Addr string
}

type Server struct {
	log      zerolog.Logger
	booking  OrderPlacer
	notifier NotifyFunc
	hook     UpdateHandler
	tier     order.PriceTier

	http *http.Server
}

func New(cfg Config, log zerolog.Logger, placer OrderPlacer, notify NotifyFunc, hook UpdateHandler, tier order.PriceTier) *Server {
	s := &Server{
		log:      log,
		booking:  placer,
		notifier: notify,
		hook:     hook,
		tier:     tier,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/orders", s.handleCreateOrder)
	})
	r.Post("/webhooks/telegram", s.handleTelegramWebhook)

	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 75 * time.Second, // must outlive the handler timeout
	}
	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

func (s *Server) ListenAndServe() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createOrderRequest struct {
	Order order.Order     `json:"order"`
	Menu  []order.DayMenu `json:"menu"`
}

type createOrderResponse struct {
	Success bool   `json:"success"`
	ID      int64  `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// handleCreateOrder forwards the order to the reservation service and then
// fires the notification pipeline. Notification failures never surface
// here: once the reservation succeeded, the customer sees success.
func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, createOrderResponse{Error: "invalid request body"})
		return
	}
	if err := validateOrder(req.Order); err != nil {
		writeJSON(w, http.StatusBadRequest, createOrderResponse{Error: err.Error()})
		return
	}

	id, err := s.booking.PlaceOrder(r.Context(), req.Order)
	if err != nil {
		s.log.Error().Err(err).Msg("reservation failed")
		writeJSON(w, http.StatusBadGateway, createOrderResponse{Error: err.Error()})
		return
	}

	if s.notifier != nil {
		processed := order.Process(req.Order, req.Menu, s.tier)
		s.notifier(r.Context(), id, processed)
	}

	writeJSON(w, http.StatusOK, createOrderResponse{Success: true, ID: id})
}

// validateOrder enforces the upstream order invariants at the boundary, so
// the rendering pipeline never sees a degenerate day.
func validateOrder(o order.Order) error {
	if len(o.Days) == 0 {
		return fmt.Errorf("order has no delivery days")
	}
	for i, d := range o.Days {
		if n := len(d.SelectedDishes); n < 2 || n > 3 {
			return fmt.Errorf("day %d: select 2 or 3 dishes, got %d", i+1, n)
		}
		if d.Quantity < 1 {
			return fmt.Errorf("day %d: quantity must be positive", i+1)
		}
		if d.Date == "" {
			return fmt.Errorf("day %d: date is required", i+1)
		}
	}
	return nil
}

// handleTelegramWebhook always acknowledges: Telegram redelivers updates on
// any non-OK answer, and a broken update is not worth a redelivery storm.
func (s *Server) handleTelegramWebhook(w http.ResponseWriter, r *http.Request) {
	var up webhook.Update
	if err := json.NewDecoder(r.Body).Decode(&up); err != nil {
		s.log.Warn().Err(err).Msg("undecodable webhook payload")
	} else if s.hook != nil {
		s.hook.HandleUpdate(r.Context(), up)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
