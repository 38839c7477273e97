// Package api serves the formatter over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"mirrow/internal/formatter"
	"mirrow/internal/model"
	"mirrow/internal/observability"
	"mirrow/internal/repository"
)

const maxBodyBytes = 1 << 20

type Formatter interface {
	Format(ctx context.Context, rawDescription, title string) formatter.FormattedProductData
	Short(ctx context.Context, rawDescription, title string, maxLength int) string
}

type ProductStore interface {
	Get(ctx context.Context, productID string) (model.FormattedProduct, error)
}

type FormatRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	MaxLength   int    `json:"maxLength,omitempty"`
}

type ShortResponse struct {
	ShortDescription string `json:"shortDescription"`
}

type ProductResponse struct {
	ProductID string                         `json:"productId"`
	Title     string                         `json:"title"`
	UpdatedAt time.Time                      `json:"updatedAt"`
	Data      formatter.FormattedProductData `json:"data"`
}

type Handler struct {
	Formatter Formatter
	Products  ProductStore
	Logger    *zap.Logger
}

// Routes builds the router. Products may be nil, in which case the product
// lookup route is not mounted.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", observability.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/format", h.handleFormat)
		r.Post("/format/short", h.handleShort)
		if h.Products != nil {
			r.Get("/products/{id}/formatted", h.handleProduct)
		}
	})
	return r
}

func (h *Handler) handleFormat(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.Formatter.Format(r.Context(), req.Description, req.Title))
}

func (h *Handler) handleShort(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	short := h.Formatter.Short(r.Context(), req.Description, req.Title, req.MaxLength)
	writeJSON(w, http.StatusOK, ShortResponse{ShortDescription: short})
}

func (h *Handler) handleProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.Products.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		h.logger().Error("[API] product lookup failed", zap.String("product_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, ProductResponse{
		ProductID: p.ProductID,
		Title:     p.Title,
		UpdatedAt: p.UpdatedAt,
		Data:      p.Data,
	})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (FormatRequest, bool) {
	var req FormatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return FormatRequest{}, false
	}
	return req, true
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger().Debug("[API] request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

func (h *Handler) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
