package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/TactasRNG_Go/internal/catalog"
	"github.com/osse101/TactasRNG_Go/internal/gacha"
	"github.com/osse101/TactasRNG_Go/internal/handler"
	"github.com/osse101/TactasRNG_Go/internal/logger"
	"github.com/osse101/TactasRNG_Go/internal/metrics"
	"github.com/osse101/TactasRNG_Go/internal/sse"
)

// Server is the HTTP API
type Server struct {
	httpServer *http.Server
}

// NewServer wires the routes and middleware
func NewServer(port int, apiKey string, trustedProxies []string, db handler.Pinger, gachaSvc gacha.Service, catalogSvc catalog.Service, hub *sse.Hub) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(apiKey, trustedProxies, db, gachaSvc, catalogSvc, hub),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the chi router. Middleware runs outermost first.
func NewRouter(apiKey string, trustedProxies []string, db handler.Pinger, gachaSvc gacha.Service, catalogSvc catalog.Service, hub *sse.Hub) http.Handler {
	r := chi.NewRouter()

	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(RateLimitMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(db))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	gachaHandler := handler.NewGachaHandler(gachaSvc)
	itemHandler := handler.NewItemHandler(catalogSvc)
	adminHandler := handler.NewAdminHandler(gachaSvc)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/pull", gachaHandler.HandlePull)
		r.Get("/inventory", gachaHandler.HandleInventory)
		r.Get("/achievements", gachaHandler.HandleAchievements)
		r.Get("/stats", gachaHandler.HandleStats)
		r.Get("/leaderboard", gachaHandler.HandleLeaderboard)

		r.Route("/rewards", func(r chi.Router) {
			r.Post("/daily", gachaHandler.HandleClaimDaily)
			r.Post("/weekly", gachaHandler.HandleClaimWeekly)
			r.Get("/streak", gachaHandler.HandleStreak)
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", itemHandler.HandleListItems)
			r.Get("/search", itemHandler.HandleSearchItems)
			r.Get("/{name}", itemHandler.HandleGetItem)
		})

		if hub != nil {
			r.Get("/events", sse.Handler(hub))
		}

		r.Route("/admin", func(r chi.Router) {
			r.Route("/items", func(r chi.Router) {
				r.Post("/", adminHandler.HandleAddItem)
				r.Delete("/{name}", adminHandler.HandleRemoveItem)
				r.Put("/{name}/rarity", adminHandler.HandleSetRarity)
				r.Put("/{name}/description", adminHandler.HandleSetDescription)
				r.Put("/{name}/image", adminHandler.HandleSetImage)
			})
			r.Post("/give", adminHandler.HandleGiveItem)
			r.Post("/pulls", adminHandler.HandleSetPulls)
			r.Get("/users", adminHandler.HandleListUsers)
			r.Get("/users/{id}/inventory", adminHandler.HandleUserInventory)
			r.Post("/reset", adminHandler.HandleReset)
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush keeps SSE streaming through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start serves until Stop is called
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
