package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pondside/AnglerBot_Go/internal/database"
	"github.com/pondside/AnglerBot_Go/internal/gacha"
	"github.com/pondside/AnglerBot_Go/internal/handler"
	"github.com/pondside/AnglerBot_Go/internal/inventory"
	"github.com/pondside/AnglerBot_Go/internal/logger"
	"github.com/pondside/AnglerBot_Go/internal/metrics"
)

type Server struct {
	httpServer       *http.Server
	dbPool           database.Pool
	gachaService     gacha.Service
	inventoryService inventory.Service
}

// NewServer creates a new Server instance
func NewServer(port int, dbPool database.Pool, gachaService gacha.Service, inventoryService inventory.Service) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		gachaHandler := handler.NewGachaHandler(gachaService)
		r.Route("/gacha", func(r chi.Router) {
			r.Post("/draw", gachaHandler.HandleDraw)
			r.Get("/pools", gachaHandler.HandleListPools)
			r.Get("/pool/probabilities", gachaHandler.HandleGetPoolProbabilities)
			r.Get("/history", gachaHandler.HandleGetHistory)
		})

		inventoryHandler := handler.NewInventoryHandler(inventoryService)
		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", inventoryHandler.HandleGetInventory)
			r.Get("/value", inventoryHandler.HandleGetInventoryValue)
			r.Get("/instance-value", inventoryHandler.HandleGetInstanceValue)
			r.Get("/titles", inventoryHandler.HandleGetTitles)
			r.Post("/equip", inventoryHandler.HandleEquip)
			r.Post("/sell-fish", inventoryHandler.HandleSellAllFishKeepOne)
			r.Post("/sell-instance", inventoryHandler.HandleSellInstance)
			r.Post("/refine", inventoryHandler.HandleRefine)

			r.Route("/admin", func(r chi.Router) {
				r.Post("/clear-equipment", inventoryHandler.HandleClearEquipment)
			})
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:           dbPool,
		gachaService:     gachaService,
		inventoryService: inventoryService,
	}
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
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
		statusCode:     http.StatusOK, // default status
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

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{"[REDACTED]"}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}
