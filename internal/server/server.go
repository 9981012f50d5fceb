package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"commendai/internal/config"
	"commendai/internal/handlers"
	"commendai/internal/logger"

	_ "commendai/docs" // Import generated docs

	"github.com/google/uuid"
	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const requestIDHeader = "X-Request-ID"

type Server struct {
	config         *config.Config
	commentHandler *handlers.CommentHandler
	systemHandler  *handlers.SystemHandler
	httpServer     *http.Server
	logger         *slog.Logger
}

func New(config *config.Config, commentHandler *handlers.CommentHandler, systemHandler *handlers.SystemHandler, logger *slog.Logger) *Server {
	return &Server{
		config:         config,
		commentHandler: commentHandler,
		systemHandler:  systemHandler,
		logger:         logger,
	}
}

// Handler builds the router with its middleware chain.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.systemHandler.HealthCheck).Methods(http.MethodGet)

	// API Documentation routes
	r.Handle("/docs", http.RedirectHandler("/swagger/index.html", http.StatusMovedPermanently))
	r.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/generate_comment", s.commentHandler.HandleGenerate)
	api.HandleFunc("/post_comment", s.commentHandler.HandlePost)
	api.HandleFunc("/history", s.commentHandler.HandleHistory)
	api.HandleFunc("/languages", s.systemHandler.Languages)
	api.HandleFunc("/config-status", s.systemHandler.ConfigStatus)

	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(s.config.AllowedOrigins),
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Accept-Language", "X-User-ID", requestIDHeader}),
		gorillahandlers.ExposedHeaders([]string{requestIDHeader}),
		gorillahandlers.AllowCredentials(),
	)
	recovery := gorillahandlers.RecoveryHandler(
		gorillahandlers.RecoveryLogger(recoveryLogger{s.logger}),
	)

	return s.loggingMiddleware(recovery(cors(r)))
}

// Start serves until SIGINT or SIGTERM, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: s.writeTimeout(),
		IdleTimeout:  120 * time.Second,
	}

	s.logger.Info("Starting HTTP server", "port", s.config.Port, "addr", s.httpServer.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		s.logger.Error("HTTP server failed", "error", err)
		return err
	case <-ctx.Done():
	}
	s.logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
		return err
	}

	s.logger.Info("Server stopped")
	return nil
}

// writeTimeout leaves room for a full generation: the YouTube reads, a
// summary call and the comment call.
func (s *Server) writeTimeout() time.Duration {
	return 3*s.config.RequestTimeout + 2*s.config.ModelTimeout + 10*time.Second
}

// loggingMiddleware tags the request with an id and logs it
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		// Add configured logger to request context
		ctx := logger.WithLogger(r.Context(), s.logger)
		ctx = logger.WithRequestID(ctx, requestID)
		r = r.WithContext(ctx)

		// Create a custom ResponseWriter to capture status code
		ww := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(ww, r)

		logger.FromContext(ctx).InfoContext(ctx, "HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.statusCode,
			"duration", time.Since(start),
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.statusCode == 0 {
		rw.statusCode = code
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.statusCode == 0 {
		rw.statusCode = http.StatusOK
	}
	return rw.ResponseWriter.Write(b)
}

// recoveryLogger sends recovered panics to slog.
type recoveryLogger struct {
	logger *slog.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.logger.Error("Recovered from panic", "panic", v)
}
