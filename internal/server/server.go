// Package server exposes the MindVerse HTTP API: registration and login,
// document upload and question answering, assistant chat, and transcript
// analysis.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"mindverse/config"
	"mindverse/internal/adapter/userstore"
	"mindverse/internal/auth"
	"mindverse/internal/port"
	"mindverse/internal/usecase"
)

type Server struct {
	cfg     config.ServerConfig
	logger  *slog.Logger
	users   *userstore.Store
	tokens  *auth.TokenManager
	extract port.Extractor
	ingest  *usecase.IngestUseCase
	query   *usecase.QueryUseCase
	analyze *usecase.AnalyzeUseCase
	chat    *usecase.ChatUseCase
}

type Deps struct {
	Users     *userstore.Store
	Tokens    *auth.TokenManager
	Extractor port.Extractor
	Ingest    *usecase.IngestUseCase
	Query     *usecase.QueryUseCase
	Analyze   *usecase.AnalyzeUseCase
	Chat      *usecase.ChatUseCase
}

func New(cfg config.ServerConfig, logger *slog.Logger, deps Deps) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:     cfg,
		logger:  logger,
		users:   deps.Users,
		tokens:  deps.Tokens,
		extract: deps.Extractor,
		ingest:  deps.Ingest,
		query:   deps.Query,
		analyze: deps.Analyze,
		chat:    deps.Chat,
	}
}

// Handler builds the routed and middleware-wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.Handle("GET /api/user", s.requireAuth(s.handleCurrentUser))
	mux.Handle("POST /api/logout", s.requireAuth(s.handleLogout))
	mux.Handle("PUT /api/user/profile", s.requireAuth(s.handleUpdateProfile))

	mux.Handle("POST /api/sessions", s.requireAuth(s.handleCreateSession))
	mux.HandleFunc("GET /api/users/{id}/sessions", s.handleUserSessions)

	mux.HandleFunc("POST /api/upload-document", s.handleUpload)
	mux.HandleFunc("POST /api/ask-question", s.handleAsk)

	mux.Handle("POST /api/chat", s.requireAuth(s.handleChat))
	mux.HandleFunc("POST /api/analyze-transcript", s.handleAnalyzeTranscript)

	return Chain(mux,
		Recover(s.logger),
		Logger(s.logger),
		CORS(s.cfg.CORSOrigin),
	)
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api server starting", "port", s.cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "MindVerse API is running"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
