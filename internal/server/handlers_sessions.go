package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"mindverse/internal/domain"
)

type createSessionRequest struct {
	SessionType string `json:"session_type"`
	Duration    int    `json:"duration"`
	Notes       string `json:"notes"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SessionType == "" {
		writeError(w, http.StatusBadRequest, "session_type is required")
		return
	}

	sess := domain.TherapySession{
		ID:          uuid.NewString(),
		UserID:      UserID(r),
		SessionType: req.SessionType,
		Duration:    req.Duration,
		Notes:       req.Notes,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.users.CreateSession(sess); err != nil {
		s.logger.Error("session create failed", "user", sess.UserID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleUserSessions(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	sessions, err := s.users.SessionsByUser(userID)
	if err != nil {
		s.logger.Error("session lookup failed", "user", userID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load sessions")
		return
	}
	if sessions == nil {
		sessions = []domain.TherapySession{}
	}

	writeJSON(w, http.StatusOK, sessions)
}
