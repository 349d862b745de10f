package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"mindverse/internal/domain"
	"mindverse/internal/usecase"
)

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := s.chat.Reply(r.Context(), req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidConfiguration) {
			writeError(w, http.StatusBadRequest, "message is required")
			return
		}
		s.logger.Error("chat reply failed", "err", err)
		writeError(w, http.StatusBadGateway, "assistant is unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"response": reply})
}

// analyzeRequest accepts the transcript either as raw text with speaker
// prefixes or as an already-structured list of utterances.
type analyzeRequest struct {
	Transcript json.RawMessage `json:"transcript"`
}

func (s *Server) handleAnalyzeTranscript(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Transcript) == 0 {
		writeError(w, http.StatusBadRequest, "transcript is required")
		return
	}

	transcript, err := decodeTranscript(req.Transcript)
	if err != nil {
		writeError(w, http.StatusBadRequest, "transcript must be a string or a list of utterances")
		return
	}

	analysis, err := s.analyze.Analyze(r.Context(), transcript)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidConfiguration) {
			writeError(w, http.StatusBadRequest, "transcript is empty")
			return
		}
		s.logger.Error("transcript analysis failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to analyze transcript")
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

func decodeTranscript(raw json.RawMessage) ([]domain.Utterance, error) {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return usecase.ParseTranscript(text), nil
	}

	var utterances []domain.Utterance
	if err := json.Unmarshal(raw, &utterances); err != nil {
		return nil, err
	}
	return utterances, nil
}
