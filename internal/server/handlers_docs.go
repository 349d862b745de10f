package server

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"mindverse/internal/adapter/extractor"
)

type askRequest struct {
	DocumentID string `json:"document_id"`
	Question   string `json:"question"`
	TopK       int    `json:"top_k,omitempty"`
}

// handleUpload accepts a multipart document upload, saves the file, extracts
// its text, and ingests it under its filename. The document is queryable as
// soon as this returns success.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file part")
		return
	}
	defer file.Close()

	filename := filepath.Base(header.Filename)
	if filename == "" || filename == "." {
		writeError(w, http.StatusBadRequest, "no selected file")
		return
	}
	if !extractor.Supported(filename) {
		writeError(w, http.StatusBadRequest, "invalid file type, please upload a PDF, TXT, or MD file")
		return
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0755); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to prepare upload directory")
		return
	}
	path := filepath.Join(s.cfg.UploadDir, filename)
	if err := saveUpload(file, path); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save file")
		return
	}

	text, err := s.extract.Extract(path)
	if err != nil {
		s.logger.Error("text extraction failed", "file", filename, "err", err)
		writeError(w, http.StatusUnprocessableEntity, "failed to extract text from document")
		return
	}

	doc, err := s.ingest.Ingest(r.Context(), filename, text, path)
	if err != nil {
		s.logger.Error("ingestion failed", "document", filename, "err", err)
		writeCoreError(w, err)
		return
	}

	s.logger.Info("document ingested", "document", filename, "chunks", len(doc.Chunks))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Document uploaded and processed successfully",
		"document_id": doc.ID,
		"chunks":      len(doc.Chunks),
	})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DocumentID == "" || req.Question == "" {
		writeError(w, http.StatusBadRequest, "missing question or document_id")
		return
	}

	answer, err := s.query.Answer(r.Context(), req.DocumentID, req.Question, req.TopK)
	if err != nil {
		s.logger.Error("query failed", "document", req.DocumentID, "err", err)
		writeCoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func saveUpload(src multipart.File, path string) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	return err
}
