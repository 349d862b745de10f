package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"mindverse/config"
	"mindverse/internal/adapter/cache"
	"mindverse/internal/adapter/chunker"
	"mindverse/internal/adapter/classifier"
	"mindverse/internal/adapter/docstore"
	"mindverse/internal/adapter/embedding"
	"mindverse/internal/adapter/extractor"
	"mindverse/internal/adapter/llm"
	"mindverse/internal/adapter/userstore"
	"mindverse/internal/auth"
	"mindverse/internal/usecase"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	users, err := userstore.Open(filepath.Join(dir, "users.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { users.Close() })

	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	embedder := embedding.NewMockEmbedder(8)
	generator := llm.NewMockClient("The document says hello.")
	store := docstore.New()
	answerCache := cache.NewAnswerCache(10, time.Minute)

	srv := New(
		config.ServerConfig{Port: "0", CORSOrigin: "*", UploadDir: filepath.Join(dir, "uploads")},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		Deps{
			Users:     users,
			Tokens:    tokens,
			Extractor: extractor.New(),
			Ingest:    usecase.NewIngestUseCase(chunker.NewWordChunker(50), embedder, store, answerCache),
			Query:     usecase.NewQueryUseCase(store, embedder, generator, answerCache, 3),
			Analyze:   usecase.NewAnalyzeUseCase(classifier.NewTagger(), generator),
			Chat:      usecase.NewChatUseCase(generator),
		},
	)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body interface{}, token string) (*http.Response, map[string]interface{}) {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil && err != io.EOF {
		t.Fatal(err)
	}
	return resp, decoded
}

func registerUser(t *testing.T, ts *httptest.Server, username, email string) string {
	t.Helper()

	resp, body := postJSON(t, ts.URL+"/api/register", map[string]string{
		"username": username,
		"email":    email,
		"password": "secret123",
	}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register returned %d: %v", resp.StatusCode, body)
	}
	token, _ := body["access_token"].(string)
	if token == "" {
		t.Fatal("register returned no access token")
	}
	return token
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRegisterLoginFlow(t *testing.T) {
	ts := newTestServer(t)

	registerUser(t, ts, "alice", "alice@example.com")

	// Duplicate email is a conflict.
	resp, body := postJSON(t, ts.URL+"/api/register", map[string]string{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "secret123",
	}, "")
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate email: expected 409, got %d: %v", resp.StatusCode, body)
	}

	resp, body = postJSON(t, ts.URL+"/api/login", map[string]string{
		"email":    "alice@example.com",
		"password": "secret123",
	}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login returned %d: %v", resp.StatusCode, body)
	}
	token, _ := body["access_token"].(string)
	if token == "" {
		t.Fatal("login returned no access token")
	}

	// Wrong password is rejected.
	resp, _ = postJSON(t, ts.URL+"/api/login", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	}, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrong password: expected 401, got %d", resp.StatusCode)
	}

	// The token works against a protected route.
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/user", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	userResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer userResp.Body.Close()
	if userResp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 from /api/user, got %d", userResp.StatusCode)
	}
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/api/register", map[string]string{
		"username": "bob",
		"password": "secret123",
	}, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing email: expected 400, got %d", resp.StatusCode)
	}
	if body["field"] != "email" {
		t.Errorf("expected field=email, got %v", body["field"])
	}

	resp, body = postJSON(t, ts.URL+"/api/register", map[string]string{
		"username": "bob",
		"email":    "not-an-email",
		"password": "secret123",
	}, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad email: expected 400, got %d: %v", resp.StatusCode, body)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/user", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", resp.StatusCode)
	}

	badResp, _ := postJSON(t, ts.URL+"/api/chat", map[string]string{"message": "hi"}, "garbage-token")
	if badResp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 with bad token, got %d", badResp.StatusCode)
	}
}

func uploadDocument(t *testing.T, ts *httptest.Server, filename, content string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("document", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	resp, err := http.Post(ts.URL+"/api/upload-document", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil && err != io.EOF {
		t.Fatal(err)
	}
	return resp, decoded
}

func TestUploadAndAsk(t *testing.T) {
	ts := newTestServer(t)

	resp, body := uploadDocument(t, ts, "notes.txt", "hello world this is a test document about greetings")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload returned %d: %v", resp.StatusCode, body)
	}
	if body["document_id"] != "notes.txt" {
		t.Errorf("unexpected document_id: %v", body["document_id"])
	}

	resp, body = postJSON(t, ts.URL+"/api/ask-question", map[string]interface{}{
		"document_id": "notes.txt",
		"question":    "what is this about?",
	}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ask returned %d: %v", resp.StatusCode, body)
	}
	if body["answer"] != "The document says hello." {
		t.Errorf("unexpected answer: %v", body["answer"])
	}
}

func TestAskUnknownDocument(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := postJSON(t, ts.URL+"/api/ask-question", map[string]interface{}{
		"document_id": "never-uploaded.pdf",
		"question":    "anything?",
	}, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := uploadDocument(t, ts, "image.png", "not really an image")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unsupported type, got %d", resp.StatusCode)
	}
}

func TestChat(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "carol", "carol@example.com")

	resp, body := postJSON(t, ts.URL+"/api/chat", map[string]string{
		"message": "I had a rough day",
	}, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("chat returned %d: %v", resp.StatusCode, body)
	}
	if body["response"] != "The document says hello." {
		t.Errorf("unexpected chat response: %v", body["response"])
	}

	resp, _ = postJSON(t, ts.URL+"/api/chat", map[string]string{"message": ""}, token)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty message: expected 400, got %d", resp.StatusCode)
	}
}

func TestSessions(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "dave", "dave@example.com")

	resp, body := postJSON(t, ts.URL+"/api/sessions", map[string]interface{}{
		"session_type": "journaling",
		"duration":     20,
		"notes":        "wrote about the week",
	}, token)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create session returned %d: %v", resp.StatusCode, body)
	}
	userID, _ := body["user_id"].(string)
	if userID == "" {
		t.Fatal("session has no user_id")
	}

	listResp, err := http.Get(fmt.Sprintf("%s/api/users/%s/sessions", ts.URL, userID))
	if err != nil {
		t.Fatal(err)
	}
	defer listResp.Body.Close()
	var sessions []map[string]interface{}
	if err := json.NewDecoder(listResp.Body).Decode(&sessions); err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if sessions[0]["session_type"] != "journaling" {
		t.Errorf("unexpected session: %v", sessions[0])
	}
}

func TestAnalyzeTranscript(t *testing.T) {
	ts := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/api/analyze-transcript", map[string]interface{}{
		"transcript": "Therapist: How are you?\nPatient: I always feel worthless and sad.",
	}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("analyze returned %d: %v", resp.StatusCode, body)
	}

	meta, ok := body["sessionMeta"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing sessionMeta: %v", body)
	}
	if meta["summary"] != "The document says hello." {
		t.Errorf("unexpected summary: %v", meta["summary"])
	}
	transcript, ok := body["transcript"].([]interface{})
	if !ok || len(transcript) != 2 {
		t.Fatalf("expected 2 transcript entries: %v", body["transcript"])
	}
	if _, ok := body["emotionTimeline"]; !ok {
		t.Error("missing emotionTimeline")
	}
	if _, ok := body["themesSummary"]; !ok {
		t.Error("missing themesSummary")
	}
	if _, ok := body["distortionSummary"]; !ok {
		t.Error("missing distortionSummary")
	}
}

func TestAnalyzeTranscriptStructured(t *testing.T) {
	ts := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/api/analyze-transcript", map[string]interface{}{
		"transcript": []map[string]string{
			{"speaker": "therapist", "utterance": "What's on your mind?"},
			{"speaker": "patient", "utterance": "I'm worried about everything."},
		},
	}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("analyze returned %d: %v", resp.StatusCode, body)
	}
	transcript, ok := body["transcript"].([]interface{})
	if !ok || len(transcript) != 2 {
		t.Fatalf("expected 2 transcript entries: %v", body["transcript"])
	}
}

func TestAnalyzeTranscriptEmpty(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := postJSON(t, ts.URL+"/api/analyze-transcript", map[string]interface{}{}, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for missing transcript, got %d", resp.StatusCode)
	}
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/health", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("missing CORS origin header")
	}
}
