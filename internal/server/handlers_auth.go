package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"mindverse/internal/auth"
	"mindverse/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
}

func userToResponse(u domain.User) userResponse {
	resp := userResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
	if u.ProfilePicture != "" {
		resp.ProfilePicture = "/profile-pictures/" + u.ProfilePicture
	}
	if !u.CreatedAt.IsZero() {
		resp.CreatedAt = u.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields := map[string]string{
		"username": strings.TrimSpace(req.Username),
		"email":    strings.TrimSpace(req.Email),
		"password": req.Password,
	}
	for _, name := range []string{"username", "email", "password"} {
		if fields[name] == "" {
			writeFieldError(w, http.StatusBadRequest, "missing required field", name)
			return
		}
	}

	email := strings.ToLower(fields["email"])
	if !emailPattern.MatchString(email) {
		writeFieldError(w, http.StatusBadRequest, "invalid email format", "email")
		return
	}

	role := req.Role
	if role != domain.RolePatient && role != domain.RoleTherapist {
		role = domain.RolePatient
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Username:     fields["username"],
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
	}

	if err := s.users.CreateUser(user); err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			writeFieldError(w, http.StatusConflict, err.Error(), "email")
		case errors.Is(err, domain.ErrUsernameTaken):
			writeFieldError(w, http.StatusConflict, err.Error(), "username")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":      "User registered successfully",
		"user":         userToResponse(user),
		"access_token": token,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing email or password")
		return
	}

	user, err := s.users.GetUserByEmail(req.Email)
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Login successful",
		"user":         userToResponse(user),
		"access_token": token,
	})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetUser(UserID(r))
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(user))
}

func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	// Tokens are stateless; the client discards its copy.
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetUser(UserID(r))
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	if username := strings.TrimSpace(r.FormValue("username")); username != "" {
		user.Username = username
	}

	if file, header, err := r.FormFile("profile_picture"); err == nil {
		defer file.Close()
		name := uuid.NewString() + filepath.Ext(header.Filename)
		path := filepath.Join(s.cfg.UploadDir, name)
		if err := saveUpload(file, path); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to save profile picture")
			return
		}
		if user.ProfilePicture != "" {
			os.Remove(filepath.Join(s.cfg.UploadDir, user.ProfilePicture))
		}
		user.ProfilePicture = name
	}

	if err := s.users.UpdateUser(user); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			writeFieldError(w, http.StatusBadRequest, err.Error(), "username")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(user))
}
