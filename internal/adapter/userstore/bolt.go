// Package userstore persists users and therapy sessions in BoltDB.
package userstore

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.etcd.io/bbolt"
	"mindverse/internal/domain"
)

var (
	bucketUsers        = []byte("users")
	bucketUserEmails   = []byte("user_emails")
	bucketUserNames    = []byte("user_names")
	bucketSessions     = []byte("sessions")
	bucketUserSessions = []byte("user_sessions")
)

type Store struct {
	db *bbolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		buckets := [][]byte{bucketUsers, bucketUserEmails, bucketUserNames, bucketSessions, bucketUserSessions}
		for _, b := range buckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

type userMeta struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	PasswordHash   string `json:"password_hash"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	Role           string `json:"role"`
	CreatedAt      int64  `json:"created_at"`
}

// CreateUser stores a new user. Emails and usernames are unique; violations
// return domain.ErrEmailTaken or domain.ErrUsernameTaken.
func (s *Store) CreateUser(user domain.User) error {
	email := normalizeEmail(user.Email)

	return s.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketUserEmails).Get([]byte(email)) != nil {
			return domain.ErrEmailTaken
		}
		if tx.Bucket(bucketUserNames).Get([]byte(user.Username)) != nil {
			return domain.ErrUsernameTaken
		}

		meta := userMeta{
			Username:       user.Username,
			Email:          email,
			PasswordHash:   user.PasswordHash,
			ProfilePicture: user.ProfilePicture,
			Role:           user.Role,
			CreatedAt:      user.CreatedAt.Unix(),
		}
		data, err := json.Marshal(meta)
		if err != nil {
			return err
		}

		if err := tx.Bucket(bucketUsers).Put([]byte(user.ID), data); err != nil {
			return err
		}
		if err := tx.Bucket(bucketUserEmails).Put([]byte(email), []byte(user.ID)); err != nil {
			return err
		}
		return tx.Bucket(bucketUserNames).Put([]byte(user.Username), []byte(user.ID))
	})
}

// UpdateUser rewrites a user's mutable fields (username, profile picture),
// keeping the uniqueness indexes consistent.
func (s *Store) UpdateUser(user domain.User) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketUsers).Get([]byte(user.ID))
		if data == nil {
			return domain.ErrUserNotFound
		}
		var old userMeta
		if err := json.Unmarshal(data, &old); err != nil {
			return err
		}

		if user.Username != old.Username {
			if tx.Bucket(bucketUserNames).Get([]byte(user.Username)) != nil {
				return domain.ErrUsernameTaken
			}
			if err := tx.Bucket(bucketUserNames).Delete([]byte(old.Username)); err != nil {
				return err
			}
			if err := tx.Bucket(bucketUserNames).Put([]byte(user.Username), []byte(user.ID)); err != nil {
				return err
			}
		}

		meta := userMeta{
			Username:       user.Username,
			Email:          old.Email,
			PasswordHash:   old.PasswordHash,
			ProfilePicture: user.ProfilePicture,
			Role:           old.Role,
			CreatedAt:      old.CreatedAt,
		}
		updated, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketUsers).Put([]byte(user.ID), updated)
	})
}

func (s *Store) GetUser(id string) (domain.User, error) {
	var user domain.User
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketUsers).Get([]byte(id))
		if data == nil {
			return domain.ErrUserNotFound
		}
		var meta userMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return err
		}
		user = metaToUser(id, meta)
		return nil
	})
	return user, err
}

func (s *Store) GetUserByEmail(email string) (domain.User, error) {
	var user domain.User
	err := s.db.View(func(tx *bbolt.Tx) error {
		id := tx.Bucket(bucketUserEmails).Get([]byte(normalizeEmail(email)))
		if id == nil {
			return domain.ErrUserNotFound
		}
		data := tx.Bucket(bucketUsers).Get(id)
		if data == nil {
			return domain.ErrUserNotFound
		}
		var meta userMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return err
		}
		user = metaToUser(string(id), meta)
		return nil
	})
	return user, err
}

type sessionMeta struct {
	UserID      string `json:"user_id"`
	SessionType string `json:"session_type"`
	Duration    int    `json:"duration,omitempty"`
	Notes       string `json:"notes,omitempty"`
	CreatedAt   int64  `json:"created_at"`
}

// CreateSession stores a therapy session and appends it to the owner's
// session list.
func (s *Store) CreateSession(sess domain.TherapySession) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		meta := sessionMeta{
			UserID:      sess.UserID,
			SessionType: sess.SessionType,
			Duration:    sess.Duration,
			Notes:       sess.Notes,
			CreatedAt:   sess.CreatedAt.Unix(),
		}
		data, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		if err := tx.Bucket(bucketSessions).Put([]byte(sess.ID), data); err != nil {
			return err
		}

		var ids []string
		if existing := tx.Bucket(bucketUserSessions).Get([]byte(sess.UserID)); existing != nil {
			if err := json.Unmarshal(existing, &ids); err != nil {
				return err
			}
		}
		ids = append(ids, sess.ID)
		listed, err := json.Marshal(ids)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketUserSessions).Put([]byte(sess.UserID), listed)
	})
}

// SessionsByUser returns the user's sessions in creation order.
func (s *Store) SessionsByUser(userID string) ([]domain.TherapySession, error) {
	var sessions []domain.TherapySession
	err := s.db.View(func(tx *bbolt.Tx) error {
		listed := tx.Bucket(bucketUserSessions).Get([]byte(userID))
		if listed == nil {
			return nil
		}
		var ids []string
		if err := json.Unmarshal(listed, &ids); err != nil {
			return err
		}

		for _, id := range ids {
			data := tx.Bucket(bucketSessions).Get([]byte(id))
			if data == nil {
				continue
			}
			var meta sessionMeta
			if err := json.Unmarshal(data, &meta); err != nil {
				return err
			}
			sessions = append(sessions, domain.TherapySession{
				ID:          id,
				UserID:      meta.UserID,
				SessionType: meta.SessionType,
				Duration:    meta.Duration,
				Notes:       meta.Notes,
				CreatedAt:   time.Unix(meta.CreatedAt, 0),
			})
		}
		return nil
	})
	return sessions, err
}

func metaToUser(id string, meta userMeta) domain.User {
	return domain.User{
		ID:             id,
		Username:       meta.Username,
		Email:          meta.Email,
		PasswordHash:   meta.PasswordHash,
		ProfilePicture: meta.ProfilePicture,
		Role:           meta.Role,
		CreatedAt:      time.Unix(meta.CreatedAt, 0),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
