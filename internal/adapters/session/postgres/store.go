package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"adoptme-web/internal/ports/auth"
	"adoptme-web/internal/ports/session"
)

type Store struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewStore: ttl <= 0 => las sesiones no expiran.
func NewStore(db *sql.DB, ttl time.Duration) *Store {
	return &Store{db: db, ttl: ttl, now: time.Now}
}

func (s *Store) Get(ctx context.Context, id string) (session.Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return session.Session{}, session.ErrNotFound
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, access_token, backend_cookie, user_json, updated_at
		FROM web_sessions
		WHERE id = $1
	`, id)

	var (
		sess     session.Session
		userJSON []byte
	)
	if err := row.Scan(&sess.ID, &sess.AccessToken, &sess.BackendCookie, &userJSON, &sess.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.Session{}, session.ErrNotFound
		}
		return session.Session{}, err
	}

	if s.ttl > 0 && s.now().Sub(sess.UpdatedAt) > s.ttl {
		_ = s.Delete(ctx, id)
		return session.Session{}, session.ErrNotFound
	}

	if len(userJSON) > 0 {
		var u auth.User
		if err := json.Unmarshal(userJSON, &u); err != nil {
			return session.Session{}, fmt.Errorf("decode session user: %w", err)
		}
		sess.User = &u
	}
	return sess, nil
}

func (s *Store) Save(ctx context.Context, sess session.Session) error {
	if strings.TrimSpace(sess.ID) == "" {
		return errors.New("session id required")
	}

	var userJSON []byte
	if sess.User != nil {
		b, err := json.Marshal(sess.User)
		if err != nil {
			return fmt.Errorf("encode session user: %w", err)
		}
		userJSON = b
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO web_sessions (id, access_token, backend_cookie, user_json, updated_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			backend_cookie = EXCLUDED.backend_cookie,
			user_json = EXCLUDED.user_json,
			updated_at = EXCLUDED.updated_at
	`,
		sess.ID,
		sess.AccessToken,
		sess.BackendCookie,
		userJSON,
		s.now().UTC(),
	)
	return err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM web_sessions WHERE id = $1`, id)
	return err
}
