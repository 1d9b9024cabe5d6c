package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLiteStore implements Store on the shared libSQL database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Create(ctx context.Context, locale, difficulty string) (Session, error) {
	var sess Session
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO sessions (token, locale, difficulty)
		VALUES (lower(hex(randomblob(16))), ?, ?)
		RETURNING token, locale, difficulty, created_at
	`, locale, difficulty).Scan(&sess.Token, &sess.Locale, &sess.Difficulty, &createdAt)
	if err != nil {
		return Session{}, fmt.Errorf("creating session: %w", err)
	}
	sess.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return sess, nil
}

func (s *SQLiteStore) Get(ctx context.Context, token string) (Session, error) {
	var sess Session
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT token, locale, difficulty, created_at
		FROM sessions WHERE token = ?
	`, token).Scan(&sess.Token, &sess.Locale, &sess.Difficulty, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}
	sess.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return sess, nil
}

func (s *SQLiteStore) SetPrefs(ctx context.Context, token, difficulty, locale string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET difficulty = ?, locale = ? WHERE token = ?
	`, difficulty, locale, token)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) UsedCities(ctx context.Context, token string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name_en FROM used_cities
		WHERE session_token = ?
		ORDER BY rowid
	`, token)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLiteStore) AddUsedCity(ctx context.Context, token, nameEn string) error {
	// UNIQUE(session_token, name_en) gives the at-most-once guarantee.
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO used_cities (session_token, name_en)
		VALUES (?, ?)
	`, token, nameEn)
	return err
}

func (s *SQLiteStore) Delete(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	return err
}

func (s *SQLiteStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.token, s.locale, s.difficulty, s.created_at,
		       (SELECT COUNT(*) FROM used_cities u WHERE u.session_token = s.token)
		FROM sessions s
		ORDER BY s.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.Token, &sum.Locale, &sum.Difficulty, &sum.CreatedAt, &sum.UsedCities); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}
