package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ CredentialRepository = (*credentialRepository)(nil)

type credentialRepository struct {
	db *DB
}

func NewCredentialRepository(db *DB) CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) Upsert(username, password string) error {
	_, err := r.db.Exec(`
		INSERT OR REPLACE INTO cms_users (username, password, created_at)
		VALUES (?, ?, ?)
	`, username, password, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to upsert credential: %w", err)
	}

	return nil
}

func (r *credentialRepository) Get(username string) (*Credential, error) {
	var c Credential
	var createdAt string
	err := r.db.QueryRow(`
		SELECT username, password, created_at FROM cms_users WHERE username = ?
	`, username).Scan(&c.Username, &c.Password, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}

	c.CreatedAt = parseTime(createdAt)
	return &c, nil
}

func (r *credentialRepository) List() ([]Credential, error) {
	rows, err := r.db.Query(`SELECT username, password, created_at FROM cms_users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}
	defer rows.Close()

	var creds []Credential
	for rows.Next() {
		var c Credential
		var createdAt string
		if err := rows.Scan(&c.Username, &c.Password, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan credential row: %w", err)
		}
		c.CreatedAt = parseTime(createdAt)
		creds = append(creds, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credential rows: %w", err)
	}

	return creds, nil
}
