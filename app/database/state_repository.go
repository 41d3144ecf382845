package database

import (
	"database/sql"
	"fmt"
)

var _ StateRepository = (*stateRepository)(nil)

type stateRepository struct {
	db *DB
}

func NewStateRepository(db *DB) StateRepository {
	return &stateRepository{db: db}
}

// Get returns the singleton run state. The row is seeded by the initial
// migration; defaults are returned if it is somehow absent.
func (r *stateRepository) Get() (*RunState, error) {
	var s RunState
	err := r.db.QueryRow(`
		SELECT bot_status, selected_profile, selected_user, last_login_date
		FROM run_state WHERE id = 1
	`).Scan(&s.BotStatus, &s.SelectedProfile, &s.SelectedUser, &s.LastLoginDate)
	if err == sql.ErrNoRows {
		return &RunState{BotStatus: BotOff, SelectedProfile: "didbaniran"}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run state: %w", err)
	}

	return &s, nil
}

func (r *stateRepository) SetBotStatus(status string) error {
	return r.set("bot_status", status)
}

func (r *stateRepository) SetProfile(profile string) error {
	return r.set("selected_profile", profile)
}

func (r *stateRepository) SetSelectedUser(username string) error {
	return r.set("selected_user", username)
}

func (r *stateRepository) SetLastLoginDate(date string) error {
	return r.set("last_login_date", date)
}

func (r *stateRepository) set(column, value string) error {
	_, err := r.db.Exec(`UPDATE run_state SET `+column+` = ? WHERE id = 1`, value)
	if err != nil {
		return fmt.Errorf("failed to update run state %s: %w", column, err)
	}

	return nil
}
