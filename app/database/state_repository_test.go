package database

import (
	"testing"
)

func TestStateRepository_Defaults(t *testing.T) {
	db := openTestDB(t)
	repo := NewStateRepository(db)

	s, err := repo.Get()
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if s.BotStatus != BotOff {
		t.Errorf("expected initial bot status OFF, got %s", s.BotStatus)
	}
	if s.SelectedProfile != "didbaniran" {
		t.Errorf("expected default profile didbaniran, got %s", s.SelectedProfile)
	}
	if s.SelectedUser != "" {
		t.Errorf("expected no selected user, got %s", s.SelectedUser)
	}
	if s.LastLoginDate != "" {
		t.Errorf("expected empty last login date, got %s", s.LastLoginDate)
	}
}

func TestStateRepository_Mutations(t *testing.T) {
	db := openTestDB(t)
	repo := NewStateRepository(db)

	if err := repo.SetBotStatus(BotOn); err != nil {
		t.Fatalf("set bot status failed: %v", err)
	}
	if err := repo.SetProfile("didbaniran"); err != nil {
		t.Fatalf("set profile failed: %v", err)
	}
	if err := repo.SetSelectedUser("ramin"); err != nil {
		t.Fatalf("set selected user failed: %v", err)
	}
	if err := repo.SetLastLoginDate("2026-08-28"); err != nil {
		t.Fatalf("set last login date failed: %v", err)
	}

	s, err := repo.Get()
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if s.BotStatus != BotOn || s.SelectedUser != "ramin" || s.LastLoginDate != "2026-08-28" {
		t.Errorf("state not persisted: %+v", s)
	}
}

func TestCredentialRepository_UpsertGetList(t *testing.T) {
	db := openTestDB(t)
	repo := NewCredentialRepository(db)

	missing, err := repo.Get("nobody")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing credential, got %+v", missing)
	}

	if err := repo.Upsert("ramin", "secret"); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := repo.Upsert("ramin", "newsecret"); err != nil {
		t.Fatalf("replacing upsert failed: %v", err)
	}

	c, err := repo.Get("ramin")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if c == nil || c.Password != "newsecret" {
		t.Errorf("expected replaced credential, got %+v", c)
	}

	creds, err := repo.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(creds) != 1 {
		t.Errorf("expected 1 credential, got %d", len(creds))
	}
}
