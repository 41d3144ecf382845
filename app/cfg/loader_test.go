package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		DBPath:              "./peyk.db",
		ProfilesPath:        "./profiles.yml",
		BlacklistPath:       "./blacklist.txt",
		CookiesPath:         "./cms_cookies.json",
		TelegramToken:       "token",
		TelegramChatID:      42,
		CMSLoginURL:         "https://cms.example.com/login",
		CMSAddURL:           "https://cms.example.com/add",
		RSSInterval:         120,
		ScrapeRetries:       3,
		UploadRetries:       3,
		PublishRetries:      3,
		CollaboratorTimeout: 60,
		PublishDelayMin:     120,
		PublishDelayMax:     240,
		DedupRetentionDays:  90,
		Port:                "8080",
		APIAccessKey:        "test-key",
		Debug:               true,
		Version:             "test-version",
	}

	if cfg.DBPath != "./peyk.db" {
		t.Errorf("Expected DB path './peyk.db', got '%s'", cfg.DBPath)
	}
	if cfg.TelegramChatID != 42 {
		t.Errorf("Expected chat ID 42, got %d", cfg.TelegramChatID)
	}
	if cfg.RSSInterval != 120 {
		t.Errorf("Expected RSS interval 120, got %d", cfg.RSSInterval)
	}
	if cfg.ScrapeRetries != 3 || cfg.UploadRetries != 3 || cfg.PublishRetries != 3 {
		t.Errorf("Expected 3 retries per stage, got %d/%d/%d",
			cfg.ScrapeRetries, cfg.UploadRetries, cfg.PublishRetries)
	}
	if cfg.PublishDelayMin != 120 || cfg.PublishDelayMax != 240 {
		t.Errorf("Expected publish delay window 120-240, got %d-%d",
			cfg.PublishDelayMin, cfg.PublishDelayMax)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}
