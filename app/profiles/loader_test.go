package profiles

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadValidConfig(t *testing.T) {
	tempDir := t.TempDir()

	content := `
feeds:
  - "https://www.farsnews.ir/rss"
  - "https://www.isna.ir/rss"

profiles:
  example:
    prefix: "<p>prefix</p>"
    category: "خبری"
`

	path := filepath.Join(tempDir, "profiles.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(config.Feeds) != 2 {
		t.Errorf("Expected 2 feeds, got %d", len(config.Feeds))
	}
	if config.Feeds[0] != "https://www.farsnews.ir/rss" {
		t.Errorf("Unexpected first feed: %s", config.Feeds[0])
	}

	p := config.Get("example")
	if p.Prefix != "<p>prefix</p>" || p.Category != "خبری" {
		t.Errorf("Unexpected profile: %+v", p)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatal(err)
	}

	p := config.Get("didbaniran")
	if !strings.Contains(p.Prefix, "didbaniran.ir") {
		t.Errorf("Default prefix should link the site, got: %s", p.Prefix)
	}
	if p.Category != "سیاسی" {
		t.Errorf("Expected default category, got: %s", p.Category)
	}
}

func TestGetUnknownProfileFallsBack(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatal(err)
	}

	p := config.Get("unknown")
	if p.Category != "سیاسی" {
		t.Errorf("Unknown profile should fall back to default, got: %+v", p)
	}
}

func TestLoadRejectsEmptyFeed(t *testing.T) {
	tempDir := t.TempDir()

	content := `
feeds:
  - ""
`
	path := filepath.Join(tempDir, "profiles.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for empty feed URL")
	}
}
