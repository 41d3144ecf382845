package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestBlacklist(t *testing.T, phrases ...string) *Blacklist {
	t.Helper()

	path := filepath.Join(t.TempDir(), "blacklist.txt")
	b, err := LoadBlacklist(path)
	if err != nil {
		t.Fatalf("load blacklist failed: %v", err)
	}
	for _, p := range phrases {
		if err := b.AddPhrase(p); err != nil {
			t.Fatalf("add phrase failed: %v", err)
		}
	}
	return b
}

func TestCleanExtractsArticleBody(t *testing.T) {
	raw := `<html><body>
		<div class="header">site chrome</div>
		<div class="item-text" itemprop="articleBody">
			<p>First paragraph.</p>
			<div class="ads">buy things</div>
			<p>Second paragraph.</p>
		</div>
	</body></html>`

	cleaner := NewCleaner(nil)
	got, err := cleaner.Clean(raw)
	if err != nil {
		t.Fatalf("clean failed: %v", err)
	}

	if strings.Contains(got, "site chrome") {
		t.Error("content outside the article body should be dropped")
	}
	if strings.Contains(got, "buy things") {
		t.Error("ad block should be removed")
	}
	if !strings.Contains(got, "First paragraph.") || !strings.Contains(got, "Second paragraph.") {
		t.Errorf("article paragraphs missing: %s", got)
	}
}

func TestCleanFlattensLinks(t *testing.T) {
	raw := `<div class="item-text" itemprop="articleBody"><p>see <a href="https://other.site/x">this report</a> now</p></div>`

	cleaner := NewCleaner(nil)
	got, err := cleaner.Clean(raw)
	if err != nil {
		t.Fatalf("clean failed: %v", err)
	}

	if strings.Contains(got, "<a") || strings.Contains(got, "other.site") {
		t.Errorf("links should be flattened to text: %s", got)
	}
	if !strings.Contains(got, "this report") {
		t.Errorf("link text should survive: %s", got)
	}
}

func TestCleanStripsBlacklistedPhrases(t *testing.T) {
	b := newTestBlacklist(t, "انتهای پیام")

	raw := `<div class="item-text" itemprop="articleBody"><p>متن خبر. انتهای پیام</p></div>`

	cleaner := NewCleaner(b)
	got, err := cleaner.Clean(raw)
	if err != nil {
		t.Fatalf("clean failed: %v", err)
	}

	if strings.Contains(got, "انتهای پیام") {
		t.Errorf("blacklisted phrase should be removed: %s", got)
	}
	if !strings.Contains(got, "متن خبر.") {
		t.Errorf("surrounding text should survive: %s", got)
	}
}

func TestCleanFallsBackToDocumentBody(t *testing.T) {
	raw := `<html><body><p>plain page</p></body></html>`

	cleaner := NewCleaner(nil)
	got, err := cleaner.Clean(raw)
	if err != nil {
		t.Fatalf("clean failed: %v", err)
	}
	if !strings.Contains(got, "plain page") {
		t.Errorf("body fallback missing content: %s", got)
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	b := newTestBlacklist(t, "انتهای پیام")
	cleaner := NewCleaner(b)

	raw := `<div class="item-text" itemprop="articleBody">
		<p>alpha <a href="https://x/y">link</a></p>
		<div class="related">more news</div>
		<p>beta انتهای پیام</p>
	</div>`

	once, err := cleaner.Clean(raw)
	if err != nil {
		t.Fatalf("first clean failed: %v", err)
	}
	twice, err := cleaner.Clean(once)
	if err != nil {
		t.Fatalf("second clean failed: %v", err)
	}
	if once != twice {
		t.Errorf("cleaning should be idempotent:\nonce:  %s\ntwice: %s", once, twice)
	}
}

func TestBlacklistAddPhraseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blacklist.txt")
	b, err := LoadBlacklist(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if err := b.AddPhrase("spam"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := b.AddPhrase("spam"); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	if len(b.Phrases()) != 1 {
		t.Errorf("expected 1 phrase, got %d", len(b.Phrases()))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file failed: %v", err)
	}
	if strings.Count(string(data), "spam") != 1 {
		t.Errorf("file should contain the phrase once: %q", string(data))
	}
}

func TestBlacklistSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blacklist.txt")

	b, err := LoadBlacklist(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := b.AddPhrase("one"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := b.AddPhrase("two"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	reloaded, err := LoadBlacklist(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(reloaded.Phrases()) != 2 {
		t.Errorf("expected 2 phrases after reload, got %d", len(reloaded.Phrases()))
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize("<p>one two three four five</p>", 100)
	if got != "one two three four five" {
		t.Errorf("short text should pass through, got %q", got)
	}

	truncated := Summarize("<p>one two three four five</p>", 10)
	if !strings.HasSuffix(truncated, "…") {
		t.Errorf("long text should be truncated with ellipsis, got %q", truncated)
	}
	if len([]rune(truncated)) > 11 {
		t.Errorf("truncation too long: %q", truncated)
	}
}
