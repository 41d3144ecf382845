package scrape

import (
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Page title</title></head>
<body>
	<nav>site navigation</nav>
	<article>
		<h1>Article headline</h1>
		<p>The first paragraph of the story carries enough text for the
		extractor to treat this as a genuine article rather than a stub
		or an error page served by the site.</p>
		<p>The second paragraph continues the story with further detail
		so the readability pass has a body worth keeping.</p>
	</article>
	<footer>site footer</footer>
</body>
</html>`

func TestExtractPrefersPageMetadata(t *testing.T) {
	got, err := extract("https://example.com/news/1", samplePage,
		"Meta title", "Meta description", "https://example.com/img.jpg")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	if got.Title != "Meta title" {
		t.Errorf("page title should win, got %q", got.Title)
	}
	if got.Lead != "Meta description" {
		t.Errorf("meta description should win, got %q", got.Lead)
	}
	if got.ImageURL != "https://example.com/img.jpg" {
		t.Errorf("page image should win, got %q", got.ImageURL)
	}
}

func TestExtractReducesToArticleBody(t *testing.T) {
	got, err := extract("https://example.com/news/1", samplePage, "", "", "")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	if !strings.Contains(got.BodyHTML, "first paragraph") {
		t.Errorf("article text missing from body: %s", got.BodyHTML)
	}
	if strings.Contains(got.BodyHTML, "site navigation") {
		t.Errorf("page chrome should be stripped: %s", got.BodyHTML)
	}
	if got.Title == "" {
		t.Error("title should fall back to the extracted article title")
	}
}

func TestExtractRejectsInvalidURL(t *testing.T) {
	if _, err := extract("://bad", samplePage, "", "", ""); err == nil {
		t.Error("expected error for invalid URL")
	}
}

func TestExtractRejectsEmptyPage(t *testing.T) {
	if _, err := extract("https://example.com/x", "   ", "", "", ""); err == nil {
		t.Error("expected error for empty page")
	}
}
