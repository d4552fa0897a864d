package article

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gazetteer/internal/core"
)

const wordpressHTML = `<html>
<head><title>Que faire à Tenerife ?</title></head>
<body>
<header><nav>Menu</nav></header>
<div class="sidebar">Newsletter signup</div>
<div class="entry-content">
<h2>Le Teide</h2>
<p>Le Pico del Teide domine l'île du haut de ses 3715 mètres.</p>
<h2>Loro Parque</h2>
<p>Un parc animalier mondialement connu à Puerto de la Cruz.</p>
</div>
<footer>Copyright</footer>
<script>trackPageView();</script>
</body>
</html>`

func TestCleanExtractsWordPressContent(t *testing.T) {
	article := core.Article{ID: "a1", FetchedHTML: wordpressHTML}

	if err := Clean(&article); err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	for _, expected := range []string{"Le Teide", "Pico del Teide", "Loro Parque", "Puerto de la Cruz"} {
		if !strings.Contains(article.CleanedText, expected) {
			t.Errorf("Cleaned text should contain %q, got:\n%s", expected, article.CleanedText)
		}
	}
	for _, boilerplate := range []string{"Menu", "Newsletter", "Copyright", "trackPageView"} {
		if strings.Contains(article.CleanedText, boilerplate) {
			t.Errorf("Cleaned text should not contain boilerplate %q", boilerplate)
		}
	}
}

func TestCleanFillsMissingTitle(t *testing.T) {
	article := core.Article{ID: "a1", FetchedHTML: wordpressHTML}

	if err := Clean(&article); err != nil {
		t.Fatalf("Clean failed: %v", err)
	}
	if article.Title != "Que faire à Tenerife ?" {
		t.Errorf("Title = %q, expected the document title", article.Title)
	}
}

func TestCleanWithoutHTML(t *testing.T) {
	article := core.Article{ID: "a1"}
	if err := Clean(&article); err == nil {
		t.Error("Expected an error for an article with no fetched HTML")
	}
}

func TestExtractTitleFallbacks(t *testing.T) {
	ogOnly := `<html><head><meta property="og:title" content="OG Title"/></head><body></body></html>`
	if got := extractTitle(ogOnly); got != "OG Title" {
		t.Errorf("extractTitle = %q, expected OG Title", got)
	}

	h1Only := `<html><body><h1>Heading Title</h1></body></html>`
	if got := extractTitle(h1Only); got != "Heading Title" {
		t.Errorf("extractTitle = %q, expected Heading Title", got)
	}
}

func TestReadURLs(t *testing.T) {
	tmpDir := t.TempDir()
	inputPath := filepath.Join(tmpDir, "articles.md")
	content := `# Tenerife guide sources
- https://example.com/teide
- https://example.com/loro-parque
not a url
- https://example.com/teide
- ftp://example.com/ignored
`
	if err := os.WriteFile(inputPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write input file: %v", err)
	}

	urls, err := ReadURLs(inputPath)
	if err != nil {
		t.Fatalf("ReadURLs failed: %v", err)
	}

	expected := []string{"https://example.com/teide", "https://example.com/loro-parque"}
	if len(urls) != len(expected) {
		t.Fatalf("Expected %d urls, got %d: %v", len(expected), len(urls), urls)
	}
	for i, u := range expected {
		if urls[i] != u {
			t.Errorf("urls[%d] = %q, expected %q", i, urls[i], u)
		}
	}
}

func TestReadURLsMissingFile(t *testing.T) {
	if _, err := ReadURLs("/nonexistent/input.md"); err == nil {
		t.Error("Expected an error for a missing input file")
	}
}
