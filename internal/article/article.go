// Package article fetches source articles and reduces them to clean text
// ready for POI extraction.
package article

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"gazetteer/internal/core"
)

var urlRegex = regexp.MustCompile(`https?://[^\s)]+`)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// ReadURLs reads article URLs from a text or markdown file, one or more per
// line, skipping invalid and duplicate entries.
func ReadURLs(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file %s: %w", filePath, err)
	}
	defer file.Close()

	var urls []string
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		for _, textURL := range urlRegex.FindAllString(scanner.Text(), -1) {
			parsed, err := url.ParseRequestURI(textURL)
			if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
				continue
			}
			if seen[textURL] {
				continue
			}
			seen[textURL] = true
			urls = append(urls, textURL)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input file %s: %w", filePath, err)
	}

	return urls, nil
}

// Fetch downloads the article at the given URL. CleanedText is populated by
// a subsequent Clean call.
func Fetch(articleURL string) (core.Article, error) {
	resp, err := httpClient.Get(articleURL)
	if err != nil {
		return core.Article{}, fmt.Errorf("failed to fetch %s: %w", articleURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return core.Article{}, fmt.Errorf("failed to fetch %s: status code %d", articleURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.Article{}, fmt.Errorf("failed to read response body from %s: %w", articleURL, err)
	}

	html := string(body)
	return core.Article{
		ID:          uuid.NewString(),
		URL:         articleURL,
		Title:       extractTitle(html),
		FetchedHTML: html,
		DateFetched: time.Now().UTC(),
	}, nil
}

// extractTitle tries the document title, OpenGraph title, then the first h1.
func extractTitle(htmlContent string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	if title := strings.TrimSpace(doc.Find("head title").First().Text()); title != "" {
		return title
	}
	if ogTitle, _ := doc.Find("meta[property='og:title']").Attr("content"); strings.TrimSpace(ogTitle) != "" {
		return strings.TrimSpace(ogTitle)
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// contentSelectors are tried in order; .entry-content and .post-content are
// the usual WordPress containers.
var contentSelectors = []string{
	".entry-content", ".post-content", ".post-body", ".article-body",
	"article", "main", "[role='main']",
	".content", "#content",
}

// Clean extracts the main textual content from the fetched HTML, stripping
// boilerplate, and fills CleanedText (and Title, if still missing).
func Clean(article *core.Article) error {
	if article.FetchedHTML == "" {
		return fmt.Errorf("article %s has no fetched HTML to clean", article.ID)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.FetchedHTML))
	if err != nil {
		return fmt.Errorf("failed to parse HTML for article %s: %w", article.ID, err)
	}

	doc.Find("script, style, nav, footer, header, aside, form, iframe, noscript, .sidebar, #sidebar, .ad, .advertisement, .popup, .modal, .cookie-banner, .comments, #comments").Remove()

	var textBuilder strings.Builder
	appendBlocks := func(s *goquery.Selection) {
		s.Find("p, h1, h2, h3, h4, h5, h6, li, blockquote, figcaption").Each(func(_ int, item *goquery.Selection) {
			if text := strings.TrimSpace(item.Text()); text != "" {
				textBuilder.WriteString(text)
				textBuilder.WriteString("\n\n")
			}
		})
	}

	for _, selector := range contentSelectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			appendBlocks(s)
		})
		if textBuilder.Len() > 0 {
			break
		}
	}
	if textBuilder.Len() == 0 {
		appendBlocks(doc.Find("body"))
	}

	cleaned := regexp.MustCompile(`\n{3,}`).ReplaceAllString(textBuilder.String(), "\n\n")
	article.CleanedText = strings.TrimSpace(cleaned)

	if article.Title == "" {
		article.Title = extractTitle(article.FetchedHTML)
	}

	return nil
}
