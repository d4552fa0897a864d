// Package extract turns cleaned article text into points of interest using
// the Gemini API.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"google.golang.org/api/option"

	"gazetteer/internal/core"
	"gazetteer/internal/logger"
)

const (
	// DefaultModel is the default Gemini model used for extraction.
	DefaultModel = "gemini-1.5-flash-latest"

	// ExtractPOIsPromptTemplate asks for a strict JSON array so the response
	// can be parsed without scraping prose.
	ExtractPOIsPromptTemplate = `You are extracting points of interest from a travel article.

Return ONLY a JSON array, no prose, no markdown. Each element must be:
{"name": "<display name of the place>", "category": "<short category such as monument, beach, park, museum, restaurant, viewpoint>"}

Rules:
- Only include concrete, visitable places mentioned in the article.
- Keep the name exactly as the article spells it.
- Skip cities, regions and generic mentions ("the beach", "a restaurant").

Article text:
---
%s
---`
)

// Client wraps a Gemini client for POI extraction.
type Client struct {
	modelName string
	gClient   *genai.Client
}

// NewClient creates an extraction client. The API key is resolved from
// GEMINI_API_KEY (and alternates) or the ai.gemini.api_key config key.
func NewClient(ctx context.Context, modelName string) (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		if apiKey = os.Getenv("GOOGLE_GEMINI_API_KEY"); apiKey == "" {
			if apiKey = os.Getenv("GOOGLE_AI_API_KEY"); apiKey == "" {
				apiKey = viper.GetString("ai.gemini.api_key")
			}
		}
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required. Set GEMINI_API_KEY or ai.gemini.api_key in the config file")
	}

	if modelName == "" {
		modelName = viper.GetString("ai.gemini.model")
		if modelName == "" {
			modelName = DefaultModel
		}
	}

	gClient, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{modelName: modelName, gClient: gClient}, nil
}

// Close releases the underlying Gemini client.
func (c *Client) Close() error {
	return c.gClient.Close()
}

// ExtractPOIs extracts points of interest from a cleaned article. A
// malformed model response is retried once before giving up.
func (c *Client) ExtractPOIs(ctx context.Context, article core.Article) ([]core.POI, error) {
	if strings.TrimSpace(article.CleanedText) == "" {
		return nil, fmt.Errorf("article %s has no cleaned text to extract from", article.ID)
	}

	prompt := fmt.Sprintf(ExtractPOIsPromptTemplate, article.CleanedText)

	var payloads []poiPayload
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		raw, err := c.generateContent(ctx, prompt)
		if err != nil {
			return nil, err
		}
		payloads, lastErr = parsePOIResponse(raw)
		if lastErr == nil {
			break
		}
		logger.Warn("Malformed extraction response, retrying", "article", article.ID, "attempt", attempt+1, "error", lastErr)
	}
	if lastErr != nil {
		return nil, fmt.Errorf("extraction response stayed malformed after retry: %w", lastErr)
	}

	source := article.URL
	if source == "" {
		source = article.Title
	}
	pois := make([]core.POI, 0, len(payloads))
	for _, p := range payloads {
		poi := core.POI{
			ID:            uuid.NewString(),
			Name:          strings.TrimSpace(p.Name),
			Category:      strings.TrimSpace(p.Category),
			SourceArticle: source,
		}
		if p.Latitude != nil && p.Longitude != nil {
			poi.Coordinates = &core.Coordinates{Latitude: *p.Latitude, Longitude: *p.Longitude}
		}
		pois = append(pois, poi)
	}
	return pois, nil
}

func (c *Client) generateContent(ctx context.Context, prompt string) (string, error) {
	model := c.gClient.GenerativeModel(c.modelName)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from model")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no text parts in model response")
	}
	return b.String(), nil
}

// poiPayload is the JSON shape the model is asked to produce. Coordinates
// are optional; most articles do not carry them.
type poiPayload struct {
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// parsePOIResponse validates the model output: a JSON array, possibly
// wrapped in a markdown code fence, where every entry has a non-empty name.
func parsePOIResponse(raw string) ([]poiPayload, error) {
	cleaned := stripCodeFence(raw)

	var payloads []poiPayload
	if err := json.Unmarshal([]byte(cleaned), &payloads); err != nil {
		return nil, fmt.Errorf("response is not a JSON array: %w", err)
	}
	for i, p := range payloads {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("entry %d has an empty name", i)
		}
	}
	return payloads, nil
}

// stripCodeFence removes a surrounding ```json ... ``` fence if present.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
