// Package catalog fetches canonical place records from the geographic
// catalog service.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"gazetteer/internal/core"
)

// Client talks to the catalog HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a catalog client. apiKey may be empty for catalogs
// that do not require auth.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// regionResponse is the catalog's wire shape: places grouped by cluster.
type regionResponse struct {
	Region   string `json:"region"`
	Clusters []struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Places []struct {
			ID       string `json:"id"`
			Name     string `json:"name"`
			Category string `json:"category"`
		} `json:"places"`
	} `json:"clusters"`
}

// FetchPlaces fetches every place record for a region, flattened into a
// single list. Catalog order is preserved: clusters in response order,
// places in order within each cluster.
func (c *Client) FetchPlaces(ctx context.Context, region string) ([]core.PlaceRecord, error) {
	if region == "" {
		return nil, fmt.Errorf("region is required")
	}

	endpoint := fmt.Sprintf("%s/regions/%s/places", c.baseURL, url.PathEscape(region))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("catalog returned status %d for region %q: %s", resp.StatusCode, region, string(body))
	}

	var parsed regionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	var records []core.PlaceRecord
	for _, cluster := range parsed.Clusters {
		for _, place := range cluster.Places {
			records = append(records, core.PlaceRecord{
				ID:          place.ID,
				Name:        place.Name,
				Category:    place.Category,
				ClusterID:   cluster.ID,
				ClusterName: cluster.Name,
			})
		}
	}
	return records, nil
}
