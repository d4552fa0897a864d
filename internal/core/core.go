package core

import "time"

// Coordinates is an optional lat/lng pair carried through for display.
// The matcher never reads it.
type Coordinates struct {
	Latitude    float64 `json:"latitude"`     // Latitude in decimal degrees
	Longitude   float64 `json:"longitude"`    // Longitude in decimal degrees
	DisplayName string  `json:"display_name"` // Optional display name from the geocoder
}

// POI is a point of interest extracted from an article, pending clustering.
type POI struct {
	ID            string       `json:"id"`                    // Unique identifier for the POI
	Name          string       `json:"name"`                  // Display name, free text
	Category      string       `json:"category"`              // Free-text category label (e.g. "monument", "beach")
	SourceArticle string       `json:"source_article"`        // Provenance: URL or title of the source article
	Coordinates   *Coordinates `json:"coordinates,omitempty"` // Optional coordinates for downstream display
}

// PlaceRecord is a canonical place from the geographic catalog.
// Every record belongs to exactly one cluster.
type PlaceRecord struct {
	ID          string `json:"id"`           // Identifier of the place record
	Name        string `json:"name"`         // Canonical place name
	Category    string `json:"category"`     // Free-text type
	ClusterID   string `json:"cluster_id"`   // Identifier of the cluster this place belongs to
	ClusterName string `json:"cluster_name"` // Display name of that cluster
}

// Confidence is the coarse trust bucket derived from a similarity score.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// MatchSuggestion is the best candidate found for a POI, whether or not it
// was accepted.
type MatchSuggestion struct {
	Candidate  PlaceRecord `json:"candidate"`  // The place record judged most similar
	Score      float64     `json:"score"`      // Similarity in [0,1]
	Confidence Confidence  `json:"confidence"` // Derived from the score
}

// AssignedPOI is a POI together with its match outcome. Which bucket of a
// ClusterAssignment it sits in determines the cluster it was placed in; the
// struct itself carries no cluster id, so an "unassigned" sentinel can never
// collide with a real cluster id.
type AssignedPOI struct {
	POI           POI              `json:"poi"`                       // The original POI, unmodified
	PlaceRecordID string           `json:"place_record_id,omitempty"` // Matched place record, empty if none
	Suggestion    *MatchSuggestion `json:"suggestion,omitempty"`      // Best suggestion considered, even if rejected
	AutoAssigned  bool             `json:"auto_assigned"`             // True if placed by the matcher, false for manual moves
}

// ClusterUnassigned labels the unassigned bucket in stats and exports.
const ClusterUnassigned = "unassigned"

// ClusterAssignment is the full output of one matching run. The multiset
// union of Unassigned and all Clusters lists equals the input POI list.
type ClusterAssignment struct {
	Unassigned   []AssignedPOI            `json:"unassigned"`    // POIs no candidate claimed
	Clusters     map[string][]AssignedPOI `json:"clusters"`      // Cluster id -> assigned POIs, pre-seeded for every known cluster
	ClusterNames map[string]string        `json:"cluster_names"` // Cluster id -> display name, for rendering
}

// MatchStats are aggregate counts derived from a ClusterAssignment.
type MatchStats struct {
	TotalPOIs     int            `json:"total_pois"`     // Assigned + Unassigned
	Assigned      int            `json:"assigned"`       // POIs placed in a named cluster
	Unassigned    int            `json:"unassigned"`     // POIs left unplaced
	AutoMatched   int            `json:"auto_matched"`   // Assigned by the matcher
	ManualMatched int            `json:"manual_matched"` // Assigned by way of a manual review move
	ByCluster     map[string]int `json:"by_cluster"`     // Per-cluster counts, empty clusters report 0
}

// Article is a fetched source article, pending POI extraction.
type Article struct {
	ID          string    `json:"id"`           // Unique identifier for the article
	URL         string    `json:"url"`          // Where it was fetched from
	Title       string    `json:"title"`        // Title of the article
	FetchedHTML string    `json:"fetched_html"` // Raw HTML content fetched
	CleanedText string    `json:"cleaned_text"` // Cleaned and parsed text content
	DateFetched time.Time `json:"date_fetched"` // Timestamp when the article was fetched
}
