package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"gazetteer/internal/core"
)

// Store is the SQLite-backed persistence layer for extracted POIs and
// cluster assignments.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new store instance with SQLite database
func NewStore(dataDir string) (*Store, error) {
	// Ensure data directory exists
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "gazetteer.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{
		db:   db,
		path: dbPath,
	}

	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// initialize creates the necessary tables
func (s *Store) initialize() error {
	poisTable := `
	CREATE TABLE IF NOT EXISTS pois (
		id TEXT PRIMARY KEY,
		guide_id TEXT,
		name TEXT,
		category TEXT,
		source_article TEXT,
		coordinates TEXT,
		date_added DATETIME
	);`

	assignmentsTable := `
	CREATE TABLE IF NOT EXISTS assignments (
		guide_id TEXT PRIMARY KEY,
		assignment TEXT,
		stats TEXT,
		date_updated DATETIME
	);`

	tables := []string{poisTable, assignmentsTable}
	for _, table := range tables {
		if _, err := s.db.Exec(table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// SavePOIs stores the POIs extracted for a guide. Existing POIs with the
// same id are replaced.
func (s *Store) SavePOIs(guideID string, pois []core.POI) error {
	query := `
	INSERT OR REPLACE INTO pois
	(id, guide_id, name, category, source_article, coordinates, date_added)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	for _, poi := range pois {
		var coords string
		if poi.Coordinates != nil {
			raw, err := json.Marshal(poi.Coordinates)
			if err != nil {
				return fmt.Errorf("failed to marshal coordinates for POI %s: %w", poi.ID, err)
			}
			coords = string(raw)
		}

		_, err := s.db.Exec(query,
			poi.ID,
			guideID,
			poi.Name,
			poi.Category,
			poi.SourceArticle,
			coords,
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to save POI %s: %w", poi.ID, err)
		}
	}

	return nil
}

// GetPOIs retrieves all POIs stored for a guide, in insertion order.
func (s *Store) GetPOIs(guideID string) ([]core.POI, error) {
	query := `
	SELECT id, name, category, source_article, coordinates
	FROM pois
	WHERE guide_id = ?
	ORDER BY rowid`

	rows, err := s.db.Query(query, guideID)
	if err != nil {
		return nil, fmt.Errorf("failed to query POIs: %w", err)
	}
	defer rows.Close()

	var pois []core.POI
	for rows.Next() {
		var poi core.POI
		var coords string
		if err := rows.Scan(&poi.ID, &poi.Name, &poi.Category, &poi.SourceArticle, &coords); err != nil {
			return nil, fmt.Errorf("failed to scan POI: %w", err)
		}
		if coords != "" {
			var c core.Coordinates
			if err := json.Unmarshal([]byte(coords), &c); err != nil {
				return nil, fmt.Errorf("failed to unmarshal coordinates for POI %s: %w", poi.ID, err)
			}
			poi.Coordinates = &c
		}
		pois = append(pois, poi)
	}

	return pois, rows.Err()
}

// SaveAssignment stores the cluster assignment and its stats for a guide,
// replacing any previous run wholesale.
func (s *Store) SaveAssignment(guideID string, assignment *core.ClusterAssignment, stats *core.MatchStats) error {
	assignmentJSON, err := json.Marshal(assignment)
	if err != nil {
		return fmt.Errorf("failed to marshal assignment: %w", err)
	}
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO assignments
	(guide_id, assignment, stats, date_updated)
	VALUES (?, ?, ?, ?)`

	_, err = s.db.Exec(query, guideID, string(assignmentJSON), string(statsJSON), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save assignment: %w", err)
	}
	return nil
}

// GetAssignment retrieves the stored assignment and stats for a guide.
// Returns nil, nil, nil when no run has been saved.
func (s *Store) GetAssignment(guideID string) (*core.ClusterAssignment, *core.MatchStats, error) {
	query := `
	SELECT assignment, stats
	FROM assignments
	WHERE guide_id = ?`

	var assignmentJSON, statsJSON string
	err := s.db.QueryRow(query, guideID).Scan(&assignmentJSON, &statsJSON)
	if err == sql.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan assignment: %w", err)
	}

	var assignment core.ClusterAssignment
	if err := json.Unmarshal([]byte(assignmentJSON), &assignment); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal assignment: %w", err)
	}
	var stats core.MatchStats
	if err := json.Unmarshal([]byte(statsJSON), &stats); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal stats: %w", err)
	}

	return &assignment, &stats, nil
}

// Stats returns row counts for the store
func (s *Store) Stats() (map[string]int, error) {
	stats := make(map[string]int)

	tables := []string{"pois", "assignments"}
	for _, table := range tables {
		var count int
		if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		stats[table] = count
	}

	return stats, nil
}
