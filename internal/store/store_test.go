package store

import (
	"testing"

	"gazetteer/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetPOIs(t *testing.T) {
	s := newTestStore(t)

	pois := []core.POI{
		{ID: "poi-1", Name: "Pico del Teide", Category: "volcano", SourceArticle: "https://example.com/tenerife"},
		{ID: "poi-2", Name: "Loro Parque", Category: "zoo", SourceArticle: "https://example.com/tenerife",
			Coordinates: &core.Coordinates{Latitude: 28.4089, Longitude: -16.5656}},
	}
	if err := s.SavePOIs("guide-1", pois); err != nil {
		t.Fatalf("Failed to save POIs: %v", err)
	}

	got, err := s.GetPOIs("guide-1")
	if err != nil {
		t.Fatalf("Failed to get POIs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 POIs, got %d", len(got))
	}
	if got[0].ID != "poi-1" || got[1].ID != "poi-2" {
		t.Errorf("POIs not returned in insertion order: %s, %s", got[0].ID, got[1].ID)
	}
	if got[0].Coordinates != nil {
		t.Error("Expected first POI to have no coordinates")
	}
	if got[1].Coordinates == nil || got[1].Coordinates.Latitude != 28.4089 {
		t.Errorf("Coordinates did not round-trip: %+v", got[1].Coordinates)
	}
}

func TestGetPOIsScopedByGuide(t *testing.T) {
	s := newTestStore(t)

	s.SavePOIs("guide-1", []core.POI{{ID: "poi-1", Name: "Teide"}})
	s.SavePOIs("guide-2", []core.POI{{ID: "poi-2", Name: "Masca"}})

	got, err := s.GetPOIs("guide-1")
	if err != nil {
		t.Fatalf("Failed to get POIs: %v", err)
	}
	if len(got) != 1 || got[0].ID != "poi-1" {
		t.Errorf("Expected only guide-1 POIs, got %+v", got)
	}
}

func TestSaveAndGetAssignment(t *testing.T) {
	s := newTestStore(t)

	assignment := &core.ClusterAssignment{
		Unassigned: []core.AssignedPOI{
			{POI: core.POI{ID: "poi-3", Name: "Mystery Spot"}},
		},
		Clusters: map[string][]core.AssignedPOI{
			"north": {
				{POI: core.POI{ID: "poi-1", Name: "Teide"}, PlaceRecordID: "p1", AutoAssigned: true},
			},
			"south": {},
		},
		ClusterNames: map[string]string{"north": "North Coast", "south": "South Coast"},
	}
	stats := &core.MatchStats{
		TotalPOIs: 2, Assigned: 1, Unassigned: 1, AutoMatched: 1,
		ByCluster: map[string]int{"north": 1, "south": 0},
	}

	if err := s.SaveAssignment("guide-1", assignment, stats); err != nil {
		t.Fatalf("Failed to save assignment: %v", err)
	}

	gotAssignment, gotStats, err := s.GetAssignment("guide-1")
	if err != nil {
		t.Fatalf("Failed to get assignment: %v", err)
	}
	if gotAssignment == nil || gotStats == nil {
		t.Fatal("Expected saved assignment to be returned")
	}
	if len(gotAssignment.Clusters["north"]) != 1 {
		t.Errorf("North cluster did not round-trip: %+v", gotAssignment.Clusters)
	}
	if gotAssignment.Clusters["north"][0].PlaceRecordID != "p1" {
		t.Errorf("PlaceRecordID did not round-trip: %+v", gotAssignment.Clusters["north"][0])
	}
	if len(gotAssignment.Unassigned) != 1 {
		t.Errorf("Unassigned bucket did not round-trip: %+v", gotAssignment.Unassigned)
	}
	if gotStats.AutoMatched != 1 || gotStats.ByCluster["south"] != 0 {
		t.Errorf("Stats did not round-trip: %+v", gotStats)
	}
}

func TestSaveAssignmentOverwrites(t *testing.T) {
	s := newTestStore(t)

	first := &core.ClusterAssignment{
		Clusters:     map[string][]core.AssignedPOI{"north": {}},
		ClusterNames: map[string]string{"north": "North Coast"},
	}
	second := &core.ClusterAssignment{
		Unassigned:   []core.AssignedPOI{{POI: core.POI{ID: "poi-1", Name: "Teide"}}},
		Clusters:     map[string][]core.AssignedPOI{"north": {}},
		ClusterNames: map[string]string{"north": "North Coast"},
	}

	s.SaveAssignment("guide-1", first, &core.MatchStats{})
	s.SaveAssignment("guide-1", second, &core.MatchStats{TotalPOIs: 1, Unassigned: 1})

	got, stats, err := s.GetAssignment("guide-1")
	if err != nil {
		t.Fatalf("Failed to get assignment: %v", err)
	}
	if len(got.Unassigned) != 1 {
		t.Errorf("Expected second save to replace the first, got %+v", got)
	}
	if stats.TotalPOIs != 1 {
		t.Errorf("Expected stats from second save, got %+v", stats)
	}
}

func TestGetAssignmentMiss(t *testing.T) {
	s := newTestStore(t)

	assignment, stats, err := s.GetAssignment("guide-unknown")
	if err != nil {
		t.Fatalf("Expected miss to return no error, got %v", err)
	}
	if assignment != nil || stats != nil {
		t.Errorf("Expected nil results for unknown guide, got %+v, %+v", assignment, stats)
	}
}

func TestStoreStats(t *testing.T) {
	s := newTestStore(t)

	s.SavePOIs("guide-1", []core.POI{{ID: "poi-1", Name: "Teide"}})

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Failed to get store stats: %v", err)
	}
	if stats["pois"] != 1 {
		t.Errorf("Expected 1 POI row, got %d", stats["pois"])
	}
	if stats["assignments"] != 0 {
		t.Errorf("Expected 0 assignment rows, got %d", stats["assignments"])
	}
}
