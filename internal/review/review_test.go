package review

import (
	"testing"

	"gazetteer/internal/core"
)

func testAssignment() *core.ClusterAssignment {
	return &core.ClusterAssignment{
		Unassigned: []core.AssignedPOI{
			{
				POI: core.POI{ID: "poi-1", Name: "Mystery Beach"},
				Suggestion: &core.MatchSuggestion{
					Candidate:  core.PlaceRecord{ID: "p2", Name: "Playa Jardín", ClusterID: "south"},
					Score:      0.5,
					Confidence: core.ConfidenceLow,
				},
			},
		},
		Clusters: map[string][]core.AssignedPOI{
			"north": {
				{
					POI:           core.POI{ID: "poi-2", Name: "Pico del Teide"},
					PlaceRecordID: "p1",
					AutoAssigned:  true,
				},
			},
			"south": {},
		},
		ClusterNames: map[string]string{"north": "North Coast", "south": "South Coast"},
	}
}

func TestMovePOIToCluster(t *testing.T) {
	assignment := testAssignment()

	if err := MovePOI(assignment, core.ClusterUnassigned, 0, "south"); err != nil {
		t.Fatalf("Expected move to succeed, got error: %v", err)
	}

	if len(assignment.Unassigned) != 0 {
		t.Errorf("Expected unassigned bucket to be empty, got %d entries", len(assignment.Unassigned))
	}
	if len(assignment.Clusters["south"]) != 1 {
		t.Fatalf("Expected south cluster to have 1 entry, got %d", len(assignment.Clusters["south"]))
	}

	moved := assignment.Clusters["south"][0]
	if moved.POI.ID != "poi-1" {
		t.Errorf("Wrong POI moved: %s", moved.POI.ID)
	}
	if moved.AutoAssigned {
		t.Error("Manual move should clear AutoAssigned")
	}
	if moved.PlaceRecordID != "" {
		t.Errorf("Manual move should clear PlaceRecordID, got %q", moved.PlaceRecordID)
	}
	if moved.Suggestion == nil {
		t.Error("Manual move should keep the original suggestion")
	}
}

func TestMovePOIToUnassigned(t *testing.T) {
	assignment := testAssignment()

	if err := MovePOI(assignment, "north", 0, core.ClusterUnassigned); err != nil {
		t.Fatalf("Expected move to succeed, got error: %v", err)
	}

	if len(assignment.Clusters["north"]) != 0 {
		t.Errorf("Expected north cluster to be empty, got %d entries", len(assignment.Clusters["north"]))
	}
	if len(assignment.Unassigned) != 2 {
		t.Fatalf("Expected 2 unassigned entries, got %d", len(assignment.Unassigned))
	}
	moved := assignment.Unassigned[1]
	if moved.POI.ID != "poi-2" || moved.PlaceRecordID != "" || moved.AutoAssigned {
		t.Errorf("Move did not reset match fields: %+v", moved)
	}
}

func TestMovePOISameBucketIsNoop(t *testing.T) {
	assignment := testAssignment()

	if err := MovePOI(assignment, "north", 0, "north"); err != nil {
		t.Fatalf("Expected same-bucket move to be a no-op, got error: %v", err)
	}
	if !assignment.Clusters["north"][0].AutoAssigned {
		t.Error("Same-bucket move should leave the entry untouched")
	}
}

func TestMovePOIUnknownCluster(t *testing.T) {
	assignment := testAssignment()

	if err := MovePOI(assignment, core.ClusterUnassigned, 0, "west"); err == nil {
		t.Error("Expected error for unknown target cluster")
	}
}

func TestMovePOIIndexOutOfRange(t *testing.T) {
	assignment := testAssignment()

	if err := MovePOI(assignment, "north", 5, "south"); err == nil {
		t.Error("Expected error for out-of-range index")
	}
}

func TestBucketKeysOrder(t *testing.T) {
	assignment := testAssignment()

	keys := bucketKeys(assignment)
	want := []string{core.ClusterUnassigned, "north", "south"}
	if len(keys) != len(want) {
		t.Fatalf("Expected %d bucket keys, got %d", len(want), len(keys))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Bucket key %d: expected %s, got %s", i, want[i], keys[i])
		}
	}
}
