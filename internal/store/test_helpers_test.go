package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Wassimkraiem/plant-tracker/internal/garden"
)

var testNow = time.Date(2024, time.October, 15, 12, 0, 0, 0, time.UTC)

// createTestStore creates a new file-backed store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithNow(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestPlant returns a minimal valid plant owned by userID.
func createTestPlant(userID int64, name string) garden.Plant {
	return garden.Plant{
		UserID:                userID,
		Name:                  name,
		Type:                  "Tomato",
		PlantedDate:           testNow.AddDate(0, 0, -20),
		WateringFrequencyDays: 3,
	}
}
