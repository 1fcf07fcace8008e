package suggest

import (
	"github.com/Wassimkraiem/plant-tracker/internal/canonical"
)

// Snapshot converts ps to the generic form used for canonical encoding and
// golden files.
func Snapshot(ps PlantSuggestions) map[string]any {
	items := make([]any, len(ps.Suggestions))
	for i, s := range ps.Suggestions {
		items[i] = map[string]any{
			"type":     string(s.Kind),
			"title":    s.Title,
			"message":  s.Message,
			"icon":     s.Icon,
			"priority": int64(s.Priority),
		}
	}
	return map[string]any{
		"plantId":     ps.PlantID,
		"plantName":   ps.PlantName,
		"suggestions": items,
	}
}

// SnapshotAll converts a batch result, keeping its order.
func SnapshotAll(results []PlantSuggestions) []any {
	out := make([]any, len(results))
	for i, ps := range results {
		out[i] = Snapshot(ps)
	}
	return out
}

// MarshalCanonical returns the canonical JSON of a batch result.
func MarshalCanonical(results []PlantSuggestions) ([]byte, error) {
	return canonical.Marshal(SnapshotAll(results))
}

// Fingerprint identifies a batch result. Equal results always have equal
// fingerprints.
func Fingerprint(results []PlantSuggestions) (string, error) {
	return canonical.Fingerprint(canonical.DomainSuggestions, SnapshotAll(results))
}
