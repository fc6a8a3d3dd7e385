package usecase

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"go.ngs.io/ephem-api/internal/ephem"
)

// --- Custom moieties for the classic orbs methods ---

type orbOverrideEntry struct {
	Body   string  `json:"body"`
	Moiety float64 `json:"moiety"`
}

var (
	orbOverridesOnce  sync.Once
	orbOverridesTable map[string]float64
)

func getOrbOverrides() map[string]float64 {
	orbOverridesOnce.Do(func() {
		path := os.Getenv("ORB_OVERRIDES_PATH")
		if path == "" {
			path = "data/orb_overrides.json"
		}
		if table, err := loadOrbOverrides(path); err == nil {
			orbOverridesTable = table
		}
	})
	return orbOverridesTable
}

// loadOrbOverrides reads a JSON list of {"body", "moiety"} entries. Body
// names are normalized to their canonical spelling.
func loadOrbOverrides(path string) (map[string]float64, error) {
	//nolint:gosec // G304: Path comes from configuration.
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []orbOverrideEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse orb overrides: %w", err)
	}
	table := make(map[string]float64, len(entries))
	for _, e := range entries {
		body, err := ephem.ParseBody(e.Body)
		if err != nil {
			return nil, fmt.Errorf("orb override: %w", err)
		}
		if e.Moiety <= 0 {
			return nil, fmt.Errorf("orb override for %s: moiety must be positive", body)
		}
		table[body.String()] = e.Moiety
	}
	return table, nil
}
