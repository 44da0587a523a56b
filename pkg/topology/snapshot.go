package topology

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SaveSnapshot writes the resolved topology as pretty-printed JSON for
// later reload or editing. This is the engine's only persistence; the
// topology itself is never cached.
func SaveSnapshot(t *Topology, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating snapshot directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(t, "", "    ")
	if err != nil {
		return fmt.Errorf("marshalling topology snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing topology snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads a topology snapshot previously written by
// SaveSnapshot.
func LoadSnapshot(path string) (*Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading topology snapshot: %w", err)
	}

	var t Topology
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing topology snapshot: %w", err)
	}
	return &t, nil
}
