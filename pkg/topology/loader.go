package topology

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load parses an abstract topology file. The format is chosen by file
// extension: .json is parsed as JSON, everything else as YAML.
func Load(path string) (*AbstractTopology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading topology file: %w", err)
	}

	var abs AbstractTopology
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &abs); err != nil {
			return nil, fmt.Errorf("parsing topology JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &abs); err != nil {
			return nil, fmt.Errorf("parsing topology YAML: %w", err)
		}
	}

	if len(abs.Devices) == 0 {
		return nil, fmt.Errorf("topology %s defines no devices", path)
	}
	return &abs, nil
}
