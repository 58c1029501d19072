package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
)

// RunConfig is the on-disk evaluation run configuration.
type RunConfig struct {
	K         int   `json:"k"`
	MinVisits int   `json:"min_visits"`
	MaxUsers  int   `json:"max_users"`
	UserIDs   []int `json:"user_ids,omitempty"` // empty means every eligible user
}

// LoadRunConfig reads and parses an evaluation run config from a JSON file.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run config file: %w", err)
	}

	var config RunConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse run config: %w", err)
	}

	if err := ValidateRunConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// ValidateRunConfig checks that a run config has usable values.
func ValidateRunConfig(config *RunConfig) error {
	if config.K < 1 {
		return fmt.Errorf("k must be at least 1, got %d", config.K)
	}
	if config.MinVisits < 0 {
		return fmt.Errorf("min_visits must not be negative, got %d", config.MinVisits)
	}
	if config.MaxUsers < 0 {
		return fmt.Errorf("max_users must not be negative, got %d", config.MaxUsers)
	}

	seen := make(map[int]struct{}, len(config.UserIDs))
	for i, id := range config.UserIDs {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("user_ids index %d: duplicate user %d", i, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}
