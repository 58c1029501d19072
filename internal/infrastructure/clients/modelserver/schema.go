package modelserver

import (
	"encoding/json"
	"fmt"
	"os"

	apperrors "github.com/voyageai/recommender-backend/pkg/errors"
)

// LoadSchema reads the ordered feature column list exported at training time.
// The file is a JSON array of column names and ships alongside the model; a
// mismatch between this artifact and the feature builder is a deployment
// inconsistency, so violations fail loudly at startup.
func LoadSchema(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewScoringInputError(fmt.Sprintf("failed to read feature schema %s: %v", path, err))
	}

	var columns []string
	if err := json.Unmarshal(data, &columns); err != nil {
		return nil, apperrors.NewScoringInputError(fmt.Sprintf("feature schema %s is not a JSON string array: %v", path, err))
	}

	if len(columns) == 0 {
		return nil, apperrors.NewScoringInputError(fmt.Sprintf("feature schema %s is empty", path))
	}

	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if c == "" {
			return nil, apperrors.NewScoringInputError(fmt.Sprintf("feature schema %s contains an empty column name", path))
		}
		if _, dup := seen[c]; dup {
			return nil, apperrors.NewScoringInputError(fmt.Sprintf("feature schema %s contains duplicate column %q", path, c))
		}
		seen[c] = struct{}{}
	}

	return columns, nil
}
