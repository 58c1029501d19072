package modelserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/voyageai/recommender-backend/internal/domain/entities"
	"github.com/voyageai/recommender-backend/internal/domain/providers"
	apperrors "github.com/voyageai/recommender-backend/pkg/errors"
)

// Client talks to the model server that hosts the serialized classifier.
// The model is trained and exported elsewhere; this client only requests
// inference-time probabilities.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a model server client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type predictRequest struct {
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
}

type predictResponse struct {
	Probabilities [][]float64 `json:"probabilities"`
}

// PredictProba implements providers.Model. The server answers with one
// probability vector per row, [P(negative), P(positive)].
func (c *Client) PredictProba(ctx context.Context, matrix *entities.FeatureMatrix) ([][]float64, error) {
	payload, err := json.Marshal(predictRequest{
		Columns: matrix.Columns,
		Rows:    matrix.Rows,
	})
	if err != nil {
		return nil, apperrors.NewModelInferenceError("failed to encode feature matrix", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/predict_proba", bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.NewModelInferenceError("failed to build prediction request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewModelInferenceError("model server unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, apperrors.NewModelInferenceError(
			fmt.Sprintf("model server rejected the feature matrix: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
			nil,
		)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, apperrors.NewModelInferenceError("failed to decode model server response", err)
	}

	if len(out.Probabilities) != matrix.RowCount() {
		return nil, apperrors.NewModelInferenceError(
			fmt.Sprintf("model server returned %d probability rows for %d candidates", len(out.Probabilities), matrix.RowCount()),
			nil,
		)
	}

	return out.Probabilities, nil
}

// Health checks the model server's liveness endpoint
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("model server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model server unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

var _ providers.Model = (*Client)(nil)
