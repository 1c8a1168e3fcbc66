package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// VertexProvider generates embeddings through the Vertex AI prediction API.
// Authentication uses Application Default Credentials (the
// GOOGLE_APPLICATION_CREDENTIALS key file or the ambient environment).
type VertexProvider struct {
	ProjectID string
	Location  string
	Model     string

	tokenSource oauth2.TokenSource
	httpClient  *http.Client
}

func NewVertexProvider(projectID, location, model string) (*VertexProvider, error) {
	if location == "" {
		location = "us-central1"
	}
	if model == "" {
		model = "textembedding-gecko@003"
	}

	ts, err := google.DefaultTokenSource(context.Background(), "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return nil, fmt.Errorf("vertex credentials: %w", err)
	}

	return &VertexProvider{
		ProjectID:   projectID,
		Location:    location,
		Model:       model,
		tokenSource: ts,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type vertexInstance struct {
	TaskType string `json:"task_type"`
	Content  string `json:"content"`
}

type vertexRequest struct {
	Instances []vertexInstance `json:"instances"`
}

type vertexResponse struct {
	Predictions []struct {
		Embeddings struct {
			Values []float32 `json:"values"`
		} `json:"embeddings"`
	} `json:"predictions"`
}

func (p *VertexProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	token, err := p.tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("vertex token: %w", err)
	}

	reqBody := vertexRequest{
		Instances: []vertexInstance{
			{TaskType: "CLUSTERING", Content: text},
		},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(
		"https://%s-aiplatform.googleapis.com/v1/projects/%s/locations/%s/publishers/google/models/%s:predict",
		p.Location, p.ProjectID, p.Location, p.Model,
	)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resByte, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from vertex response, code %d, body %s", res.StatusCode, string(resByte))
	}

	var parsed vertexResponse
	if err := json.Unmarshal(resByte, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Predictions) == 0 || len(parsed.Predictions[0].Embeddings.Values) == 0 {
		return nil, fmt.Errorf("vertex response contained no embedding values")
	}

	return parsed.Predictions[0].Embeddings.Values, nil
}
