// Package aura wraps the managed-instance REST API: list, detail, pause,
// resume and delete, all authorized through the client-credentials token
// provider.
package aura

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"aura-ops-be/internal/apperror"
)

// API is the surface the reconciler depends on.
type API interface {
	ListInstances(ctx context.Context) ([]InstanceSummary, error)
	GetInstance(ctx context.Context, id string) (*InstanceDetail, error)
	PerformAction(ctx context.Context, id string, action Action) (*ActionResult, error)
	DeleteInstance(ctx context.Context, id string) error
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(provider *TokenProvider, baseURL string, timeout time.Duration) *Client {
	httpClient := provider.HTTPClient(context.Background())
	httpClient.Timeout = timeout

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) ListInstances(ctx context.Context) ([]InstanceSummary, error) {
	const op = "list instances"

	body, err := c.do(ctx, http.MethodGet, "/instances", op, "")
	if err != nil {
		return nil, err
	}

	var envelope listEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, malformed(op, "", err)
	}
	for _, item := range envelope.Data {
		if item.ID == "" {
			return nil, malformed(op, "", fmt.Errorf("list item missing id"))
		}
	}
	return envelope.Data, nil
}

func (c *Client) GetInstance(ctx context.Context, id string) (*InstanceDetail, error) {
	const op = "get instance detail"

	if id == "" {
		return nil, apperror.NewValidation("instance id is required")
	}

	body, err := c.do(ctx, http.MethodGet, "/instances/"+id, op, id)
	if err != nil {
		return nil, err
	}

	var envelope detailEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, malformed(op, id, err)
	}
	if envelope.Data.ID == "" || envelope.Data.Status == "" {
		return nil, malformed(op, id, fmt.Errorf("detail missing id or status"))
	}
	return &envelope.Data, nil
}

func (c *Client) PerformAction(ctx context.Context, id string, action Action) (*ActionResult, error) {
	op := fmt.Sprintf("%s instance", action)

	if id == "" {
		return nil, apperror.NewValidation("instance id is required")
	}
	if !action.Valid() {
		return nil, apperror.NewValidation("invalid action %q, must be %q or %q", action, ActionPause, ActionResume)
	}

	body, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/instances/%s/%s", id, action), op, id)
	if err != nil {
		return nil, err
	}

	var envelope actionEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, malformed(op, id, err)
	}
	return &envelope.Data, nil
}

func (c *Client) DeleteInstance(ctx context.Context, id string) error {
	const op = "delete instance"

	if id == "" {
		return apperror.NewValidation("instance id is required")
	}

	_, err := c.do(ctx, http.MethodDelete, "/instances/"+id, op, id)
	return err
}

func (c *Client) do(ctx context.Context, method, path, op, instanceID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, &apperror.UpstreamRequestError{Op: op, InstanceID: instanceID, Detail: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyError(op, instanceID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperror.UpstreamRequestError{Op: op, InstanceID: instanceID, Detail: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apperror.UpstreamRequestError{
			Op:         op,
			InstanceID: instanceID,
			StatusCode: resp.StatusCode,
			Detail:     truncate(string(body), 256),
		}
	}
	return body, nil
}

func malformed(op, instanceID string, err error) error {
	return &apperror.UpstreamRequestError{
		Op:         op,
		InstanceID: instanceID,
		Detail:     fmt.Sprintf("malformed response body: %v", err),
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
