// Package graph owns the one-way content ingestion into the graph store:
// tagged, categorized content nodes with their embedding vectors.
package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ContentParams is the payload of one save. The embedding is generated
// upstream; this layer only persists it.
type ContentParams struct {
	Text        string
	Category    string
	Subcategory string
	Tags        []string
	Embedding   []float32
}

// ContentWriter is the surface the content service depends on.
type ContentWriter interface {
	SaveContent(ctx context.Context, params ContentParams) (string, error)
}

type Client struct {
	driver neo4j.DriverWithContext
}

func NewClient(uri, username, password string) (*Client, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	return &Client{driver: driver}, nil
}

// VerifyConnectivity checks the connection at startup so a bad graph config
// fails fast instead of on the first save.
func (c *Client) VerifyConnectivity(ctx context.Context) error {
	return c.driver.VerifyConnectivity(ctx)
}

func (c *Client) SaveContent(ctx context.Context, params ContentParams) (string, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	// The driver expects []any for list parameters.
	tags := make([]any, len(params.Tags))
	for i, tag := range params.Tags {
		tags[i] = tag
	}
	embedding := make([]any, len(params.Embedding))
	for i, v := range params.Embedding {
		embedding[i] = float64(v)
	}

	contentID, err := neo4j.ExecuteWrite(ctx, session, func(tx neo4j.ManagedTransaction) (string, error) {
		result, err := tx.Run(ctx, saveContentCypher, map[string]any{
			"text":        params.Text,
			"category":    params.Category,
			"subcategory": params.Subcategory,
			"tags":        tags,
			"embedding":   embedding,
		})
		if err != nil {
			return "", err
		}

		record, err := result.Single(ctx)
		if err != nil {
			return "", err
		}

		value, found := record.Get("contentId")
		if !found {
			return "", fmt.Errorf("write returned no contentId")
		}
		id, ok := value.(string)
		if !ok {
			return "", fmt.Errorf("contentId has unexpected type %T", value)
		}
		return id, nil
	})
	if err != nil {
		return "", fmt.Errorf("save content: %w", err)
	}
	return contentID, nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}
