package typesense

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/havenlink/communitymatch/pkg/config"
	"github.com/havenlink/communitymatch/pkg/retry"
	"github.com/typesense/typesense-go/v2/typesense"
)

// ResourcesCollection is the catalog collection name.
const ResourcesCollection = "resources"

// Client represents a Typesense client.
type Client struct {
	client *typesense.Client
}

// NewClient creates a new Typesense client with exponential backoff retry.
func NewClient(cfg *config.TypesenseConfig) (*Client, error) {
	client := typesense.NewClient(
		typesense.WithServer(cfg.URL),
		typesense.WithAPIKey(cfg.APIKey),
		typesense.WithConnectionTimeout(5*time.Second),
	)

	retryConfig := retry.DefaultConfig()
	err := retry.DoWithLog(
		context.Background(),
		retryConfig,
		"Typesense",
		func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_, err := client.Health(ctx, 2*time.Second)
			return err
		},
		func(attempt int, err error, nextDelay time.Duration) {
			log.Printf("Typesense connection attempt %d failed: %v. Retrying in %v...", attempt, err, nextDelay)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Typesense after retries: %w", err)
	}

	log.Println("Successfully connected to Typesense")
	return &Client{client: client}, nil
}

// Client returns the underlying Typesense client.
func (c *Client) Client() *typesense.Client {
	return c.client
}
