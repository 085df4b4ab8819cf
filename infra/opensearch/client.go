package opensearch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mstgnz/goepay/infra/config"
	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

const (
	SystemLogIndex    = "epay-system-logs"
	NotificationIndex = "epay-notifications"
)

// Client wraps the OpenSearch client
type Client struct {
	client *opensearch.Client
	config *config.AppConfig
}

// NewClient creates a new OpenSearch client and makes sure the log indices exist.
func NewClient(cfg *config.AppConfig) (*Client, error) {
	opensearchConfig := opensearch.Config{
		Addresses:     []string{cfg.OpenSearchURL},
		MaxRetries:    3,
		RetryOnStatus: []int{502, 503, 504, 429},
		RetryBackoff: func(i int) time.Duration {
			return time.Duration(i) * 100 * time.Millisecond
		},
	}

	if cfg.OpenSearchUser != "" && cfg.OpenSearchPass != "" {
		opensearchConfig.Username = cfg.OpenSearchUser
		opensearchConfig.Password = cfg.OpenSearchPass
	}

	client, err := opensearch.NewClient(opensearchConfig)
	if err != nil {
		return nil, err
	}

	osClient := &Client{
		client: client,
		config: cfg,
	}

	if cfg.EnableLogging {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := osClient.setupIndices(ctx); err != nil {
			log.Printf("Warning: Failed to setup OpenSearch indices: %v", err)
		}
	}

	return osClient, nil
}

// GetClient returns the underlying OpenSearch client
func (c *Client) GetClient() *opensearch.Client {
	return c.client
}

// IsEnabled returns whether OpenSearch logging is enabled
func (c *Client) IsEnabled() bool {
	return c.config.EnableLogging
}

var indexMappings = map[string]string{
	SystemLogIndex: `{
		"mappings": {
			"properties": {
				"timestamp":   {"type": "date", "format": "strict_date_optional_time||epoch_millis"},
				"level":       {"type": "keyword"},
				"message":     {"type": "text"},
				"component":   {"type": "keyword"},
				"function":    {"type": "keyword"},
				"request_id":  {"type": "keyword"},
				"invoice":     {"type": "keyword"},
				"error":       {"type": "text"},
				"environment": {"type": "keyword"},
				"service":     {"type": "keyword"}
			}
		},
		"settings": {"number_of_shards": 1, "number_of_replicas": 0}
	}`,
	NotificationIndex: `{
		"mappings": {
			"properties": {
				"timestamp":       {"type": "date", "format": "strict_date_optional_time||epoch_millis"},
				"request_id":      {"type": "keyword"},
				"invoice":         {"type": "keyword"},
				"status":          {"type": "keyword"},
				"pay_time":        {"type": "keyword"},
				"stan":            {"type": "keyword"},
				"bcode":           {"type": "keyword"},
				"acknowledgement": {"type": "keyword"},
				"remote_addr":     {"type": "keyword"},
				"error":           {"type": "text"}
			}
		},
		"settings": {"number_of_shards": 1, "number_of_replicas": 0}
	}`,
}

// setupIndices creates the system log and notification indices when missing.
func (c *Client) setupIndices(ctx context.Context) error {
	for _, indexName := range []string{SystemLogIndex, NotificationIndex} {
		exists, err := c.indexExists(ctx, indexName)
		if err != nil {
			return fmt.Errorf("checking index %s: %w", indexName, err)
		}
		if exists {
			continue
		}
		if err := c.createIndex(ctx, indexName, indexMappings[indexName]); err != nil {
			return fmt.Errorf("creating index %s: %w", indexName, err)
		}
		log.Printf("Created OpenSearch index: %s", indexName)
	}
	return nil
}

func (c *Client) indexExists(ctx context.Context, indexName string) (bool, error) {
	req := opensearchapi.IndicesExistsRequest{
		Index: []string{indexName},
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return false, err
	}
	defer res.Body.Close()

	return res.StatusCode == 200, nil
}

func (c *Client) createIndex(ctx context.Context, indexName, mapping string) error {
	req := opensearchapi.IndicesCreateRequest{
		Index: indexName,
		Body:  strings.NewReader(mapping),
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index creation error: %s", res.String())
	}

	return nil
}
