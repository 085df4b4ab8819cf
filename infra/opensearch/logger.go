package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

// NotificationLog is one verified gateway notification and the answer sent back.
type NotificationLog struct {
	Timestamp       time.Time `json:"timestamp"`
	RequestID       string    `json:"request_id"`
	Invoice         string    `json:"invoice"`
	Status          string    `json:"status"`
	PayTime         string    `json:"pay_time,omitempty"`
	STAN            string    `json:"stan,omitempty"`
	BCode           string    `json:"bcode,omitempty"`
	Acknowledgement string    `json:"acknowledgement"`
	RemoteAddr      string    `json:"remote_addr,omitempty"`
	Error           string    `json:"error,omitempty"`
}

// Logger handles OpenSearch logging operations
type Logger struct {
	client *Client
}

// NewLogger creates a new OpenSearch logger
func NewLogger(client *Client) *Logger {
	return &Logger{
		client: client,
	}
}

// LogSystemEvent indexes a system log entry.
func (l *Logger) LogSystemEvent(ctx context.Context, entry any) error {
	if !l.client.IsEnabled() {
		return nil
	}
	return l.index(ctx, SystemLogIndex, entry)
}

// LogNotification indexes a processed notification.
func (l *Logger) LogNotification(ctx context.Context, entry NotificationLog) error {
	if !l.client.IsEnabled() {
		return nil
	}

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if entry.RequestID == "" {
		entry.RequestID = uuid.New().String()
	}

	return l.index(ctx, NotificationIndex, entry)
}

func (l *Logger) index(ctx context.Context, indexName string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal log: %w", err)
	}

	req := opensearchapi.IndexRequest{
		Index: indexName,
		Body:  bytes.NewReader(body),
	}

	res, err := req.Do(ctx, l.client.GetClient())
	if err != nil {
		return fmt.Errorf("failed to index log: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("opensearch error: %s", res.String())
	}

	return nil
}

// GetNotifications returns the stored notifications of an invoice, newest first.
func (l *Logger) GetNotifications(ctx context.Context, invoice string) ([]NotificationLog, error) {
	if !l.client.IsEnabled() {
		return nil, fmt.Errorf("logging is disabled")
	}

	query := map[string]any{
		"query": map[string]any{
			"term": map[string]any{"invoice": invoice},
		},
		"sort": []map[string]any{
			{"timestamp": map[string]string{"order": "desc"}},
		},
		"size": l.historyLimit(),
	}

	queryJSON, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	req := opensearchapi.SearchRequest{
		Index: []string{NotificationIndex},
		Body:  bytes.NewReader(queryJSON),
	}

	res, err := req.Do(ctx, l.client.GetClient())
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("opensearch search error: %s", res.String())
	}

	return decodeNotificationHits(res.Body)
}

func (l *Logger) historyLimit() int {
	if limit := l.client.config.HistoryLimit; limit > 0 {
		return limit
	}
	return 100
}

func decodeNotificationHits(r io.Reader) ([]NotificationLog, error) {
	var searchResult struct {
		Hits struct {
			Hits []struct {
				Source NotificationLog `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(r).Decode(&searchResult); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}

	logs := make([]NotificationLog, len(searchResult.Hits.Hits))
	for i, hit := range searchResult.Hits.Hits {
		logs[i] = hit.Source
	}
	return logs, nil
}
