// Package storage talks to the object storage HTTP API used for sauce images.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client moves uploaded objects between holding and permanent paths.
type Client struct {
	BaseURL    string
	Bucket     string
	ServiceKey string
	HTTPClient *http.Client
}

const defaultTimeout = 10 * time.Second

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: defaultTimeout}
}

// Move relocates an object inside the bucket. Intake uses it to promote a
// temp upload to its permanent per-supplier path once the sauce row exists.
func (c *Client) Move(ctx context.Context, sourceKey, destinationKey string) error {
	if c == nil || strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("storage: client not configured")
	}
	source := strings.TrimLeft(strings.TrimSpace(sourceKey), "/")
	destination := strings.TrimLeft(strings.TrimSpace(destinationKey), "/")
	if source == "" || destination == "" {
		return fmt.Errorf("storage: source and destination keys are required")
	}
	body, err := json.Marshal(map[string]string{
		"bucketId":       c.Bucket,
		"sourceKey":      source,
		"destinationKey": destination,
	})
	if err != nil {
		return err
	}
	endpoint := strings.TrimRight(c.BaseURL, "/") + "/object/move"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.ServiceKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.ServiceKey)
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("storage: move %s: %w", source, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("storage: move %s: status %d: %s", source, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return nil
}

// ObjectURL returns the public URL of an object in the bucket.
func (c *Client) ObjectURL(key string) string {
	return fmt.Sprintf("%s/object/public/%s/%s",
		strings.TrimRight(c.BaseURL, "/"), c.Bucket, strings.TrimLeft(key, "/"))
}
