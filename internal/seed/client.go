package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/backup-toolkit/internal/models"
)

// Response is what the endpoint answered for one account
type Response struct {
	StatusCode int
	Body       string
}

// Created reports whether the endpoint accepted the account
func (r *Response) Created() bool {
	return r.StatusCode == http.StatusOK || r.StatusCode == http.StatusCreated
}

// Client posts accounts to the create-account endpoint
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a client. A zero timeout leaves requests unbounded.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

// CreateAccount posts one user. Any status code is returned as a Response;
// only transport failures are errors.
func (c *Client) CreateAccount(ctx context.Context, requestID string, user *models.SeedUser) (*Response, error) {
	body, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: string(data)}, nil
}
