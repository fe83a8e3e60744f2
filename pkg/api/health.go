package api

import (
	"encoding/json"
	"fmt"
)

// HealthStatus represents the server health status
type HealthStatus struct {
	Status string `json:"status"`
}

// Health checks if the server is healthy
func (c *Client) Health() (*HealthStatus, error) {
	resp, err := c.doRequest("GET", "/health", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var health HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &health, nil
}
