package api

import (
	"encoding/json"
	"fmt"

	"github.com/EvgDevt/weather-app/pkg/models"
)

// Authenticate exchanges credentials for a token. The token is kept on the
// client and sent with every following request.
func (c *Client) Authenticate(email, password string) error {
	resp, err := c.doRequest("POST", basePath+"/auth/authenticate", models.AuthenticationRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var auth models.AuthenticationResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	c.token = auth.Token
	return nil
}

// Register creates a new USER account.
func (c *Client) Register(req models.RegistrationRequest) (*models.UserResponse, error) {
	resp, err := c.doRequest("POST", basePath+"/auth/register", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var user models.UserResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &user, nil
}

// Logout revokes the client's token server-side and drops it locally.
func (c *Client) Logout() error {
	resp, err := c.doRequest("POST", basePath+"/auth/logout", nil)
	if err != nil {
		return err
	}
	resp.Body.Close()

	c.token = ""
	return nil
}
