package tasksdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// BootstrapTokenHeader carries the one-time setup token.
const BootstrapTokenHeader = "X-Bootstrap-Token"

// Client talks to the tasks service. It performs the unauthenticated calls
// and creates Sessions for everything else.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login exchanges a username and password for an access token.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	tok, err := c.LoginToken(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return c.NewSession(tok.AccessToken), nil
}

// LoginToken is Login without wrapping the result in a Session.
func (c *Client) LoginToken(ctx context.Context, username, password string) (*TokenResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/login", "",
		LoginRequest{Username: username, Password: password}, nil)
	if err != nil {
		return nil, err
	}

	out, err := decodeData[TokenResponse](resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// NewSession wraps an access token obtained elsewhere.
func (c *Client) NewSession(accessToken string) *Session {
	return &Session{client: c, accessToken: accessToken}
}

// Bootstrap seeds an empty installation. It only works once and only when
// the server was started with a bootstrap token.
func (c *Client) Bootstrap(ctx context.Context, token string, req BootstrapRequest) (*BootstrapResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/bootstrap", "", req,
		map[string]string{BootstrapTokenHeader: token})
	if err != nil {
		return nil, err
	}

	out, err := decodeData[BootstrapResponse](resp, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, "", nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodePlain(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}
