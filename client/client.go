package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is the typed API client for the inventory backend. Every request
// re-reads the token from the session and carries it as a Bearer header.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Session    Session
}

func New(baseURL string, session Session) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Session:    session,
	}
}

// do issues one request and decodes the response into out (when non-nil).
// Transport failures map to ErrNetwork; non-2xx responses map to *APIError
// carrying the backend message, or a generic one when the body has none.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	fullURL := c.BaseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.Session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: %v", ErrNetwork, err)
		}
		return nil
	}

	var errBody struct {
		Message string `json:"message"`
	}
	message := unknownErrorMessage
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Message != "" {
		message = errBody.Message
	}
	return &APIError{StatusCode: resp.StatusCode, Message: message}
}

// Login authenticates and stores the token plus profile in the session.
func (c *Client) Login(ctx context.Context, email, password string) (*UserProfile, error) {
	var resp struct {
		Token string       `json:"token"`
		User  *UserProfile `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.Session.Set(resp.Token, resp.User)
	return resp.User, nil
}

// Logout invalidates the stored session.
func (c *Client) Logout() {
	c.Session.Clear()
}

// --- Reference data ---

func (c *Client) Headquarters(ctx context.Context) ([]Headquarter, error) {
	var sites []Headquarter
	err := c.do(ctx, http.MethodGet, "/api/headquarters", nil, nil, &sites)
	return sites, err
}

func (c *Client) Users(ctx context.Context) ([]UserProfile, error) {
	var users []UserProfile
	err := c.do(ctx, http.MethodGet, "/api/users", nil, nil, &users)
	return users, err
}

// AllTools fetches the unscoped full tool list (status + inventory).
func (c *Client) AllTools(ctx context.Context) ([]CatalogItem, error) {
	var tools []CatalogItem
	err := c.do(ctx, http.MethodGet, "/tools/all", nil, nil, &tools)
	return tools, err
}

func (c *Client) AllVehicleParts(ctx context.Context) ([]CatalogItem, error) {
	var parts []CatalogItem
	err := c.do(ctx, http.MethodGet, "/api/vehicle-parts", nil, nil, &parts)
	return parts, err
}

func (c *Client) AllVehicles(ctx context.Context) ([]CatalogVehicle, error) {
	var vehicles []CatalogVehicle
	err := c.do(ctx, http.MethodGet, "/api/vehicles", nil, nil, &vehicles)
	return vehicles, err
}

// --- Site-scoped availability ---

func (c *Client) AvailableTools(ctx context.Context, headquarterID int64) ([]AvailableItem, error) {
	query := url.Values{"headquarterId": {strconv.FormatInt(headquarterID, 10)}}
	var items []AvailableItem
	err := c.do(ctx, http.MethodGet, "/tools/available-for-transfer", query, nil, &items)
	return items, err
}

func (c *Client) AvailableVehicleParts(ctx context.Context, headquarterID int64) ([]AvailableItem, error) {
	query := url.Values{"headquarterId": {strconv.FormatInt(headquarterID, 10)}}
	var items []AvailableItem
	err := c.do(ctx, http.MethodGet, "/api/vehicle-parts/available-for-transfer", query, nil, &items)
	return items, err
}

func (c *Client) AvailableVehicles(ctx context.Context, headquarterID int64) ([]AvailableVehicle, error) {
	query := url.Values{"headquarterId": {strconv.FormatInt(headquarterID, 10)}}
	var vehicles []AvailableVehicle
	err := c.do(ctx, http.MethodGet, "/vehicle/available-for-transfer", query, nil, &vehicles)
	return vehicles, err
}

// --- Transfers ---

func (c *Client) ListTransfers(ctx context.Context, filter TransferFilter) (*TransferPage, error) {
	var page TransferPage
	err := c.do(ctx, http.MethodGet, "/api/transfers", filter.Query(), nil, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetTransfer(ctx context.Context, id int64) (*Transfer, error) {
	var transfer Transfer
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/transfers/%d", id), nil, nil, &transfer)
	if err != nil {
		return nil, err
	}
	return &transfer, nil
}

func (c *Client) CreateTransfer(ctx context.Context, payload TransferPayload) (*Transfer, error) {
	var transfer Transfer
	err := c.do(ctx, http.MethodPost, "/api/transfers", nil, payload, &transfer)
	if err != nil {
		return nil, err
	}
	return &transfer, nil
}

func (c *Client) UpdateTransfer(ctx context.Context, id int64, payload TransferPayload) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/transfers/%d", id), nil, payload, nil)
}

func (c *Client) AcceptTransfer(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/transfers/%d/accept", id), nil, nil, nil)
}

func (c *Client) CancelTransfer(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/transfers/%d/cancel", id), nil, nil, nil)
}
