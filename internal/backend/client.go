package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ElephaSolutions/rtoappfrontend/internal/constants"
	"github.com/ElephaSolutions/rtoappfrontend/internal/models"
)

// ErrUnauthorized is returned when the backend answers 401 or 403; callers
// redirect the browser to the login page instead of showing an error.
var ErrUnauthorized = errors.New("backend rejected session credentials")

// StatusError is returned for any other non-success backend response.
type StatusError struct {
	StatusCode int
	Operation  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Operation, e.StatusCode)
}

// Client talks to the remote vehicle backend. The browser's session cookies
// are forwarded on every call, so authentication stays between the browser
// and the backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body []byte, cookies []*http.Cookie) (*http.Request, error) {
	var reader *bytes.Buffer
	if body != nil {
		reader = bytes.NewBuffer(body)
	} else {
		reader = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	return req, nil
}

// ListVehicles fetches one page of records plus the authoritative total.
func (c *Client) ListVehicles(ctx context.Context, cookies []*http.Cookie, page, pageSize int) (*models.VehicleListPage, error) {
	path := fmt.Sprintf("/api/v1/vehicle?%s=%d&%s=%d",
		constants.PageQueryParam, page, constants.PageSizeQueryParam, pageSize)

	req, err := c.newRequest(ctx, http.MethodGet, path, nil, cookies)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vehicles: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Operation: "list vehicles"}
	}

	var listPage models.VehicleListPage
	if err := json.NewDecoder(resp.Body).Decode(&listPage); err != nil {
		return nil, fmt.Errorf("failed to decode vehicle list: %w", err)
	}

	return &listPage, nil
}

// SaveVehicle creates a record, or updates it when the vehicle number
// already exists.
func (c *Client) SaveVehicle(ctx context.Context, cookies []*http.Cookie, record *models.VehicleRecord) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal vehicle record: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/vehicle", body, cookies)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to save vehicle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode, Operation: "save vehicle"}
	}

	c.logger.Info(fmt.Sprintf("%s Saved vehicle record", constants.AppName()),
		zap.String("vehicle_number", record.VehicleNumber))
	return nil
}

// DeleteVehicle removes the record keyed by vehicle number. The backend takes
// the key as a request header, not a path segment.
func (c *Client) DeleteVehicle(ctx context.Context, cookies []*http.Cookie, vehicleNumber string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/v1/vehicle", nil, cookies)
	if err != nil {
		return err
	}
	req.Header.Set("vehicle_number", vehicleNumber)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Operation: "delete vehicle"}
	}

	c.logger.Info(fmt.Sprintf("%s Deleted vehicle record", constants.AppName()),
		zap.String("vehicle_number", vehicleNumber))
	return nil
}

// FleetMetadata fetches the dashboard aggregates.
func (c *Client) FleetMetadata(ctx context.Context, cookies []*http.Cookie) (*models.FleetMetadata, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/vehicle/metadata", nil, cookies)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fleet metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Operation: "fleet metadata"}
	}

	var metadata models.FleetMetadata
	if err := json.NewDecoder(resp.Body).Decode(&metadata); err != nil {
		return nil, fmt.Errorf("failed to decode fleet metadata: %w", err)
	}

	return &metadata, nil
}

// RecentActivity fetches the dashboard's activity feed.
func (c *Client) RecentActivity(ctx context.Context, cookies []*http.Cookie) ([]models.ActivityEntry, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/vehicle/recent-activity", nil, cookies)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent activity: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Operation: "recent activity"}
	}

	var entries []models.ActivityEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode recent activity: %w", err)
	}

	return entries, nil
}

// Logout invalidates the backend session.
func (c *Client) Logout(ctx context.Context, cookies []*http.Cookie) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/logout", nil, cookies)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call logout: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Operation: "logout"}
	}

	return nil
}
