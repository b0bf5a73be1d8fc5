// Package ninja fetches historical PV generation profiles from the
// renewables.ninja API. The optimization core never talks to the network:
// it consumes the already-resolved per-unit series this package produces.
package ninja

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/kilianp07/bessplan/infra/logger"
)

const defaultBaseURL = "https://www.renewables.ninja/api/data/pv"

// Config holds the site and fetch parameters for a PV profile request.
type Config struct {
	Token      string  `json:"token"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	StartDate  string  `json:"start_date"` // YYYY-MM-DD
	EndDate    string  `json:"end_date"`   // YYYY-MM-DD
	Tilt       float64 `json:"tilt"`
	Azimuth    float64 `json:"azimuth"`
	SystemLoss float64 `json:"system_loss"`
	Tracking   int     `json:"tracking"` // 0 fixed, 1 single-axis, 2 dual-axis
}

// SetDefaults fills the optional fields the way the upstream API expects.
func (c *Config) SetDefaults() {
	if c.Tilt == 0 {
		c.Tilt = 25
	}
	if c.Azimuth == 0 {
		c.Azimuth = 180
	}
	if c.SystemLoss == 0 {
		c.SystemLoss = 0.1
	}
	if c.EndDate == "" {
		c.EndDate = time.Now().Format("2006-01-02")
	}
	if c.StartDate == "" {
		c.StartDate = time.Now().AddDate(-1, 0, 0).Format("2006-01-02")
	}
}

// Client talks to the renewables.ninja API with token authentication.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	log        logger.Logger
}

// NewClient returns a client for the given API token.
func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		token:      token,
		log:        logger.New("ninja-client"),
	}
}

// WithBaseURL points the client at a different endpoint. Used in tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

type pvResponse struct {
	Data map[string]struct {
		Electricity float64 `json:"electricity"`
	} `json:"data"`
}

// FetchPV retrieves the hourly per-unit PV output for the configured site and
// date range. Values are normalized to a 1 MW installation, so they land in
// [0,1].
func (c *Client) FetchPV(ctx context.Context, cfg Config) ([]float64, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(cfg.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(cfg.Longitude, 'f', -1, 64))
	q.Set("date_from", cfg.StartDate)
	q.Set("date_to", cfg.EndDate)
	q.Set("dataset", "merra2")
	q.Set("capacity", "1")
	q.Set("system_loss", strconv.FormatFloat(cfg.SystemLoss, 'f', -1, 64))
	q.Set("tracking", strconv.Itoa(cfg.Tracking))
	q.Set("tilt", strconv.FormatFloat(cfg.Tilt, 'f', -1, 64))
	q.Set("azim", strconv.FormatFloat(cfg.Azimuth, 'f', -1, 64))
	q.Set("format", "json")
	q.Set("local_time", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	var pv pvResponse
	if err := json.Unmarshal(body, &pv); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(pv.Data) == 0 {
		return nil, fmt.Errorf("empty profile in response")
	}

	// JSON object keys carry the timestamps; restore chronological order.
	keys := make([]string, 0, len(pv.Data))
	for k := range pv.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	series := make([]float64, len(keys))
	for i, k := range keys {
		series[i] = pv.Data[k].Electricity
	}
	return series, nil
}
