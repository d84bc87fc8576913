package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"medscan_gateway/models"
)

const userAgent = "medscan-gateway/1.0"

// Client wraps the Nominatim geocoding API. Both directions are
// best-effort for callers: a failed lookup degrades the map, nothing
// else.
type Client struct {
	baseURL string
	region  string
	http    *http.Client
}

func NewClient(baseURL, region string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		region:  region,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type reverseResponse struct {
	Address struct {
		Suburb  string `json:"suburb"`
		City    string `json:"city"`
		Village string `json:"village"`
	} `json:"address"`
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Reverse resolves coordinates to a human-readable area name, preferring
// suburb over city over village.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("format", "json")

	var parsed reverseResponse
	if err := c.get(ctx, "/reverse", params, &parsed); err != nil {
		return "", err
	}

	switch {
	case parsed.Address.Suburb != "":
		return parsed.Address.Suburb, nil
	case parsed.Address.City != "":
		return parsed.Address.City, nil
	case parsed.Address.Village != "":
		return parsed.Address.Village, nil
	}
	return "", nil
}

// Forward resolves a free-form location string to map coordinates.
// Returns nil when nothing matched.
func (c *Client) Forward(ctx context.Context, location string) (*models.Coordinates, error) {
	q := location
	if c.region != "" {
		q = location + ", " + c.region
	}
	params := url.Values{}
	params.Set("q", q)
	params.Set("format", "json")
	params.Set("limit", "1")

	var results []searchResult
	if err := c.get(ctx, "/search", params, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, err
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, err
	}
	return &models.Coordinates{Lat: lat, Lng: lng}, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	// Nominatim rejects requests without an identifying agent
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("geocoder returned %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
