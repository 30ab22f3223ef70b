// Package lookup resolves the machine's public address to a geographic
// location, either through web services or a local MaxMind database, and
// polls for changes in the background.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/f13rce/mapip/geo"
)

// ErrNoLocation is returned when the geolocation service answers without a
// usable coordinate field.
var ErrNoLocation = errors.New("lookup: response has no location")

// Resolver resolves the caller's current public address to a location.
type Resolver interface {
	Resolve(ctx context.Context) (geo.Location, error)
}

// HTTPResolver resolves through two web services: a plain-text endpoint
// returning the caller's public address, then a JSON geolocation endpoint
// keyed by that address.
type HTTPResolver struct {
	IPURL  string // returns the bare public address as text
	GeoURL string // base URL; queried as GeoURL/<ip>/json
	client *http.Client
}

// geoResponse is the geolocation service's JSON shape. loc is
// "<lat>,<lon>"; the name fields are optional.
type geoResponse struct {
	Loc     string `json:"loc"`
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

// NewHTTPResolver builds a resolver with a bounded request timeout. The
// timeout caps each of the two lookups so a dead service degrades to a
// failed poll instead of a stalled render loop.
func NewHTTPResolver(ipURL, geoURL string, timeout time.Duration) *HTTPResolver {
	return &HTTPResolver{
		IPURL:  ipURL,
		GeoURL: geoURL,
		client: &http.Client{Timeout: timeout},
	}
}

// Resolve performs the two sequential lookups. Either failing fails the
// whole resolve; the caller keeps its previous location.
func (r *HTTPResolver) Resolve(ctx context.Context) (geo.Location, error) {
	ip, err := r.publicIP(ctx)
	if err != nil {
		return geo.Location{}, err
	}

	url := fmt.Sprintf("%s/%s/json", strings.TrimSuffix(r.GeoURL, "/"), ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return geo.Location{}, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return geo.Location{}, fmt.Errorf("geolocation request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return geo.Location{}, fmt.Errorf("geolocation request: status %d", resp.StatusCode)
	}

	var data geoResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return geo.Location{}, fmt.Errorf("geolocation decode: %w", err)
	}
	if data.Loc == "" {
		return geo.Location{}, ErrNoLocation
	}
	lat, lon, err := parseLoc(data.Loc)
	if err != nil {
		return geo.Location{}, err
	}

	return geo.Location{
		IP:      ip,
		Lat:     lat,
		Lon:     lon,
		City:    orUnknown(data.City),
		Region:  orUnknown(data.Region),
		Country: orUnknown(data.Country),
	}, nil
}

// publicIP fetches the caller's public address as trimmed plain text.
func (r *HTTPResolver) publicIP(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.IPURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("public IP request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("public IP request: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return "", fmt.Errorf("public IP read: %w", err)
	}
	ip := strings.TrimSpace(string(body))
	if ip == "" {
		return "", errors.New("lookup: empty public IP response")
	}
	return ip, nil
}

// parseLoc splits a "<lat>,<lon>" pair.
func parseLoc(loc string) (float64, float64, error) {
	parts := strings.SplitN(loc, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("lookup: malformed loc %q", loc)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("lookup: malformed loc %q: %w", loc, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("lookup: malformed loc %q: %w", loc, err)
	}
	return lat, lon, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
