// Package geo resolves a best-effort location for alert messages. The
// resolution policy is three tiers, attempted strictly in order: device
// coordinates, IP-based lookup, then the user-entered city string. A
// later tier runs only when the prior one yielded no coordinates.
package geo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location is a resolved alert location: either a coordinate pair or a
// plain city string when no coordinates could be obtained.
type Location struct {
	Coords *Coordinates
	City   string
}

// Reference renders the location for a message body: a map-query URL when
// coordinates are known, otherwise the city string.
func (l Location) Reference() string {
	if l.Coords != nil {
		return fmt.Sprintf("https://www.google.com/maps?q=%s,%s",
			formatCoord(l.Coords.Latitude), formatCoord(l.Coords.Longitude))
	}
	return l.City
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// IPLocator looks up approximate coordinates for the server's public IP.
type IPLocator interface {
	Locate(ctx context.Context) (*Coordinates, error)
}

type ipAPIResponse struct {
	Status string  `json:"status"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

type ipAPILocator struct {
	client *resty.Client
}

// NewIPLocator creates an IPLocator backed by an ip-api.com style endpoint.
func NewIPLocator(baseURL string) IPLocator {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(5 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Accept", "application/json")
	return &ipAPILocator{client: client}
}

func (l *ipAPILocator) Locate(ctx context.Context) (*Coordinates, error) {
	var out ipAPIResponse
	resp, err := l.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/json")
	if err != nil {
		return nil, fmt.Errorf("ip geolocation request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("ip geolocation returned status %d", resp.StatusCode())
	}
	if out.Status != "success" {
		return nil, fmt.Errorf("ip geolocation failed with status %q", out.Status)
	}
	return &Coordinates{Latitude: out.Lat, Longitude: out.Lon}, nil
}

// Resolver applies the tiered resolution policy.
type Resolver struct {
	locator IPLocator
	logger  zerolog.Logger
}

func NewResolver(locator IPLocator, logger zerolog.Logger) *Resolver {
	return &Resolver{locator: locator, logger: logger}
}

// Resolve returns the best available location. Device coordinates win
// outright; the IP lookup is attempted only without them, and its failure
// degrades to the city string rather than propagating.
func (r *Resolver) Resolve(ctx context.Context, device *Coordinates, city string) Location {
	if device != nil {
		return Location{Coords: device, City: city}
	}
	if r.locator != nil {
		coords, err := r.locator.Locate(ctx)
		if err == nil && coords != nil {
			return Location{Coords: coords, City: city}
		}
		if err != nil {
			r.logger.Warn().Err(err).Msg("ip geolocation unavailable, falling back to city")
		}
	}
	return Location{City: city}
}
