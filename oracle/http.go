package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"elasticreplan/model"

	cleanhttp "github.com/hashicorp/go-cleanhttp"
)

// httpOracle queries an upstream directions provider over HTTP, bounded by
// a per-call timeout (spec.md §4.1: 2000 ms total latency budget). On any
// failure it degrades to the offline fallback rather than erroring — the
// caller never has to special-case an oracle failure.
type httpOracle struct {
	baseURL string
	mode    model.Mode
	client  *http.Client
}

// NewHTTP builds an Oracle against a directions provider base URL. mode is
// recorded on the oracle, but each Directions call queries the upstream
// and prices the result with the mode passed to that call. client is built with hashicorp/go-cleanhttp's pooled-transport
// defaults rather than the zero-value http.Client, matching the pack's
// convention for outbound HTTP clients that must not share connection
// state with unrelated callers.
func NewHTTP(baseURL string, mode model.Mode, timeout time.Duration) Oracle {
	client := cleanhttp.DefaultPooledClient()
	client.Timeout = timeout
	return &httpOracle{baseURL: baseURL, mode: mode, client: client}
}

type directionsResponse struct {
	DistanceMeters float64 `json:"distance_meters"`
	DurationSec    int     `json:"duration_sec"`
	Polyline       string  `json:"polyline"`
}

func (o *httpOracle) Directions(ctx context.Context, origin, destination model.Coord, mode model.Mode) (Result, error) {
	u, err := url.Parse(o.baseURL)
	if err != nil {
		return Offline(origin, destination, mode), nil
	}
	q := u.Query()
	q.Set("origin", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
	q.Set("destination", fmt.Sprintf("%f,%f", destination.Lat, destination.Lng))
	q.Set("mode", string(mode))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Offline(origin, destination, mode), nil
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return Offline(origin, destination, mode), nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Offline(origin, destination, mode), nil
	}
	var body directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Offline(origin, destination, mode), nil
	}
	return Result{
		CostCents:   costFromDistance(body.DistanceMeters, mode),
		DurationSec: body.DurationSec,
		Polyline:    body.Polyline,
		Available:   true,
	}, nil
}
