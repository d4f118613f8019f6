// Package directions wraps the Google Maps Directions API and normalizes
// its responses into the Journey shape the rest of the application consumes.
package directions

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"googlemaps.github.io/maps"

	"github.com/tmalloy/wayfarer/internal/store"
	"github.com/tmalloy/wayfarer/pkg/logger"
	"github.com/tmalloy/wayfarer/pkg/metrics"
)

// ErrNoRouteFound is returned when the provider answers successfully but
// with an empty route list.
var ErrNoRouteFound = errors.New("no route found between the specified locations")

// ProviderError wraps a failure reported by the maps provider itself,
// keeping it distinguishable from the empty-result case.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("maps provider error: %v", e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// directionsAPI is the slice of the maps client this package uses.
type directionsAPI interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

// Client fetches routes and converts them to journeys.
type Client struct {
	api     directionsAPI
	log     logger.Logger
	metrics *metrics.Metrics
}

// NewClient creates a directions client on top of a configured maps client.
func NewClient(api *maps.Client, log logger.Logger, m *metrics.Metrics) *Client {
	if api == nil {
		panic("maps client cannot be nil")
	}
	if log == nil {
		panic("logger cannot be nil")
	}
	return &Client{api: api, log: log, metrics: m}
}

// newClientWithAPI is the test seam for substituting a fake provider.
func newClientWithAPI(api directionsAPI, log logger.Logger, m *metrics.Metrics) *Client {
	return &Client{api: api, log: log, metrics: m}
}

// Fetch requests a single route from origin to destination for the given
// travel mode. A zero departureTime means "now". Live traffic estimates are
// requested only for driving. Returns ErrNoRouteFound on an empty result
// set and a *ProviderError on any provider failure.
func (c *Client) Fetch(ctx context.Context, origin, destination, mode string, departureTime time.Time) (store.Journey, error) {
	req := &maps.DirectionsRequest{
		Origin:        origin,
		Destination:   destination,
		Mode:          maps.Mode(mode),
		Alternatives:  false,
		DepartureTime: "now",
	}
	if !departureTime.IsZero() {
		req.DepartureTime = strconv.FormatInt(departureTime.Unix(), 10)
	}
	if mode == "driving" {
		req.TrafficModel = maps.TrafficModelBestGuess
	}

	start := time.Now()
	routes, _, err := c.api.Directions(ctx, req)
	if c.metrics != nil {
		c.metrics.RouteLookupsTotal.Inc()
		c.metrics.RouteLookupDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if c.metrics != nil {
			c.metrics.RouteLookupsFailed.Inc()
		}
		c.log.Error("Directions request failed",
			logger.StringField("origin", origin),
			logger.StringField("destination", destination),
			logger.ErrorField(err))
		return store.Journey{}, &ProviderError{Err: err}
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		if c.metrics != nil {
			c.metrics.RouteLookupsFailed.Inc()
		}
		return store.Journey{}, ErrNoRouteFound
	}

	leg := routes[0].Legs[0]
	journey := store.Journey{
		Origin:            orFallback(leg.StartAddress, origin),
		Destination:       orFallback(leg.EndAddress, destination),
		Mode:              mode,
		Duration:          formatDuration(leg.Duration),
		Distance:          leg.Distance.HumanReadable,
		DurationInTraffic: trafficDuration(leg.DurationInTraffic),
		Steps:             convertSteps(leg.Steps),
	}

	c.log.Debug("Route fetched",
		logger.StringField("origin", journey.Origin),
		logger.StringField("destination", journey.Destination),
		logger.IntField("steps", len(journey.Steps)))
	return journey, nil
}

func convertSteps(steps []*maps.Step) []store.Step {
	result := make([]store.Step, 0, len(steps))
	for i, s := range steps {
		result = append(result, store.Step{
			Step:        i + 1,
			Instruction: StripTags(s.HTMLInstructions),
			Distance:    s.Distance.HumanReadable,
			Duration:    formatDuration(s.Duration),
		})
	}
	return result
}

// trafficDuration renders the traffic estimate; the API leaves it zero for
// non-driving modes and for routes without live data.
func trafficDuration(d time.Duration) string {
	if d == 0 {
		return "N/A"
	}
	return formatDuration(d)
}

// formatDuration renders a duration the way the provider's own text fields
// do, in whole hours and minutes.
func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "Unknown"
	}

	mins := int(d.Round(time.Minute) / time.Minute)
	if mins < 1 {
		return "1 min"
	}

	hours := mins / 60
	mins = mins % 60

	switch {
	case hours == 0:
		return pluralize(mins, "min")
	case mins == 0:
		return pluralize(hours, "hour")
	default:
		return fmt.Sprintf("%s %s", pluralize(hours, "hour"), pluralize(mins, "min"))
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func orFallback(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
