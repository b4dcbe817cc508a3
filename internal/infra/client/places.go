package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/noisapp/voice-bfv-go/internal/domain"
	"github.com/noisapp/voice-bfv-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
)

// PlacesClient searches venues through the Google Places nearby search API.
type PlacesClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
}

// NewPlacesClient creates a new PlacesClient.
func NewPlacesClient(httpClient *http.Client, baseURL, apiKey string, cb *gobreaker.CircuitBreaker, cfg resilience.Config) *PlacesClient {
	return &PlacesClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		cb:         cb,
		cfg:        cfg,
	}
}

// nearbyResponse mirrors the Places API wire format, only the fields the app
// shows.
type nearbyResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Name             string   `json:"name"`
		Vicinity         string   `json:"vicinity"`
		Rating           float64  `json:"rating"`
		UserRatingsTotal int      `json:"user_ratings_total"`
		Types            []string `json:"types"`
		OpeningHours     *struct {
			OpenNow bool `json:"open_now"`
		} `json:"opening_hours"`
		Photos []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"results"`
}

// SearchNearby finds venues around the query coordinate matching the keyword
// and shapes them for the app.
func (c *PlacesClient) SearchNearby(ctx context.Context, query domain.PlaceQuery) ([]domain.PlaceRecord, error) {
	ctx, span := tracer.Start(ctx, "PlacesClient.SearchNearby")
	defer span.End()
	span.SetAttributes(attribute.String("places.keyword", query.Keyword))

	var payload nearbyResponse

	_, err := c.cb.Execute(func() (any, error) {
		innerErr := resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			params := url.Values{}
			params.Set("location", fmt.Sprintf("%f,%f", query.Latitude, query.Longitude))
			params.Set("radius", fmt.Sprintf("%d", query.Radius))
			params.Set("keyword", query.Keyword)
			params.Set("language", "pt-BR")
			params.Set("key", c.apiKey)

			reqURL := c.baseURL + "/nearbysearch/json?" + params.Encode()
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
			if err != nil {
				return err
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("places API returned status %d", resp.StatusCode)
			}

			return json.NewDecoder(resp.Body).Decode(&payload)
		})
		if innerErr != nil {
			return nil, innerErr
		}
		return nil, nil
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "places", Err: err}
	}

	if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
		return nil, &domain.ErrExternalService{
			Service: "places",
			Err:     fmt.Errorf("places API status %s", payload.Status),
		}
	}

	records := make([]domain.PlaceRecord, 0, len(payload.Results))
	for _, r := range payload.Results {
		rec := domain.PlaceRecord{
			Name:         r.Name,
			Address:      r.Vicinity,
			Rating:       r.Rating,
			TotalRatings: r.UserRatingsTotal,
			Types:        r.Types,
		}
		if r.OpeningHours != nil {
			open := r.OpeningHours.OpenNow
			rec.OpenNow = &open
		}
		if len(r.Photos) > 0 && r.Photos[0].PhotoReference != "" {
			rec.PhotoURL = fmt.Sprintf(
				"%s/photo?maxwidth=400&photo_reference=%s&key=%s",
				c.baseURL, r.Photos[0].PhotoReference, c.apiKey,
			)
		}
		records = append(records, rec)
	}
	return records, nil
}
