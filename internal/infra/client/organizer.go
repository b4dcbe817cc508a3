// Package client holds the HTTP adapters for the organizer backend and the
// place search API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/noisapp/voice-bfv-go/internal/domain"
	"github.com/noisapp/voice-bfv-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("client")

// OrganizerClient forwards voice-command effects to the organizer backend,
// which owns expenses, trips, activities and dates.
type OrganizerClient struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
}

// NewOrganizerClient creates a new OrganizerClient.
func NewOrganizerClient(httpClient *http.Client, baseURL string, cb *gobreaker.CircuitBreaker, cfg resilience.Config) *OrganizerClient {
	return &OrganizerClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		cb:         cb,
		cfg:        cfg,
	}
}

// do runs one request through the circuit breaker and the retry policy and
// decodes the JSON response into out (skipped when out is nil).
func (c *OrganizerClient) do(ctx context.Context, vc domain.VoiceContext, method, path string, body any, out any) error {
	_, err := c.cb.Execute(func() (any, error) {
		innerErr := resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			var reader *bytes.Reader
			if body != nil {
				raw, err := json.Marshal(body)
				if err != nil {
					return err
				}
				reader = bytes.NewReader(raw)
			} else {
				reader = bytes.NewReader(nil)
			}

			req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
			if err != nil {
				return err
			}
			if body != nil {
				req.Header.Set("Content-Type", "application/json")
			}
			if vc.AuthToken != "" {
				req.Header.Set("Authorization", "Bearer "+vc.AuthToken)
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return fmt.Errorf("organizer API returned status %d for %s %s", resp.StatusCode, method, path)
			}

			if out == nil {
				return nil
			}
			return json.NewDecoder(resp.Body).Decode(out)
		})
		if innerErr != nil {
			return nil, innerErr
		}
		return nil, nil
	})
	if err != nil {
		return &domain.ErrExternalService{Service: "organizer", Err: err}
	}
	return nil
}

// ListGroupExpenses fetches the caller group's expenses.
func (c *OrganizerClient) ListGroupExpenses(ctx context.Context, vc domain.VoiceContext) ([]domain.FinanceRecord, error) {
	ctx, span := tracer.Start(ctx, "OrganizerClient.ListGroupExpenses")
	defer span.End()
	span.SetAttributes(attribute.Int("group.id", vc.GroupID))

	var rows []domain.FinanceRecord
	if err := c.do(ctx, vc, http.MethodGet, fmt.Sprintf("/finances/group/%d", vc.GroupID), nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateExpense records a new expense for the caller's group.
func (c *OrganizerClient) CreateExpense(ctx context.Context, vc domain.VoiceContext, payload *domain.FinancePayload) (*domain.FinanceRecord, error) {
	ctx, span := tracer.Start(ctx, "OrganizerClient.CreateExpense")
	defer span.End()
	span.SetAttributes(
		attribute.Int("group.id", vc.GroupID),
		attribute.String("expense.category", payload.Category),
	)

	var created domain.FinanceRecord
	if err := c.do(ctx, vc, http.MethodPost, "/finances", payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListTrips fetches the caller's trips.
func (c *OrganizerClient) ListTrips(ctx context.Context, vc domain.VoiceContext) ([]domain.TripRecord, error) {
	ctx, span := tracer.Start(ctx, "OrganizerClient.ListTrips")
	defer span.End()

	var rows []domain.TripRecord
	if err := c.do(ctx, vc, http.MethodGet, "/trips", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateTrip records a new planned trip.
func (c *OrganizerClient) CreateTrip(ctx context.Context, vc domain.VoiceContext, payload *domain.TripPayload) (*domain.TripRecord, error) {
	ctx, span := tracer.Start(ctx, "OrganizerClient.CreateTrip")
	defer span.End()
	span.SetAttributes(attribute.String("trip.city", payload.City))

	var created domain.TripRecord
	if err := c.do(ctx, vc, http.MethodPost, "/trips", payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListGroupActivities fetches a group's activities, optionally only the
// upcoming ones.
func (c *OrganizerClient) ListGroupActivities(ctx context.Context, vc domain.VoiceContext, upcomingOnly bool) ([]map[string]any, error) {
	ctx, span := tracer.Start(ctx, "OrganizerClient.ListGroupActivities")
	defer span.End()
	span.SetAttributes(attribute.Bool("upcoming_only", upcomingOnly))

	path := fmt.Sprintf("/activities/group/%d", vc.GroupID)
	if upcomingOnly {
		path += "/upcoming"
	}

	var rows []map[string]any
	if err := c.do(ctx, vc, http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateActivity records a new group activity.
func (c *OrganizerClient) CreateActivity(ctx context.Context, vc domain.VoiceContext, payload *domain.ActivityPayload) (map[string]any, error) {
	ctx, span := tracer.Start(ctx, "OrganizerClient.CreateActivity")
	defer span.End()
	span.SetAttributes(attribute.String("activity.name", payload.EventName))

	var created map[string]any
	if err := c.do(ctx, vc, http.MethodPost, "/activities", payload, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// ListDates fetches the couple's dates.
func (c *OrganizerClient) ListDates(ctx context.Context, vc domain.VoiceContext) ([]map[string]any, error) {
	ctx, span := tracer.Start(ctx, "OrganizerClient.ListDates")
	defer span.End()

	var rows []map[string]any
	if err := c.do(ctx, vc, http.MethodGet, "/dates", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateDate records a new couple date.
func (c *OrganizerClient) CreateDate(ctx context.Context, vc domain.VoiceContext, payload *domain.DatePayload) (map[string]any, error) {
	ctx, span := tracer.Start(ctx, "OrganizerClient.CreateDate")
	defer span.End()
	span.SetAttributes(attribute.String("date.location", payload.Location))

	var created map[string]any
	if err := c.do(ctx, vc, http.MethodPost, "/dates", payload, &created); err != nil {
		return nil, err
	}
	return created, nil
}
