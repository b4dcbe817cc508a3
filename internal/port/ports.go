// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/noisapp/voice-bfv-go/internal/domain"
)

// FinanceAPI forwards finance operations to the organizer backend.
type FinanceAPI interface {
	ListGroupExpenses(ctx context.Context, vc domain.VoiceContext) ([]domain.FinanceRecord, error)
	CreateExpense(ctx context.Context, vc domain.VoiceContext, payload *domain.FinancePayload) (*domain.FinanceRecord, error)
}

// TripsAPI forwards trip operations to the organizer backend.
type TripsAPI interface {
	ListTrips(ctx context.Context, vc domain.VoiceContext) ([]domain.TripRecord, error)
	CreateTrip(ctx context.Context, vc domain.VoiceContext, payload *domain.TripPayload) (*domain.TripRecord, error)
}

// ActivitiesAPI forwards group activity operations to the organizer backend.
type ActivitiesAPI interface {
	ListGroupActivities(ctx context.Context, vc domain.VoiceContext, upcomingOnly bool) ([]map[string]any, error)
	CreateActivity(ctx context.Context, vc domain.VoiceContext, payload *domain.ActivityPayload) (map[string]any, error)
}

// DatesAPI forwards couple-date operations to the organizer backend.
type DatesAPI interface {
	ListDates(ctx context.Context, vc domain.VoiceContext) ([]map[string]any, error)
	CreateDate(ctx context.Context, vc domain.VoiceContext, payload *domain.DatePayload) (map[string]any, error)
}

// PlaceSearcher finds venues near a coordinate by keyword.
type PlaceSearcher interface {
	SearchNearby(ctx context.Context, query domain.PlaceQuery) ([]domain.PlaceRecord, error)
}

// FinanceIntentParser extracts a structured finance intent from free-form
// speech. Implemented by the OpenAI adapter; Enabled reports whether the
// adapter is configured so callers can skip it entirely.
type FinanceIntentParser interface {
	Enabled() bool
	ParseFinanceIntent(ctx context.Context, text string) (*domain.FinanceIntent, error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
