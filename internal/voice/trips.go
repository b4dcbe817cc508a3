package voice

import (
	"context"
	"fmt"
	"strings"

	"github.com/noisapp/voice-bfv-go/internal/domain"
	"github.com/noisapp/voice-bfv-go/internal/nlp"
)

func (s *Service) handleTrips(ctx context.Context, action domain.Action, text string, vc domain.VoiceContext) (*domain.DispatchResult, error) {
	switch action {
	case domain.ActionView:
		rows, err := s.trips.ListTrips(ctx, vc)
		if err != nil {
			return nil, err
		}

		// only trips still being planned are read back to the user
		planned := make([]map[string]any, 0, len(rows))
		for _, trip := range rows {
			if !strings.Contains(strings.ToLower(trip.Status), "plan") {
				continue
			}
			planned = append(planned, map[string]any{
				"id":        trip.ID,
				"city":      trip.DisplayCity(),
				"startDate": trip.DisplayStartDate(),
				"endDate":   firstNonEmpty(trip.EndDate, trip.EndDateAlt),
				"status":    trip.Status,
				"estimated": trip.Estimated,
			})
		}
		return &domain.DispatchResult{Success: true, Data: planned, Total: len(planned)}, nil

	case domain.ActionCreate:
		city := nlp.ExtractTripCity(text)
		if city == "" {
			return nil, &domain.ErrMissingEntity{Entity: "city", Message: "City not detected."}
		}

		rng := nlp.ParseTripRange(text, s.clock)
		if rng.StartDate == "" {
			return nil, &domain.ErrMissingEntity{Entity: "startDate", Message: "No start date recognized."}
		}

		payload := &domain.TripPayload{
			City:        city,
			StartDate:   rng.StartDate,
			EndDate:     rng.EndDate,
			Status:      "Planejando",
			Description: nlp.ExtractTripDescription(text),
		}
		if budget, ok := nlp.ExtractTripBudget(text); ok {
			payload.Estimated = fmt.Sprintf("R$ %.2f", budget)
			payload.Budget = fmt.Sprintf("%.2f", budget)
		}

		created, err := s.trips.CreateTrip(ctx, vc, payload)
		if err != nil {
			return nil, err
		}
		return &domain.DispatchResult{
			Success: true,
			Message: "Viagem criada com sucesso!",
			Data:    created,
		}, nil
	}

	return nil, &domain.ErrValidation{Field: "action", Message: "ação de viagens desconhecida"}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
