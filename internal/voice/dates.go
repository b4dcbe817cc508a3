package voice

import (
	"context"
	"fmt"

	"github.com/noisapp/voice-bfv-go/internal/domain"
	"github.com/noisapp/voice-bfv-go/internal/nlp"
)

// plannedDateStatus is the organizer's "agendado" status id for new dates.
const plannedDateStatus = 1

func (s *Service) handleDates(ctx context.Context, action domain.Action, text string, vc domain.VoiceContext) (*domain.DispatchResult, error) {
	// the dates endpoints are scoped to the couple, not the group, so the
	// organizer requires the caller's own token
	if vc.AuthToken == "" {
		return nil, &domain.ErrUnauthorized{Message: "Token de autenticação ausente."}
	}

	switch action {
	case domain.ActionView:
		rows, err := s.dates.ListDates(ctx, vc)
		if err != nil {
			return nil, err
		}
		return &domain.DispatchResult{Success: true, Data: rows, Total: len(rows)}, nil

	case domain.ActionCreate:
		when, err := s.extractEventMoment(text, "encontro")
		if err != nil {
			return nil, err
		}

		location := s.extractEventLocation(text)
		name := nlp.ExtractEventName(text, "Encontro")

		payload := &domain.DatePayload{
			Date:     nlp.ToLocalISO(when),
			Location: location,
			Description: fmt.Sprintf("%s em %s (%s)",
				name, location, when.Format("02/01/2006 15:04")),
			StatusID: plannedDateStatus,
		}

		created, err := s.dates.CreateDate(ctx, vc, payload)
		if err != nil {
			return nil, err
		}
		return &domain.DispatchResult{
			Success: true,
			Message: "Encontro marcado com sucesso!",
			Data:    created,
		}, nil
	}

	return nil, &domain.ErrValidation{Field: "action", Message: "ação de encontros desconhecida"}
}
