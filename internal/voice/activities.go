package voice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/noisapp/voice-bfv-go/internal/domain"
	"github.com/noisapp/voice-bfv-go/internal/nlp"
)

const defaultLocation = "Local não informado"

func (s *Service) handleActivities(ctx context.Context, action domain.Action, text string, vc domain.VoiceContext) (*domain.DispatchResult, error) {
	switch action {
	case domain.ActionView:
		upcomingOnly := strings.Contains(nlp.Normalize(text), "proxim")
		rows, err := s.activities.ListGroupActivities(ctx, vc, upcomingOnly)
		if err != nil {
			return nil, err
		}
		return &domain.DispatchResult{Success: true, Data: rows, Total: len(rows)}, nil

	case domain.ActionCreate:
		when, err := s.extractEventMoment(text, "atividade")
		if err != nil {
			return nil, err
		}

		location := s.extractEventLocation(text)
		name := nlp.ExtractEventName(text, "Atividade")

		payload := &domain.ActivityPayload{
			GroupID:   vc.GroupID,
			EventName: name,
			Date:      nlp.ToLocalISO(when),
			Location:  location,
			Description: fmt.Sprintf("%s em %s (%s)",
				name, location, when.Format("02/01/2006 15:04")),
			CreatedBy: vc.UserID,
		}

		created, err := s.activities.CreateActivity(ctx, vc, payload)
		if err != nil {
			return nil, err
		}
		return &domain.DispatchResult{
			Success: true,
			Message: "Atividade criada com sucesso!",
			Data:    created,
		}, nil
	}

	return nil, &domain.ErrValidation{Field: "action", Message: "ação de atividades desconhecida"}
}

// extractEventMoment combines the date and time slots of a scheduling
// command. The date is required; the time defaults to midnight. The result
// is clamped strictly into the future.
func (s *Service) extractEventMoment(text, kind string) (time.Time, error) {
	normalized := nlp.Normalize(text)

	date := nlp.ExtractDate(normalized, s.clock)
	if date.Value == nil {
		return time.Time{}, &domain.ErrMissingEntity{
			Entity:  "date",
			Message: fmt.Sprintf("Nenhuma data reconhecida. Diga quando será a %s, por exemplo 'amanhã' ou '10/03'.", kind),
		}
	}

	when := *date.Value
	if clock := nlp.ExtractTime(normalized); clock.Value != nil {
		when = time.Date(when.Year(), when.Month(), when.Day(),
			clock.Value.Hour, clock.Value.Minute, 0, 0, when.Location())
	}

	return nlp.ClampFuture(when, s.clock), nil
}

func (s *Service) extractEventLocation(text string) string {
	loc := nlp.ExtractLocation(nlp.Normalize(text))
	if loc.Text == "" {
		return defaultLocation
	}
	return loc.Text
}
