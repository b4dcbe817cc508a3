package voice

import (
	"context"

	"github.com/noisapp/voice-bfv-go/internal/domain"
	"github.com/noisapp/voice-bfv-go/internal/nlp"
)

func (s *Service) handlePlaces(ctx context.Context, text string) (*domain.DispatchResult, error) {
	normalized := nlp.Normalize(text)
	if normalized == "" {
		return nil, &domain.ErrValidation{Field: "text", Message: "Comando de voz vazio ou inválido."}
	}

	keyword := nlp.ExtractPlaceKeyword(normalized)
	if keyword == "" {
		return nil, &domain.ErrMissingEntity{
			Entity:  "keyword",
			Message: "Nenhum tipo de local reconhecido no comando.",
		}
	}

	if cached, ok := s.placeCache.Get(keyword); ok {
		s.metrics.IncrCacheHit("places")
		return placesResult(cached), nil
	}
	s.metrics.IncrCacheMiss("places")

	// identical keywords within the TTL window share one upstream call
	v, err, _ := s.searchGroup.Do(keyword, func() (any, error) {
		records, err := s.places.SearchNearby(ctx, domain.PlaceQuery{
			Latitude:  s.placesDefaults.Latitude,
			Longitude: s.placesDefaults.Longitude,
			Radius:    s.placesDefaults.Radius,
			Keyword:   keyword,
		})
		if err != nil {
			return nil, err
		}
		s.placeCache.Set(keyword, records)
		return records, nil
	})
	if err != nil {
		return nil, err
	}

	return placesResult(v.([]domain.PlaceRecord)), nil
}

func placesResult(records []domain.PlaceRecord) *domain.DispatchResult {
	if len(records) == 0 {
		return &domain.DispatchResult{
			Success: true,
			Message: "Nenhum local encontrado.",
			Data:    []domain.PlaceRecord{},
		}
	}
	return &domain.DispatchResult{Success: true, Data: records, Total: len(records)}
}
