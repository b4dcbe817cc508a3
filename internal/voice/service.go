// Package voice implements the command dispatcher: it classifies the raw
// text, runs the matching module handler and wraps everything the caller
// needs into a DispatchResult.
package voice

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/noisapp/voice-bfv-go/internal/domain"
	"github.com/noisapp/voice-bfv-go/internal/infra/observability"
	"github.com/noisapp/voice-bfv-go/internal/nlp"
	"github.com/noisapp/voice-bfv-go/internal/port"
)

var tracer = otel.Tracer("voice")

// PlacesDefaults is the fallback search coordinate used when the caller
// sends no location of their own.
type PlacesDefaults struct {
	Latitude  float64
	Longitude float64
	Radius    int
}

// Service routes recognized commands to the organizer backend and the
// place/AI collaborators. All handlers are synchronous: one command runs
// "parse, then act" with at most one collaborator call at a time.
type Service struct {
	finances   port.FinanceAPI
	trips      port.TripsAPI
	activities port.ActivitiesAPI
	dates      port.DatesAPI
	places     port.PlaceSearcher
	ai         port.FinanceIntentParser

	placeCache  port.Cache[[]domain.PlaceRecord]
	searchGroup singleflight.Group

	placesDefaults PlacesDefaults

	clock   nlp.Clock
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewService wires the dispatcher. ai may be a disabled adapter; placeCache
// must not be nil.
func NewService(
	finances port.FinanceAPI,
	trips port.TripsAPI,
	activities port.ActivitiesAPI,
	dates port.DatesAPI,
	places port.PlaceSearcher,
	ai port.FinanceIntentParser,
	placeCache port.Cache[[]domain.PlaceRecord],
	placesDefaults PlacesDefaults,
	clock nlp.Clock,
	logger *zap.Logger,
	metrics *observability.Metrics,
) *Service {
	return &Service{
		finances:       finances,
		trips:          trips,
		activities:     activities,
		dates:          dates,
		places:         places,
		ai:             ai,
		placeCache:     placeCache,
		placesDefaults: placesDefaults,
		clock:          clock,
		logger:         logger,
		metrics:        metrics,
	}
}

// ProcessCommand interprets one voice command. It never returns an error:
// every failure mode is folded into the DispatchResult so the HTTP layer
// only has to translate, not decide.
func (s *Service) ProcessCommand(ctx context.Context, text string, vc domain.VoiceContext) *domain.DispatchResult {
	start := time.Now()

	ctx, span := tracer.Start(ctx, "voice.ProcessCommand")
	defer span.End()

	intent := nlp.DetectIntent(text)
	span.SetAttributes(
		attribute.String("voice.module", string(intent.Module)),
		attribute.String("voice.action", string(intent.Action)),
	)

	if !intent.Recognized() {
		s.metrics.IncrUnrecognized()
		s.logger.Info("voice command not recognized", zap.String("text", text))
		return &domain.DispatchResult{
			Success:             false,
			IntentNotRecognized: true,
			Message:             (&domain.ErrNoIntent{}).Error(),
		}
	}

	operation := string(intent.Module) + "." + string(intent.Action)
	s.metrics.IncrCommand(string(intent.Module), string(intent.Action))
	defer func() {
		s.metrics.RecordRequestDuration(operation, time.Since(start))
	}()

	var (
		res *domain.DispatchResult
		err error
	)
	switch intent.Module {
	case domain.ModuleFinances:
		res, err = s.handleFinances(ctx, intent.Action, text, vc)
	case domain.ModuleTrips:
		res, err = s.handleTrips(ctx, intent.Action, text, vc)
	case domain.ModuleActivities:
		res, err = s.handleActivities(ctx, intent.Action, text, vc)
	case domain.ModuleDates:
		res, err = s.handleDates(ctx, intent.Action, text, vc)
	case domain.ModulePlaces:
		res, err = s.handlePlaces(ctx, text)
	}

	if err != nil {
		return s.resultFromError(err, operation)
	}
	return res
}

// resultFromError folds a handler error into the result envelope. Entity and
// validation problems keep their user-facing Portuguese message; everything
// else collapses to a generic message and a log line.
func (s *Service) resultFromError(err error, operation string) *domain.DispatchResult {
	var missing *domain.ErrMissingEntity
	if errors.As(err, &missing) {
		return &domain.DispatchResult{Success: false, Error: missing.Error()}
	}

	var invalid *domain.ErrValidation
	if errors.As(err, &invalid) {
		return &domain.DispatchResult{Success: false, Error: invalid.Message}
	}

	var unauthorized *domain.ErrUnauthorized
	if errors.As(err, &unauthorized) {
		return &domain.DispatchResult{Success: false, Error: unauthorized.Error()}
	}

	var external *domain.ErrExternalService
	if errors.As(err, &external) {
		s.metrics.IncrExternalError(external.Service)
	}

	s.logger.Error("voice command failed",
		zap.String("operation", operation),
		zap.Error(err),
	)
	return &domain.DispatchResult{
		Success: false,
		Error:   "Erro ao processar o comando de voz.",
	}
}
