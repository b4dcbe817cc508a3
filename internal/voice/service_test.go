package voice_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/noisapp/voice-bfv-go/internal/domain"
	"github.com/noisapp/voice-bfv-go/internal/infra/cache"
	"github.com/noisapp/voice-bfv-go/internal/infra/observability"
	"github.com/noisapp/voice-bfv-go/internal/nlp"
	"github.com/noisapp/voice-bfv-go/internal/voice"
)

// --- Mocks ---

type mockFinanceAPI struct {
	rows       []domain.FinanceRecord
	gotPayload *domain.FinancePayload
	err        error
}

func (m *mockFinanceAPI) ListGroupExpenses(_ context.Context, _ domain.VoiceContext) ([]domain.FinanceRecord, error) {
	return m.rows, m.err
}

func (m *mockFinanceAPI) CreateExpense(_ context.Context, _ domain.VoiceContext, p *domain.FinancePayload) (*domain.FinanceRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.gotPayload = p
	return &domain.FinanceRecord{ID: 1, Description: p.Description, Amount: p.Amount, Category: p.Category}, nil
}

type mockTripsAPI struct {
	rows       []domain.TripRecord
	gotPayload *domain.TripPayload
	err        error
}

func (m *mockTripsAPI) ListTrips(_ context.Context, _ domain.VoiceContext) ([]domain.TripRecord, error) {
	return m.rows, m.err
}

func (m *mockTripsAPI) CreateTrip(_ context.Context, _ domain.VoiceContext, p *domain.TripPayload) (*domain.TripRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.gotPayload = p
	return &domain.TripRecord{ID: 7, City: p.City, StartDate: p.StartDate, Status: p.Status}, nil
}

type mockActivitiesAPI struct {
	rows        []map[string]any
	gotPayload  *domain.ActivityPayload
	gotUpcoming bool
	err         error
}

func (m *mockActivitiesAPI) ListGroupActivities(_ context.Context, _ domain.VoiceContext, upcomingOnly bool) ([]map[string]any, error) {
	m.gotUpcoming = upcomingOnly
	return m.rows, m.err
}

func (m *mockActivitiesAPI) CreateActivity(_ context.Context, _ domain.VoiceContext, p *domain.ActivityPayload) (map[string]any, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.gotPayload = p
	return map[string]any{"id": 3, "event_name": p.EventName}, nil
}

type mockDatesAPI struct {
	rows       []map[string]any
	gotPayload *domain.DatePayload
	err        error
}

func (m *mockDatesAPI) ListDates(_ context.Context, _ domain.VoiceContext) ([]map[string]any, error) {
	return m.rows, m.err
}

func (m *mockDatesAPI) CreateDate(_ context.Context, _ domain.VoiceContext, p *domain.DatePayload) (map[string]any, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.gotPayload = p
	return map[string]any{"id": 9}, nil
}

type mockPlaceSearcher struct {
	records []domain.PlaceRecord
	calls   int
	err     error
}

func (m *mockPlaceSearcher) SearchNearby(_ context.Context, _ domain.PlaceQuery) ([]domain.PlaceRecord, error) {
	m.calls++
	return m.records, m.err
}

type mockAI struct {
	enabled bool
	intent  *domain.FinanceIntent
	err     error
}

func (m *mockAI) Enabled() bool { return m.enabled }

func (m *mockAI) ParseFinanceIntent(_ context.Context, _ string) (*domain.FinanceIntent, error) {
	return m.intent, m.err
}

// --- Fixture ---

// Wednesday, 2025-03-05 10:00 local.
var fixedNow = time.Date(2025, 3, 5, 10, 0, 0, 0, time.Local)

type fixture struct {
	svc        *voice.Service
	finances   *mockFinanceAPI
	trips      *mockTripsAPI
	activities *mockActivitiesAPI
	dates      *mockDatesAPI
	places     *mockPlaceSearcher
	ai         *mockAI
}

func newFixture() *fixture {
	f := &fixture{
		finances:   &mockFinanceAPI{},
		trips:      &mockTripsAPI{},
		activities: &mockActivitiesAPI{},
		dates:      &mockDatesAPI{},
		places:     &mockPlaceSearcher{},
		ai:         &mockAI{},
	}
	f.svc = voice.NewService(
		f.finances, f.trips, f.activities, f.dates, f.places, f.ai,
		cache.New[[]domain.PlaceRecord](time.Minute),
		voice.PlacesDefaults{Latitude: -25.4411, Longitude: -49.2670, Radius: 2000},
		nlp.FixedClock{T: fixedNow},
		zap.NewNop(),
		observability.NewMetrics(),
	)
	return f
}

func testContext() domain.VoiceContext {
	return domain.VoiceContext{UserID: 1, GroupID: 2, AuthToken: "tok"}
}

// --- Tests ---

func TestProcessCommand_NoIntent(t *testing.T) {
	f := newFixture()
	res := f.svc.ProcessCommand(context.Background(), "oi, tudo bem?", testContext())

	if res.Success {
		t.Fatal("expected failure for unrecognizable command")
	}
	if !res.IntentNotRecognized {
		t.Fatal("expected intentNotRecognized flag")
	}
	if res.Message != "Não foi possível identificar a solicitação." {
		t.Fatalf("unexpected message: %q", res.Message)
	}
}

func TestProcessCommand_FinanceView(t *testing.T) {
	f := newFixture()
	f.finances.rows = []domain.FinanceRecord{
		{ID: 1, Description: "Mercado", Amount: 120.5, Category: "Alimentação"},
		{ID: 2, Description: "Uber", Amount: 32, Category: "Transporte"},
	}

	res := f.svc.ProcessCommand(context.Background(), "mostrar despesas do grupo", testContext())

	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	if res.Total != 2 {
		t.Fatalf("expected total 2, got %d", res.Total)
	}
}

func TestProcessCommand_FinanceCreate_RuleBased(t *testing.T) {
	f := newFixture()
	res := f.svc.ProcessCommand(context.Background(),
		"adicionar despesa de 50 reais no mercado", testContext())

	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	p := f.finances.gotPayload
	if p == nil {
		t.Fatal("expected CreateExpense to be called")
	}
	if p.Amount != 50 {
		t.Fatalf("expected amount 50, got %v", p.Amount)
	}
	if p.Category != "Alimentação" {
		t.Fatalf("expected category Alimentação, got %q", p.Category)
	}
	if p.Description != "Mercado" {
		t.Fatalf("expected description Mercado, got %q", p.Description)
	}
}

func TestProcessCommand_FinanceCreate_AIPath(t *testing.T) {
	f := newFixture()
	f.ai.enabled = true
	f.ai.intent = &domain.FinanceIntent{
		Action:      "create",
		Description: "Pizza com amigos",
		Amount:      35.5,
		Category:    "alimentação",
		Date:        "tomorrow",
	}

	res := f.svc.ProcessCommand(context.Background(),
		"registrar gasto com pizza de 35,50", testContext())

	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	p := f.finances.gotPayload
	if p.Amount != 35.5 {
		t.Fatalf("expected amount 35.5, got %v", p.Amount)
	}
	if p.Category != "Alimentação" {
		t.Fatalf("expected normalized category, got %q", p.Category)
	}
	wantDate := fixedNow.AddDate(0, 0, 1).Format("2006-01-02") + "T12:00:00.000Z"
	if p.Date != wantDate {
		t.Fatalf("expected date %q, got %q", wantDate, p.Date)
	}
}

func TestProcessCommand_FinanceCreate_AIFailureFallsBack(t *testing.T) {
	f := newFixture()
	f.ai.enabled = true
	f.ai.err = &domain.ErrAIUnavailable{Reason: "status", Err: errors.New("openai returned status 500")}

	res := f.svc.ProcessCommand(context.Background(),
		"adicionar despesa de 50 reais no mercado", testContext())

	if !res.Success {
		t.Fatalf("expected silent fallback to rules, got error %q", res.Error)
	}
	p := f.finances.gotPayload
	if p == nil || p.Amount != 50 || p.Category != "Alimentação" {
		t.Fatalf("expected rule-based payload, got %+v", p)
	}
}

func TestProcessCommand_TripView_FiltersPlanned(t *testing.T) {
	f := newFixture()
	f.trips.rows = []domain.TripRecord{
		{ID: 1, City: "Gramado", Status: "Planejando", StartDate: "2025-03-10"},
		{ID: 2, Destination: "Recife", Status: "Concluída", StartDateAlt: "2024-01-02"},
	}

	res := f.svc.ProcessCommand(context.Background(), "listar viagens", testContext())

	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	if res.Total != 1 {
		t.Fatalf("expected only the planned trip, got total %d", res.Total)
	}
}

func TestProcessCommand_TripCreate(t *testing.T) {
	f := newFixture()
	res := f.svc.ProcessCommand(context.Background(),
		"planejar viagem para gramado entre os dias 10 e 15 de marco com orcamento de 2 mil",
		testContext())

	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	p := f.trips.gotPayload
	if p.City != "Gramado" {
		t.Fatalf("expected city Gramado, got %q", p.City)
	}
	if p.StartDate != "2025-03-10" || p.EndDate != "2025-03-15" {
		t.Fatalf("unexpected range: %q..%q", p.StartDate, p.EndDate)
	}
	if p.Status != "Planejando" {
		t.Fatalf("expected status Planejando, got %q", p.Status)
	}
	if p.Estimated != "R$ 2000.00" {
		t.Fatalf("expected estimated R$ 2000.00, got %q", p.Estimated)
	}
}

func TestProcessCommand_TripCreate_MissingCity(t *testing.T) {
	f := newFixture()
	res := f.svc.ProcessCommand(context.Background(), "criar viagem amanha", testContext())

	if res.Success {
		t.Fatal("expected failure without a destination")
	}
	if res.Error != "City not detected." {
		t.Fatalf("unexpected error: %q", res.Error)
	}
}

func TestProcessCommand_ActivityCreate(t *testing.T) {
	f := newFixture()
	res := f.svc.ProcessCommand(context.Background(),
		"marcar jantar com amigos no restaurante italiano amanha as 20h", testContext())

	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	p := f.activities.gotPayload
	if p.EventName != "Jantar" {
		t.Fatalf("expected event Jantar, got %q", p.EventName)
	}
	if p.Location != "Restaurante Italiano" {
		t.Fatalf("expected location Restaurante Italiano, got %q", p.Location)
	}
	if p.GroupID != 2 || p.CreatedBy != 1 {
		t.Fatalf("expected caller identity on payload, got %+v", p)
	}
	want := nlp.ToLocalISO(time.Date(2025, 3, 6, 20, 0, 0, 0, time.Local))
	if p.Date != want {
		t.Fatalf("expected date %q, got %q", want, p.Date)
	}
}

func TestProcessCommand_ActivityCreate_MissingDate(t *testing.T) {
	f := newFixture()
	res := f.svc.ProcessCommand(context.Background(), "marcar jantar com amigos", testContext())

	if res.Success {
		t.Fatal("expected failure without a date")
	}
	if !strings.Contains(res.Error, "Nenhuma data reconhecida") {
		t.Fatalf("unexpected error: %q", res.Error)
	}
}

func TestProcessCommand_DateCreate(t *testing.T) {
	f := newFixture()
	res := f.svc.ProcessCommand(context.Background(),
		"marcar um encontro no parque amanha as 15h", testContext())

	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	p := f.dates.gotPayload
	if p.StatusID != 1 {
		t.Fatalf("expected statusId 1, got %d", p.StatusID)
	}
	if p.Location != "Parque" {
		t.Fatalf("expected location Parque, got %q", p.Location)
	}
}

func TestProcessCommand_DateCreate_RequiresToken(t *testing.T) {
	f := newFixture()
	vc := testContext()
	vc.AuthToken = ""

	res := f.svc.ProcessCommand(context.Background(),
		"marcar um encontro no parque amanha", vc)

	if res.Success {
		t.Fatal("expected failure without a token")
	}
	if res.Error != "Token de autenticação ausente." {
		t.Fatalf("unexpected error: %q", res.Error)
	}
}

func TestProcessCommand_Places_CachesByKeyword(t *testing.T) {
	f := newFixture()
	f.places.records = []domain.PlaceRecord{{Name: "Cantina da Nona", Address: "Rua XV, 100"}}

	first := f.svc.ProcessCommand(context.Background(), "buscar restaurantes perto de mim", testContext())
	second := f.svc.ProcessCommand(context.Background(), "procurar restaurantes aqui perto", testContext())

	if !first.Success || !second.Success {
		t.Fatalf("expected both searches to succeed: %q / %q", first.Error, second.Error)
	}
	if f.places.calls != 1 {
		t.Fatalf("expected a single upstream call, got %d", f.places.calls)
	}
	if second.Total != 1 {
		t.Fatalf("expected cached result relayed, got total %d", second.Total)
	}
}

func TestProcessCommand_Places_NoResults(t *testing.T) {
	f := newFixture()
	res := f.svc.ProcessCommand(context.Background(), "buscar bares perto de mim", testContext())

	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	if res.Message != "Nenhum local encontrado." {
		t.Fatalf("unexpected message: %q", res.Message)
	}
}

func TestProcessCommand_ExternalErrorIsGeneric(t *testing.T) {
	f := newFixture()
	f.finances.err = &domain.ErrExternalService{Service: "organizer", Err: errors.New("status 502")}

	res := f.svc.ProcessCommand(context.Background(), "mostrar despesas do grupo", testContext())

	if res.Success {
		t.Fatal("expected failure on downstream error")
	}
	if res.Error != "Erro ao processar o comando de voz." {
		t.Fatalf("unexpected error: %q", res.Error)
	}
}
