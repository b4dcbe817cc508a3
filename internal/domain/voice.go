// Package domain holds the core types of the voice interpreter: intents,
// extracted entities, downstream payloads and the dispatch result envelope.
package domain

import "time"

// Module identifies the app feature a command is routed to.
type Module string

const (
	ModuleFinances   Module = "finances"
	ModuleTrips      Module = "trips"
	ModuleActivities Module = "activities"
	ModuleDates      Module = "dates"
	ModulePlaces     Module = "places"
	ModuleNone       Module = ""
)

// Action is what the command does inside its module.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionSearch Action = "search"
	ActionNone   Action = ""
)

// Intent is the classifier's output.
type Intent struct {
	Module Module `json:"module"`
	Action Action `json:"action"`
}

// Recognized reports whether the classifier placed the command.
func (i Intent) Recognized() bool {
	return i.Module != ModuleNone && i.Action != ActionNone
}

// Span marks the [Start, End) byte range an extractor consumed in the
// normalized text, so later extractors can skip it.
type Span struct {
	Start int
	End   int
}

// NoSpan is the sentinel for "nothing matched".
var NoSpan = Span{Start: -1, End: -1}

// Found reports whether the span points at real text.
func (s Span) Found() bool {
	return s.Start >= 0 && s.End > s.Start
}

// ExtractedDate is a calendar date found in the command, nil when absent.
type ExtractedDate struct {
	Value *time.Time
	Span  Span
}

// ClockTime is a wall-clock time of day.
type ClockTime struct {
	Hour   int
	Minute int
}

// ExtractedTime is a time of day found in the command, nil when absent.
type ExtractedTime struct {
	Value *ClockTime
	Span  Span
}

// ExtractedLocation is a venue or place name found in the command.
type ExtractedLocation struct {
	Text string
	Span Span
}

// VoiceContext carries the caller identity a command executes under.
type VoiceContext struct {
	UserID    int
	GroupID   int
	AuthToken string
}

// DispatchResult is the envelope every module handler returns.
type DispatchResult struct {
	Success             bool   `json:"success"`
	IntentNotRecognized bool   `json:"intentNotRecognized,omitempty"`
	Message             string `json:"message,omitempty"`
	Error               string `json:"error,omitempty"`
	Data                any    `json:"data,omitempty"`
	Total               int    `json:"total,omitempty"`
}

// FinancePayload is the expense creation body sent to the organizer API.
// Field names follow the organizer's Portuguese contract.
type FinancePayload struct {
	Description string  `json:"descricao"`
	Amount      float64 `json:"valor"`
	Category    string  `json:"categoria"`
	Date        string  `json:"data,omitempty"`
	Instalments int     `json:"parcelas,omitempty"`
}

// FinanceRecord is an expense row as the organizer API returns it.
type FinanceRecord struct {
	ID          int     `json:"id,omitempty"`
	Description string  `json:"descricao"`
	Amount      float64 `json:"valor"`
	Category    string  `json:"categoria"`
	Date        string  `json:"data,omitempty"`
	CreatedBy   int     `json:"created_by,omitempty"`
}

// TripPayload is the trip creation body sent to the organizer API.
type TripPayload struct {
	City        string `json:"city"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Status      string `json:"status"`
	Estimated   string `json:"estimated,omitempty"`
	Budget      string `json:"budget,omitempty"`
	Description string `json:"description,omitempty"`
}

// TripRecord is a trip row as the organizer API returns it. The API has
// shipped under two naming schemes, so both sets of fields are accepted.
type TripRecord struct {
	ID           int    `json:"id,omitempty"`
	City         string `json:"city,omitempty"`
	Destination  string `json:"destination,omitempty"`
	StartDate    string `json:"startDate,omitempty"`
	StartDateAlt string `json:"start_date,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
	EndDateAlt   string `json:"end_date,omitempty"`
	Status       string `json:"status,omitempty"`
	Estimated    string `json:"estimated,omitempty"`
	Description  string `json:"description,omitempty"`
}

// DisplayCity resolves the destination across both naming schemes.
func (t TripRecord) DisplayCity() string {
	if t.City != "" {
		return t.City
	}
	return t.Destination
}

// DisplayStartDate resolves the start date across both naming schemes.
func (t TripRecord) DisplayStartDate() string {
	if t.StartDate != "" {
		return t.StartDate
	}
	return t.StartDateAlt
}

// ActivityPayload is the group activity creation body.
type ActivityPayload struct {
	GroupID     int    `json:"group_id"`
	EventName   string `json:"event_name"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Description string `json:"description,omitempty"`
	CreatedBy   int    `json:"created_by"`
}

// DatePayload is the couple-date creation body.
type DatePayload struct {
	Date        string `json:"date"`
	Location    string `json:"location"`
	Description string `json:"description,omitempty"`
	StatusID    int    `json:"statusId"`
}

// PlaceQuery is a nearby venue search.
type PlaceQuery struct {
	Latitude  float64
	Longitude float64
	Radius    int
	Keyword   string
}

// PlaceRecord is a venue result shaped for the app, Portuguese keys.
type PlaceRecord struct {
	Name         string   `json:"nome"`
	Address      string   `json:"endereco"`
	Rating       float64  `json:"avaliacao,omitempty"`
	TotalRatings int      `json:"avaliacoes_totais,omitempty"`
	OpenNow      *bool    `json:"aberto_agora,omitempty"`
	Types        []string `json:"tipos,omitempty"`
	PhotoURL     string   `json:"foto,omitempty"`
}

// FinanceIntent is the structured output of the AI finance parser.
type FinanceIntent struct {
	Action      string  `json:"action"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

// VoiceMetrics is the interpreter metrics snapshot for the metrics endpoint.
type VoiceMetrics struct {
	TotalCommands    int64            `json:"total_commands"`
	Unrecognized     int64            `json:"unrecognized"`
	RecognitionRate  float64          `json:"recognition_rate"`
	CommandsByModule map[string]int64 `json:"commands_by_module"`
	AIFallbacks      int64            `json:"ai_fallbacks"`
	AIFallbackErrors int64            `json:"ai_fallback_errors"`
	CacheHitRate     float64          `json:"cache_hit_rate"`
	Period           string           `json:"period"`
}
