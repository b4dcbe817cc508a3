package voice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noisapp/voice-bfv-go/internal/domain"
	"github.com/noisapp/voice-bfv-go/internal/nlp"
)

func (s *Service) handleFinances(ctx context.Context, action domain.Action, text string, vc domain.VoiceContext) (*domain.DispatchResult, error) {
	switch action {
	case domain.ActionView:
		rows, err := s.finances.ListGroupExpenses(ctx, vc)
		if err != nil {
			return nil, err
		}
		return &domain.DispatchResult{Success: true, Data: rows, Total: len(rows)}, nil

	case domain.ActionCreate:
		payload := s.financePayload(ctx, text)
		if payload.Amount <= 0 {
			// tolerated: the organizer rejects or flags it, not us
			s.logger.Warn("expense amount not detected", zap.String("text", text))
		}

		created, err := s.finances.CreateExpense(ctx, vc, payload)
		if err != nil {
			return nil, err
		}
		return &domain.DispatchResult{
			Success: true,
			Message: "Despesa adicionada com sucesso!",
			Data:    created,
		}, nil
	}

	return nil, &domain.ErrValidation{Field: "action", Message: "ação de finanças desconhecida"}
}

// financePayload builds the expense body. The AI parser runs first when
// configured; any failure there falls back to the rule-based extraction
// silently (warn log only, per the product decision that speech input must
// always produce a best effort).
func (s *Service) financePayload(ctx context.Context, text string) *domain.FinancePayload {
	if s.ai != nil && s.ai.Enabled() {
		intent, err := s.ai.ParseFinanceIntent(ctx, text)
		if err == nil && intent != nil && intent.Amount > 0 {
			s.metrics.IncrAIFallback("success")
			description := strings.TrimSpace(intent.Description)
			if description == "" {
				description = nlp.ExtractDescription(text)
			}
			return &domain.FinancePayload{
				Description: description,
				Amount:      intent.Amount,
				Category:    nlp.NormalizeCategory(intent.Category),
				Date:        s.convertDateToken(intent.Date),
			}
		}
		s.metrics.IncrAIFallback("error")
		s.logger.Warn("ai finance parser unavailable, using rule extraction", zap.Error(err))
	}

	parsed := nlp.ParseFinance(text)
	return &domain.FinancePayload{
		Description: parsed.Description,
		Amount:      parsed.Amount,
		Category:    parsed.Category,
	}
}

// convertDateToken maps the AI adapter's closed date vocabulary onto a
// concrete timestamp. Dates are pinned to noon UTC so the calendar day
// survives the app's UTC-3 display offset.
func (s *Service) convertDateToken(token string) string {
	now := s.clock.Now()
	var d time.Time

	switch {
	case token == "" || token == "today":
		d = now
	case token == "tomorrow":
		d = now.AddDate(0, 0, 1)
	case token == "day_after_tomorrow":
		d = now.AddDate(0, 0, 2)
	case strings.HasPrefix(token, "in_") && strings.HasSuffix(token, "_days"):
		var n int
		if _, err := fmt.Sscanf(token, "in_%d_days", &n); err == nil {
			d = now.AddDate(0, 0, n)
		} else {
			d = now
		}
	default:
		parsed, err := time.Parse("2006-01-02", token)
		if err != nil {
			d = now
		} else {
			d = parsed
		}
	}

	return d.Format("2006-01-02") + "T12:00:00.000Z"
}
