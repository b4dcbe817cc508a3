package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/noisapp/voice-bfv-go/internal/domain"
	"github.com/noisapp/voice-bfv-go/internal/voice"
)

type voiceRequest struct {
	Text    string `json:"text"`
	UserID  int    `json:"user_id"`
	GroupID int    `json:"group_id"`
}

// voiceHandler handles POST /v1/voice.
//
// Contract, kept stable for the app:
//   - 400 when the text or the caller identification is missing
//   - 404 + intentNotRecognized:true when no (module, action) was found
//   - 400 when a handler rejected the command (missing entity, downstream)
//   - 200 with the DispatchResult otherwise
func voiceHandler(svc *voice.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "handler.Voice")
		defer span.End()

		var req voiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "corpo da requisição inválido")
			return
		}

		if req.Text == "" {
			writeError(w, http.StatusBadRequest, "Texto do comando é obrigatório.")
			return
		}

		claims := ClaimsFromContext(ctx)
		vc := domain.VoiceContext{
			UserID:    req.UserID,
			GroupID:   req.GroupID,
			AuthToken: claims.Token,
		}
		if vc.UserID == 0 {
			vc.UserID = claims.UserID
		}
		if vc.GroupID == 0 {
			vc.GroupID = claims.GroupID
		}
		if vc.UserID == 0 || vc.GroupID == 0 {
			writeError(w, http.StatusBadRequest, "Identificação do usuário ou grupo ausente.")
			return
		}

		commandID := uuid.NewString()
		span.SetAttributes(attribute.String("voice.command_id", commandID))
		logger.Info("voice command received",
			zap.String("command_id", commandID),
			zap.Int("user_id", vc.UserID),
			zap.Int("group_id", vc.GroupID),
		)

		result := svc.ProcessCommand(ctx, req.Text, vc)

		switch {
		case result.IntentNotRecognized:
			writeJSON(w, http.StatusNotFound, result)
		case !result.Success:
			writeJSON(w, http.StatusBadRequest, result)
		default:
			writeJSON(w, http.StatusOK, result)
		}
	}
}
