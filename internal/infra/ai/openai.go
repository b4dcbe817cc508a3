// Package ai contém o adapter OpenAI usado como fallback do parser de
// finanças: quando a extração por regras não dá conta da frase, o texto cru
// é enviado para o modelo, que devolve um JSON estruturado.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/noisapp/voice-bfv-go/internal/domain"
)

var tracer = otel.Tracer("ai")

// systemPrompt restringe a saída do modelo a um único objeto JSON com o
// vocabulário fechado de categorias e tokens de data. Qualquer coisa fora
// disso é tratada como falha do parser.
const systemPrompt = `Você é um parser de comandos de voz de despesas em português brasileiro.
Responda SOMENTE com um objeto JSON, sem texto adicional, no formato:
{"action": "create" | "view", "description": string, "amount": number, "category": string, "date": string}

Regras:
- "category" deve ser uma destas: "alimentação", "transporte", "acomodação", "entretenimento", "compras", "contas", "saúde", "outros".
- "date" deve ser um destes tokens: "today", "tomorrow", "day_after_tomorrow", "in_N_days" (N inteiro) ou uma data "YYYY-MM-DD". Use "today" quando o comando não mencionar data.
- "amount" é o valor numérico em reais. Interprete "mil" e "k" como milhares.
- "description" é curta, sem verbos de comando.
- Se o comando pedir para ver/listar despesas, use "action": "view" e deixe os demais campos vazios ou zero.`

// Client chama a API de chat completions da OpenAI em modo JSON.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	enabled    bool
}

// NewClient cria o adapter. O fallback fica desabilitado quando não há API
// key ou quando a flag de configuração o desliga.
func NewClient(httpClient *http.Client, baseURL, apiKey, model string, enabled bool) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		enabled:    enabled && apiKey != "",
	}
}

// Enabled informa se o adapter está configurado. Chamadores devem pular o
// fallback inteiro quando retornar false.
func (c *Client) Enabled() bool {
	return c.enabled
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens"`
	ResponseFormat respFormat    `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ParseFinanceIntent envia o comando cru para o modelo e decodifica o JSON
// estruturado. Qualquer falha vira ErrAIUnavailable: o chamador loga e cai
// para o caminho baseado em regras, nunca o usuário final.
func (c *Client) ParseFinanceIntent(ctx context.Context, text string) (*domain.FinanceIntent, error) {
	ctx, span := tracer.Start(ctx, "ai.ParseFinanceIntent")
	defer span.End()
	span.SetAttributes(attribute.String("ai.model", c.model))

	if !c.enabled {
		return nil, &domain.ErrAIUnavailable{Reason: "disabled"}
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
		Temperature:    0.1,
		MaxTokens:      200,
		ResponseFormat: respFormat{Type: "json_object"},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &domain.ErrAIUnavailable{Reason: "marshal", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, &domain.ErrAIUnavailable{Reason: "request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.ErrAIUnavailable{Reason: "http", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.ErrAIUnavailable{
			Reason: "status",
			Err:    fmt.Errorf("openai returned status %d", resp.StatusCode),
		}
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, &domain.ErrAIUnavailable{Reason: "decode", Err: err}
	}
	if len(completion.Choices) == 0 {
		return nil, &domain.ErrAIUnavailable{Reason: "empty", Err: fmt.Errorf("no choices in completion")}
	}

	var intent domain.FinanceIntent
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &intent); err != nil {
		return nil, &domain.ErrAIUnavailable{Reason: "content", Err: err}
	}
	return &intent, nil
}
