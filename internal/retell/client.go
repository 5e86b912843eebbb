// Package retell реализует клиент голосового сервиса Retell AI:
// создание web-звонка с предварительно настроенным агентом.
// В отличие от CRM и календаря ошибка этого коннектора не имеет
// деградированного режима и поднимается до вызывающей стороны.
package retell

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotConfigured возвращается, если клиент создан без API-ключа.
var ErrNotConfigured = errors.New("retell is not configured")

// WebCallSession — данные созданной голосовой сессии.
type WebCallSession struct {
	AccessToken string `json:"access_token"`
	CallID      string `json:"call_id"`
	AgentID     string `json:"agent_id"`
}

type createWebCallRequest struct {
	AgentID string `json:"agent_id"`
}

// Client — HTTP-клиент Retell AI.
type Client struct {
	apiKey     string
	agentID    string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент Retell AI с фиксированным идентификатором агента.
func NewClient(apiKey, agentID string) *Client {
	return &Client{
		apiKey:     apiKey,
		agentID:    agentID,
		apiURL:     "https://api.retellai.com",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured сообщает, задан ли API-ключ.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// CreateWebCall создаёт web-звонок для настроенного агента и возвращает
// access token, идентификатор звонка и идентификатор агента.
func (c *Client) CreateWebCall(ctx context.Context) (*WebCallSession, error) {
	const op = "retell.CreateWebCall"
	if !c.Configured() {
		return nil, fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(createWebCallRequest{AgentID: c.agentID}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/v2/create-web-call", &buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%s: unexpected status %s: %s", op, resp.Status, string(raw))
	}

	var session WebCallSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	session.AgentID = c.agentID
	return &session, nil
}
