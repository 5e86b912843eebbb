// Package hubspot реализует клиент HubSpot CRM: создание и обновление
// контактов по email, привязку заметок и создание сделок. Все операции
// best-effort — вызывающая сторона сама решает, как реагировать на ошибки.
package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/grettaai/marketing-backend/internal/lib/sl"
)

// Идентификаторы типов ассоциаций HubSpot по умолчанию.
const (
	noteToContactAssociationType = 202
	dealToContactAssociationType = 3
)

// Конвейер и стадия сделки для заявок на пробный период.
const (
	dealPipeline = "default"
	dealStage    = "appointmentscheduled"
)

// ErrNotConfigured возвращается, если клиент создан без access token.
var ErrNotConfigured = errors.New("hubspot is not configured")

// ErrNotFound возвращается при поиске несуществующего контакта.
// Используется внутри UpsertContact для выбора между созданием и обновлением.
var ErrNotFound = errors.New("hubspot object not found")

// Client — HTTP-клиент HubSpot CRM API v3.
type Client struct {
	accessToken string
	apiURL      string
	httpClient  *http.Client
	log         *slog.Logger
}

// NewClient создаёт новый клиент HubSpot. Пустой accessToken
// допустим — все вызовы будут возвращать ErrNotConfigured.
func NewClient(accessToken string, log *slog.Logger) *Client {
	return &Client{
		accessToken: accessToken,
		apiURL:      "https://api.hubapi.com",
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		log:         log,
	}
}

// Configured сообщает, задан ли access token.
func (c *Client) Configured() bool {
	return c.accessToken != ""
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	url := c.apiURL + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do выполняет запрос и декодирует JSON-ответ в out (если out != nil).
// Ответ 404 превращается в ErrNotFound.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %s: %s", resp.Status, string(raw))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// getContactByEmail ищет контакт по email через idProperty=email.
func (c *Client) getContactByEmail(ctx context.Context, email string) (*contactObject, error) {
	req, err := c.newRequest(ctx, http.MethodGet,
		"/crm/v3/objects/contacts/"+email+"?idProperty=email", nil)
	if err != nil {
		return nil, err
	}
	var contact contactObject
	if err := c.do(req, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

// UpsertContact создаёт контакт в HubSpot или обновляет существующий,
// найденный по email. Имя делится по первому пробелу: первое слово —
// имя, остаток — фамилия (пустая, если остатка нет).
func (c *Client) UpsertContact(ctx context.Context, name, email, phone, company string) (*ContactSyncResult, error) {
	const op = "hubspot.UpsertContact"
	if !c.Configured() {
		return nil, fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}

	firstname, lastname, _ := strings.Cut(name, " ")
	properties := ContactProperties{
		Firstname: firstname,
		Lastname:  lastname,
		Email:     email,
		Phone:     phone,
		Company:   company,
	}

	existing, err := c.getContactByEmail(ctx, email)
	switch {
	case err == nil:
		req, err := c.newRequest(ctx, http.MethodPatch,
			"/crm/v3/objects/contacts/"+existing.ID,
			upsertContactRequest{Properties: properties})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := c.do(req, nil); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		c.log.Info("updated hubspot contact", slog.String("id", existing.ID))
		return &ContactSyncResult{HubspotID: existing.ID, Action: "updated"}, nil

	case errors.Is(err, ErrNotFound):
		var created contactObject
		req, err := c.newRequest(ctx, http.MethodPost,
			"/crm/v3/objects/contacts",
			upsertContactRequest{Properties: properties})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := c.do(req, &created); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		c.log.Info("created hubspot contact", slog.String("id", created.ID))
		return &ContactSyncResult{HubspotID: created.ID, Action: "created"}, nil

	default:
		return nil, fmt.Errorf("%s: %w", op, err)
	}
}

// AttachNote создаёт заметку с меткой времени и привязывает её к контакту.
func (c *Client) AttachNote(ctx context.Context, contactID, body string) (string, error) {
	const op = "hubspot.AttachNote"
	if !c.Configured() {
		return "", fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}

	noteReq := createNoteRequest{Properties: NoteProperties{
		HsNoteBody:  body,
		HsTimestamp: time.Now().UTC().Format(time.RFC3339),
	}}
	req, err := c.newRequest(ctx, http.MethodPost, "/crm/v3/objects/notes", noteReq)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	var note noteObject
	if err := c.do(req, &note); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	assocPath := fmt.Sprintf("/crm/v3/objects/notes/%s/associations/contacts/%s/%d",
		note.ID, contactID, noteToContactAssociationType)
	req, err = c.newRequest(ctx, http.MethodPut, assocPath, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := c.do(req, nil); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	c.log.Info("created hubspot note",
		slog.String("note_id", note.ID), slog.String("contact_id", contactID))
	return note.ID, nil
}

// CreateDeal создаёт сделку в конвейере по умолчанию и best-effort
// привязывает её к контакту, найденному по email. Неудача привязки
// логируется, но не считается ошибкой создания сделки.
func (c *Client) CreateDeal(ctx context.Context, contactEmail, dealName string, amount float64) (string, error) {
	const op = "hubspot.CreateDeal"
	if !c.Configured() {
		return "", fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}

	dealReq := createDealRequest{Properties: DealProperties{
		Dealname:  dealName,
		Dealstage: dealStage,
		Pipeline:  dealPipeline,
		Amount:    strconv.FormatFloat(amount, 'f', -1, 64),
	}}
	req, err := c.newRequest(ctx, http.MethodPost, "/crm/v3/objects/deals", dealReq)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	var deal dealObject
	if err := c.do(req, &deal); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := c.associateDealWithContact(ctx, deal.ID, contactEmail); err != nil {
		c.log.Warn("could not associate deal with contact",
			slog.String("deal_id", deal.ID), sl.Err(err))
	}

	c.log.Info("created hubspot deal", slog.String("deal_id", deal.ID))
	return deal.ID, nil
}

func (c *Client) associateDealWithContact(ctx context.Context, dealID, contactEmail string) error {
	contact, err := c.getContactByEmail(ctx, contactEmail)
	if err != nil {
		return err
	}
	assocPath := fmt.Sprintf("/crm/v3/objects/deals/%s/associations/contacts/%s/%d",
		dealID, contact.ID, dealToContactAssociationType)
	req, err := c.newRequest(ctx, http.MethodPut, assocPath, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
