// Package calcom реализует клиент календарного сервиса Cal.com:
// запрос доступных слотов в ближайшую неделю и бронирование самого
// раннего из них для указанного участника.
package calcom

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"
)

const apiVersionHeader = "2024-08-13"

// ErrNotConfigured возвращается, если клиент создан без API-ключа.
var ErrNotConfigured = errors.New("cal.com is not configured")

// ErrNoSlots возвращается, если в окне [завтра, +7 дней] нет свободных слотов.
var ErrNoSlots = errors.New("no available slots")

// Client — HTTP-клиент Cal.com API v2.
type Client struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient создаёт новый клиент Cal.com. Пустой apiKey допустим —
// все вызовы будут возвращать ErrNotConfigured.
func NewClient(apiKey string, log *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		apiURL: "https://api.cal.com/v2",
		// Календарный сервис заметно медленнее CRM, таймаут шире.
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

// Configured сообщает, задан ли API-ключ.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("cal-api-version", apiVersionHeader)
	return req, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %s: %s", resp.Status, string(raw))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// availableSlots запрашивает свободные слоты в окне [завтра, +7 дней] в UTC.
func (c *Client) availableSlots(ctx context.Context, eventTypeSlug, username string) (map[string][]Slot, error) {
	now := time.Now().UTC()
	params := url.Values{}
	params.Set("eventTypeSlug", eventTypeSlug)
	params.Set("username", username)
	params.Set("startTime", now.AddDate(0, 0, 1).Format(time.RFC3339))
	params.Set("endTime", now.AddDate(0, 0, 7).Format(time.RFC3339))
	params.Set("timeZone", "UTC")

	req, err := c.newRequest(ctx, http.MethodGet, "/slots?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	var slots slotsResponse
	if err := c.do(req, &slots); err != nil {
		return nil, err
	}
	return slots.Data, nil
}

// BookEarliestSlot находит первый свободный слот в ближайшую неделю
// и бронирует его для участника. Дни перебираются в хронологическом
// порядке, внутри дня берётся первый слот из ответа сервиса.
func (c *Client) BookEarliestSlot(ctx context.Context, name, email, eventTypeSlug, username string) (*Booking, error) {
	const op = "calcom.BookEarliestSlot"
	if !c.Configured() {
		return nil, fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}

	slotsByDay, err := c.availableSlots(ctx, eventTypeSlug, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	days := make([]string, 0, len(slotsByDay))
	for day := range slotsByDay {
		days = append(days, day)
	}
	sort.Strings(days)

	var firstSlot string
	for _, day := range days {
		if len(slotsByDay[day]) > 0 {
			firstSlot = slotsByDay[day][0].Start
			break
		}
	}
	if firstSlot == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoSlots)
	}

	bookingReq := createBookingRequest{
		Start:         firstSlot,
		EventTypeSlug: eventTypeSlug,
		Username:      username,
		Attendee: Attendee{
			Name:     name,
			Email:    email,
			TimeZone: "UTC",
		},
		Metadata: map[string]string{"source": "gretta-ai-website"},
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/bookings", bookingReq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var booking bookingResponse
	if err := c.do(req, &booking); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.log.Info("created cal.com booking",
		slog.String("uid", booking.Data.UID), slog.String("start", booking.Data.Start))
	return &booking.Data, nil
}
