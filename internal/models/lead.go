// Package models содержит доменные структуры для входящих лидов
// (контактная форма, подписка на рассылку, запрос демо, пробный период),
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Contact представляет сообщение из контактной формы.
// Поле ID генерируется при создании и не изменяется.
type Contact struct {
	ID        string    // Уникальный идентификатор (uuid)
	Name      string    // Имя отправителя
	Email     string    // Email отправителя
	Phone     string    // Телефон (опционально)
	Message   string    // Текст сообщения
	Company   string    // Компания (опционально)
	CreatedAt time.Time // Дата создания записи (UTC)
}

// ContactCreate используется для приёма данных контактной формы из JSON-запроса.
type ContactCreate struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message" validate:"required"`
	Company string `json:"company,omitempty"`
}

// NewsletterSubscriber представляет подписчика рассылки.
// Email уникален в пределах коллекции.
type NewsletterSubscriber struct {
	ID           string
	Email        string
	SubscribedAt time.Time
}

// NewsletterCreate используется для приёма данных подписки из JSON-запроса.
type NewsletterCreate struct {
	Email string `json:"email" validate:"required,email"`
}

// DemoRequest представляет запрос демонстрации продукта.
// Уникальность email не требуется, повторные запросы допустимы.
type DemoRequest struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	Company       string
	PlanType      string
	PreferredTime string
	CreatedAt     time.Time
}

// DemoRequestCreate используется для приёма запроса демо из JSON-запроса.
type DemoRequestCreate struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	Company       string `json:"company,omitempty"`
	PlanType      string `json:"plan_type" validate:"required"`
	PreferredTime string `json:"preferred_time,omitempty"`
}

// TrialSignup представляет заявку на пробный период.
// Email уникален в пределах коллекции.
type TrialSignup struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Company   string
	PlanType  string
	CreatedAt time.Time
}

// TrialSignupCreate используется для приёма заявки на пробный период из JSON-запроса.
type TrialSignupCreate struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Company  string `json:"company,omitempty"`
	PlanType string `json:"plan_type" validate:"required"`
}

// Analytics содержит текущие счётчики по всем четырём коллекциям.
// Снимок рассчитывается заново на каждый запрос и не кешируется.
type Analytics struct {
	TotalContacts              int `json:"total_contacts"`
	TotalDemoRequests          int `json:"total_demo_requests"`
	TotalTrialSignups          int `json:"total_trial_signups"`
	TotalNewsletterSubscribers int `json:"total_newsletter_subscribers"`
}

// BookingSummary описывает запись демо-запроса в формате,
// пригодном для внешних webhook-интеграций (HubSpot, Zapier).
type BookingSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Company       string `json:"company,omitempty"`
	InterestedIn  string `json:"interested_in"`
	PreferredTime string `json:"preferred_time,omitempty"`
	CreatedAt     string `json:"created_at"`
}

// DemoRequestData — эхо сохранённых полей демо-запроса,
// возвращаемое клиенту вместе с результатом отправки.
type DemoRequestData struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Company      string `json:"company,omitempty"`
	InterestedIn string `json:"interested_in"`
	Timestamp    string `json:"timestamp"`
}

// SubmitResult — итог обработки лида: сохранение плюс флаги
// успеха синхронизации с внешними сервисами.
type SubmitResult struct {
	Message           string
	HubspotSynced     bool
	CalBookingCreated bool
	Data              *DemoRequestData
}
