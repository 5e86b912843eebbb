// Package lead содержит бизнес-логику приёма лидов: валидация выполнена
// на уровне обработчиков, здесь — сборка сущности, запись в хранилище и
// последовательная best-effort синхронизация с внешними сервисами.
// Ошибка любого коннектора логируется и превращается в булев флаг,
// не прерывая обработку и не откатывая запись.
package lead

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/grettaai/marketing-backend/internal/calcom"
	"github.com/grettaai/marketing-backend/internal/hubspot"
	"github.com/grettaai/marketing-backend/internal/lib/sl"
	"github.com/grettaai/marketing-backend/internal/models"
	"github.com/grettaai/marketing-backend/internal/storage/repository"
)

// recentBookingsLimit — максимум записей, отдаваемых webhook-интеграциям.
const recentBookingsLimit = 100

// Repository определяет методы для работы с коллекциями лидов в хранилище.
type Repository interface {
	CreateContact(ctx context.Context, contact models.Contact) error
	CreateNewsletterSubscriber(ctx context.Context, sub models.NewsletterSubscriber) error
	CreateDemoRequest(ctx context.Context, req models.DemoRequest) error
	CreateTrialSignup(ctx context.Context, signup models.TrialSignup) error
	ListRecentDemoRequests(ctx context.Context, limit int) ([]*models.DemoRequest, error)
	CountLeads(ctx context.Context) (*models.Analytics, error)
}

// CRMClient описывает операции CRM-коннектора.
type CRMClient interface {
	UpsertContact(ctx context.Context, name, email, phone, company string) (*hubspot.ContactSyncResult, error)
	AttachNote(ctx context.Context, contactID, body string) (string, error)
	CreateDeal(ctx context.Context, contactEmail, dealName string, amount float64) (string, error)
}

// Scheduler описывает операции календарного коннектора.
type Scheduler interface {
	BookEarliestSlot(ctx context.Context, name, email, eventTypeSlug, username string) (*calcom.Booking, error)
}

// CalendarOptions — параметры бронирования, передаваемые календарному коннектору.
type CalendarOptions struct {
	EventTypeSlug string
	Username      string
}

// LeadService реализует workflow приёма лидов.
type LeadService struct {
	repo      Repository
	crm       CRMClient
	scheduler Scheduler
	calOpts   CalendarOptions
	log       *slog.Logger
}

// New создает новый экземпляр LeadService.
func New(repo Repository, crm CRMClient, scheduler Scheduler, calOpts CalendarOptions, log *slog.Logger) *LeadService {
	return &LeadService{
		repo:      repo,
		crm:       crm,
		scheduler: scheduler,
		calOpts:   calOpts,
		log:       log,
	}
}

// syncContactToCRM выполняет upsert контакта в CRM. Любая ошибка
// (включая отсутствие конфигурации) логируется и превращается в nil.
func (s *LeadService) syncContactToCRM(ctx context.Context, name, email, phone, company string) *hubspot.ContactSyncResult {
	result, err := s.crm.UpsertContact(ctx, name, email, phone, company)
	if err != nil {
		if errors.Is(err, hubspot.ErrNotConfigured) {
			s.log.Warn("hubspot not configured, skipping sync")
		} else {
			s.log.Error("failed to sync contact to hubspot", sl.Err(err))
		}
		return nil
	}
	return result
}

// attachCRMNote best-effort привязывает заметку к контакту CRM.
func (s *LeadService) attachCRMNote(ctx context.Context, contactID, body string) {
	if _, err := s.crm.AttachNote(ctx, contactID, body); err != nil {
		s.log.Error("failed to create hubspot note", sl.Err(err))
	}
}

// SubmitContact сохраняет сообщение контактной формы и синхронизирует
// отправителя с CRM, прикладывая заметку с содержимым формы.
func (s *LeadService) SubmitContact(ctx context.Context, req models.ContactCreate) (*models.SubmitResult, error) {
	contact := models.Contact{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		Company:   req.Company,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateContact(ctx, contact); err != nil {
		return nil, err
	}
	s.log.Info("created contact", slog.String("id", contact.ID))
	leadsAccepted.WithLabelValues("contact").Inc()

	crmResult := s.syncContactToCRM(ctx, req.Name, req.Email, req.Phone, req.Company)
	if crmResult != nil {
		note := fmt.Sprintf("Contact Form Submission\n\nName: %s\nEmail: %s\nMessage: %s",
			req.Name, req.Email, req.Message)
		s.attachCRMNote(ctx, crmResult.HubspotID, note)
	}

	return &models.SubmitResult{
		Message:       "Contact request submitted successfully",
		HubspotSynced: crmResult != nil,
	}, nil
}

// SubscribeNewsletter добавляет подписчика рассылки. Повторная подписка
// того же email — no-op с сообщением о существующей подписке.
func (s *LeadService) SubscribeNewsletter(ctx context.Context, req models.NewsletterCreate) (*models.SubmitResult, error) {
	sub := models.NewsletterSubscriber{
		ID:           uuid.New().String(),
		Email:        req.Email,
		SubscribedAt: time.Now().UTC(),
	}
	err := s.repo.CreateNewsletterSubscriber(ctx, sub)
	if errors.Is(err, repository.ErrAlreadyExists) {
		return &models.SubmitResult{
			Message: "You are already subscribed to our newsletter",
		}, nil
	}
	if err != nil {
		return nil, err
	}
	s.log.Info("created newsletter subscriber", slog.String("id", sub.ID))
	leadsAccepted.WithLabelValues("newsletter").Inc()

	return &models.SubmitResult{
		Message: "Successfully subscribed to newsletter",
	}, nil
}

// SubmitDemoRequest сохраняет демо-запрос, синхронизирует контакт с CRM
// с заметкой о бронировании и пытается забронировать ближайший слот в
// календаре. Ответ несёт эхо сохранённых полей для webhook-потребителей.
func (s *LeadService) SubmitDemoRequest(ctx context.Context, req models.DemoRequestCreate) (*models.SubmitResult, error) {
	demo := models.DemoRequest{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Company:       req.Company,
		PlanType:      req.PlanType,
		PreferredTime: req.PreferredTime,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.CreateDemoRequest(ctx, demo); err != nil {
		return nil, err
	}
	s.log.Info("created demo request", slog.String("id", demo.ID))
	leadsAccepted.WithLabelValues("demo_request").Inc()

	crmResult := s.syncContactToCRM(ctx, req.Name, req.Email, req.Phone, req.Company)
	if crmResult != nil {
		note := fmt.Sprintf("Booking/Demo Request\n\nName: %s\nEmail: %s\nPhone: %s\nCompany: %s\nInterest: %s",
			req.Name, req.Email, req.Phone, req.Company, req.PlanType)
		s.attachCRMNote(ctx, crmResult.HubspotID, note)
	}

	booking, err := s.scheduler.BookEarliestSlot(ctx, req.Name, req.Email,
		s.calOpts.EventTypeSlug, s.calOpts.Username)
	if err != nil {
		switch {
		case errors.Is(err, calcom.ErrNotConfigured):
			s.log.Warn("cal.com not configured, skipping booking creation")
		case errors.Is(err, calcom.ErrNoSlots):
			s.log.Warn("no available cal.com slots found")
		default:
			s.log.Error("failed to create cal.com booking", sl.Err(err))
		}
	}

	return &models.SubmitResult{
		Message:           "Demo request submitted successfully",
		HubspotSynced:     crmResult != nil,
		CalBookingCreated: booking != nil,
		Data: &models.DemoRequestData{
			ID:           demo.ID,
			Name:         demo.Name,
			Email:        demo.Email,
			Phone:        demo.Phone,
			Company:      demo.Company,
			InterestedIn: demo.PlanType,
			Timestamp:    demo.CreatedAt.Format(time.RFC3339),
		},
	}, nil
}

// SubmitTrialSignup сохраняет заявку на пробный период. Повторная заявка
// с тем же email — no-op. Для новой заявки контакт синхронизируется с CRM,
// создаётся сделка и прикладывается заметка с деталями.
func (s *LeadService) SubmitTrialSignup(ctx context.Context, req models.TrialSignupCreate) (*models.SubmitResult, error) {
	signup := models.TrialSignup{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		PlanType:  req.PlanType,
		CreatedAt: time.Now().UTC(),
	}
	err := s.repo.CreateTrialSignup(ctx, signup)
	if errors.Is(err, repository.ErrAlreadyExists) {
		return &models.SubmitResult{
			Message: "You have already signed up for a free trial",
		}, nil
	}
	if err != nil {
		return nil, err
	}
	s.log.Info("created trial signup", slog.String("id", signup.ID))
	leadsAccepted.WithLabelValues("trial_signup").Inc()

	crmResult := s.syncContactToCRM(ctx, req.Name, req.Email, req.Phone, req.Company)
	if crmResult != nil {
		dealName := fmt.Sprintf("Trial Signup - %s - %s", req.PlanType, req.Name)
		if _, err := s.crm.CreateDeal(ctx, req.Email, dealName, 0); err != nil {
			s.log.Error("failed to create hubspot deal", sl.Err(err))
		}

		note := fmt.Sprintf("Free Trial Signup\n\nName: %s\nEmail: %s\nCompany: %s\nPlan: %s",
			req.Name, req.Email, req.Company, req.PlanType)
		s.attachCRMNote(ctx, crmResult.HubspotID, note)
	}

	return &models.SubmitResult{
		Message:       "Free trial signup successful! We'll contact you shortly.",
		HubspotSynced: crmResult != nil,
	}, nil
}

// RecentBookings возвращает последние демо-запросы (не более 100, новые
// первыми) в формате, пригодном для внешних webhook-интеграций.
func (s *LeadService) RecentBookings(ctx context.Context) ([]models.BookingSummary, error) {
	requests, err := s.repo.ListRecentDemoRequests(ctx, recentBookingsLimit)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.BookingSummary, 0, len(requests))
	for _, req := range requests {
		summaries = append(summaries, models.BookingSummary{
			ID:            req.ID,
			Name:          req.Name,
			Email:         req.Email,
			Phone:         req.Phone,
			Company:       req.Company,
			InterestedIn:  req.PlanType,
			PreferredTime: req.PreferredTime,
			CreatedAt:     req.CreatedAt.Format(time.RFC3339),
		})
	}
	return summaries, nil
}

// Analytics возвращает свежий снимок счётчиков по всем коллекциям.
func (s *LeadService) Analytics(ctx context.Context) (*models.Analytics, error) {
	return s.repo.CountLeads(ctx)
}
