package repository

import (
	"context"
	"fmt"

	"github.com/grettaai/marketing-backend/internal/models"
)

// CreateContact вставляет новую запись контактной формы.
func (s *Storage) CreateContact(ctx context.Context, contact models.Contact) error {
	const op = "storage.CreateContact"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO contacts (id, name, email, phone, message, company, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.DB.ExecContext(ctx, query,
		contact.ID, contact.Name, contact.Email, contact.Phone,
		contact.Message, contact.Company, contact.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CreateNewsletterSubscriber вставляет нового подписчика рассылки.
// При повторной подписке того же email возвращает ErrAlreadyExists.
func (s *Storage) CreateNewsletterSubscriber(ctx context.Context, sub models.NewsletterSubscriber) error {
	const op = "storage.CreateNewsletterSubscriber"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO newsletter_subscribers (id, email, subscribed_at)
			  VALUES ($1, $2, $3)`
	_, err := s.DB.ExecContext(ctx, query, sub.ID, sub.Email, sub.SubscribedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CreateDemoRequest вставляет новый демо-запрос.
// Уникальность email не проверяется, повторные запросы допустимы.
func (s *Storage) CreateDemoRequest(ctx context.Context, req models.DemoRequest) error {
	const op = "storage.CreateDemoRequest"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO demo_requests (id, name, email, phone, company, plan_type, preferred_time, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.DB.ExecContext(ctx, query,
		req.ID, req.Name, req.Email, req.Phone, req.Company,
		req.PlanType, req.PreferredTime, req.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CreateTrialSignup вставляет новую заявку на пробный период.
// При повторной заявке с тем же email возвращает ErrAlreadyExists.
func (s *Storage) CreateTrialSignup(ctx context.Context, signup models.TrialSignup) error {
	const op = "storage.CreateTrialSignup"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO trial_signups (id, name, email, phone, company, plan_type, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.DB.ExecContext(ctx, query,
		signup.ID, signup.Name, signup.Email, signup.Phone,
		signup.Company, signup.PlanType, signup.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListRecentDemoRequests возвращает последние демо-запросы, новые первыми.
func (s *Storage) ListRecentDemoRequests(ctx context.Context, limit int) ([]*models.DemoRequest, error) {
	const op = "storage.ListRecentDemoRequests"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, email, phone, company, plan_type, preferred_time, created_at
			  FROM demo_requests
			  ORDER BY created_at DESC
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.DemoRequest
	for rows.Next() {
		var item models.DemoRequest
		if err := rows.Scan(&item.ID, &item.Name, &item.Email, &item.Phone,
			&item.Company, &item.PlanType, &item.PreferredTime, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountLeads подсчитывает текущее количество записей в каждой из четырёх коллекций.
// Счётчики считаются заново на каждый вызов, без кеширования.
func (s *Storage) CountLeads(ctx context.Context) (*models.Analytics, error) {
	const op = "storage.CountLeads"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
				(SELECT COUNT(*) FROM contacts),
				(SELECT COUNT(*) FROM demo_requests),
				(SELECT COUNT(*) FROM trial_signups),
				(SELECT COUNT(*) FROM newsletter_subscribers)`
	var result models.Analytics
	err := s.DB.QueryRowContext(ctx, query).Scan(
		&result.TotalContacts, &result.TotalDemoRequests,
		&result.TotalTrialSignups, &result.TotalNewsletterSubscribers)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}
