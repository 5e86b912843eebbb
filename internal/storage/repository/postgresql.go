// Package repository реализует хранилище данных на основе PostgreSQL
// для входящих лидов: контактные сообщения, подписчики рассылки,
// демо-запросы и заявки на пробный период. Предоставляет методы вставки,
// выборки последних записей и агрегирования счётчиков.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrAlreadyExists возвращается при нарушении уникальности email
// в коллекциях с такой гарантией (рассылка, пробный период).
// Уникальность обеспечивается индексом на уровне БД, а не проверкой
// перед вставкой, поэтому гонка двух одинаковых запросов исключена.
var ErrAlreadyExists = errors.New("record already exists")

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с коллекциями лидов.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// isUniqueViolation сообщает, является ли ошибка нарушением уникального индекса.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
