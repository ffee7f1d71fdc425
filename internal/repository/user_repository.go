package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Plovmmm/bilo-delo/internal/model"

	"github.com/jmoiron/sqlx"
)

// UserRepository обеспечивает доступ к данным пользователей в базе данных.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создает новый репозиторий пользователей.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateIfAbsent добавляет пользователя с указанным Telegram ID, если его
// еще нет, и возвращает идентификатор новой или существующей записи.
// Конфликт одновременных вставок разрешается на уровне базы данных
// (ON CONFLICT DO NOTHING), повторный вызов не является ошибкой.
func (r *UserRepository) CreateIfAbsent(telegramID int64) (int, error) {
	var id int
	err := r.db.QueryRow(
		`INSERT INTO users (telegram_id) VALUES ($1)
		 ON CONFLICT (telegram_id) DO NOTHING
		 RETURNING id`, telegramID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		// Вставка пропущена из-за конфликта - пользователь уже существует
		if err := r.db.Get(&id, "SELECT id FROM users WHERE telegram_id=$1", telegramID); err != nil {
			return 0, fmt.Errorf("не удалось найти существующего пользователя: %w", wrapDBError(err))
		}
		return id, nil
	}
	return 0, fmt.Errorf("не удалось создать пользователя: %w", wrapDBError(err))
}

// GetByTelegramID ищет пользователя по его Telegram ID.
func (r *UserRepository) GetByTelegramID(telegramID int64) (*model.User, error) {
	var user model.User
	if err := r.db.Get(&user, "SELECT * FROM users WHERE telegram_id=$1", telegramID); err != nil {
		return nil, wrapDBError(err)
	}
	return &user, nil
}

// GetByID возвращает пользователя по внутреннему идентификатору.
func (r *UserRepository) GetByID(id int) (*model.User, error) {
	var user model.User
	if err := r.db.Get(&user, "SELECT * FROM users WHERE id=$1", id); err != nil {
		return nil, wrapDBError(err)
	}
	return &user, nil
}
