package model

import "time"

// User представляет пользователя, идентифицируемого по Telegram ID.
// Создается лениво при первом обращении и далее не изменяется.
type User struct {
	ID         int       `db:"id" json:"id"`
	TelegramID int64     `db:"telegram_id" json:"telegram_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
