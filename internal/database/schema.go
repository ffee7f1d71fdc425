package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// DDL таблиц. Все операторы идемпотентны (IF NOT EXISTS) и безопасны
// при каждом старте процесса.
var tableStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		telegram_id BIGINT UNIQUE NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS marks (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title VARCHAR(200) NOT NULL,
		description TEXT,
		visit_date DATE NOT NULL,
		address TEXT,
		lat DECIMAL(10, 8) NOT NULL,
		lon DECIMAL(11, 8) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

		CONSTRAINT valid_coordinates CHECK (
			lat BETWEEN -90 AND 90 AND
			lon BETWEEN -180 AND 180
		)
	)`,
	`CREATE TABLE IF NOT EXISTS photos (
		id SERIAL PRIMARY KEY,
		mark_id INTEGER NOT NULL REFERENCES marks(id) ON DELETE CASCADE,
		filename VARCHAR(255) NOT NULL,
		is_main BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
}

var indexStatements = []string{
	"CREATE INDEX IF NOT EXISTS idx_users_telegram_id ON users(telegram_id)",
	"CREATE INDEX IF NOT EXISTS idx_marks_user_id ON marks(user_id)",
	"CREATE INDEX IF NOT EXISTS idx_marks_coordinates ON marks(lat, lon)",
	"CREATE INDEX IF NOT EXISTS idx_photos_mark_id ON photos(mark_id)",
	"CREATE INDEX IF NOT EXISTS idx_photos_is_main ON photos(is_main)",
}

// CreateTables создает таблицы users, marks и photos в одной транзакции.
func CreateTables(db *sqlx.DB) error {
	return execAll(db, tableStatements, "таблиц")
}

// CreateIndexes создает индексы для основных путей выборки.
func CreateIndexes(db *sqlx.DB) error {
	return execAll(db, indexStatements, "индексов")
}

func execAll(db *sqlx.DB, statements []string, what string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("не удалось начать транзакцию создания %s: %w", what, err)
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("ошибка создания %s: %w", what, err)
		}
	}
	return tx.Commit()
}
