package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Ошибки слоя доступа к данным. Вызывающий код проверяет их через errors.Is.
var (
	// ErrNotFound - запрошенная запись отсутствует.
	ErrNotFound = errors.New("запись не найдена")
	// ErrConstraint - нарушено ограничение базы данных (CHECK, FK, UNIQUE).
	ErrConstraint = errors.New("нарушение ограничения базы данных")
	// ErrConnection - база данных или пул соединений недоступны.
	ErrConnection = errors.New("база данных недоступна")
)

// wrapDBError приводит ошибку драйвера к ошибкам слоя доступа.
// Классы кодов PostgreSQL: 23 - integrity constraint violation,
// 08 - connection exception, 53 - insufficient resources,
// 57 - operator intervention (например, остановка сервера).
func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "23":
			return fmt.Errorf("%w: %s", ErrConstraint, pqErr.Message)
		case "08", "53", "57":
			return fmt.Errorf("%w: %s", ErrConnection, pqErr.Message)
		}
	}
	return err
}
