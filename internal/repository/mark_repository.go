package repository

import (
	"fmt"
	"time"

	"github.com/Plovmmm/bilo-delo/internal/model"

	"github.com/jmoiron/sqlx"
)

// MarkRepository обеспечивает доступ к данным меток в базе данных.
type MarkRepository struct {
	db *sqlx.DB
}

// NewMarkRepository создает новый репозиторий меток.
func NewMarkRepository(db *sqlx.DB) *MarkRepository {
	return &MarkRepository{db: db}
}

// Create добавляет новую метку и возвращает ее идентификатор.
// Координаты вне диапазона отклоняются CHECK-ограничением таблицы.
func (r *MarkRepository) Create(userID int, title string, lat, lon float64,
	visitDate time.Time, description, address *string) (int, error) {
	query := `INSERT INTO marks (user_id, title, description, visit_date, address, lat, lon)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	var id int
	err := r.db.QueryRow(query, userID, title, description, visitDate, address, lat, lon).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("не удалось создать метку: %w", wrapDBError(err))
	}
	return id, nil
}

// GetByID получает метку по ее идентификатору.
func (r *MarkRepository) GetByID(markID int) (*model.Mark, error) {
	var mark model.Mark
	if err := r.db.Get(&mark, "SELECT * FROM marks WHERE id=$1", markID); err != nil {
		return nil, wrapDBError(err)
	}
	return &mark, nil
}

// ListByUser возвращает все метки пользователя, самые свежие первыми:
// по дате посещения, при совпадении - по времени создания записи.
// Этот порядок - пользовательский контракт списка на карте.
func (r *MarkRepository) ListByUser(userID int) ([]model.Mark, error) {
	marks := []model.Mark{}
	err := r.db.Select(&marks,
		`SELECT * FROM marks WHERE user_id=$1
		 ORDER BY visit_date DESC, created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении меток пользователя: %w", wrapDBError(err))
	}
	return marks, nil
}

// ListCoords возвращает только координаты меток пользователя в том же порядке.
func (r *MarkRepository) ListCoords(userID int) ([]model.MarkCoords, error) {
	coords := []model.MarkCoords{}
	err := r.db.Select(&coords,
		`SELECT id, lat, lon, user_id FROM marks WHERE user_id=$1
		 ORDER BY visit_date DESC, created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении координат меток: %w", wrapDBError(err))
	}
	return coords, nil
}

// buildUpdate собирает SET-часть частичного обновления. Порядок колонок
// фиксированный, плейсхолдеры в стиле "?" затем переводятся в "$N".
func buildUpdate(markID, userID int, upd model.MarkUpdate) (string, []interface{}) {
	sets := ""
	args := []interface{}{}
	add := func(column string, value interface{}) {
		if sets != "" {
			sets += ", "
		}
		sets += column + "=?"
		args = append(args, value)
	}
	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.VisitDate != nil {
		add("visit_date", *upd.VisitDate)
	}
	if upd.Address != nil {
		add("address", *upd.Address)
	}
	if upd.Lat != nil {
		add("lat", *upd.Lat)
	}
	if upd.Lon != nil {
		add("lon", *upd.Lon)
	}
	query := "UPDATE marks SET " + sets + " WHERE id=? AND user_id=?"
	args = append(args, markID, userID)
	return sqlx.Rebind(sqlx.DOLLAR, query), args
}

// Update выполняет частичное обновление метки, ограниченное ее владельцем.
// Возвращает число затронутых строк: 0 для чужой или отсутствующей метки,
// а также для пустого набора полей (это не ошибка).
func (r *MarkRepository) Update(markID, userID int, upd model.MarkUpdate) (int64, error) {
	if upd.Empty() {
		return 0, nil
	}
	query, args := buildUpdate(markID, userID, upd)
	res, err := r.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("не удалось обновить метку: %w", wrapDBError(err))
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}

// Delete удаляет метку, ограниченную ее владельцем. Строки фотографий
// удаляются каскадно, файлы на диске остаются на совести вызывающего.
func (r *MarkRepository) Delete(markID, userID int) (int64, error) {
	res, err := r.db.Exec("DELETE FROM marks WHERE id=$1 AND user_id=$2", markID, userID)
	if err != nil {
		return 0, fmt.Errorf("не удалось удалить метку: %w", wrapDBError(err))
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}

// DeleteWithPhotos удаляет метку вместе со строками фотографий в одной
// транзакции и возвращает имена файлов удаленных фотографий, чтобы
// вызывающий мог убрать их с диска после коммита. Для чужой или
// отсутствующей метки возвращается ErrNotFound.
func (r *MarkRepository) DeleteWithPhotos(markID, userID int) ([]string, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("не удалось начать транзакцию удаления: %w", wrapDBError(err))
	}
	filenames := []string{}
	err = tx.Select(&filenames,
		`SELECT p.filename FROM photos p
		 JOIN marks m ON p.mark_id = m.id
		 WHERE m.id=$1 AND m.user_id=$2`, markID, userID)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("не удалось получить файлы метки: %w", wrapDBError(err))
	}
	res, err := tx.Exec("DELETE FROM marks WHERE id=$1 AND user_id=$2", markID, userID)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("не удалось удалить метку: %w", wrapDBError(err))
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		tx.Rollback()
		return nil, ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("не удалось завершить удаление метки: %w", wrapDBError(err))
	}
	return filenames, nil
}
