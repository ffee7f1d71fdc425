package repository

import (
	"fmt"

	"github.com/Plovmmm/bilo-delo/internal/model"

	"github.com/jmoiron/sqlx"
)

// PhotoRepository обеспечивает доступ к данным фотографий в базе данных.
type PhotoRepository struct {
	db *sqlx.DB
}

// NewPhotoRepository создает новый репозиторий фотографий.
func NewPhotoRepository(db *sqlx.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

// Add сохраняет новую фотографию метки и возвращает ее идентификатор.
// Для главной фотографии снятие флага с предыдущей и вставка новой
// выполняются в одной транзакции: два одновременных назначения главного
// фото не могут оставить у метки ни ноль, ни два флага.
func (r *PhotoRepository) Add(markID int, filename string, isMain bool) (int, error) {
	var id int
	if !isMain {
		err := r.db.QueryRow(
			`INSERT INTO photos (mark_id, filename, is_main) VALUES ($1, $2, FALSE) RETURNING id`,
			markID, filename).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("не удалось сохранить фото: %w", wrapDBError(err))
		}
		return id, nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("не удалось начать транзакцию добавления фото: %w", wrapDBError(err))
	}
	if _, err := tx.Exec(
		"UPDATE photos SET is_main = FALSE WHERE mark_id = $1 AND is_main = TRUE", markID); err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("не удалось снять флаг главного фото: %w", wrapDBError(err))
	}
	err = tx.QueryRow(
		`INSERT INTO photos (mark_id, filename, is_main) VALUES ($1, $2, TRUE) RETURNING id`,
		markID, filename).Scan(&id)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("не удалось сохранить главное фото: %w", wrapDBError(err))
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("не удалось завершить добавление фото: %w", wrapDBError(err))
	}
	return id, nil
}

// GetMainFilename возвращает имя файла главной фотографии метки
// или ErrNotFound, если главное фото не назначено.
func (r *PhotoRepository) GetMainFilename(markID int) (string, error) {
	var filename string
	err := r.db.Get(&filename,
		"SELECT filename FROM photos WHERE mark_id=$1 AND is_main = TRUE LIMIT 1", markID)
	if err != nil {
		return "", wrapDBError(err)
	}
	return filename, nil
}

// GetSecondaryFilenames возвращает имена файлов второстепенных фотографий
// метки в порядке загрузки.
func (r *PhotoRepository) GetSecondaryFilenames(markID int) ([]string, error) {
	filenames := []string{}
	err := r.db.Select(&filenames,
		`SELECT filename FROM photos
		 WHERE mark_id=$1 AND is_main = FALSE
		 ORDER BY created_at ASC`, markID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении фотографий метки: %w", wrapDBError(err))
	}
	return filenames, nil
}

// GetByMark возвращает все фотографии метки, главную первой.
func (r *PhotoRepository) GetByMark(markID int) ([]model.Photo, error) {
	photos := []model.Photo{}
	err := r.db.Select(&photos,
		`SELECT * FROM photos WHERE mark_id=$1
		 ORDER BY is_main DESC, created_at ASC`, markID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении фотографий метки: %w", wrapDBError(err))
	}
	return photos, nil
}

// Delete удаляет строку фотографии. Файл на диске не затрагивается.
func (r *PhotoRepository) Delete(photoID int) (int64, error) {
	res, err := r.db.Exec("DELETE FROM photos WHERE id=$1", photoID)
	if err != nil {
		return 0, fmt.Errorf("не удалось удалить фото: %w", wrapDBError(err))
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}

// DeleteByMark удаляет все строки фотографий метки. Файлы на диске
// не затрагиваются.
func (r *PhotoRepository) DeleteByMark(markID int) (int64, error) {
	res, err := r.db.Exec("DELETE FROM photos WHERE mark_id=$1", markID)
	if err != nil {
		return 0, fmt.Errorf("не удалось удалить фотографии метки: %w", wrapDBError(err))
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}

// SetMain назначает фотографию главной для метки: в одной транзакции
// снимает флаг со всех фотографий метки и устанавливает его на целевой.
// Возвращает число затронутых строк последнего обновления (0, если
// фотография не принадлежит метке).
func (r *PhotoRepository) SetMain(photoID, markID int) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("не удалось начать транзакцию смены главного фото: %w", wrapDBError(err))
	}
	if _, err := tx.Exec("UPDATE photos SET is_main = FALSE WHERE mark_id = $1", markID); err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("не удалось снять флаг главного фото: %w", wrapDBError(err))
	}
	res, err := tx.Exec(
		"UPDATE photos SET is_main = TRUE WHERE id = $1 AND mark_id = $2", photoID, markID)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("не удалось установить главное фото: %w", wrapDBError(err))
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		// Целевое фото не принадлежит метке - не снимаем флаг с остальных
		tx.Rollback()
		return 0, nil
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("не удалось завершить смену главного фото: %w", wrapDBError(err))
	}
	return affected, nil
}
