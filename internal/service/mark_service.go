package service

import (
	"fmt"
	"time"

	"github.com/Plovmmm/bilo-delo/internal/model"
	"github.com/Plovmmm/bilo-delo/internal/repository"
)

// MarkService содержит бизнес-логику, связанную с метками мест.
type MarkService struct {
	markRepo *repository.MarkRepository
	photos   *PhotoService
}

// NewMarkService создает новый сервис меток.
func NewMarkService(markRepo *repository.MarkRepository, photos *PhotoService) *MarkService {
	return &MarkService{markRepo: markRepo, photos: photos}
}

// CreateMarkInput описывает данные новой метки.
type CreateMarkInput struct {
	Title       string
	Lat         float64
	Lon         float64
	VisitDate   *time.Time
	Description *string
	Address     *string
}

// validateCoordinates проверяет, что координаты лежат в допустимом
// диапазоне [-90, 90] x [-180, 180].
func validateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: широта %v вне диапазона [-90, 90]", ErrValidation, lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("%w: долгота %v вне диапазона [-180, 180]", ErrValidation, lon)
	}
	return nil
}

// CreateMark проверяет входные данные и создает метку. Дата посещения по
// умолчанию - сегодняшняя. Возвращает созданную метку целиком.
func (s *MarkService) CreateMark(userID int, in CreateMarkInput) (*model.Mark, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: название метки не задано", ErrValidation)
	}
	if err := validateCoordinates(in.Lat, in.Lon); err != nil {
		return nil, err
	}
	visitDate := time.Now()
	if in.VisitDate != nil {
		visitDate = *in.VisitDate
	}
	id, err := s.markRepo.Create(userID, in.Title, in.Lat, in.Lon, visitDate, in.Description, in.Address)
	if err != nil {
		return nil, err
	}
	return s.markRepo.GetByID(id)
}

// GetMark возвращает метку по идентификатору.
func (s *MarkService) GetMark(markID int) (*model.Mark, error) {
	return s.markRepo.GetByID(markID)
}

// ListMarks возвращает все метки пользователя, самые свежие первыми.
func (s *MarkService) ListMarks(userID int) ([]model.Mark, error) {
	return s.markRepo.ListByUser(userID)
}

// ListCoords возвращает координаты меток пользователя для отрисовки карты.
func (s *MarkService) ListCoords(userID int) ([]model.MarkCoords, error) {
	return s.markRepo.ListCoords(userID)
}

// UpdateMark выполняет частичное обновление метки от имени владельца.
// Координаты, если заданы, проверяются до обращения к базе. Возвращает
// число затронутых строк (0 для чужой или отсутствующей метки).
func (s *MarkService) UpdateMark(markID, userID int, upd model.MarkUpdate) (int64, error) {
	if upd.Lat != nil || upd.Lon != nil {
		lat, lon := 0.0, 0.0
		if upd.Lat != nil {
			lat = *upd.Lat
		}
		if upd.Lon != nil {
			lon = *upd.Lon
		}
		if err := validateCoordinates(lat, lon); err != nil {
			return 0, err
		}
	}
	return s.markRepo.Update(markID, userID, upd)
}

// DeleteMark удаляет метку вместе с фотографиями: строки - в одной
// транзакции репозитория, файлы - с диска после коммита. Сбой между
// коммитом и удалением файлов оставляет файлы-сироты, но никогда -
// записи без метки.
func (s *MarkService) DeleteMark(markID, userID int) error {
	filenames, err := s.markRepo.DeleteWithPhotos(markID, userID)
	if err != nil {
		return err
	}
	s.photos.RemoveFiles(filenames)
	return nil
}
