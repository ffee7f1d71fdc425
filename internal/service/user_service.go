package service

import (
	"errors"

	"github.com/Plovmmm/bilo-delo/internal/model"
	"github.com/Plovmmm/bilo-delo/internal/repository"
)

// UserService содержит бизнес-логику, связанную с пользователями.
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService создает новый сервис пользователей.
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetOrCreate возвращает пользователя по Telegram ID, лениво создавая
// запись при первом обращении. Повторный вызов с тем же ID возвращает
// того же пользователя.
func (s *UserService) GetOrCreate(telegramID int64) (*model.User, error) {
	user, err := s.userRepo.GetByTelegramID(telegramID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	id, err := s.userRepo.CreateIfAbsent(telegramID)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(id)
}

// GetByTelegramID возвращает пользователя по Telegram ID без создания.
func (s *UserService) GetByTelegramID(telegramID int64) (*model.User, error) {
	return s.userRepo.GetByTelegramID(telegramID)
}
