package service

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// AccessService разграничивает администраторов (могут редактировать метки)
// и гостей (только просмотр по ссылке). Список администраторов читается из
// JSON-файла один раз при старте; перечитывание - явное, через Reload.
type AccessService struct {
	path   string
	mu     sync.Mutex
	admins []int64
}

// NewAccessService создает сервис доступа и загружает список
// администраторов из файла path.
func NewAccessService(path string) (*AccessService, error) {
	s := &AccessService{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload перечитывает файл списка администраторов.
// Формат файла: {"admins": [1323961884]}.
func (s *AccessService) Reload() error {
	content, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("не удалось прочитать список администраторов: %w", err)
	}
	var parsed struct {
		Admins []int64 `json:"admins"`
	}
	if err := json.Unmarshal(content, &parsed); err != nil {
		return fmt.Errorf("не удалось разобрать список администраторов: %w", err)
	}
	s.mu.Lock()
	s.admins = parsed.Admins
	s.mu.Unlock()
	return nil
}

// IsAdmin сообщает, входит ли Telegram ID в список администраторов.
func (s *AccessService) IsAdmin(telegramID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.admins {
		if id == telegramID {
			return true
		}
	}
	return false
}

// PrimaryAdmin возвращает первый Telegram ID из списка (владелец дневника)
// или 0, если список пуст.
func (s *AccessService) PrimaryAdmin() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.admins) == 0 {
		return 0
	}
	return s.admins[0]
}
