package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Plovmmm/bilo-delo/internal/repository"
)

// Допустимые расширения загружаемых фотографий.
var allowedExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".heif": "image/heif",
	".bmp":  "image/bmp",
}

// PhotoService содержит логику загрузки, хранения и выдачи фотографий.
type PhotoService struct {
	photoRepo *repository.PhotoRepository
	uploadDir string
}

// NewPhotoService создает новый сервис фотографий. uploadDir - каталог
// хранения загруженных файлов, должен существовать.
func NewPhotoService(photoRepo *repository.PhotoRepository, uploadDir string) *PhotoService {
	return &PhotoService{photoRepo: photoRepo, uploadDir: uploadDir}
}

// allowedFile проверяет расширение файла по списку допустимых.
func allowedFile(filename string) bool {
	_, ok := allowedExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// storageName строит имя файла для хранения: основа очищается от
// небезопасных символов, добавляется unix-время загрузки и, для
// второстепенных фото, порядковый номер: {основа}_{время}[_{номер}]{расш}.
func storageName(original string, now time.Time, index int) string {
	base := filepath.Base(original)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, stem)
	if index >= 0 {
		return fmt.Sprintf("%s_%d_%d%s", safe, now.Unix(), index, ext)
	}
	return fmt.Sprintf("%s_%d%s", safe, now.Unix(), ext)
}

// SaveUpload принимает загруженный файл: проверяет расширение, сохраняет
// файл в каталоге загрузок под уникальным именем и добавляет строку
// фотографии. index >= 0 включается в имя второстепенных фото,
// для главного фото передается -1. Возвращает имя сохраненного файла.
func (s *PhotoService) SaveUpload(markID int, fh *multipart.FileHeader, isMain bool, index int) (string, error) {
	if fh == nil || fh.Filename == "" {
		return "", fmt.Errorf("%w: файл не передан", ErrValidation)
	}
	if !allowedFile(fh.Filename) {
		return "", fmt.Errorf("%w: недопустимый тип файла %q", ErrValidation, fh.Filename)
	}
	filename := storageName(fh.Filename, time.Now(), index)

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("не удалось открыть загруженный файл: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.uploadDir, filename))
	if err != nil {
		return "", fmt.Errorf("не удалось сохранить файл: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("не удалось записать файл: %w", err)
	}

	if _, err := s.photoRepo.Add(markID, filename, isMain); err != nil {
		return "", err
	}
	return filename, nil
}

// MainFilename возвращает имя файла главной фотографии метки или пустую
// строку, если главное фото не назначено.
func (s *PhotoService) MainFilename(markID int) (string, error) {
	filename, err := s.photoRepo.GetMainFilename(markID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	return filename, err
}

// SecondaryFilenames возвращает имена файлов второстепенных фотографий метки.
func (s *PhotoService) SecondaryFilenames(markID int) ([]string, error) {
	return s.photoRepo.GetSecondaryFilenames(markID)
}

// DataURI читает сохраненный файл и возвращает его содержимое как
// data-URI с base64 для встраивания в JSON-ответ.
func (s *PhotoService) DataURI(filename string) (string, error) {
	content, err := os.ReadFile(filepath.Join(s.uploadDir, filename))
	if err != nil {
		return "", fmt.Errorf("не удалось прочитать файл фото: %w", err)
	}
	mime, ok := allowedExtensions[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		mime = "application/octet-stream"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(content), nil
}

// RemoveFiles удаляет файлы фотографий с диска. Отсутствие файла не
// считается ошибкой, прочие сбои логируются и не прерывают обход.
func (s *PhotoService) RemoveFiles(filenames []string) {
	for _, filename := range filenames {
		err := os.Remove(filepath.Join(s.uploadDir, filename))
		if err != nil && !os.IsNotExist(err) {
			log.Printf("Не удалось удалить файл фото %s: %v", filename, err)
		}
	}
}
