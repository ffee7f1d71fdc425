//go:build integration
// +build integration

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/Plovmmm/bilo-delo/internal/database"
	"github.com/Plovmmm/bilo-delo/internal/repository"
	"github.com/Plovmmm/bilo-delo/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRouter поднимает PostgreSQL в контейнере и собирает маршрутизатор
// поверх полного графа сервисов, как в cmd/api.
func setupRouter(t *testing.T) (*gin.Engine, *sqlx.DB) {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:alpine"),
		postgres.WithDatabase("bilodelo_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { pgContainer.Terminate(ctx) })

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.CreateTables(db))
	require.NoError(t, database.CreateIndexes(db))

	uploadDir := t.TempDir()
	adminsPath := filepath.Join(t.TempDir(), "admins.json")
	require.NoError(t, os.WriteFile(adminsPath, []byte(`{"admins": [555]}`), 0o644))
	accessService, err := service.NewAccessService(adminsPath)
	require.NoError(t, err)

	userService := service.NewUserService(repository.NewUserRepository(db))
	photoService := service.NewPhotoService(repository.NewPhotoRepository(db), uploadDir)
	markService := service.NewMarkService(repository.NewMarkRepository(db), photoService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHandler(userService, markService, photoService, accessService, "")
	h.RegisterRoutes(router, uploadDir)
	return router, db
}

func doRequest(t *testing.T, router *gin.Engine, req *http.Request) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

// createMarkForm собирает multipart-форму создания метки без фотографий.
func createMarkForm(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	fields := map[string]string{
		"user_telegram_id": "555",
		"title":            "Coffee Shop",
		"lat":              "55.75",
		"lon":              "37.62",
		"visit_date":       "2024-01-15",
		"address":          "Тверская, 1",
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestCreateAndGetMarkWithoutPhotos(t *testing.T) {
	router, _ := setupRouter(t)

	// Пользователь создается лениво при первом запросе списка
	w, body := doRequest(t, router,
		httptest.NewRequest(http.MethodGet, "/api/get_marks/555", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, body["success"])

	form, contentType := createMarkForm(t)
	req := httptest.NewRequest(http.MethodPost, "/api/create_mark", form)
	req.Header.Set("Content-Type", contentType)
	w, body = doRequest(t, router, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, body["success"])

	mark, ok := body["mark"].(map[string]interface{})
	require.True(t, ok, "в ответе нет объекта mark: %v", body)
	id, ok := mark["id"].(float64)
	require.True(t, ok, "идентификатор метки не числовой: %v", mark["id"])
	require.Greater(t, id, 0.0)
	require.Equal(t, "Coffee Shop", mark["title"])
	require.Equal(t, 55.75, mark["lat"])
	require.Equal(t, 37.62, mark["lon"])

	// Деталь метки без фотографий: ключа main_photo нет вовсе
	w, detail := doRequest(t, router,
		httptest.NewRequest(http.MethodGet, "/api/get_mark/"+strconv.Itoa(int(id)), nil))
	require.Equal(t, http.StatusOK, w.Code)
	_, hasMain := detail["main_photo"]
	require.False(t, hasMain, "main_photo не должен присутствовать: %v", detail)
	require.Equal(t, "Coffee Shop", detail["title"])
	require.Equal(t, "Тверская, 1", detail["address"])
	require.Equal(t, "2024-01-15", detail["visit_date"])
	require.Equal(t, []interface{}{}, detail["photos"])
}

func TestGetMarksSurfacesPhotoStorageErrors(t *testing.T) {
	router, db := setupRouter(t)

	w, _ := doRequest(t, router,
		httptest.NewRequest(http.MethodGet, "/api/get_marks/555", nil))
	require.Equal(t, http.StatusOK, w.Code)

	form, contentType := createMarkForm(t)
	req := httptest.NewRequest(http.MethodPost, "/api/create_mark", form)
	req.Header.Set("Content-Type", contentType)
	w, _ = doRequest(t, router, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Ломаем хранилище фотографий: выборка фото в списке меток должна
	// вернуться ошибкой, а не success:true без ключей фото
	_, err := db.Exec("DROP TABLE photos")
	require.NoError(t, err)

	w, body := doRequest(t, router,
		httptest.NewRequest(http.MethodGet, "/api/get_marks/555", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, false, body["success"])
}
