package handler

import (
	"errors"
	"net/http"

	"github.com/Plovmmm/bilo-delo/internal/repository"
	"github.com/Plovmmm/bilo-delo/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler структурирует зависимости сервисов для обработки HTTP-запросов.
type Handler struct {
	UserService   *service.UserService
	MarkService   *service.MarkService
	PhotoService  *service.PhotoService
	AccessService *service.AccessService
	YandexMapsKey string
}

// NewHandler создает новый Handler с внедрением зависимостей (сервисов).
func NewHandler(us *service.UserService, ms *service.MarkService, ps *service.PhotoService,
	as *service.AccessService, yandexMapsKey string) *Handler {
	return &Handler{
		UserService:   us,
		MarkService:   ms,
		PhotoService:  ps,
		AccessService: as,
		YandexMapsKey: yandexMapsKey,
	}
}

// RegisterRoutes регистрирует маршруты мини-приложения и API.
func (h *Handler) RegisterRoutes(router *gin.Engine, uploadDir string) {
	router.GET("/", h.Index)
	router.GET("/guest/:userID", h.GuestMap)
	router.Static("/upload", uploadDir)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/get_marks/:telegramID", h.GetMarks)
		api.GET("/get_marks_coords/:telegramID", h.GetMarksCoords)
		api.POST("/create_mark", h.CreateMark)
		api.GET("/get_mark/:markID", h.GetMark)
		api.DELETE("/delete_mark/:telegramID/:markID", h.DeleteMark)
		api.POST("/update_mark/:telegramID/:markID", h.UpdateMark)
	}
}

// Index отдает главную страницу мини-приложения (карта администратора).
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"yandex_maps_key": h.YandexMapsKey,
		"user_id":         h.AccessService.PrimaryAdmin(),
		"is_admin":        true,
	})
}

// GuestMap отдает страницу карты для гостя по ссылке общего доступа.
func (h *Handler) GuestMap(c *gin.Context) {
	c.HTML(http.StatusOK, "guest_map.html", gin.H{
		"yandex_maps_key": h.YandexMapsKey,
		"user_id":         c.Param("userID"),
		"is_admin":        false,
	})
}

// statusForError отображает ошибки нижних слоев в HTTP-статус:
// 400 - ошибка валидации, 404 - запись не найдена, 500 - все остальное.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError сериализует ошибку в JSON-тело в формате мини-приложения.
func respondError(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{"success": false, "message": err.Error()})
}

// respondMessage отвечает ошибкой с заданным статусом и текстом.
func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
