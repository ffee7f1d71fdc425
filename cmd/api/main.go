package main

import (
	"log"
	"os"

	"github.com/Plovmmm/bilo-delo/internal/database"
	"github.com/Plovmmm/bilo-delo/internal/handler"
	"github.com/Plovmmm/bilo-delo/internal/repository"
	"github.com/Plovmmm/bilo-delo/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env необязателен, в продакшене переменные задаются окружением
	godotenv.Load()

	// Подключение к базе данных и инициализация схемы.
	// Неудача создания таблиц или индексов фатальна: работать с
	// неполной схемой хуже, чем не стартовать.
	db, err := database.Connect(database.ConfigFromEnv())
	if err != nil {
		log.Fatalf("Не удалось подключиться к базе данных: %v", err)
	}
	if err := database.CreateTables(db); err != nil {
		log.Fatalf("Не удалось создать таблицы: %v", err)
	}
	if err := database.CreateIndexes(db); err != nil {
		log.Fatalf("Не удалось создать индексы: %v", err)
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "upload"
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.Fatalf("Не удалось создать каталог загрузок %s: %v", uploadDir, err)
	}

	adminsFile := os.Getenv("ADMINS_FILE")
	if adminsFile == "" {
		adminsFile = "admins.json"
	}
	accessService, err := service.NewAccessService(adminsFile)
	if err != nil {
		log.Fatalf("Не удалось загрузить список администраторов: %v", err)
	}

	// Инициализируем репозитории
	userRepo := repository.NewUserRepository(db)
	markRepo := repository.NewMarkRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	// Инициализируем сервисы
	userService := service.NewUserService(userRepo)
	photoService := service.NewPhotoService(photoRepo, uploadDir)
	markService := service.NewMarkService(markRepo, photoService)

	// Создаем Handler и регистрируем маршруты
	h := handler.NewHandler(userService, markService, photoService, accessService,
		os.Getenv("YANDEX_MAPS_API_KEY"))
	router := gin.Default()
	router.LoadHTMLGlob("web/templates/*.html")
	h.RegisterRoutes(router, uploadDir)

	// Запускаем HTTP-сервер
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
