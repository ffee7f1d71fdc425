package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Plovmmm/bilo-delo/internal/database"
	"github.com/Plovmmm/bilo-delo/internal/repository"
	"github.com/Plovmmm/bilo-delo/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	// Подключение к базе данных (для ленивой регистрации пользователей)
	db, err := database.Connect(database.ConfigFromEnv())
	if err != nil {
		log.Fatalf("Не удалось подключиться к базе данных: %v", err)
	}
	userService := service.NewUserService(repository.NewUserRepository(db))

	adminsFile := os.Getenv("ADMINS_FILE")
	if adminsFile == "" {
		adminsFile = "admins.json"
	}
	accessService, err := service.NewAccessService(adminsFile)
	if err != nil {
		log.Fatalf("Не удалось загрузить список администраторов: %v", err)
	}

	webAppURL := os.Getenv("WEB_APP_URL")
	if webAppURL == "" {
		log.Fatal("Не указан адрес мини-приложения (WEB_APP_URL)")
	}

	// Инициализация Telegram Bot API
	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		log.Fatal("Не указан токен бота (BOT_TOKEN)")
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Fatal("Ошибка инициализации бота:", err)
	}
	log.Printf("Запущен бот %s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	for update := range updates {
		// --- CallbackQuery (inline buttons) ---
		if cq := update.CallbackQuery; cq != nil {
			bot.Request(tgbotapi.NewCallback(cq.ID, ""))

			if cq.Data == "share_map" && accessService.IsAdmin(cq.From.ID) {
				shareURL := fmt.Sprintf("%s/guest/%d", webAppURL, cq.From.ID)
				text := fmt.Sprintf(
					"🔗 Ссылка для доступа к твоей карте:\n\n%s\n\n"+
						"Отправь эту ссылку друзьям, чтобы они могли посмотреть твою карту!", shareURL)
				edit := tgbotapi.NewEditMessageText(cq.Message.Chat.ID, cq.Message.MessageID, text)
				markup := tgbotapi.NewInlineKeyboardMarkup(
					tgbotapi.NewInlineKeyboardRow(
						tgbotapi.NewInlineKeyboardButtonURL("🗺️ Открыть карту", shareURL),
					),
				)
				edit.ReplyMarkup = &markup
				bot.Send(edit)
			}
			continue
		}

		// --- Обычные сообщения ---
		if update.Message == nil || !update.Message.IsCommand() {
			continue
		}
		msg := update.Message
		chatID := msg.Chat.ID
		userID := msg.From.ID

		switch msg.Command() {
		case "start":
			if !accessService.IsAdmin(userID) {
				bot.Send(tgbotapi.NewMessage(chatID,
					"👋 Привет! Это мини-приложение \"Было дело\".\n"+
						"Карту можно посмотреть только по ссылке от ее владельца."))
				continue
			}
			// Регистрируем администратора при первом обращении
			if _, err := userService.GetOrCreate(userID); err != nil {
				log.Printf("Не удалось зарегистрировать пользователя %d: %v", userID, err)
				bot.Send(tgbotapi.NewMessage(chatID, "Ошибка авторизации."))
				continue
			}
			reply := tgbotapi.NewMessage(chatID, fmt.Sprintf(
				"Привет! Это твое мини-приложение \"Было дело\".\nТвой ID: %d\n\n"+
					"Нажми кнопку ниже чтобы открыть карту:", userID))
			reply.ReplyMarkup = startKeyboard(webAppURL)
			bot.Send(reply)

		case "reload_admins":
			if !accessService.IsAdmin(userID) {
				continue
			}
			if err := accessService.Reload(); err != nil {
				bot.Send(tgbotapi.NewMessage(chatID, "Не удалось перечитать список администраторов."))
			} else {
				bot.Send(tgbotapi.NewMessage(chatID, "Список администраторов обновлен."))
			}
		}
	}
}
