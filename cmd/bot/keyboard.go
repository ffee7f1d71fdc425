package main

// tgbotapi v5.5.1 не знает кнопок web_app (Bot API 6.0), поэтому
// клавиатура /start собирается вручную: ReplyMarkup принимает
// interface{} и сериализуется в JSON как есть.

type webAppInfo struct {
	URL string `json:"url"`
}

type inlineButton struct {
	Text         string      `json:"text"`
	WebApp       *webAppInfo `json:"web_app,omitempty"`
	CallbackData string      `json:"callback_data,omitempty"`
	URL          string      `json:"url,omitempty"`
}

type inlineKeyboard struct {
	InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
}

// startKeyboard клавиатура ответа на /start для администратора:
// кнопка открытия мини-приложения и кнопка гостевой ссылки.
func startKeyboard(webAppURL string) inlineKeyboard {
	return inlineKeyboard{
		InlineKeyboard: [][]inlineButton{
			{{Text: "🗺️ Открыть карту", WebApp: &webAppInfo{URL: webAppURL}}},
			{{Text: "🔗 Поделиться картой", CallbackData: "share_map"}},
		},
	}
}
