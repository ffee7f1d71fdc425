package handler

import (
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/Plovmmm/bilo-delo/internal/model"
	"github.com/Plovmmm/bilo-delo/internal/service"

	"github.com/gin-gonic/gin"
)

const visitDateLayout = "2006-01-02"

// markJSON сериализует метку в формат мини-приложения
// (дата посещения - строкой YYYY-MM-DD).
func markJSON(m model.Mark) gin.H {
	body := gin.H{
		"id":         m.ID,
		"user_id":    m.UserID,
		"title":      m.Title,
		"visit_date": m.VisitDate.Format(visitDateLayout),
		"lat":        m.Lat,
		"lon":        m.Lon,
		"created_at": m.CreatedAt,
	}
	if m.Description != nil {
		body["description"] = *m.Description
	}
	if m.Address != nil {
		body["address"] = *m.Address
	}
	return body
}

// GetMarks обработчик GET /api/get_marks/:telegramID - список меток
// пользователя с именами файлов фотографий. Пользователь создается
// лениво при первом обращении.
func (h *Handler) GetMarks(c *gin.Context) {
	telegramID, err := strconv.ParseInt(c.Param("telegramID"), 10, 64)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Некорректный Telegram ID")
		return
	}
	user, err := h.UserService.GetOrCreate(telegramID)
	if err != nil {
		respondError(c, err)
		return
	}
	marks, err := h.MarkService.ListMarks(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]gin.H, 0, len(marks))
	for _, m := range marks {
		body := markJSON(m)
		main, err := h.PhotoService.MainFilename(m.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		if main != "" {
			body["main_photo"] = main
		}
		photos, err := h.PhotoService.SecondaryFilenames(m.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		body["photos"] = photos
		result = append(result, body)
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"marks":   result,
		"user_id": user.ID,
	})
}

// GetMarksCoords обработчик GET /api/get_marks_coords/:telegramID -
// только координаты меток для отрисовки точек на гостевой карте.
// Пользователь не создается лениво: гость смотрит чужую карту.
func (h *Handler) GetMarksCoords(c *gin.Context) {
	telegramID, err := strconv.ParseInt(c.Param("telegramID"), 10, 64)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Некорректный Telegram ID")
		return
	}
	user, err := h.UserService.GetByTelegramID(telegramID)
	if err != nil {
		respondMessage(c, http.StatusNotFound, "Пользователь не найден")
		return
	}
	coords, err := h.MarkService.ListCoords(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"marks":   coords,
		"user_id": user.ID,
	})
}

// CreateMark обработчик POST /api/create_mark - создание метки из
// multipart-формы с необязательными фотографиями.
func (h *Handler) CreateMark(c *gin.Context) {
	telegramIDStr := c.PostForm("user_telegram_id")
	if telegramIDStr == "" {
		respondMessage(c, http.StatusBadRequest, "user_telegram_id не найден")
		return
	}
	telegramID, err := strconv.ParseInt(telegramIDStr, 10, 64)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Некорректный Telegram ID")
		return
	}
	title := c.PostForm("title")
	if title == "" {
		respondMessage(c, http.StatusBadRequest, "Название метки не найдено")
		return
	}
	lat, latErr := strconv.ParseFloat(c.PostForm("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.PostForm("lon"), 64)
	if latErr != nil || lonErr != nil {
		respondMessage(c, http.StatusBadRequest, "Координаты метки не найдены")
		return
	}

	in := service.CreateMarkInput{Title: title, Lat: lat, Lon: lon}
	if v, ok := c.GetPostForm("visit_date"); ok && v != "" {
		parsed, err := time.Parse(visitDateLayout, v)
		if err != nil {
			respondMessage(c, http.StatusBadRequest, "Некорректная дата посещения")
			return
		}
		in.VisitDate = &parsed
	}
	if v, ok := c.GetPostForm("description"); ok && v != "" {
		in.Description = &v
	}
	if v, ok := c.GetPostForm("address"); ok && v != "" {
		in.Address = &v
	}

	user, err := h.UserService.GetByTelegramID(telegramID)
	if err != nil {
		respondMessage(c, http.StatusNotFound, "Пользователь не найден")
		return
	}

	mark, err := h.MarkService.CreateMark(user.ID, in)
	if err != nil {
		respondError(c, err)
		return
	}

	if fh, err := c.FormFile("main_photo"); err == nil {
		if _, err := h.PhotoService.SaveUpload(mark.ID, fh, true, -1); err != nil {
			respondError(c, err)
			return
		}
	}
	h.saveSecondaryPhotos(c, mark.ID)

	c.JSON(http.StatusOK, gin.H{"success": true, "mark": markJSON(*mark)})
}

// saveSecondaryPhotos сохраняет второстепенные фото из multipart-формы.
// Файл с недопустимым расширением пропускается, остальные сохраняются.
func (h *Handler) saveSecondaryPhotos(c *gin.Context, markID int) {
	form, err := c.MultipartForm()
	if err != nil {
		return
	}
	var files []*multipart.FileHeader
	if form != nil {
		files = form.File["secondary_photos"]
	}
	for i, fh := range files {
		if _, err := h.PhotoService.SaveUpload(markID, fh, false, i); err != nil {
			log.Printf("Фото %s пропущено: %v", fh.Filename, err)
		}
	}
}

// GetMark обработчик GET /api/get_mark/:markID - детали метки,
// содержимое фотографий встраивается как base64 data-URI. Ключ
// main_photo отсутствует, если главное фото не назначено.
func (h *Handler) GetMark(c *gin.Context) {
	markID, err := strconv.Atoi(c.Param("markID"))
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Некорректный идентификатор метки")
		return
	}
	mark, err := h.MarkService.GetMark(markID)
	if err != nil {
		respondError(c, err)
		return
	}
	body := markJSON(*mark)

	if main, err := h.PhotoService.MainFilename(markID); err == nil && main != "" {
		if uri, err := h.PhotoService.DataURI(main); err == nil {
			body["main_photo"] = uri
		} else {
			log.Printf("Главное фото %s недоступно: %v", main, err)
		}
	}
	filenames, err := h.PhotoService.SecondaryFilenames(markID)
	if err != nil {
		respondError(c, err)
		return
	}
	photos := make([]string, 0, len(filenames))
	for _, filename := range filenames {
		uri, err := h.PhotoService.DataURI(filename)
		if err != nil {
			log.Printf("Фото %s недоступно: %v", filename, err)
			continue
		}
		photos = append(photos, uri)
	}
	body["photos"] = photos

	c.JSON(http.StatusOK, body)
}

// DeleteMark обработчик DELETE /api/delete_mark/:telegramID/:markID -
// удаляет метку, строки фотографий и файлы на диске.
func (h *Handler) DeleteMark(c *gin.Context) {
	telegramID, markID, ok := h.markPathParams(c)
	if !ok {
		return
	}
	user, err := h.UserService.GetByTelegramID(telegramID)
	if err != nil {
		respondMessage(c, http.StatusNotFound, "Пользователь не найден")
		return
	}
	if err := h.MarkService.DeleteMark(markID, user.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateMark обработчик POST /api/update_mark/:telegramID/:markID -
// частичное обновление метки с необязательной заменой фотографий.
func (h *Handler) UpdateMark(c *gin.Context) {
	telegramID, markID, ok := h.markPathParams(c)
	if !ok {
		return
	}
	user, err := h.UserService.GetByTelegramID(telegramID)
	if err != nil {
		respondMessage(c, http.StatusNotFound, "Пользователь не найден")
		return
	}
	mark, err := h.MarkService.GetMark(markID)
	if err != nil || mark.UserID != user.ID {
		respondMessage(c, http.StatusNotFound, "Метка не найдена")
		return
	}

	var upd model.MarkUpdate
	if v, ok := c.GetPostForm("title"); ok {
		upd.Title = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		upd.Description = &v
	}
	if v, ok := c.GetPostForm("address"); ok {
		upd.Address = &v
	}
	if v, ok := c.GetPostForm("visit_date"); ok {
		parsed, err := time.Parse(visitDateLayout, v)
		if err != nil {
			respondMessage(c, http.StatusBadRequest, "Некорректная дата посещения")
			return
		}
		upd.VisitDate = &parsed
	}
	if v, ok := c.GetPostForm("lat"); ok {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondMessage(c, http.StatusBadRequest, "Некорректная широта")
			return
		}
		upd.Lat = &parsed
	}
	if v, ok := c.GetPostForm("lon"); ok {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondMessage(c, http.StatusBadRequest, "Некорректная долгота")
			return
		}
		upd.Lon = &parsed
	}

	affected, err := h.MarkService.UpdateMark(markID, user.ID, upd)
	if err != nil {
		respondError(c, err)
		return
	}

	if fh, err := c.FormFile("main_photo"); err == nil {
		if _, err := h.PhotoService.SaveUpload(markID, fh, true, -1); err != nil {
			respondError(c, err)
			return
		}
	}
	h.saveSecondaryPhotos(c, markID)

	c.JSON(http.StatusOK, gin.H{"success": true, "updated": affected})
}

// markPathParams читает и проверяет параметры пути telegramID/markID.
func (h *Handler) markPathParams(c *gin.Context) (int64, int, bool) {
	telegramID, err := strconv.ParseInt(c.Param("telegramID"), 10, 64)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Некорректный Telegram ID")
		return 0, 0, false
	}
	markID, err := strconv.Atoi(c.Param("markID"))
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Некорректный идентификатор метки")
		return 0, 0, false
	}
	return telegramID, markID, true
}
