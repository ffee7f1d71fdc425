package model

import "time"

// Mark представляет метку посещенного места на карте.
type Mark struct {
	ID          int       `db:"id" json:"id"`
	UserID      int       `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	VisitDate   time.Time `db:"visit_date" json:"visit_date"`
	Address     *string   `db:"address" json:"address,omitempty"`
	Lat         float64   `db:"lat" json:"lat"`
	Lon         float64   `db:"lon" json:"lon"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// MarkCoords содержит только координаты метки (для отрисовки точек на карте).
type MarkCoords struct {
	ID     int     `db:"id" json:"id"`
	Lat    float64 `db:"lat" json:"lat"`
	Lon    float64 `db:"lon" json:"lon"`
	UserID int     `db:"user_id" json:"user_id"`
}

// MarkUpdate описывает частичное обновление метки: заполненные поля
// попадают в UPDATE, nil-поля не затрагиваются. Набор полей закрытый,
// произвольные имена колонок выразить невозможно.
type MarkUpdate struct {
	Title       *string
	Description *string
	VisitDate   *time.Time
	Address     *string
	Lat         *float64
	Lon         *float64
}

// Empty сообщает, задано ли хотя бы одно поле для обновления.
func (u MarkUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.VisitDate == nil &&
		u.Address == nil && u.Lat == nil && u.Lon == nil
}
