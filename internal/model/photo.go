package model

import "time"

// Photo представляет фотографию, привязанную к метке.
// Не более одной фотографии метки может иметь IsMain=true.
type Photo struct {
	ID        int       `db:"id" json:"id"`
	MarkID    int       `db:"mark_id" json:"mark_id"`
	Filename  string    `db:"filename" json:"filename"`
	IsMain    bool      `db:"is_main" json:"is_main"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
