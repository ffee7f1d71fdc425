package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestWrapDBError(t *testing.T) {
	plain := errors.New("что-то другое")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"нет строк", sql.ErrNoRows, ErrNotFound},
		{"обернутый sql.ErrNoRows", fmt.Errorf("get: %w", sql.ErrNoRows), ErrNotFound},
		{"check-ограничение", &pq.Error{Code: "23514", Message: "valid_coordinates"}, ErrConstraint},
		{"внешний ключ", &pq.Error{Code: "23503"}, ErrConstraint},
		{"уникальность", &pq.Error{Code: "23505"}, ErrConstraint},
		{"обрыв соединения", &pq.Error{Code: "08006"}, ErrConnection},
		{"нехватка ресурсов", &pq.Error{Code: "53300"}, ErrConnection},
	}
	for _, tt := range tests {
		got := wrapDBError(tt.in)
		if tt.want == nil {
			if got != nil {
				t.Fatalf("%s: wrapDBError = %v; want nil", tt.name, got)
			}
			continue
		}
		if !errors.Is(got, tt.want) {
			t.Fatalf("%s: wrapDBError = %v; want errors.Is %v", tt.name, got, tt.want)
		}
	}

	// Прочие ошибки проходят без изменения
	if got := wrapDBError(plain); got != plain {
		t.Fatalf("посторонняя ошибка изменена: %v", got)
	}
}
