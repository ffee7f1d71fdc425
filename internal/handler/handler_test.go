package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/Plovmmm/bilo-delo/internal/model"
	"github.com/Plovmmm/bilo-delo/internal/repository"
	"github.com/Plovmmm/bilo-delo/internal/service"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrValidation, http.StatusBadRequest},
		{fmt.Errorf("%w: широта", service.ErrValidation), http.StatusBadRequest},
		{repository.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("метка: %w", repository.ErrNotFound), http.StatusNotFound},
		{repository.ErrConstraint, http.StatusInternalServerError},
		{repository.ErrConnection, http.StatusInternalServerError},
		{errors.New("прочее"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusForError(tt.err); got != tt.want {
			t.Fatalf("statusForError(%v) = %d; want %d", tt.err, got, tt.want)
		}
	}
}

func TestMarkJSONOptionalFields(t *testing.T) {
	mark := model.Mark{
		ID:        1,
		UserID:    2,
		Title:     "Кофейня",
		VisitDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Lat:       55.75,
		Lon:       37.62,
	}
	body := markJSON(mark)
	if body["visit_date"] != "2024-01-15" {
		t.Fatalf("visit_date = %v; want 2024-01-15", body["visit_date"])
	}
	if _, ok := body["description"]; ok {
		t.Fatal("description не должен присутствовать для nil-поля")
	}
	if _, ok := body["address"]; ok {
		t.Fatal("address не должен присутствовать для nil-поля")
	}

	descr, addr := "уютно", "Тверская, 1"
	mark.Description, mark.Address = &descr, &addr
	body = markJSON(mark)
	if body["description"] != "уютно" || body["address"] != "Тверская, 1" {
		t.Fatalf("необязательные поля потеряны: %v", body)
	}
}
