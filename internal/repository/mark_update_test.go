package repository

import (
	"reflect"
	"testing"
	"time"

	"github.com/Plovmmm/bilo-delo/internal/model"
)

func strPtr(s string) *string        { return &s }
func floatPtr(f float64) *float64    { return &f }
func timePtr(t time.Time) *time.Time { return &t }

func TestBuildUpdate(t *testing.T) {
	visit := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		upd      model.MarkUpdate
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:     "только название",
			upd:      model.MarkUpdate{Title: strPtr("Кофейня")},
			wantSQL:  "UPDATE marks SET title=$1 WHERE id=$2 AND user_id=$3",
			wantArgs: []interface{}{"Кофейня", 5, 1},
		},
		{
			name: "название и координаты",
			upd:  model.MarkUpdate{Title: strPtr("x"), Lat: floatPtr(55.75), Lon: floatPtr(37.62)},
			wantSQL: "UPDATE marks SET title=$1, lat=$2, lon=$3 " +
				"WHERE id=$4 AND user_id=$5",
			wantArgs: []interface{}{"x", 55.75, 37.62, 5, 1},
		},
		{
			name: "все поля",
			upd: model.MarkUpdate{
				Title:       strPtr("t"),
				Description: strPtr("d"),
				VisitDate:   timePtr(visit),
				Address:     strPtr("a"),
				Lat:         floatPtr(1),
				Lon:         floatPtr(2),
			},
			wantSQL: "UPDATE marks SET title=$1, description=$2, visit_date=$3, " +
				"address=$4, lat=$5, lon=$6 WHERE id=$7 AND user_id=$8",
			wantArgs: []interface{}{"t", "d", visit, "a", 1.0, 2.0, 5, 1},
		},
		{
			name:     "очистка описания пустой строкой",
			upd:      model.MarkUpdate{Description: strPtr("")},
			wantSQL:  "UPDATE marks SET description=$1 WHERE id=$2 AND user_id=$3",
			wantArgs: []interface{}{"", 5, 1},
		},
	}
	for _, tt := range tests {
		gotSQL, gotArgs := buildUpdate(5, 1, tt.upd)
		if gotSQL != tt.wantSQL {
			t.Fatalf("%s: buildUpdate query = %q; want %q", tt.name, gotSQL, tt.wantSQL)
		}
		if !reflect.DeepEqual(gotArgs, tt.wantArgs) {
			t.Fatalf("%s: buildUpdate args = %#v; want %#v", tt.name, gotArgs, tt.wantArgs)
		}
	}
}

func TestMarkUpdateEmpty(t *testing.T) {
	if !(model.MarkUpdate{}).Empty() {
		t.Fatal("пустое обновление должно быть Empty")
	}
	if (model.MarkUpdate{Title: strPtr("x")}).Empty() {
		t.Fatal("обновление с полем не должно быть Empty")
	}
}
