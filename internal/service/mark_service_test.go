package service

import "testing"

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lon     float64
		wantErr bool
	}{
		{"москва", 55.7558, 37.6173, false},
		{"границы", 90, 180, false},
		{"отрицательные границы", -90, -180, false},
		{"нулевые", 0, 0, false},
		{"широта выше", 90.01, 0, true},
		{"широта ниже", -90.5, 0, true},
		{"долгота выше", 0, 180.1, true},
		{"долгота ниже", 0, -181, true},
	}
	for _, tt := range tests {
		err := validateCoordinates(tt.lat, tt.lon)
		if (err != nil) != tt.wantErr {
			t.Fatalf("%s: validateCoordinates(%v, %v) = %v; wantErr %v",
				tt.name, tt.lat, tt.lon, err, tt.wantErr)
		}
	}
}
