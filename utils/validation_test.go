package utils

import "testing"

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"9841234567", true},
		{"01-4412345", true},
		{"+977 984-123-4567", true},
		{"(01) 441 2345", true},
		{"", false},
		{"12345", false},             // too short
		{"12345678901234567", false}, // too long
		{"98412some67", false},       // letters
		{"984+1234567", false},       // + only leads
	}
	for _, tt := range tests {
		if got := ValidatePhone(tt.phone); got != tt.want {
			t.Errorf("ValidatePhone(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}
