package utils

import "testing"

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+51987654321", true},
		{"+1 (555) 123-4567", true},
		{"987654321", true},
		{"abc123", false},
		{"+0123456", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			if got := ValidatePhone(tt.phone); got != tt.want {
				t.Errorf("ValidatePhone(%q) = %v, want %v", tt.phone, got, tt.want)
			}
		})
	}
}

func TestValidateClienteCodigo(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"CLI-0042", true},
		{"ABC", true},
		{"A1-B2-C3", true},
		{"ab-123", false}, // lowercase
		{"-CLI", false},   // leading dash
		{"AB", false},     // too short
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := ValidateClienteCodigo(tt.code); got != tt.want {
				t.Errorf("ValidateClienteCodigo(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}
