package models

import (
	"strings"
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

// Client codes are unique per academy, so both columns must share the
// composite unique index; a single-column index would reject the same
// code across different academies.
func TestClientCodeUniquePerAcademy(t *testing.T) {
	s, err := schema.Parse(&Client{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("schema.Parse() error = %v", err)
	}

	tests := []struct {
		field    string
		priority string
	}{
		{"AcademyID", "priority:1"},
		{"ClienteCodigo", "priority:2"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f := s.LookUpField(tt.field)
			if f == nil {
				t.Fatalf("field %s not found", tt.field)
			}
			setting := f.TagSettings["UNIQUEINDEX"]
			if !strings.HasPrefix(setting, "idx_academy_cliente") {
				t.Errorf("%s uniqueIndex = %q, want idx_academy_cliente", tt.field, setting)
			}
			if !strings.Contains(setting, tt.priority) {
				t.Errorf("%s uniqueIndex = %q, want %s", tt.field, setting, tt.priority)
			}
		})
	}
}
