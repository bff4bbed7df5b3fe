package answer

import "testing"

func TestIsMultipleChoice(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"options after question", "Вопрос\n1. Да\n2. Нет", true},
		{"windows newlines", "Вопрос\r\n1. Да", true},
		{"free-form question", "Какой город столица России?\n", false},
		{"leading enumeration without newline", "1. Да\n2. Нет", false},
		{"letter enumeration", "Вопрос\na) Да\nb) Нет", false},
		{"roman enumeration", "Вопрос\ni. Да\nii. Нет", false},
		{"digit without dot", "Вопрос\n1 Да", false},
		{"empty query", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMultipleChoice(tt.query); got != tt.want {
				t.Errorf("IsMultipleChoice(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}
