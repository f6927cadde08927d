package services

import "testing"

func TestIsValidPostcode(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"12345", true},
		{"12345-6789", true},
		{"12345 6789", true},
		{"00000", true},
		{"ZIP 12345", true}, // leading text before a valid suffix is tolerated
		{"invalid", false},
		{"", false},
		{"1234", false},
		{"12345-", false},
		{"12345-678", false},
		{"12345-6789x", false},
		{"12345 ", false},
		{"abcde", false},
		{"123456", true}, // "23456" at the tail is itself a valid code
		{"12345_6789", false},
		{"12345\n", true},
		{"12345-6789\n", true},
		{"12345\n\n", false},
		{"12345 \n", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidPostcode(tt.input); got != tt.want {
				t.Fatalf("IsValidPostcode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
