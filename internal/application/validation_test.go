package application

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "content",
			value:     "Buy milk",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "content",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "content",
			value:     "  \t ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
				if !strings.Contains(valErr.Message, "task content is required") {
					t.Errorf("unexpected message: %s", valErr.Message)
				}
			}
		})
	}
}

func TestValidateContent_TooLong(t *testing.T) {
	err := ValidateContent(strings.Repeat("x", MaxContentLength+1))
	if err == nil {
		t.Fatal("expected error for oversized content")
	}
	if Categorize(err) != CategoryValidation {
		t.Errorf("expected validation category, got %s", Categorize(err))
	}

	if err := ValidateContent(strings.Repeat("x", MaxContentLength)); err != nil {
		t.Errorf("unexpected error at the limit: %v", err)
	}
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    uint64
		wantErr bool
	}{
		{"zero", "0", 0, false},
		{"padded", " 12 ", 12, false},
		{"negative", "-1", 0, true},
		{"trailing garbage", "3abc", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIndex("index", tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseIndex(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseIndex(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}
