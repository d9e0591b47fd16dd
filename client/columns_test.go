package client

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidateColumnTitle(t *testing.T) {
	existing := []Column{
		{ID: 1, Title: "To Do"},
		{ID: 2, Title: "In Progress"},
	}
	tests := []struct {
		name      string
		title     string
		excludeID int64
		want      error
	}{
		{"ok", "Done", 0, nil},
		{"blank", "", 0, ErrColumnTitleBlank},
		{"whitespace only", "   ", 0, ErrColumnTitleBlank},
		{"exact duplicate", "To Do", 0, ErrColumnTitleDup},
		{"case-insensitive duplicate", "to do", 0, ErrColumnTitleDup},
		{"padded duplicate", "  To Do ", 0, ErrColumnTitleDup},
		{"rename keeping own title", "To Do", 1, nil},
		{"rename onto another title", "In Progress", 1, ErrColumnTitleDup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateColumnTitle(tt.title, existing, tt.excludeID); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateColumnTitleLimit(t *testing.T) {
	full := make([]Column, MaxColumns)
	for i := range full {
		full[i] = Column{ID: int64(i + 1), Title: fmt.Sprintf("Column %d", i+1)}
	}
	if err := ValidateColumnTitle("One More", full, 0); !errors.Is(err, ErrColumnLimit) {
		t.Fatalf("err = %v, want %v", err, ErrColumnLimit)
	}
	// Renaming an existing column is fine even at the limit.
	if err := ValidateColumnTitle("Renamed", full, 3); err != nil {
		t.Fatalf("rename at limit: err = %v", err)
	}
}
