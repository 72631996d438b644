package errors

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.ts")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		root string
		code Code
	}{
		{"directory", dir, ""},
		{"empty", "  ", ErrCodeInvalidPath},
		{"control char", "a\x01b", ErrCodeInvalidPath},
		{"missing", filepath.Join(dir, "missing"), ErrCodeFileNotFound},
		{"file", file, ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoot(tt.root)
			if tt.code == "" {
				if err != nil {
					t.Fatalf("ValidateRoot() = %v, want nil", err)
				}
				return
			}
			if !Is(err, tt.code) {
				t.Errorf("ValidateRoot() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	if err := ValidateFormat("svg", "svg", "png"); err != nil {
		t.Errorf("ValidateFormat(svg) = %v", err)
	}
	if err := ValidateFormat("pdf", "svg", "png"); !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormat(pdf) = %v, want INVALID_FORMAT", err)
	}
}
