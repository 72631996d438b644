package errors

import (
	"os"
	"strings"
	"unicode"
)

// ValidateRoot checks that root names an existing directory.
//
// Validation rules:
//   - Root cannot be empty
//   - No null bytes or control characters
//   - Must exist and be a directory
func ValidateRoot(root string) error {
	if strings.TrimSpace(root) == "" {
		return New(ErrCodeInvalidPath, "root path cannot be empty")
	}

	for _, r := range root {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "root path contains invalid characters")
		}
	}

	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return Wrap(ErrCodeFileNotFound, err, "root %s does not exist", root)
	}
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "stat %s", root)
	}
	if !info.IsDir() {
		return New(ErrCodeInvalidPath, "root %s is not a directory", root)
	}
	return nil
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format %q (must be one of %s)", format, strings.Join(allowed, ", "))
}
