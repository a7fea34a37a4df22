package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateCategoryName validates a dataset category key.
// Category names are used as figure titles and as cache key parts, so they
// must be non-empty, printable and reasonably short.
func ValidateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidDataset, "category name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidDataset, "category name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDataset, "category name contains control characters: %q", name)
		}
	}
	return nil
}

// ValidateYearSpan checks that start and end describe a non-empty span.
func ValidateYearSpan(start, end int) error {
	if start <= 0 || end <= 0 {
		return New(ErrCodeInvalidInput, "years must be positive (got %d..%d)", start, end)
	}
	if end < start {
		return New(ErrCodeInvalidInput, "end year %d is before start year %d", end, start)
	}
	return nil
}

// ValidateFraction checks that v lies in the closed unit interval.
func ValidateFraction(name string, v float64) error {
	if v < 0 || v > 1 {
		return New(ErrCodeInvalidInput, "%s must be between 0 and 1 (got %g)", name, v)
	}
	return nil
}

// ValidatePath validates a file path supplied on the command line or in a
// story file. Relative paths are allowed; null bytes and control characters
// are not.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateRelativeRef validates a path that must stay inside the directory of
// the file that references it (e.g. a story's data file).
func ValidateRelativeRef(ref string) error {
	if err := ValidatePath(ref); err != nil {
		return err
	}
	if filepath.IsAbs(ref) {
		return nil
	}
	clean := filepath.ToSlash(filepath.Clean(ref))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return New(ErrCodeInvalidPath, "path escapes the story directory: %q", ref)
	}
	return nil
}
