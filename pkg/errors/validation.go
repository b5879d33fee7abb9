package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// imageExtensions is the set of image file extensions the overlay and
// describe surfaces accept.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ValidatePath validates a file path supplied through the CLI or API for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateImagePath validates a source-image path for the describe and
// overlay surfaces. On top of the general path rules it requires a known
// image file extension.
func ValidateImagePath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	idx := strings.LastIndex(path, ".")
	if idx < 0 || !imageExtensions[strings.ToLower(path[idx:])] {
		return New(ErrCodeInvalidPath, "unsupported image extension: %q", path)
	}

	return nil
}

// ValidateResultFilename validates a result filename for safety.
// It ensures the filename is a simple basename without path components.
func ValidateResultFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidInput, "result filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidInput, "result filename cannot contain path separators")
	}

	// No hidden files (starting with .)
	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidInput, "result filename cannot be a hidden file")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// attributeKeyRegex matches valid scene attribute keys: lowercase
// identifiers with optional underscores, as produced by the scene schema.
var attributeKeyRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateAttributeKey validates an attribute key used in queries.
// Keys come from user input on the query surfaces, so the rules are
// intentionally conservative.
func ValidateAttributeKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidAttribute, "attribute key cannot be empty")
	}

	if len(key) > 64 {
		return New(ErrCodeInvalidAttribute, "attribute key too long (max 64 characters)")
	}

	if !attributeKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidAttribute, "invalid attribute key: %q", key)
	}

	return nil
}
