// Package validation checks untrusted input, such as MCP tool arguments,
// before it reaches the script manager.
package validation

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Common validation errors.
var (
	ErrEmptyInput        = errors.New("input cannot be empty")
	ErrInvalidScriptName = errors.New("invalid script name")
	ErrInvalidPath       = errors.New("invalid path")
	ErrPathTraversal     = errors.New("path traversal detected")
	ErrCodeTooLarge      = errors.New("code too large")
	ErrControlCharacter  = errors.New("control character in input")
)

// Limits.
const (
	MaxScriptNameLength = 128
	MaxPathLength       = 4096
	MaxCodeLength       = 1 << 20
)

// scriptNameRegex matches names a script can be registered and unloaded under.
// Examples: "hello", "auto_away", "data12", "nick-color.v2"
var scriptNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_][a-zA-Z0-9._-]*$`)

// ValidateScriptName validates a bare script name.
func ValidateScriptName(name string) error {
	if name == "" {
		return ErrEmptyInput
	}
	if len(name) > MaxScriptNameLength {
		return fmt.Errorf("%w: name too long (max %d characters)", ErrInvalidScriptName, MaxScriptNameLength)
	}
	if !scriptNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q contains invalid characters", ErrInvalidScriptName, name)
	}
	return nil
}

// ValidateLoadTarget validates the argument of a load: a bare name or a path.
// Paths may be absolute or home-relative but must not climb with "..".
func ValidateLoadTarget(target string) error {
	if target == "" {
		return ErrEmptyInput
	}
	if !strings.ContainsAny(target, `/\`) && !strings.HasPrefix(target, "~") {
		return ValidateScriptName(target)
	}
	if len(target) > MaxPathLength {
		return fmt.Errorf("%w: path too long (max %d characters)", ErrInvalidPath, MaxPathLength)
	}
	if containsControl(target) {
		return fmt.Errorf("%w: path contains control characters", ErrInvalidPath)
	}
	if containsPathTraversal(target) {
		return fmt.Errorf("%w: %q contains traversal sequence", ErrPathTraversal, target)
	}
	return nil
}

// ValidateCode validates inline source. Newlines and tabs are allowed.
func ValidateCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return ErrEmptyInput
	}
	if len(code) > MaxCodeLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrCodeTooLarge, len(code), MaxCodeLength)
	}
	if strings.ContainsRune(code, 0) {
		return fmt.Errorf("%w: null byte", ErrControlCharacter)
	}
	return nil
}

// ValidateWord validates a partial word sent for completion.
func ValidateWord(word string) error {
	if containsControl(word) {
		return fmt.Errorf("%w: completion word", ErrControlCharacter)
	}
	return nil
}

func containsControl(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return r < 0x20 || r == 0x7f
	}) >= 0
}

// containsPathTraversal checks for common path traversal patterns.
func containsPathTraversal(path string) bool {
	for _, seg := range strings.FieldsFunc(filepath.ToSlash(path), func(r rune) bool { return r == '/' }) {
		if seg == ".." {
			return true
		}
	}

	// URL-encoded traversal
	lower := strings.ToLower(path)
	return strings.Contains(lower, "%2e%2e")
}
