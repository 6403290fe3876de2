package ports

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input    string
		expected string
	}{
		{"~/scripts/hello.lua", filepath.Join(home, "scripts/hello.lua")},
		{"~", home},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
		{"/path/with~tilde", "/path/with~tilde"},
		{"~other/home", "~other/home"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ExpandPath(tt.input), "ExpandPath(%q)", tt.input)
	}
}
