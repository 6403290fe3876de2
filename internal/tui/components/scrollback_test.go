package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewScrollback(t *testing.T) {
	t.Parallel()

	s := NewScrollback(80, 10)

	assert.Equal(t, 80, s.Width())
	assert.Equal(t, 10, s.Height())
	assert.Empty(t, s.Lines())
}

func TestScrollback_Append(t *testing.T) {
	t.Parallel()

	s := NewScrollback(80, 10).
		Append("> script list").
		Append("Loaded scripts:\nhello          /x/hello.lua\n")

	assert.Equal(t, []string{"> script list", "Loaded scripts:", "hello          /x/hello.lua"}, s.Lines())
	assert.Contains(t, s.View(), "Loaded scripts:")
}

func TestScrollback_AppendDoesNotAlias(t *testing.T) {
	t.Parallel()

	base := NewScrollback(80, 10).Append("a")
	left := base.Append("left")
	right := base.Append("right")

	assert.Equal(t, []string{"a", "left"}, left.Lines())
	assert.Equal(t, []string{"a", "right"}, right.Lines())
}

func TestScrollback_MaxLines(t *testing.T) {
	t.Parallel()

	s := NewScrollback(80, 10).WithMaxLines(2).
		Append("one").
		Append("two").
		Append("three")

	assert.Equal(t, []string{"two", "three"}, s.Lines())
}

func TestScrollback_Clear(t *testing.T) {
	t.Parallel()

	s := NewScrollback(80, 10).Append("one").Clear()

	assert.Empty(t, s.Lines())
}

func TestScrollback_FollowsNewestLine(t *testing.T) {
	t.Parallel()

	s := NewScrollback(80, 2)
	for _, line := range []string{"1", "2", "3", "4", "5"} {
		s = s.Append(line)
	}

	assert.True(t, s.AtBottom())
	assert.Contains(t, s.View(), "5")
	assert.NotContains(t, s.View(), "1")

	s = s.PageUp()
	assert.False(t, s.AtBottom())

	s = s.PageDown().PageDown()
	assert.True(t, s.AtBottom())
}

func TestScrollback_WithSize(t *testing.T) {
	t.Parallel()

	s := NewScrollback(80, 10).WithSize(40, 0)

	assert.Equal(t, 40, s.Width())
	assert.Equal(t, 1, s.Height())
}
