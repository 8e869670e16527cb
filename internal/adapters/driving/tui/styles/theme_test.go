package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()
	require.NotNil(t, theme)
	assert.Equal(t, lipgloss.Color("#F38BA8"), theme.Error)
	assert.Equal(t, lipgloss.Color("#F9E2AF"), theme.Warning)
}

func TestNewStyles(t *testing.T) {
	t.Run("uses the given theme", func(t *testing.T) {
		theme := DefaultTheme()
		s := NewStyles(theme)
		assert.Same(t, theme, s.Theme())
	})

	t.Run("falls back to the default theme", func(t *testing.T) {
		s := NewStyles(nil)
		require.NotNil(t, s.Theme())
	})
}

func TestForSeverity(t *testing.T) {
	s := DefaultStyles()

	assert.Equal(t, s.Error, s.ForSeverity("error"))
	assert.Equal(t, s.Warning, s.ForSeverity("warning"))
	assert.Equal(t, s.Info, s.ForSeverity("info"))
	assert.Equal(t, s.Normal, s.ForSeverity("something else"))
}
