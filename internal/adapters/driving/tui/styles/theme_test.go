package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme_AccentsAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	accents := []lipgloss.Color{theme.Primary, theme.Secondary, theme.Success, theme.Warning, theme.Error}

	seen := make(map[string]bool)
	for _, c := range accents {
		s := string(c)
		assert.NotEmpty(t, s)
		assert.False(t, seen[s], "duplicate accent: %s", s)
		seen[s] = true
	}
}

func TestNewStyles(t *testing.T) {
	t.Run("with theme", func(t *testing.T) {
		theme := DefaultTheme()
		styles := NewStyles(theme)

		require.NotNil(t, styles)
		assert.Equal(t, theme, styles.Theme())
	})

	t.Run("nil theme uses default", func(t *testing.T) {
		styles := NewStyles(nil)

		require.NotNil(t, styles)
		assert.Equal(t, DefaultTheme(), styles.Theme())
	})
}

func TestStyles_EditorStylesInitialised(t *testing.T) {
	styles := DefaultStyles()

	tests := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Pane", styles.Pane},
		{"Cursor", styles.Cursor},
		{"Selection", styles.Selection},
		{"Modal", styles.Modal},
		{"StatusBar", styles.StatusBar},
		{"Success", styles.Success},
		{"Error", styles.Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, lipgloss.Style{}, tt.style)
			assert.NotEmpty(t, tt.style.Render("text"))
		})
	}
}
