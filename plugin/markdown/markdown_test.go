package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	svc := NewService()

	html, err := svc.Render("# Title\n\nsome *emphasis*")
	require.NoError(t, err)
	require.Contains(t, html, "<h1")
	require.Contains(t, html, "<em>emphasis</em>")
}

func TestRenderGFMTable(t *testing.T) {
	svc := NewService()

	html, err := svc.Render("| a | b |\n|---|---|\n| 1 | 2 |")
	require.NoError(t, err)
	require.Contains(t, html, "<table>")
}
