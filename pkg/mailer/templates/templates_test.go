package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Welcome(t *testing.T) {
	subject, text, html, err := Render("welcome", map[string]any{
		"Name":    "Ada <script>",
		"Email":   "ada@x.com",
		"AppName": "Stockroom",
	})
	require.NoError(t, err)

	assert.Equal(t, "Welcome to Stockroom", subject)
	assert.Contains(t, text, "Hi Ada <script>,")
	assert.Contains(t, text, "ada@x.com")
	assert.Contains(t, html, "Ada &lt;script&gt;")
}

func TestRender_Defaults(t *testing.T) {
	subject, text, _, err := Render("welcome", map[string]any{"Email": "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Inventory", subject)
	assert.Contains(t, text, "Hi there,")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("missing", nil)
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}
