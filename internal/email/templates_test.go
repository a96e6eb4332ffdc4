package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	t.Parallel()

	body, err := NewRenderer().Render("welcome", TemplateData{"Name": "Ayla"})
	require.NoError(t, err)
	assert.Contains(t, body, "Ayla")
	assert.Contains(t, body, "welcome")
}

func TestRenderPasswordReset(t *testing.T) {
	t.Parallel()

	body, err := NewRenderer().Render("password_reset", TemplateData{
		"Name":         "Ayla",
		"ResetURL":     "https://example.com/api/v1/users/resetPassword/abc123",
		"ValidMinutes": 10,
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Ayla")
	assert.Contains(t, body, "resetPassword/abc123")
	assert.Contains(t, body, "10 minutes")
}

func TestRenderEscapesHTML(t *testing.T) {
	t.Parallel()

	body, err := NewRenderer().Render("welcome", TemplateData{"Name": "<script>alert(1)</script>"})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	t.Parallel()

	_, err := NewRenderer().Render("invoice", TemplateData{})
	assert.Error(t, err)
}
