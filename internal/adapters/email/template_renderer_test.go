package email

import (
	"testing"

	"undangan/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRenderer_Render(t *testing.T) {
	r := NewTemplateRenderer()

	t.Run("welcome", func(t *testing.T) {
		subject, html, text, err := r.Render("welcome", &domain.WelcomeEmailData{Email: "alice@example.com", Name: "Alice"})
		require.NoError(t, err)
		assert.NotEmpty(t, subject)
		assert.Contains(t, html, "Alice")
		assert.Contains(t, text, "Alice")
	})

	t.Run("account_verified", func(t *testing.T) {
		subject, html, text, err := r.Render("account_verified", &domain.AccountVerifiedEmailData{Email: "bob@example.com", Name: "Bob"})
		require.NoError(t, err)
		assert.NotEmpty(t, subject)
		assert.Contains(t, html, "Bob")
		assert.Contains(t, text, "Bob")
	})

	t.Run("unknown template", func(t *testing.T) {
		_, _, _, err := r.Render("no-such-template", nil)
		require.Error(t, err)
	})
}
