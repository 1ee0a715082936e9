package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/songifi/lyricsflip-server-sub002/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.NoError(t, WrapValidationError(nil))
	})

	t.Run("non-nil error", func(t *testing.T) {
		err := WrapValidationError(apperrors.New("name is required"))
		assert.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		assert.Contains(t, err.Error(), "name is required")
	})
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, NotBlank.Validate("hello"))
	assert.NoError(t, NotBlank.Validate("  hello  "))
	assert.Error(t, NotBlank.Validate("   "))
	assert.Error(t, NotBlank.Validate("\t\n"))
}

func TestLanguageCode(t *testing.T) {
	assert.NoError(t, LanguageCode.Validate("en"))
	assert.NoError(t, LanguageCode.Validate("es"))
	assert.NoError(t, LanguageCode.Validate("pt-BR"))
	assert.Error(t, LanguageCode.Validate("english"))
	assert.Error(t, LanguageCode.Validate("EN"))
	assert.Error(t, LanguageCode.Validate("e"))
	assert.Error(t, LanguageCode.Validate("pt-br"))
}
