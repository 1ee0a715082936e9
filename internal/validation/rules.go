// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/songifi/lyricsflip-server-sub002/internal/errors"
)

var (
	// languageCodeRegex matches two-letter ISO 639-1 language codes with an
	// optional region subtag (e.g. "en", "pt-BR").
	languageCodeRegex = regexp.MustCompile(`^[a-z]{2}(-[A-Z]{2})?$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty or whitespace-only
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "cannot be blank or whitespace-only"),
)

// LanguageCode validates ISO 639-1 language codes with an optional region subtag
var LanguageCode = validation.NewStringRuleWithError(
	func(s string) bool {
		return languageCodeRegex.MatchString(s)
	},
	validation.NewError("validation_language_code", "must be a valid language code (e.g. en, pt-BR)"),
)
