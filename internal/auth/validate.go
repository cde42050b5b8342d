package auth

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	userRecordIDPattern = regexp.MustCompile(`^user:[A-Za-z0-9_]{1,64}$`)
	secretPattern       = regexp.MustCompile(`^[0-9a-f]{64}$`)
)

// LinkRequest is the input of RequestLink.
type LinkRequest struct {
	Email string `validate:"required,email,max=254"`
}

// ExchangeRequest is the input of Exchange.
type ExchangeRequest struct {
	UserID string `validate:"required,user_record_id"`
	Secret string `validate:"required,magic_secret"`
}

// NewValidator returns a validator knowing the magic link tags:
// user_record_id accepts "user:<id>" and magic_secret accepts 64 lowercase hex digits.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("user_record_id", func(fl validator.FieldLevel) bool {
		return userRecordIDPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("magic_secret", func(fl validator.FieldLevel) bool {
		return secretPattern.MatchString(fl.Field().String())
	})
	return v
}

// describeValidation lists the failing fields and tags without echoing values.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Field()+" failed "+fe.Tag())
	}
	return strings.Join(parts, ", ")
}
