package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var contactPattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{4,19}$`)

// RegisterCustomRules installs domain validation rules on gin's binding
// engine so request structs can use them in binding tags.
func RegisterCustomRules() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("contact", validContact)
}

// validContact accepts phone-style contact strings: digits with optional
// leading + and separators, 5 to 20 characters.
func validContact(fl validator.FieldLevel) bool {
	return contactPattern.MatchString(fl.Field().String())
}
