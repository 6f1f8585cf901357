package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// phonePattern accepts international or local numbers, digits only, with an
// optional leading plus.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("phone", validPhone)
	}
}

func validPhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}
