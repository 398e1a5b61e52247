// Package validation registers custom binding rules on gin's validator.
package validation

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"cabzii/internal/utils"
)

// Register installs the custom rules. Call once before the router is built.
func Register() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// "mobile" accepts an Indian mobile number in any of the supported
	// spellings (10-digit, 0-prefixed, 91-prefixed).
	_ = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		_, err := utils.NormalizeMobile(fl.Field().String())
		return err == nil
	})
}
