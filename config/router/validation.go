package router

import (
	"fmt"
	"sync"

	"github.com/akeren/sunday-signup/pkg/phone"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerValidatorsOnce sync.Once
	registerValidatorsErr  error
)

// RegisterValidators adds the custom binding tags to gin's validator engine:
//
//	phone10  the value reduces to exactly ten digits
func RegisterValidators() error {
	registerValidatorsOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerValidatorsErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}

		registerValidatorsErr = engine.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
			return phone.IsValid(fl.Field().String())
		})
	})

	return registerValidatorsErr
}
