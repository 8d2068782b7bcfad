package validators

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	nonstandard "github.com/go-playground/validator/v10/non-standard/validators"
)

var registerOnce sync.Once

// RegisterBinding adds the project tags to gin's validator and makes field
// errors report JSON names instead of Go field names:
//
//	mailbox   IsValidEmail on the normalized value
//	notblank  rejects whitespace-only strings
func RegisterBinding() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(jsonName)

		if err := v.RegisterValidation("mailbox", mailbox); err != nil {
			panic(err)
		}
		if err := v.RegisterValidation("notblank", nonstandard.NotBlank); err != nil {
			panic(err)
		}
	})
}

func mailbox(fl validator.FieldLevel) bool {
	return IsValidEmail(NormalizeEmail(fl.Field().String()))
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return "-"
	case "":
		return f.Name
	}
	return name
}
