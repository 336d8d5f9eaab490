package apperror

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init makes gin's validator report fields by their json tag, so binding
// errors name "sourceId" rather than "SourceID". Call once at startup,
// before any routes bind.
func Init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if tag == "-" {
			return ""
		}
		return tag
	})
}
