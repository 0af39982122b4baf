package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/erp/backoffice/internal/application/validation"
)

// SetupValidator makes gin's binding validator report JSON field names and
// understand decimal amounts, like the application validator.
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.Configure(v)
	}
}
