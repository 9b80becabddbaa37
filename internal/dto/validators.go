package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/willbanks/load-coordinator/internal/core/domain"
)

// Custom enum validators keep the allowed values in one place (the domain
// parsers) instead of repeating oneof lists across binding tags.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("loadstatus", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseLoadStatus(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("detailstatus", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseDetailStatus(fl.Field().String())
		return ok
	})
}
