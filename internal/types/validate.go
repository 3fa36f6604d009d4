//nolint:revive // types is a standard Go package name pattern
package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/placement-tracker/internal/catalog"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "application_status", func(fl validator.FieldLevel) bool {
		return ApplicationStatus(fl.Field().String()).Valid()
	})
	mustRegister(v, "role_option", func(fl validator.FieldLevel) bool {
		return catalog.IsRole(fl.Field().String())
	})
	mustRegister(v, "location_option", func(fl validator.FieldLevel) bool {
		return catalog.IsLocation(fl.Field().String())
	})
	mustRegister(v, "package_option", func(fl validator.FieldLevel) bool {
		return catalog.IsPackageRange(fl.Field().String())
	})
	mustRegister(v, "study_category", func(fl validator.FieldLevel) bool {
		_, ok := catalog.LookupCategory(fl.Field().String())
		return ok
	})
	mustRegister(v, "plan_topic", func(fl validator.FieldLevel) bool {
		_, ok := catalog.LookupPlanTemplate(fl.Field().String())
		return ok
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("failed to register validation " + tag + ": " + err.Error())
	}
}
