// Package validation checks decoded requests with go-playground/validator
// and reports the first failure as a validation domain error.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	dErrors "bkap/pkg/domain-errors"
)

// licenseKey matches the 32 hex character keys the store issues.
var licenseKey = regexp.MustCompile(`^[a-fA-F0-9]{32}$`)

var validate = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(wireName)
	must(v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}))
	must(v.RegisterValidation("licensekey", func(fl validator.FieldLevel) bool {
		return IsLicenseKey(fl.Field().String())
	}))
	return v
})

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// wireName names a field by its form or json tag.
func wireName(f reflect.StructField) string {
	for _, key := range []string{"form", "json"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// Validate checks req's validate tags.
func Validate(req any) error {
	err := validate().Struct(req)
	if err == nil {
		return nil
	}
	return dErrors.New(dErrors.CodeValidation, message(err))
}

// IsLicenseKey reports whether key is shaped like a store license key.
func IsLicenseKey(key string) bool {
	return licenseKey.MatchString(key)
}

var messages = map[string]func(field, param string) string{
	"required":    func(f, _ string) string { return f + " is required" },
	"required_if": func(f, _ string) string { return f + " is required" },
	"max":         func(f, p string) string { return fmt.Sprintf("%s must be at most %s", f, p) },
	"oneof":       func(f, p string) string { return fmt.Sprintf("%s must be one of [%s]", f, p) },
	"notblank":    func(f, _ string) string { return f + " must not be blank" },
	"licensekey":  func(f, _ string) string { return f + " must be a 32 character license key" },
}

func message(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return "invalid request body"
	}
	fe := errs[0]
	if format, ok := messages[fe.ActualTag()]; ok {
		return format(fe.Field(), fe.Param())
	}
	return fe.Field() + " is invalid"
}
