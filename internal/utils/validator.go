package utils

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	codePattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// RegisterValidators adds the custom binding rules used by request DTOs.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return registerOn(v)
}

// NewValidator returns a standalone validator that reads binding tags, for
// checking DTOs that do not arrive through gin.
func NewValidator() (*validator.Validate, error) {
	v := validator.New()
	v.SetTagName("binding")
	if err := registerOn(v); err != nil {
		return nil, err
	}
	return v, nil
}

func registerOn(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"period": func(fl validator.FieldLevel) bool { return ValidPeriod(fl.Field().String()) },
		"phone":  func(fl validator.FieldLevel) bool { return phonePattern.MatchString(fl.Field().String()) },
		"code":   func(fl validator.FieldLevel) bool { return codePattern.MatchString(fl.Field().String()) },
		"clock":  func(fl validator.FieldLevel) bool { return clockPattern.MatchString(fl.Field().String()) },
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// ValidPeriod reports whether s is a billing period in YYYY-MM form.
func ValidPeriod(s string) bool {
	if len(s) != 7 {
		return false
	}
	_, err := time.Parse("2006-01", s)
	return err == nil
}

// ValidationError converts binding errors into a 400 APIError.
func ValidationError(err error) *APIError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]interface{}, len(verrs))
		for _, fe := range verrs {
			details[lowerFirst(fe.Field())] = fe.Tag()
		}
		return BadRequest("request validation failed").WithDetails(details)
	}
	return &APIError{Status: http.StatusBadRequest, Message: "malformed request body: " + err.Error(), Err: err}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
