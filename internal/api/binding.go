package api

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/service"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidation makes validator errors report JSON field names and adds
// the domain tags used by the request DTOs.
func registerValidation() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("reps", func(fl validator.FieldLevel) bool {
			_, err := domain.ParseReps(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("meal", func(fl validator.FieldLevel) bool {
			return domain.Meal(fl.Field().String()).Valid()
		})
	})
}

// bindJSON decodes and validates the request body into dst, translating
// failures into field errors.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return bindingError(err)
	}
	return nil
}

// bindOptionalJSON is bindJSON for endpoints whose body may be empty.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return bindingError(err)
}

func bindingError(err error) error {
	verr := &service.ValidationError{}

	var validationErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &validationErrs):
		for _, fe := range validationErrs {
			field, position := fieldPath(fe)
			if position == "" {
				verr.Add(field, validationMessage(fe))
			} else {
				verr.Addf(field, "%s: %s", position, validationMessage(fe))
			}
		}
	case errors.As(err, &typeErr):
		// nested payloads report under their top-level field
		field := strings.SplitN(typeErr.Field, ".", 2)[0]
		if field == "" {
			verr.Add("detail", "Invalid data. Expected a dictionary.")
		} else {
			verr.Addf(field, "Incorrect type. Expected %s.", typeErr.Type.String())
		}
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		verr.Addf("detail", "JSON parse error - %s", err.Error())
	default:
		verr.Add("detail", err.Error())
	}
	return verr
}

// fieldPath splits a namespace such as "CreateProgramRequest.days[2].sets" into
// the top-level field ("days") and the position inside it ("[2] sets").
// Top-level fields have no position.
func fieldPath(fe validator.FieldError) (field, position string) {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	i := strings.IndexByte(ns, '[')
	if i <= 0 {
		return ns, ""
	}
	return ns[:i], strings.ReplaceAll(ns[i:], "].", "] ")
}

func validationMessage(fe validator.FieldError) string {
	text := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required", "required_unless":
		return "This field is required."
	case "max":
		if text {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		if text && fe.Param() == "1" {
			return "This field may not be blank."
		}
		if text {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "reps":
		return "Must be a comma separated list of ints, without any spaces."
	case "meal":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	default:
		return "Invalid value."
	}
}

// optionalID tells an absent JSON field from an explicit null.
type optionalID struct {
	Set   bool
	Value string
}

func (o *optionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = ""
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o optionalID) selection() service.Selection {
	return service.Selection{Present: o.Set, ID: o.Value}
}
