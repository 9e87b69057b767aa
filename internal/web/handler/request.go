package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var (
	// ErrInvalidBody is returned when the request body is not a JSON object.
	ErrInvalidBody = errors.New("invalid request body")
	// ErrNotAnArray is returned when an id list field is missing or not an array of strings.
	ErrNotAnArray = errors.New("field must be an array")
)

var validate = newValidator() //nolint:gochecknoglobals

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// ValidationError describes the first failing field of a request.
type ValidationError struct {
	Field string
	Tag   string
	Param string
}

func (e *ValidationError) Error() string {
	switch e.Tag {
	case "required":
		return e.Field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", e.Field, e.Param)
	default:
		return fmt.Sprintf("%s is invalid", e.Field)
	}
}

// Validate checks data against its validate tags.
// It returns a *ValidationError naming the first failing field.
func Validate(data interface{}) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}

	return &ValidationError{Field: errs[0].Field(), Tag: errs[0].Tag(), Param: errs[0].Param()}
}

// Bind decodes the JSON request body into dst with the app's JSON decoder.
// Unlike fiber's BodyParser it does not depend on the Content-Type header.
func Bind(c *fiber.Ctx, dst interface{}) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 || body[0] != '{' {
		return ErrInvalidBody
	}

	if err := c.App().Config().JSONDecoder(body, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err) //nolint:errorlint
	}

	return nil
}

// IDList decodes a raw JSON field that must hold an array of strings.
// A missing field or null is rejected; [] is valid and yields an empty list.
func IDList(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, ErrNotAnArray
	}

	ids := make([]string, 0)
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, ErrNotAnArray
	}

	return ids, nil
}
