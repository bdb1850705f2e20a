// Package validation checks client-submitted product payloads and normalizes them into a model.Input.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	perrors "github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/abgdnv/productcatalog/internal/product/model"
	"github.com/go-playground/validator/v10"
)

const (
	fieldName        = "name"
	fieldDescription = "description"
	fieldPrice       = "price"
)

// fieldOrder fixes the order in which messages are reported.
var fieldOrder = []string{fieldName, fieldDescription, fieldPrice}

// productPayload holds the decoded fields of a request body.
// A nil pointer means the field was absent (or null where null is not allowed).
type productPayload struct {
	Name        *string  `json:"name"        validate:"required,min=1"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
}

// Validator applies the product field rules to raw JSON payloads.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate checks body against every rule without stopping at the first violation.
// On success it returns the normalized input with a trimmed name.
// On failure it returns a *errors.ValidationError listing every violation.
func (v *Validator) Validate(body []byte) (model.Input, error) {
	var raw map[string]json.RawMessage
	trimmed := bytes.TrimSpace(body)
	// a request without a body is checked as an empty object
	if len(trimmed) == 0 {
		trimmed = []byte("{}")
	}
	if trimmed[0] != '{' {
		if !json.Valid(trimmed) {
			return model.Input{}, failure(`"value" must be valid JSON`)
		}
		return model.Input{}, failure(`"value" must be of type object`)
	}
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return model.Input{}, failure(`"value" must be valid JSON`)
	}

	var payload productPayload
	in := model.Input{}
	problems := make(map[string][]string, len(fieldOrder))

	if msg, ok := decodeName(raw, &payload); !ok {
		problems[fieldName] = append(problems[fieldName], msg)
	}
	if msg, ok := decodeDescription(raw, &payload, &in); !ok {
		problems[fieldDescription] = append(problems[fieldDescription], msg)
	}
	if msg, ok := decodePrice(raw, &payload); !ok {
		problems[fieldPrice] = append(problems[fieldPrice], msg)
	}

	if err := v.validate.Struct(payload); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return model.Input{}, fmt.Errorf("validate product payload: %w", err)
		}
		for _, fieldErr := range validationErrors {
			field := fieldErr.Field()
			// a type mismatch already explains why the field is unusable
			if len(problems[field]) > 0 {
				continue
			}
			problems[field] = append(problems[field], describe(fieldErr))
		}
	}

	var messages []string
	for _, field := range fieldOrder {
		messages = append(messages, problems[field]...)
	}
	if len(messages) > 0 {
		return model.Input{}, &perrors.ValidationError{Messages: messages}
	}

	in.Name = model.Some(*payload.Name)
	in.Price = model.Some(*payload.Price)
	return in, nil
}

func decodeName(raw map[string]json.RawMessage, payload *productPayload) (string, bool) {
	value, present := raw[fieldName]
	if !present {
		return "", true
	}
	var s string
	if isNull(value) || json.Unmarshal(value, &s) != nil {
		return quote(fieldName) + " must be a string", false
	}
	s = strings.TrimSpace(s)
	payload.Name = &s
	return "", true
}

func decodeDescription(raw map[string]json.RawMessage, payload *productPayload, in *model.Input) (string, bool) {
	value, present := raw[fieldDescription]
	if !present {
		return "", true
	}
	if isNull(value) {
		in.Description = model.Some[*string](nil)
		return "", true
	}
	var s string
	if json.Unmarshal(value, &s) != nil {
		return quote(fieldDescription) + " must be a string", false
	}
	payload.Description = &s
	in.Description = model.Some(&s)
	return "", true
}

func decodePrice(raw map[string]json.RawMessage, payload *productPayload) (string, bool) {
	value, present := raw[fieldPrice]
	if !present {
		return "", true
	}
	f, ok := parseNumber(value)
	if !ok {
		return quote(fieldPrice) + " must be a number", false
	}
	payload.Price = &f
	return "", true
}

// parseNumber accepts a JSON number or a string holding a finite decimal number, e.g. "10".
func parseNumber(value json.RawMessage) (float64, bool) {
	if isNull(value) {
		return 0, false
	}
	var f float64
	if json.Unmarshal(value, &f) == nil {
		return f, true
	}
	var s string
	if json.Unmarshal(value, &s) != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// describe turns a struct rule violation into a message naming the field and the rule.
func describe(fieldErr validator.FieldError) string {
	field := quote(fieldErr.Field())
	switch fieldErr.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if fieldErr.Kind() == reflect.String && fieldErr.Param() == "1" {
			return field + " is not allowed to be empty"
		}
		return fmt.Sprintf("%s length must be at least %s characters long", field, fieldErr.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fieldErr.Param())
	default:
		return fmt.Sprintf("%s failed on rule: %s", field, fieldErr.Tag())
	}
}

func failure(messages ...string) error {
	return &perrors.ValidationError{Messages: messages}
}

func isNull(value json.RawMessage) bool {
	return string(bytes.TrimSpace(value)) == "null"
}

func quote(field string) string {
	return `"` + field + `"`
}
