package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxRequestBodyBytes bounds the size of decoded request bodies.
const MaxRequestBodyBytes = 1 << 20

// Validate is the shared validator instance for request structs.
// Field names in its errors are the JSON names.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeJSON decodes the request body into v. Unknown fields and trailing
// data are rejected.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxRequestBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// ValidateRequest validates v with its own Validate method when it has one,
// and with struct tags otherwise.
func ValidateRequest(v any) error {
	if self, ok := v.(interface{ Validate() error }); ok {
		return self.Validate()
	}
	return Validate.Struct(v)
}

// DecodeAndValidate combines DecodeJSON and ValidateRequest.
func DecodeAndValidate(r *http.Request, v any) error {
	if err := DecodeJSON(r, v); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	return ValidateRequest(v)
}
