package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	nonstandard "github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"

	"bitbucket.org/Amartha/go-fp-ledger/internal/models"
)

// ErrorValidateResponse is one failed rule, rendered as an element of the
// "errors" array of a validation response.
type ErrorValidateResponse struct {
	Code    string `json:"code,omitempty" example:"VALIDATION_ERROR"`
	Field   string `json:"field,omitempty" example:"documentNumber"`
	Message string `json:"message,omitempty" example:"documentNumber is required"`
}

func (e ErrorValidateResponse) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const codeUnknown = "UNKNOWN"

var validate = validator.New()

func init() {
	validate.RegisterTagNameFunc(fieldName)
	registerNotBlank()
	registerDecimal()
}

// fieldName reports a field by the name the client used to send it.
func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "param", "query"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// ValidateStruct returns nil or a *multierror.Error whose entries are all
// ErrorValidateResponse.
func ValidateStruct(toValidate any) error {
	var errs *multierror.Error
	if err := validate.Struct(toValidate); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			errs = multierror.Append(errs, ErrorValidateResponse{
				Code:    codeUnknown,
				Message: err.Error(),
			})
			return errs.ErrorOrNil()
		}

		var valErrs validator.ValidationErrors
		if errors.As(err, &valErrs) {
			for _, valErr := range valErrs {
				errs = multierror.Append(errs, toResponse(valErr))
			}
		}
	}

	return errs.ErrorOrNil()
}

// DecodeError reports a request that could not be decoded in the shape
// ValidateStruct uses. The offending field is named when the decoder knows it.
func DecodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return FieldTypeError(typeErr.Field)
	}
	return multierror.Append(nil, fromErrMap("", models.ErrKeyMalformedRequest))
}

// FieldTypeError reports field as holding a value of the wrong type.
func FieldTypeError(field string) error {
	key := field + "_type"
	if _, found := models.MapErrors[key]; !found {
		key = models.ErrKeyMalformedRequest
	}
	return multierror.Append(nil, fromErrMap(field, key))
}

func fromErrMap(field, key string) ErrorValidateResponse {
	data := models.MapErrors[key]
	return ErrorValidateResponse{
		Code:    data.Code,
		Field:   field,
		Message: data.ErrorMessage.Error(),
	}
}

func toResponse(valErr validator.FieldError) ErrorValidateResponse {
	keys := []string{
		fmt.Sprintf("%s_%s", valErr.Namespace(), valErr.Tag()),
		fmt.Sprintf("%s_%s", valErr.Field(), valErr.Tag()),
	}
	for _, key := range keys {
		if data, found := models.MapErrors[key]; found {
			return ErrorValidateResponse{
				Code:    data.Code,
				Field:   valErr.Field(),
				Message: data.ErrorMessage.Error(),
			}
		}
	}

	return ErrorValidateResponse{
		Code:    codeUnknown,
		Field:   valErr.Field(),
		Message: strings.TrimSpace(fmt.Sprintf("%s %s", valErr.Tag(), valErr.Param())),
	}
}

func registerNotBlank() {
	_ = validate.RegisterValidation("notblank", nonstandard.NotBlank)
}

func registerDecimal() {
	validate.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if valuer, ok := field.Interface().(models.Decimal); ok {
			return valuer.String()
		}
		return nil
	}, models.Decimal{})

	_ = validate.RegisterValidation("decimalGreaterThan", func(fl validator.FieldLevel) bool {
		value, ok := parseDecimalField(fl)
		if !ok {
			return false
		}

		parameterValue, err := models.NewDecimal(fl.Param())
		if err != nil {
			return false
		}

		return value.GreaterThan(parameterValue.Decimal)
	})

	_ = validate.RegisterValidation("decimalLessThan", func(fl validator.FieldLevel) bool {
		value, ok := parseDecimalField(fl)
		if !ok {
			return false
		}

		parameterValue, err := models.NewDecimal(fl.Param())
		if err != nil {
			return false
		}

		return value.LessThan(parameterValue.Decimal)
	})

	_ = validate.RegisterValidation("decimalMaxScale", func(fl validator.FieldLevel) bool {
		value, ok := parseDecimalField(fl)
		if !ok {
			return false
		}

		scale, err := strconv.ParseInt(fl.Param(), 10, 32)
		if err != nil {
			return false
		}

		return value.Equal(value.Truncate(int32(scale)))
	})
}

func parseDecimalField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	data, ok := fl.Field().Interface().(string)
	if !ok {
		return decimal.Decimal{}, false
	}

	value, err := decimal.NewFromString(data)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return value, true
}
