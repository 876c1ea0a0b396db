package models

import (
	"errors"
	"fmt"
)

type (
	MapErrs     map[string]ErrorDetail
	ErrorDetail struct {
		Code         string `json:"code,omitempty"`
		ErrorMessage error  `json:"message,omitempty"`

		// Cause is the sentinel this detail was derived from, if any.
		Cause error `json:"-"`
	}
)

func (e ErrorDetail) Error() string {
	return fmt.Sprintf("code: %s, message: %v", e.Code, e.ErrorMessage)
}

func (e ErrorDetail) Unwrap() error {
	return e.Cause
}

// GetErrMap returns the mapped error for key. The optional args[0] is appended
// to the message as the underlying cause.
func GetErrMap(key string, args ...string) ErrorDetail {
	v, ok := MapErrors[key]
	if !ok {
		return ErrorDetail{
			Code:         key,
			ErrorMessage: errors.New("unknown error mapping"),
		}
	}
	if len(args) > 0 && args[0] != "" {
		v.ErrorMessage = fmt.Errorf("%s caused by %s", v.ErrorMessage, args[0])
	}

	return v
}

// WrapErrMap is GetErrMap for domain sentinels: the result matches cause with
// errors.Is.
func WrapErrMap(key string, cause error, args ...string) ErrorDetail {
	v := GetErrMap(key, args...)
	v.Cause = cause
	return v
}
