package http

import (
	"errors"
	"net/http"

	"github.com/hashicorp/go-multierror"
	"github.com/labstack/echo/v4"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/models"
)

type (
	RestErrorResponseModel struct {
		Status  string `json:"status" example:"error"`
		Code    any    `json:"code"`
		Message string `json:"message" example:"error"`
	}

	RestErrorValidationResponseModel struct {
		Status  string `json:"status" example:"error"`
		Code    string `json:"code" example:"VALIDATION_ERROR"`
		Message string `json:"message" example:"validation failed"`
		Errors  any    `json:"errors"`
	}
)

const codeValidationError = "VALIDATION_ERROR"

func RestSuccessResponse(c echo.Context, code int, in any) error {
	return c.JSON(code, in)
}

func RestErrorResponse(c echo.Context, statusCode int, err error) error {
	res := RestErrorResponseModel{
		Status:  "error",
		Code:    statusCode,
		Message: err.Error(),
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		res.Code = echoErr.Code
		if msg, ok := echoErr.Message.(string); ok {
			res.Message = msg
		}
	}

	var data models.ErrorDetail
	if errors.As(err, &data) {
		res.Code = data.Code
		res.Message = data.ErrorMessage.Error()
	}
	return c.JSON(statusCode, res)
}

func RestErrorValidationResponse(c echo.Context, err error) error {
	res := RestErrorValidationResponseModel{
		Status:  "error",
		Code:    codeValidationError,
		Message: common.ErrValidation.Error(),
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		res.Errors = merr.Errors
	}

	return c.JSON(http.StatusBadRequest, res)
}

// StatusFromError resolves the HTTP status of a service error.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, common.ErrAccountAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, common.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrInvalidOperationType),
		errors.Is(err, common.ErrInsufficientFunds):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrRequestBeingProcessed):
		return http.StatusConflict
	case errors.Is(err, common.ErrInvalidFingerprint):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// RestServiceErrorResponse renders a service error. Anything unmapped is
// logged and answered with a generic message.
func RestServiceErrorResponse(c echo.Context, err error) error {
	status := StatusFromError(err)
	if status == http.StatusInternalServerError {
		xlog.Error(c.Request().Context(), "[HTTP.UNEXPECTED-ERROR]",
			xlog.String("path", c.Path()),
			xlog.Err(err))
		return RestErrorResponse(c, status, models.GetErrMap(models.ErrKeyInternalServerError))
	}
	return RestErrorResponse(c, status, err)
}

// ErrorHandler is installed as echo's HTTPErrorHandler so binder errors and
// unknown routes share the error envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Internal != nil {
			xlog.Warn(c.Request().Context(), "[HTTP.ERROR]", xlog.Err(echoErr.Internal))
		}
		_ = RestErrorResponse(c, echoErr.Code, echoErr)
		return
	}

	_ = RestServiceErrorResponse(c, err)
}
